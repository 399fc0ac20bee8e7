// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// AI ANSWER INPUT
// =============================================================================

// AIAnswer carries the fields of a backend answer that become a transcript
// message. The transport layer maps its wire type into this struct so the
// store never depends on the HTTP client.
type AIAnswer struct {
	Content           string
	Citations         []Citation
	SafetyCheckPassed *bool
	Confidence        *float64
	RequiresLawyer    bool
	ValidationStage   string
	DevilsAdvocate    string
}

// =============================================================================
// CONVERSATION STORE
// =============================================================================

// Conversation is an append-ordered transcript of user and AI messages.
// It is the single source of truth for what the UI renders.
//
// All methods are safe for concurrent use. Use pointers to avoid copying
// the mutex.
type Conversation struct {
	mu          sync.RWMutex
	id          string
	created     time.Time
	messages    []*Message
	byID        map[string]*Message
	subscribers []func()
	disposed    bool
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{
		id:      uuid.New().String(),
		created: time.Now(),
		byID:    make(map[string]*Message),
	}
}

// ID returns the conversation's unique identifier.
func (c *Conversation) ID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.id
}

// CreatedAt returns when the conversation was started.
func (c *Conversation) CreatedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.created
}

// =============================================================================
// APPEND OPERATIONS
// =============================================================================

// AppendUser appends a user message with the given content and returns it.
func (c *Conversation) AppendUser(content string) *Message {
	msg := NewUserMessage(content)
	c.append(msg)
	return msg
}

// AppendAI appends an AI message built from a backend answer and returns it.
// The verified flag is derived here, never taken from the wire. Citations
// are snapshot-copied so later mutation of the input cannot alter the
// transcript.
func (c *Conversation) AppendAI(ans AIAnswer) *Message {
	content := ans.Content
	if content == "" {
		content = MissingAnswer
	}

	var citations []Citation
	if len(ans.Citations) > 0 {
		citations = make([]Citation, len(ans.Citations))
		copy(citations, ans.Citations)
	}

	msg := &Message{
		ID:                generateMessageID(),
		Role:              RoleAI,
		Content:           content,
		Timestamp:         time.Now(),
		Citations:         citations,
		Verified:          IsVerified(ans.SafetyCheckPassed, ans.Confidence),
		SafetyCheckPassed: ans.SafetyCheckPassed,
		RequiresLawyer:    ans.RequiresLawyer,
		Confidence:        ans.Confidence,
		ValidationStage:   ans.ValidationStage,
		DevilsAdvocate:    ans.DevilsAdvocate,
	}
	c.append(msg)
	return msg
}

// SeedWelcome appends a pre-verified AI message used to greet the user
// when a conversation starts. It carries no confidence score and no
// citations.
func (c *Conversation) SeedWelcome(content string) *Message {
	msg := &Message{
		ID:        generateMessageID(),
		Role:      RoleAI,
		Content:   content,
		Timestamp: time.Now(),
		Verified:  true,
	}
	c.append(msg)
	return msg
}

// AppendAIFallback appends the apologetic AI message used when a query
// fails in transit. The message carries no trust signals or citations.
func (c *Conversation) AppendAIFallback() *Message {
	msg := &Message{
		ID:        generateMessageID(),
		Role:      RoleAI,
		Content:   FallbackAnswer,
		Timestamp: time.Now(),
	}
	c.append(msg)
	return msg
}

func (c *Conversation) append(msg *Message) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.messages = append(c.messages, msg)
	c.byID[msg.ID] = msg
	subs := make([]func(), len(c.subscribers))
	copy(subs, c.subscribers)
	c.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// =============================================================================
// MUTATION
// =============================================================================

// ToggleDevilsAdvocate flips the counter-argument visibility flag on the
// message with the given ID. Unknown IDs are ignored. The flag flips even
// when the message carries no counter-argument text; the view simply has
// nothing extra to show.
func (c *Conversation) ToggleDevilsAdvocate(id string) {
	c.mu.Lock()
	msg, ok := c.byID[id]
	if !ok {
		c.mu.Unlock()
		return
	}
	msg.ShowDevilsAdvocate = !msg.ShowDevilsAdvocate
	subs := make([]func(), len(c.subscribers))
	copy(subs, c.subscribers)
	c.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Clear removes all messages but keeps the conversation usable.
func (c *Conversation) Clear() {
	c.mu.Lock()
	c.messages = nil
	c.byID = make(map[string]*Message)
	subs := make([]func(), len(c.subscribers))
	copy(subs, c.subscribers)
	c.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// =============================================================================
// QUERIES
// =============================================================================

// Messages returns a snapshot of the transcript in append order.
func (c *Conversation) Messages() []*Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// MessageByID returns the message with the given ID, or nil.
func (c *Conversation) MessageByID(id string) *Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.byID[id]
}

// Last returns the most recent message, or nil if the transcript is empty.
func (c *Conversation) Last() *Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.messages) == 0 {
		return nil
	}
	return c.messages[len(c.messages)-1]
}

// Len returns the number of messages in the transcript.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// =============================================================================
// SUBSCRIPTIONS
// =============================================================================

// Subscribe registers a callback invoked after every transcript change.
// Callbacks run outside the store's lock and must not block.
func (c *Conversation) Subscribe(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.subscribers = append(c.subscribers, fn)
}

// Dispose drops all subscribers and rejects further appends. Safe to call
// more than once.
func (c *Conversation) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disposed = true
	c.subscribers = nil
}
