// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"crypto/rand"
	"encoding/hex"
	"sync/atomic"
	"time"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAI:
		return "LexQuery"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// VerifiedThreshold is the minimum confidence for an answer to count as
// verified, provided the backend's safety check did not fail.
const VerifiedThreshold = 0.7

// FallbackAnswer is the transcript content used when a query fails in
// transit. It is appended as a permanent AI message so the conversation
// itself records the failure.
const FallbackAnswer = "I apologize, but I encountered an error processing your query. Please try again or rephrase your question."

// MissingAnswer is the content used when a successful response carries no
// answer text.
const MissingAnswer = "I apologize, but I could not generate a response for this query."

// Message represents a single entry in the transcript.
//
// Once appended to a Conversation, Content, Citations, and Confidence are
// immutable; ShowDevilsAdvocate is the only field mutated post-insertion
// (via Conversation.ToggleDevilsAdvocate).
type Message struct {
	// Identity
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Content
	Content string `json:"content"`

	// Citations attached to an AI answer. Always empty for user messages.
	// This is a snapshot copied at append time, never a live reference.
	Citations []Citation `json:"citations,omitempty"`

	// Trust signals (AI messages only)
	Verified          bool     `json:"verified,omitempty"`
	SafetyCheckPassed *bool    `json:"safety_check_passed,omitempty"`
	RequiresLawyer    bool     `json:"requires_lawyer,omitempty"`
	Confidence        *float64 `json:"confidence,omitempty"`
	ValidationStage   string   `json:"validation_stage,omitempty"`

	// Devil's advocate counter-argument (AI messages only)
	DevilsAdvocate     string `json:"devils_advocate,omitempty"`
	ShowDevilsAdvocate bool   `json:"show_devils_advocate,omitempty"`
}

// NewUserMessage creates a new user message. User messages never carry
// verification fields or citations.
func NewUserMessage(content string) *Message {
	return &Message{
		ID:        generateMessageID(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// IsVerifiable reports whether this message can carry trust signals.
func (m *Message) IsVerifiable() bool {
	return m.Role == RoleAI
}

// HasConfidence reports whether the backend returned a confidence score.
func (m *Message) HasConfidence() bool {
	return m.Confidence != nil
}

// ConfidenceValue returns the confidence score, or 0 if none was returned.
func (m *Message) ConfidenceValue() float64 {
	if m.Confidence == nil {
		return 0
	}
	return *m.Confidence
}

// SafetyFailed reports whether the backend explicitly failed the safety
// check. An absent safety flag is not a failure.
func (m *Message) SafetyFailed() bool {
	return m.SafetyCheckPassed != nil && !*m.SafetyCheckPassed
}

// Preview returns a truncated preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxLen {
		return m.Content
	}
	return string(runes[:maxLen-3]) + "..."
}

// IsEmpty returns true if the message has no content.
func (m *Message) IsEmpty() bool {
	return len(m.Content) == 0
}

// IsVerified implements the trust rule: an answer is verified when the
// safety check did not explicitly fail and confidence meets the threshold.
// A missing confidence can never verify.
func IsVerified(safety *bool, confidence *float64) bool {
	if safety != nil && !*safety {
		return false
	}
	return confidence != nil && *confidence >= VerifiedThreshold
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// messageSeq provides the monotonic component of message IDs so that IDs
// minted later always sort after earlier ones.
var messageSeq atomic.Uint64

// generateMessageID creates a unique, monotonically sortable message ID.
func generateMessageID() string {
	seq := messageSeq.Add(1)
	bytes := make([]byte, 4)
	rand.Read(bytes)
	return "msg_" + padSeq(seq) + "_" + hex.EncodeToString(bytes)
}

// padSeq formats a sequence number as a fixed-width decimal string so that
// lexicographic order matches numeric order.
func padSeq(n uint64) string {
	const width = 12
	var digits [width]byte
	for i := width - 1; i >= 0; i-- {
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return string(digits[:])
}
