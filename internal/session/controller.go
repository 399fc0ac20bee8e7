// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session coordinates the submit flow: input validation, the
// single backend query per submission, transcript updates, and outcome
// notifications.
package session

import (
	"context"
	"sync"

	"github.com/mkeshav/lexquery-tui/internal/legal"
	"github.com/mkeshav/lexquery-tui/internal/model"
	"github.com/mkeshav/lexquery-tui/internal/toast"
	"github.com/mkeshav/lexquery-tui/internal/triage"
)

// =============================================================================
// OUTCOMES
// =============================================================================

// Outcome describes what a submission attempt did.
type Outcome int

const (
	// OutcomeRejected means validation failed; nothing was sent and the
	// transcript is unchanged.
	OutcomeRejected Outcome = iota
	// OutcomeBusy means a query is already in flight; the input was
	// silently dropped.
	OutcomeBusy
	// OutcomeAnswered means the backend answered and the answer is in
	// the transcript.
	OutcomeAnswered
	// OutcomeFailed means the query failed; the transcript carries the
	// apologetic fallback message.
	OutcomeFailed
	// OutcomeCanceled means the user canceled the query before it
	// completed.
	OutcomeCanceled
)

// =============================================================================
// QUERIER
// =============================================================================

// Querier is the slice of the backend client the controller needs.
type Querier interface {
	Query(ctx context.Context, query string) (*legal.QueryResponse, error)
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns the submit flow for one conversation. At most one query
// is in flight at a time; submissions while busy are dropped rather than
// queued, because a second answer arriving out of order would corrupt the
// question/answer pairing the transcript implies.
//
// All methods are safe for concurrent use. Use pointers to avoid copying
// the mutex.
type Controller struct {
	mu sync.Mutex

	conv   *model.Conversation
	toasts *toast.Manager
	client Querier

	busy        bool
	sessionCtx  context.Context
	endSession  context.CancelFunc
	cancelQuery context.CancelFunc

	// Called after each successful answer, outside the lock.
	onAnswer func(query string, resp *legal.QueryResponse)
}

// NewController creates a controller bound to a conversation and toast
// queue. The session context is created here; Close cancels it and with
// it any in-flight query.
func NewController(conv *model.Conversation, toasts *toast.Manager, client Querier) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		conv:       conv,
		toasts:     toasts,
		client:     client,
		sessionCtx: ctx,
		endSession: cancel,
	}
}

// SetAnswerCallback sets the function called after each successful answer,
// with the submitted query and the raw response. Used to record history.
func (c *Controller) SetAnswerCallback(fn func(query string, resp *legal.QueryResponse)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onAnswer = fn
}

// Busy reports whether a query is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Conversation returns the transcript this controller feeds.
func (c *Controller) Conversation() *model.Conversation {
	return c.conv
}

// =============================================================================
// SUBMIT FLOW
// =============================================================================

// Submit runs one submission end to end: validate, append the user
// message, issue exactly one backend query, and append the answer or the
// fallback. It blocks until the query resolves, so callers drive it from
// a goroutine (in the TUI, a tea.Cmd).
//
// Invalid input produces a warning toast and touches nothing else. The
// empty-input warning fires even while busy, matching the rule that an
// empty submit is always answered with guidance.
func (c *Controller) Submit(input string) Outcome {
	query, verr := ValidateQuery(input)
	if verr != nil && verr.Code == ValidationEmpty {
		c.pushNotice(triage.ForValidation(verr.Message))
		return OutcomeRejected
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return OutcomeBusy
	}
	if verr != nil {
		c.mu.Unlock()
		c.pushNotice(triage.ForValidation(verr.Message))
		return OutcomeRejected
	}
	c.busy = true
	qctx, cancel := context.WithCancel(c.sessionCtx)
	c.cancelQuery = cancel
	c.mu.Unlock()

	defer func() {
		cancel()
		c.mu.Lock()
		c.busy = false
		c.cancelQuery = nil
		c.mu.Unlock()
	}()

	// The user's question enters the transcript before the network is
	// touched, so a failed query still shows what was asked.
	c.conv.AppendUser(query)

	resp, err := c.client.Query(qctx, query)
	if err != nil {
		if legal.IsCanceled(err) {
			// A cancel is the user's own action: no toast, no fallback.
			return OutcomeCanceled
		}
		c.pushNotice(triage.ForError(err))
		c.conv.AppendAIFallback()
		return OutcomeFailed
	}

	c.conv.AppendAI(resp.ToAnswer())
	if notice, ok := triage.ForResponse(resp); ok {
		c.pushNotice(notice)
	}

	c.mu.Lock()
	onAnswer := c.onAnswer
	c.mu.Unlock()
	if onAnswer != nil {
		onAnswer(query, resp)
	}

	return OutcomeAnswered
}

// Cancel aborts the in-flight query, if any. The pending Submit returns
// OutcomeCanceled.
func (c *Controller) Cancel() {
	c.mu.Lock()
	cancel := c.cancelQuery
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Close ends the session: the session context is canceled, which aborts
// any in-flight query, and the transcript stops notifying. Safe to call
// more than once.
func (c *Controller) Close() {
	c.endSession()
	c.conv.Dispose()
	c.toasts.Dispose()
}

func (c *Controller) pushNotice(n triage.Notice) {
	c.toasts.Push(n.Message, n.Level)
}
