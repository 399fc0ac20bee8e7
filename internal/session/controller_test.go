// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mkeshav/lexquery-tui/internal/legal"
	"github.com/mkeshav/lexquery-tui/internal/model"
	"github.com/mkeshav/lexquery-tui/internal/toast"
)

// blockingQuerier holds every query until released, for busy-state tests.
type blockingQuerier struct {
	started  chan struct{}
	release  chan struct{}
	requests atomic.Int32
}

func newBlockingQuerier() *blockingQuerier {
	return &blockingQuerier{
		started: make(chan struct{}, 8),
		release: make(chan struct{}),
	}
}

func (q *blockingQuerier) Query(ctx context.Context, query string) (*legal.QueryResponse, error) {
	q.requests.Add(1)
	q.started <- struct{}{}
	select {
	case <-q.release:
		return &legal.QueryResponse{Answer: "released"}, nil
	case <-ctx.Done():
		return nil, legal.ErrCanceled
	}
}

func newLiveController(t *testing.T, handler http.HandlerFunc) (*Controller, *model.Conversation, *toast.Manager) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	conv := model.NewConversation()
	toasts := toast.NewManager()
	client := legal.NewClientWithConfig(&legal.ClientConfig{BaseURL: server.URL})
	ctrl := NewController(conv, toasts, client)
	t.Cleanup(ctrl.Close)
	return ctrl, conv, toasts
}

func TestSubmitHappyPath(t *testing.T) {
	var requests atomic.Int32
	ctrl, conv, toasts := newLiveController(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(`{"answer": "Bail is governed by CrPC.", "confidence": 0.85, "safety_check_passed": true}`))
	})

	outcome := ctrl.Submit("  What is anticipatory bail?  ")
	if outcome != OutcomeAnswered {
		t.Fatalf("outcome = %v, want OutcomeAnswered", outcome)
	}
	if n := requests.Load(); n != 1 {
		t.Errorf("requests = %d, want exactly 1", n)
	}

	msgs := conv.Messages()
	if len(msgs) != 2 {
		t.Fatalf("transcript has %d messages, want 2", len(msgs))
	}
	if msgs[0].Role != model.RoleUser || msgs[0].Content != "What is anticipatory bail?" {
		t.Errorf("user message = %+v, want trimmed query", msgs[0])
	}
	if msgs[1].Role != model.RoleAI || !msgs[1].Verified {
		t.Errorf("AI message = %+v, want verified answer", msgs[1])
	}

	active := toasts.Active()
	if len(active) != 1 || active[0].Level != toast.LevelSuccess {
		t.Fatalf("toasts = %+v, want one success toast", active)
	}
	if active[0].Message != "High confidence answer generated" {
		t.Errorf("toast message = %q", active[0].Message)
	}
}

func TestSubmitMidConfidenceStaysSilent(t *testing.T) {
	ctrl, _, toasts := newLiveController(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"answer": "answer", "confidence": 0.65}`))
	})

	if outcome := ctrl.Submit("test query here"); outcome != OutcomeAnswered {
		t.Fatalf("outcome = %v", outcome)
	}
	if toasts.Len() != 0 {
		t.Errorf("toasts = %+v, want none in the middle confidence band", toasts.Active())
	}
}

func TestSubmitValidationFailure(t *testing.T) {
	var requests atomic.Int32
	ctrl, conv, toasts := newLiveController(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	})

	tests := []struct {
		input   string
		wantMsg string
	}{
		{"", "Please enter a legal question"},
		{"    ", "Please enter a legal question"},
		{"hi", "Query must be at least 5 characters"},
	}

	for _, tt := range tests {
		if outcome := ctrl.Submit(tt.input); outcome != OutcomeRejected {
			t.Errorf("Submit(%q) = %v, want OutcomeRejected", tt.input, outcome)
		}
	}

	if n := requests.Load(); n != 0 {
		t.Errorf("requests = %d, want 0 for invalid input", n)
	}
	if conv.Len() != 0 {
		t.Errorf("transcript has %d messages, want 0", conv.Len())
	}

	active := toasts.Active()
	if len(active) != len(tests) {
		t.Fatalf("got %d toasts, want %d", len(active), len(tests))
	}
	for i, tt := range tests {
		if active[i].Level != toast.LevelWarning {
			t.Errorf("toast[%d].Level = %q, want warning", i, active[i].Level)
		}
		if active[i].Message != tt.wantMsg {
			t.Errorf("toast[%d].Message = %q, want %q", i, active[i].Message, tt.wantMsg)
		}
	}
}

func TestSubmitBackendFailure(t *testing.T) {
	ctrl, conv, toasts := newLiveController(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"detail": "retrieval index offline"}`))
	})

	if outcome := ctrl.Submit("What is Section 498A?"); outcome != OutcomeFailed {
		t.Fatalf("outcome = %v, want OutcomeFailed", outcome)
	}

	msgs := conv.Messages()
	if len(msgs) != 2 {
		t.Fatalf("transcript has %d messages, want user + fallback", len(msgs))
	}
	if msgs[0].Role != model.RoleUser {
		t.Error("the question should stay in the transcript on failure")
	}
	if msgs[1].Content != model.FallbackAnswer {
		t.Errorf("fallback content = %q", msgs[1].Content)
	}

	active := toasts.Active()
	if len(active) != 1 || active[0].Level != toast.LevelError {
		t.Fatalf("toasts = %+v, want one error toast", active)
	}
	if active[0].Message != "retrieval index offline" {
		t.Errorf("toast message = %q, want backend detail", active[0].Message)
	}
}

func TestSubmitWhileBusy(t *testing.T) {
	querier := newBlockingQuerier()
	conv := model.NewConversation()
	toasts := toast.NewManager()
	ctrl := NewController(conv, toasts, querier)
	defer ctrl.Close()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ctrl.Submit("first query here")
	}()
	<-querier.started

	if !ctrl.Busy() {
		t.Fatal("controller should report busy while a query is in flight")
	}
	if outcome := ctrl.Submit("second query here"); outcome != OutcomeBusy {
		t.Errorf("outcome = %v, want OutcomeBusy", outcome)
	}

	// An empty submit still warns, even while busy.
	if outcome := ctrl.Submit("   "); outcome != OutcomeRejected {
		t.Errorf("empty submit while busy = %v, want OutcomeRejected", outcome)
	}
	if toasts.Len() != 1 {
		t.Errorf("toasts = %d, want the empty-input warning only", toasts.Len())
	}

	close(querier.release)
	wg.Wait()

	if n := querier.requests.Load(); n != 1 {
		t.Errorf("requests = %d, want exactly 1", n)
	}
	if ctrl.Busy() {
		t.Error("controller should be idle after the query resolves")
	}
}

func TestCancelInFlightQuery(t *testing.T) {
	querier := newBlockingQuerier()
	conv := model.NewConversation()
	toasts := toast.NewManager()
	ctrl := NewController(conv, toasts, querier)
	defer ctrl.Close()

	outcomes := make(chan Outcome, 1)
	go func() {
		outcomes <- ctrl.Submit("cancel this query")
	}()
	<-querier.started

	ctrl.Cancel()

	select {
	case outcome := <-outcomes:
		if outcome != OutcomeCanceled {
			t.Errorf("outcome = %v, want OutcomeCanceled", outcome)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Submit did not return after Cancel")
	}

	// A cancel leaves the question in place but adds neither fallback
	// nor toast.
	if conv.Len() != 1 {
		t.Errorf("transcript has %d messages, want 1", conv.Len())
	}
	if toasts.Len() != 0 {
		t.Errorf("toasts = %+v, want none after cancel", toasts.Active())
	}
}

func TestCloseAbortsInFlightQuery(t *testing.T) {
	querier := newBlockingQuerier()
	ctrl := NewController(model.NewConversation(), toast.NewManager(), querier)

	outcomes := make(chan Outcome, 1)
	go func() {
		outcomes <- ctrl.Submit("close during this query")
	}()
	<-querier.started

	ctrl.Close()

	select {
	case outcome := <-outcomes:
		if outcome != OutcomeCanceled {
			t.Errorf("outcome = %v, want OutcomeCanceled", outcome)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Submit did not return after Close")
	}
}

func TestAnswerCallback(t *testing.T) {
	ctrl, _, _ := newLiveController(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"answer": "recorded answer", "confidence": 0.75}`))
	})

	var gotQuery string
	var gotResp *legal.QueryResponse
	ctrl.SetAnswerCallback(func(query string, resp *legal.QueryResponse) {
		gotQuery = query
		gotResp = resp
	})

	if outcome := ctrl.Submit("  record this query  "); outcome != OutcomeAnswered {
		t.Fatalf("outcome = %v", outcome)
	}
	if gotQuery != "record this query" {
		t.Errorf("callback query = %q, want trimmed query", gotQuery)
	}
	if gotResp == nil || gotResp.Answer != "recorded answer" {
		t.Errorf("callback resp = %+v", gotResp)
	}
}

func TestAnswerCallbackNotCalledOnFailure(t *testing.T) {
	ctrl, _, _ := newLiveController(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	called := false
	ctrl.SetAnswerCallback(func(string, *legal.QueryResponse) { called = true })

	ctrl.Submit("this query will fail")
	if called {
		t.Error("callback should not fire on failure")
	}
}
