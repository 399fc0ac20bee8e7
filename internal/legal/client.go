// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package legal provides the HTTP client for the legal research backend.
package legal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the legal backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeUnreachable
	ErrTypeCanceled
	ErrTypeBackend
	ErrTypeInvalidResponse
	ErrTypeConnection
)

// Sentinel errors for easy checking.
var (
	ErrUnreachable = &ClientError{Type: ErrTypeUnreachable, Message: "legal backend is not reachable"}
	ErrCanceled    = &ClientError{Type: ErrTypeCanceled, Message: "query canceled"}
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

const (
	queryPath  = "/api/v1/query/legal"
	healthPath = "/health"
)

// ClientConfig holds configuration options for the legal backend client.
type ClientConfig struct {
	// BaseURL is the backend base URL (default: http://localhost:8000)
	BaseURL string

	// Jurisdiction sent with every query (default: "india")
	Jurisdiction string

	// HealthTimeout bounds the health check request (default: 5s)
	HealthTimeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:       "http://localhost:8000",
		Jurisdiction:  "india",
		HealthTimeout: 5 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the legal research backend.
//
// The Client is thread-safe for concurrent use.
//
// Example:
//
//	client := legal.NewClient()
//	resp, err := client.Query(ctx, "What does Article 19 guarantee?")
type Client struct {
	mu         sync.RWMutex
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a new client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:8000"
	}
	if config.Jurisdiction == "" {
		config.Jurisdiction = "india"
	}
	if config.HealthTimeout == 0 {
		config.HealthTimeout = 5 * time.Second
	}

	return &Client{
		config: config,
		// No client-level timeout: retrieval-backed legal answers can take
		// well over a minute, so the query is bounded only by its context.
		httpClient: &http.Client{},
	}
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// CheckHealth verifies that the backend is reachable.
func (c *Client) CheckHealth(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.HealthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+healthPath, nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ClientError{
			Type:    ErrTypeConnection,
			Message: "unexpected status from backend: " + resp.Status,
		}
	}

	return nil
}

// =============================================================================
// QUERY
// =============================================================================

// Query sends a legal question and returns the backend's answer. The
// question must already be validated; the client sends it as-is. Exactly
// one request is issued per call: there are no retries, because a legal
// query is not idempotent from the user's point of view and a duplicate
// answer is worse than an error.
func (c *Client) Query(ctx context.Context, query string) (*QueryResponse, error) {
	reqBody := QueryRequest{
		Query:                 query,
		Jurisdiction:          c.Jurisdiction(),
		IncludeDevilsAdvocate: true,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+queryPath, bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrCanceled
		}
		return nil, ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Try to read the backend's error message
		var backendErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&backendErr); err == nil {
			if msg := backendErr.message(); msg != "" {
				return nil, &ClientError{Type: ErrTypeBackend, Message: msg}
			}
		}
		return nil, &ClientError{
			Type:    ErrTypeBackend,
			Message: "API error: " + resp.Status,
		}
	}

	var result QueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return &result, nil
}

// =============================================================================
// UTILITY METHODS
// =============================================================================

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// Jurisdiction returns the jurisdiction sent with each query.
func (c *Client) Jurisdiction() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config.Jurisdiction
}

// SetJurisdiction changes the jurisdiction for subsequent queries. It is
// applied on configuration reload without rebuilding the client. Empty
// values are ignored so a bad reload cannot clear the field.
func (c *Client) SetJurisdiction(jurisdiction string) {
	if jurisdiction == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.Jurisdiction = jurisdiction
}

// IsUnreachable checks if an error indicates the backend is not reachable.
func IsUnreachable(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeUnreachable
	}
	return errors.Is(err, ErrUnreachable)
}

// IsCanceled checks if an error is a cancellation.
func IsCanceled(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeCanceled
	}
	return errors.Is(err, ErrCanceled)
}

// ErrorMessage extracts the user-facing message from a query error, in
// priority order: the backend's own message when it sent one, then the
// client error's message (transport failures say the backend is not
// reachable), then the generic retry prompt shown in the toast.
func ErrorMessage(err error) string {
	var clientErr *ClientError
	if errors.As(err, &clientErr) && clientErr.Message != "" {
		return clientErr.Message
	}
	return "Failed to process your query. Please try again."
}
