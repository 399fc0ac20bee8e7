// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"strings"
	"unicode/utf8"

	"github.com/mkeshav/lexquery-tui/internal/util"
)

// =============================================================================
// INPUT VALIDATION
// =============================================================================

// Query length bounds, counted in characters after trimming whitespace.
const (
	MinQueryLen = 5
	MaxQueryLen = 500
)

// ValidationCode identifies why an input was rejected.
type ValidationCode int

const (
	ValidationEmpty ValidationCode = iota
	ValidationTooShort
	ValidationTooLong
)

// ValidationError describes a rejected input. The message is what the
// user sees in the warning toast.
type ValidationError struct {
	Code    ValidationCode
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation messages shown to the user.
var (
	errEmptyQuery    = &ValidationError{Code: ValidationEmpty, Message: "Please enter a legal question"}
	errQueryTooShort = &ValidationError{Code: ValidationTooShort, Message: "Query must be at least 5 characters"}
	errQueryTooLong  = &ValidationError{Code: ValidationTooLong, Message: "Query cannot exceed 500 characters"}
)

// ValidateQuery normalizes and trims the input, then checks it against
// the length bounds. On success it returns the normalized trimmed query,
// which is what gets submitted; surrounding whitespace never counts
// toward the length and never reaches the backend. NFC normalization
// happens first so composed and decomposed forms of the same character
// count the same number of runes.
func ValidateQuery(input string) (string, *ValidationError) {
	trimmed := strings.TrimSpace(util.NormalizeInput(input))
	if trimmed == "" {
		return "", errEmptyQuery
	}

	n := utf8.RuneCountInString(trimmed)
	if n < MinQueryLen {
		return "", errQueryTooShort
	}
	if n > MaxQueryLen {
		return "", errQueryTooLong
	}

	return trimmed, nil
}
