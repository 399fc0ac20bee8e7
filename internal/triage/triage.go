// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package triage maps query outcomes to the notifications shown above the
// transcript. The rules live here, in one place, so the controller and the
// UI never hard-code severity decisions.
package triage

import (
	"github.com/mkeshav/lexquery-tui/internal/legal"
	"github.com/mkeshav/lexquery-tui/internal/toast"
)

// Confidence bands for answer notifications. The band between the two
// thresholds is deliberately silent: an unremarkable answer needs no
// commentary.
const (
	HighConfidence = 0.8
	LowConfidence  = 0.5
)

const (
	highConfidenceMessage = "High confidence answer generated"
	lowConfidenceMessage  = "Low confidence answer - please consult a lawyer"
)

// Notice is a pending notification.
type Notice struct {
	Message string
	Level   toast.Level
}

// ForResponse returns the notice for a successful answer, if any. Answers
// in the middle confidence band, and answers without a confidence score,
// produce no notice.
func ForResponse(resp *legal.QueryResponse) (Notice, bool) {
	if resp == nil || resp.Confidence == nil {
		return Notice{}, false
	}
	switch {
	case *resp.Confidence >= HighConfidence:
		return Notice{Message: highConfidenceMessage, Level: toast.LevelSuccess}, true
	case *resp.Confidence < LowConfidence:
		return Notice{Message: lowConfidenceMessage, Level: toast.LevelWarning}, true
	default:
		return Notice{}, false
	}
}

// ForError returns the notice for a failed query. The backend's own
// message is used when it sent one; transport failures get the generic
// retry prompt.
func ForError(err error) Notice {
	return Notice{Message: legal.ErrorMessage(err), Level: toast.LevelError}
}

// ForValidation returns the notice for a rejected input.
func ForValidation(message string) Notice {
	return Notice{Message: message, Level: toast.LevelWarning}
}
