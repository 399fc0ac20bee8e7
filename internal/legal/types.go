// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package legal

import (
	"github.com/mkeshav/lexquery-tui/internal/model"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// QueryRequest is the body of a legal query POST.
type QueryRequest struct {
	Query                string `json:"query"`
	Jurisdiction         string `json:"jurisdiction"`
	IncludeDevilsAdvocate bool  `json:"include_devils_advocate"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// Source is a retrieval source attached to an answer. The backend has used
// two shapes over time (title/type and document_name/document_type), so
// both sets of fields are decoded and the accessors pick whichever is set.
type Source struct {
	Title          string  `json:"title,omitempty"`
	Source         string  `json:"source,omitempty"`
	Type           string  `json:"type,omitempty"`
	SourceType     string  `json:"source_type,omitempty"`
	DocumentName   string  `json:"document_name,omitempty"`
	DocumentType   string  `json:"document_type,omitempty"`
	Section        string  `json:"section,omitempty"`
	RelevanceScore float64 `json:"relevance_score,omitempty"`
}

// DisplayText returns the best available label for the source.
func (s *Source) DisplayText() string {
	switch {
	case s.Title != "":
		return s.Title
	case s.Source != "":
		return s.Source
	case s.DocumentName != "":
		return s.DocumentName
	default:
		return "Legal Source"
	}
}

// DisplayType returns the best available source category.
func (s *Source) DisplayType() string {
	switch {
	case s.Type != "":
		return s.Type
	case s.SourceType != "":
		return s.SourceType
	case s.DocumentType != "":
		return s.DocumentType
	default:
		return "Unknown"
	}
}

// InputValidation carries the backend's pre-answer triage of the question.
type InputValidation struct {
	RequiresLawyer bool `json:"requires_lawyer"`
}

// QueryResponse is a successful legal query answer.
//
// Confidence and SafetyCheckPassed are pointers because their absence is
// meaningful: a missing confidence can never verify an answer.
type QueryResponse struct {
	QueryID           string           `json:"query_id,omitempty"`
	Query             string           `json:"query,omitempty"`
	Answer            string           `json:"answer"`
	Confidence        *float64         `json:"confidence,omitempty"`
	ConfidenceLevel   string           `json:"confidence_level,omitempty"`
	SafetyCheckPassed *bool            `json:"safety_check_passed,omitempty"`
	ValidationStage   string           `json:"validation_stage,omitempty"`
	Citations         []model.Citation `json:"citations,omitempty"`
	Sources           []Source         `json:"sources,omitempty"`
	DevilsAdvocate    string           `json:"devils_advocate_response,omitempty"`
	InputValidation   *InputValidation `json:"input_validation,omitempty"`
	Warnings          []string         `json:"warnings,omitempty"`
	ProcessingTime    float64          `json:"processing_time,omitempty"`
}

// apiError is the body the backend returns on a non-2xx status.
// FastAPI puts the message in "detail"; some proxies wrap it in "error".
type apiError struct {
	Detail string `json:"detail,omitempty"`
	Error  *struct {
		Message string `json:"message,omitempty"`
	} `json:"error,omitempty"`
}

func (e *apiError) message() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Error != nil && e.Error.Message != "" {
		return e.Error.Message
	}
	return ""
}

// =============================================================================
// MAPPING TO TRANSCRIPT
// =============================================================================

// ToAnswer maps a wire response into the fields the transcript stores.
// Backend citations are used directly when present; otherwise sources are
// synthesized into citation entries so the UI always has something to list.
// Synthesized entries have no ID and therefore never resolve inline.
func (r *QueryResponse) ToAnswer() model.AIAnswer {
	citations := r.Citations
	if len(citations) == 0 && len(r.Sources) > 0 {
		citations = make([]model.Citation, len(r.Sources))
		for i := range r.Sources {
			s := &r.Sources[i]
			citations[i] = model.Citation{
				Text:    s.DisplayText(),
				Source:  s.DisplayType(),
				Section: s.Section,
			}
		}
	}

	requiresLawyer := false
	if r.InputValidation != nil {
		requiresLawyer = r.InputValidation.RequiresLawyer
	}

	return model.AIAnswer{
		Content:           r.Answer,
		Citations:         citations,
		SafetyCheckPassed: r.SafetyCheckPassed,
		Confidence:        r.Confidence,
		RequiresLawyer:    requiresLawyer,
		ValidationStage:   r.ValidationStage,
		DevilsAdvocate:    r.DevilsAdvocate,
	}
}
