// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// CITATION STATUS
// =============================================================================

// CitationStatus describes the legal currency of a cited provision.
type CitationStatus string

const (
	CitationActive      CitationStatus = "active"
	CitationAmended     CitationStatus = "amended"
	CitationRepealed    CitationStatus = "repealed"
	CitationUnderReview CitationStatus = "under_review"
	CitationUnknown     CitationStatus = "unknown"
)

// Valid reports whether the status is one of the known values.
func (s CitationStatus) Valid() bool {
	switch s {
	case CitationActive, CitationAmended, CitationRepealed, CitationUnderReview, CitationUnknown:
		return true
	}
	return false
}

// Normalize maps unrecognized or empty statuses to CitationUnknown.
func (s CitationStatus) Normalize() CitationStatus {
	if s.Valid() {
		return s
	}
	return CitationUnknown
}

// =============================================================================
// CITATION TYPE
// =============================================================================

// DefaultCitationConfidence is assumed when the backend omits a citation's
// confidence score.
const DefaultCitationConfidence = 0.95

// Citation is a reference to a legal source attached to an AI answer.
// Inline markers in answer text refer to citations by ID.
type Citation struct {
	ID         string         `json:"id"`
	Text       string         `json:"text"`
	Source     string         `json:"source"`
	Section    string         `json:"section,omitempty"`
	Status     CitationStatus `json:"status,omitempty"`
	Amendments []string       `json:"amendments,omitempty"`
	Confidence *float64       `json:"confidence,omitempty"`
}

// EffectiveConfidence returns the citation's confidence score, falling back
// to DefaultCitationConfidence when the backend omitted one.
func (c *Citation) EffectiveConfidence() float64 {
	if c.Confidence == nil {
		return DefaultCitationConfidence
	}
	return *c.Confidence
}

// EffectiveStatus returns the citation's status, mapping empty or invalid
// values to CitationUnknown.
func (c *Citation) EffectiveStatus() CitationStatus {
	return c.Status.Normalize()
}
