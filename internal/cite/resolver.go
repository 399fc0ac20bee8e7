// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cite resolves inline citation markers in answer text.
//
// Answer text may embed markers of the form [citation:ID]. Resolve splits
// the text into an ordered list of segments: plain text runs and resolved
// citations. Markers whose ID is not attached to the message are dropped
// from the output while the text around them is preserved, so a backend
// that cites inconsistently degrades to readable prose instead of an error.
package cite

import (
	"strings"

	"github.com/mkeshav/lexquery-tui/internal/model"
)

// marker is the literal prefix that opens an inline citation reference.
const marker = "[citation:"

// =============================================================================
// SEGMENT TYPE
// =============================================================================

// SegmentKind distinguishes plain text from resolved citations.
type SegmentKind int

const (
	// SegmentText is a run of plain answer text.
	SegmentText SegmentKind = iota
	// SegmentCitation is a resolved inline citation.
	SegmentCitation
)

// Segment is one piece of a resolved answer: either plain text or a
// citation reference that resolved against the message's citation list.
type Segment struct {
	Kind     SegmentKind
	Text     string
	Citation *model.Citation
}

// =============================================================================
// RESOLVER
// =============================================================================

// Resolver resolves marker IDs against a fixed set of citations.
type Resolver struct {
	byID map[string]*model.Citation
}

// NewResolver builds a resolver over the given citations. Later entries
// with a duplicate ID are ignored; the first occurrence wins.
func NewResolver(citations []model.Citation) *Resolver {
	byID := make(map[string]*model.Citation, len(citations))
	for i := range citations {
		c := &citations[i]
		if c.ID == "" {
			continue
		}
		if _, dup := byID[c.ID]; !dup {
			byID[c.ID] = c
		}
	}
	return &Resolver{byID: byID}
}

// Lookup returns the citation with the given ID, or nil.
func (r *Resolver) Lookup(id string) *model.Citation {
	return r.byID[id]
}

// Resolve splits content into text and citation segments. Empty text runs
// are omitted. An unterminated marker at the end of the content is treated
// as a reference whose ID runs to the end of the text.
func (r *Resolver) Resolve(content string) []Segment {
	if content == "" {
		return nil
	}

	var segments []Segment
	rest := content
	for {
		idx := strings.Index(rest, marker)
		if idx < 0 {
			if rest != "" {
				segments = append(segments, Segment{Kind: SegmentText, Text: rest})
			}
			return segments
		}

		if before := rest[:idx]; before != "" {
			segments = append(segments, Segment{Kind: SegmentText, Text: before})
		}
		rest = rest[idx+len(marker):]

		var id string
		if end := strings.Index(rest, "]"); end >= 0 {
			id = rest[:end]
			rest = rest[end+1:]
		} else {
			id = rest
			rest = ""
		}

		if citation := r.byID[id]; citation != nil {
			segments = append(segments, Segment{Kind: SegmentCitation, Citation: citation})
		}
	}
}

// ResolveMessage resolves a message's content against its own citations.
func ResolveMessage(msg *model.Message) []Segment {
	return NewResolver(msg.Citations).Resolve(msg.Content)
}
