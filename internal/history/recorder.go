// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"time"

	"github.com/mkeshav/lexquery-tui/internal/legal"
	"github.com/mkeshav/lexquery-tui/internal/model"
)

// recordTimeout bounds each history write so a slow disk never stalls
// the submit flow.
const recordTimeout = 5 * time.Second

// RecorderFor returns an answer callback that persists each successful
// query. Write failures are swallowed: history is a convenience and must
// never break the conversation.
func RecorderFor(store *Store, conversationID, jurisdiction string) func(query string, resp *legal.QueryResponse) {
	return func(query string, resp *legal.QueryResponse) {
		ans := resp.ToAnswer()
		entry := &Entry{
			QueryID:        resp.QueryID,
			ConversationID: conversationID,
			Query:          query,
			Answer:         ans.Content,
			Confidence:     ans.Confidence,
			Verified:       model.IsVerified(ans.SafetyCheckPassed, ans.Confidence),
			RequiresLawyer: ans.RequiresLawyer,
			Jurisdiction:   jurisdiction,
			CitationCount:  len(ans.Citations),
		}

		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		_ = store.Record(ctx, entry)
	}
}
