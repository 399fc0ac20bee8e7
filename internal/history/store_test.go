// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkeshav/lexquery-tui/internal/legal"
	"github.com/mkeshav/lexquery-tui/internal/model"
)

func backendCitationList() []model.Citation {
	return []model.Citation{{ID: "cit_1", Text: "Section 498A", Source: "Indian Penal Code"}}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	conf := 0.85
	entry := &Entry{
		ConversationID: "conv-1",
		Query:          "What is anticipatory bail?",
		Answer:         "Anticipatory bail is governed by Section 438 CrPC.",
		Confidence:     &conf,
		Verified:       true,
		Jurisdiction:   "india",
		CitationCount:  2,
	}
	require.NoError(t, store.Record(ctx, entry))
	assert.NotZero(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())

	entries, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.Equal(t, "What is anticipatory bail?", got.Query)
	assert.Equal(t, "conv-1", got.ConversationID)
	require.NotNil(t, got.Confidence)
	assert.Equal(t, 0.85, *got.Confidence)
	assert.True(t, got.Verified)
	assert.Equal(t, 2, got.CitationCount)
}

func TestRecordNilConfidence(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, &Entry{
		ConversationID: "conv-1",
		Query:          "unscored query",
		Answer:         "answer",
	}))

	entries, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Confidence)
	assert.False(t, entries[0].Verified)
}

func TestRecentOrderAndLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(ctx, &Entry{
			ConversationID: "conv-1",
			Query:          "query " + string(rune('a'+i)),
			Answer:         "answer",
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		}))
	}

	entries, err := store.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "query e", entries[0].Query)
	assert.Equal(t, "query d", entries[1].Query)
	assert.Equal(t, "query c", entries[2].Query)
}

func TestSearch(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, &Entry{
		ConversationID: "conv-1",
		Query:          "What does Article 19 guarantee?",
		Answer:         "Six fundamental freedoms.",
	}))
	require.NoError(t, store.Record(ctx, &Entry{
		ConversationID: "conv-1",
		Query:          "What is Section 420 IPC?",
		Answer:         "It covers cheating, under Article 19 limits it does not fall.",
	}))

	entries, err := store.Search(ctx, "Article 19", 10)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = store.Search(ctx, "Section 420", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "What is Section 420 IPC?", entries[0].Query)

	entries, err = store.Search(ctx, "habeas corpus", 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPrune(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	old := time.Now().Add(-48 * time.Hour)
	recent := time.Now()
	require.NoError(t, store.Record(ctx, &Entry{ConversationID: "c", Query: "old query", Answer: "a", CreatedAt: old}))
	require.NoError(t, store.Record(ctx, &Entry{ConversationID: "c", Query: "new query", Answer: "a", CreatedAt: recent}))

	removed, err := store.Prune(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestClear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, &Entry{ConversationID: "c", Query: "q", Answer: "a"}))
	require.NoError(t, store.Clear(ctx))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRecorderFor(t *testing.T) {
	store := openTestStore(t)

	conf := 0.9
	safety := true
	record := RecorderFor(store, "conv-42", "india")
	record("What is Section 498A?", &legal.QueryResponse{
		QueryID:           "q-1",
		Answer:            "Section 498A addresses cruelty.",
		Confidence:        &conf,
		SafetyCheckPassed: &safety,
		Citations:         backendCitationList(),
	})

	entries, err := store.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.Equal(t, "q-1", got.QueryID)
	assert.Equal(t, "conv-42", got.ConversationID)
	assert.Equal(t, "india", got.Jurisdiction)
	assert.True(t, got.Verified)
	assert.Equal(t, 1, got.CitationCount)
}
