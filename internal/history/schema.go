// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

const (
	// SchemaVersion tracks the database schema version for migrations
	SchemaVersion = 1
)

// SQLite schema for the query history store
const Schema = `
-- Metadata table for schema version
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

-- Queries table: one row per answered legal query
CREATE TABLE IF NOT EXISTS queries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    query_id TEXT,                   -- Backend-assigned ID, if any
    conversation_id TEXT NOT NULL,
    query TEXT NOT NULL,
    answer TEXT NOT NULL,
    confidence REAL,                 -- NULL when the backend sent none
    verified INTEGER NOT NULL,
    requires_lawyer INTEGER NOT NULL,
    jurisdiction TEXT,
    citation_count INTEGER NOT NULL,
    created_at INTEGER NOT NULL      -- Unix timestamp
);

CREATE INDEX IF NOT EXISTS idx_queries_conversation ON queries(conversation_id);
CREATE INDEX IF NOT EXISTS idx_queries_created_at ON queries(created_at);
`

// InitMetadata initializes the metadata table with default values
const InitMetadata = `
INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', '1');
INSERT OR IGNORE INTO metadata (key, value) VALUES ('created_at', strftime('%s', 'now'));
`
