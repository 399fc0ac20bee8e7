// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// This package defines the core domain types used throughout the application
// for representing a legal research transcript: messages, the citations
// attached to them, and the conversation store itself.
//
// # Key Types
//
//   - Conversation: Ordered, append-mostly store of transcript messages
//   - Message: Single transcript entry with role, content, and trust signals
//   - Citation: A legal source reference attached to an AI message
//   - Role: Message role enumeration (user, ai)
//
// # Usage
//
// Create a new conversation and append messages:
//
//	conv := model.NewConversation()
//	conv.AppendUser("What does Article 19 guarantee?")
//	conv.AppendAI(resp) // resp is a *legal.QueryResponse
//
// The store is the single source of transcript truth: every mutation is
// immediately visible to subscribers registered via Subscribe.
package model
