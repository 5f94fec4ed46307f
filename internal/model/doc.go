// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript and
// prediction results.
//
// # Key Types
//
//   - Transcript: append-only ordered log of chat turns
//   - Turn: single transcript entry with sender and settlement status
//   - PredictionView: display-ready projection of a backend prediction
//
// # Usage
//
// Append a user turn optimistically, then settle it when the call returns:
//
//	id := transcript.Append(model.NewUserTurn("hello"))
//	// ... backend call ...
//	transcript.Settle(id, model.StatusSettledOK)
//	transcript.Append(model.NewAITurn(reply))
package model
