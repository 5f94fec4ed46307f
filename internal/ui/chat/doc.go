// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat panel for the carecost TUI.
//
// The panel keeps an append-only transcript and appends optimistically:
// the user's turn lands in the viewport before the backend call starts,
// and the reply (or a synthetic apology turn on failure) follows once the
// call settles. Input is disabled only while a send is in flight.
//
// Two input modes mirror the backend's chat contract: free text, and the
// four fixed options (quick estimate, health tips, insurance info, cost
// factors) that post with type "option" instead of "text".
package chat
