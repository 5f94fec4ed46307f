// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/carecost-tui/internal/api"
)

// =============================================================================
// BUBBLE TEA MESSAGES
// =============================================================================

// ReplyMsg delivers the settled result of a chat send. UserTurnID is the
// transcript ID of the optimistically appended user turn.
type ReplyMsg struct {
	UserTurnID string
	Response   *api.ChatResponse
	Err        error
}

// ClearTranscriptMsg requests clearing the transcript view. The underlying
// transcript is page-session scoped, so this starts a fresh one.
type ClearTranscriptMsg struct{}
