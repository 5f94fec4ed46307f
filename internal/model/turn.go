// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript and
// prediction results.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who produced a transcript turn.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderAI:
		return "Assistant"
	default:
		return string(s)
	}
}

// =============================================================================
// TURN STATUS
// =============================================================================

// TurnStatus tracks the lifecycle of an optimistically appended turn.
// A user turn starts Pending while its backend call is in flight and is
// marked SettledOK or SettledError once the call settles; AI turns are
// appended already settled.
type TurnStatus int

const (
	StatusPending TurnStatus = iota
	StatusSettledOK
	StatusSettledError
)

// String returns the status name for display and tests.
func (s TurnStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSettledOK:
		return "settled-ok"
	case StatusSettledError:
		return "settled-error"
	default:
		return "unknown"
	}
}

// =============================================================================
// TURN TYPE
// =============================================================================

// Turn is a single transcript entry. Turns are immutable except for their
// settlement status; the text never changes after append.
type Turn struct {
	ID        string     `json:"id"`
	Sender    Sender     `json:"sender"`
	Text      string     `json:"text"`
	Status    TurnStatus `json:"status"`
	Timestamp time.Time  `json:"timestamp"`
}

// NewUserTurn creates a pending user turn.
func NewUserTurn(text string) Turn {
	return Turn{
		ID:        uuid.NewString(),
		Sender:    SenderUser,
		Text:      text,
		Status:    StatusPending,
		Timestamp: time.Now(),
	}
}

// NewAITurn creates a settled AI turn.
func NewAITurn(text string) Turn {
	return Turn{
		ID:        uuid.NewString(),
		Sender:    SenderAI,
		Text:      text,
		Status:    StatusSettledOK,
		Timestamp: time.Now(),
	}
}

// NewAIErrorTurn creates a synthetic AI turn carrying a user-facing
// fallback message for a failed backend call. The transcript never shows
// a raw error or a broken partial turn.
func NewAIErrorTurn(text string) Turn {
	return Turn{
		ID:        uuid.NewString(),
		Sender:    SenderAI,
		Text:      text,
		Status:    StatusSettledError,
		Timestamp: time.Now(),
	}
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Transcript is the append-only ordered log of chat turns. Entries are never
// edited or removed; it lives only for the page session.
type Transcript struct {
	turns []Turn
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{turns: make([]Turn, 0, 16)}
}

// Append adds a turn to the end of the log and returns its ID.
func (t *Transcript) Append(turn Turn) string {
	t.turns = append(t.turns, turn)
	return turn.ID
}

// Settle marks the turn with the given ID as settled. It is the only
// mutation the transcript permits.
func (t *Transcript) Settle(id string, status TurnStatus) {
	for i := range t.turns {
		if t.turns[i].ID == id {
			t.turns[i].Status = status
			return
		}
	}
}

// Turns returns the turns in append order. The slice is shared; callers
// must treat it as read-only.
func (t *Transcript) Turns() []Turn {
	return t.turns
}

// Len returns the number of turns.
func (t *Transcript) Len() int {
	return len(t.turns)
}

// Last returns the most recent turn, or a zero Turn when empty.
func (t *Transcript) Last() (Turn, bool) {
	if len(t.turns) == 0 {
		return Turn{}, false
	}
	return t.turns[len(t.turns)-1], true
}
