// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/carecost-tui/internal/util"
)

// =============================================================================
// USER SESSION
// =============================================================================

// UserSession identifies the logged-in user for prediction requests.
// A zero UserSession is the anonymous session: predictions still work,
// they are just not tied to an account on the backend.
type UserSession struct {
	Token string `json:"user_token,omitempty"`
	Email string `json:"user_email,omitempty"`
	Name  string `json:"user_name,omitempty"`
}

// Anonymous returns the anonymous session.
func Anonymous() UserSession {
	return UserSession{}
}

// IsAnonymous reports whether no user is logged in.
func (s UserSession) IsAnonymous() bool {
	return s.Token == "" && s.Email == ""
}

// DisplayName returns the name to show in the UI greeting.
func (s UserSession) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	if s.Email != "" {
		// Fall back to the mailbox part of the email address.
		if at := strings.IndexByte(s.Email, '@'); at > 0 {
			return s.Email[:at]
		}
		return s.Email
	}
	return "Guest"
}

// =============================================================================
// SESSION STORE
// =============================================================================

// Store persists the user session to disk so a login survives restarts.
type Store struct {
	path string
}

// DefaultSessionPath returns the default session file location.
func DefaultSessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".carecost", "session.json"), nil
}

// NewStore creates a store backed by the given file path.
// An empty path selects the default location.
func NewStore(path string) (*Store, error) {
	if path == "" {
		p, err := DefaultSessionPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &Store{path: path}, nil
}

// Path returns the backing file path.
func (st *Store) Path() string {
	return st.path
}

// Load reads the persisted session. A missing file is not an error: it
// returns the anonymous session. A corrupt file is discarded and also
// yields the anonymous session, so a bad write can never lock the user out.
func (st *Store) Load() (UserSession, error) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Anonymous(), nil
		}
		return Anonymous(), fmt.Errorf("failed to read session file: %w", err)
	}

	var s UserSession
	if err := json.Unmarshal(data, &s); err != nil {
		_ = st.Clear()
		return Anonymous(), nil
	}
	return s, nil
}

// Save persists the session atomically with owner-only permissions.
func (st *Store) Save(s UserSession) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := util.AtomicWriteFile(st.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Clear removes the persisted session, logging the user out.
// Clearing an already-absent session is not an error.
func (st *Store) Clear() error {
	err := os.Remove(st.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
