// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session provides the persisted user identity and app session tracking.
//
// # Key Types
//
//   - UserSession: The logged-in user (token, email, name). Zero value is anonymous.
//   - Store: Persists the UserSession at ~/.carecost/session.json.
//   - Tracker: Wall-clock session activity for the status bar.
//
// # Usage
//
// Load the persisted user session:
//
//	store, _ := session.NewStore("")
//	user, err := store.Load()
//
// A missing or corrupt session file yields the anonymous session rather
// than an error; prediction and chat work without a login, the results
// are just not tied to an account.
//
// Log out:
//
//	err := store.Clear()
package session
