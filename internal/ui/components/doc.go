// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the reusable visual components for the
// carecost TUI: loading spinners, toast notifications, the bottom status
// bar, and terminal chart renderers shared by the predict, chat, and
// charts panels.
package components
