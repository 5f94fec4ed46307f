// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package charts implements the visualizations panel. It fetches the six
// dataset-wide charts from the backend and renders them as terminal bar
// charts, proportion rows, and a value table. When the backend is
// unreachable the panel falls back to a built-in sample fixture and says so.
package charts
