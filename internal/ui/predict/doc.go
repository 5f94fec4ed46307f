// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package predict provides the prediction form panel for the carecost TUI.
//
// The form carries the nineteen demographic, lifestyle, and medical fields
// the backend's feature mapping expects. Numeric fields clamp to their
// declared ranges on every edit, selects cycle through the backend's exact
// categorical values, and the submit path disables the form until the
// request settles. A successful response replaces the result view
// wholesale: headline estimate, per-model rows in backend order, the
// factor table with impact badges, and the insurance coverage split.
package predict
