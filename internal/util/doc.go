// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the carecost application.
//
// This package contains common helper functions used throughout the
// application for currency formatting, value normalization, and file
// operations.
//
// # Key Functions
//
// Currency:
//   - FormatINR: whole-rupee formatting with Indian-system digit grouping
//
// Normalization:
//   - ImpactKey: derives a stable style key from a backend impact category
//   - ClampFloat, ClampInt: range clamping for form inputs
//
// String Utilities:
//   - TruncateWidth: display-width-aware truncation with ellipsis
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
package util
