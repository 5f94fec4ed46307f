// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the carecost application.
package util

import "strings"

// ImpactKey derives a stable style key from a backend impact category.
// The backend sends human-readable categories ("High", "Very High",
// "Positive", "High Impact"); the key is the lowercased form with spaces
// replaced by hyphens:
//
//	ImpactKey("High Impact") == "high-impact"
//	ImpactKey("Very High")   == "very-high"
//
// The key doubles as the badge label stem, so the mapping must stay
// deterministic across releases.
func ImpactKey(category string) string {
	return strings.ReplaceAll(strings.ToLower(category), " ", "-")
}

// ClampFloat clamps v into [min, max].
func ClampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ClampInt clamps v into [min, max].
func ClampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
