// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import "strconv"

// =============================================================================
// SHARED HELPER FUNCTIONS
// =============================================================================

// fmtNumber formats a number with western thousand separators. Rupee amounts
// use util.FormatINR instead; this is for plain counts (history entries,
// dataset sizes).
func fmtNumber(n int) string {
	if n < 0 {
		return "-" + fmtNumber(-n)
	}

	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}

	var result string
	for i, count := len(s)-1, 0; i >= 0; i, count = i-1, count+1 {
		if count > 0 && count%3 == 0 {
			result = "," + result
		}
		result = string(s[i]) + result
	}
	return result
}

// fmtPercent formats a percentage with one decimal place.
func fmtPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}

// fmtElapsed formats a duration in whole seconds for spinner timers.
func fmtElapsed(seconds int) string {
	if seconds < 60 {
		return strconv.Itoa(seconds) + "s"
	}
	return strconv.Itoa(seconds/60) + "m " + strconv.Itoa(seconds%60) + "s"
}
