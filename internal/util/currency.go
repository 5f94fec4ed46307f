// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the carecost application.
package util

import (
	"math"
	"strconv"
	"strings"
)

// FormatINR formats an amount in rupees for display: rounded to the nearest
// whole rupee, prefixed with the rupee sign, grouped in the Indian numbering
// system (last three digits, then groups of two).
//
//	FormatINR(123456.7) == "₹1,23,457"
func FormatINR(amount float64) string {
	return "₹" + GroupINR(amount)
}

// GroupINR returns the rounded amount with Indian-system grouping but without
// the currency sign. Negative amounts keep a leading minus.
func GroupINR(amount float64) string {
	n := int64(math.Round(amount))

	neg := n < 0
	if neg {
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	grouped := groupIndian(digits)

	if neg {
		return "-" + grouped
	}
	return grouped
}

// groupIndian inserts commas into a plain digit string: the rightmost group
// has three digits, every group to its left has two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	// Leading group of one or two digits, then pairs.
	lead := len(head) % 2
	if lead == 0 {
		lead = 2
	}
	b.WriteString(head[:lead])
	for i := lead; i < len(head); i += 2 {
		b.WriteByte(',')
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)
	return b.String()
}
