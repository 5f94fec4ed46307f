// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript and
// prediction results.
package model

import (
	"github.com/jeranaias/carecost-tui/internal/api"
	"github.com/jeranaias/carecost-tui/internal/util"
)

// =============================================================================
// PREDICTION VIEW MODEL
// =============================================================================

// PredictionView is the display-ready projection of a PredictionResponse.
// Each successful response replaces the previous view wholesale; nothing is
// merged or patched.
type PredictionView struct {
	// Primary is the headline estimate, formatted ("₹52,340").
	Primary string

	// Models holds one row per ensemble model, in backend order.
	Models []ModelRow

	// Explanation is nil when the backend sent no cost explanation.
	Explanation *ExplanationView
}

// ModelRow is one per-model estimate row.
type ModelRow struct {
	Name  string
	Value string // formatted, e.g. "₹51,000"
}

// ExplanationView is the display projection of a cost explanation.
type ExplanationView struct {
	Summary     string
	Factors     []FactorView
	Total       string
	Covered     string
	OutOfPocket string
}

// FactorView is one factor table row. StyleKey is the normalized impact
// category ("High Impact" -> "high-impact"); it selects both the badge
// color and the badge label stem.
type FactorView struct {
	Name     string
	Impact   string
	StyleKey string
	Amount   string
}

// NewPredictionView projects a successful response into display state.
// The caller is responsible for checking resp.Success first.
func NewPredictionView(resp *api.PredictionResponse) *PredictionView {
	view := &PredictionView{
		Primary: util.FormatINR(resp.PredictionINR),
		Models:  make([]ModelRow, 0, len(resp.IndividualPredictions)),
	}

	for _, est := range resp.IndividualPredictions {
		view.Models = append(view.Models, ModelRow{
			Name:  est.Name,
			Value: util.FormatINR(est.Value),
		})
	}

	if exp := resp.CostExplanation; exp != nil {
		ev := &ExplanationView{
			Summary:     exp.Summary,
			Factors:     make([]FactorView, 0, len(exp.DetailedFactors)),
			Total:       exp.TotalCostINR,
			Covered:     exp.InsuranceCoverage.CoveredAmount,
			OutOfPocket: exp.InsuranceCoverage.OutOfPocket,
		}
		for _, f := range exp.DetailedFactors {
			ev.Factors = append(ev.Factors, FactorView{
				Name:     f.Name,
				Impact:   f.Impact,
				StyleKey: util.ImpactKey(f.Impact),
				Amount:   f.Amount,
			})
		}
		view.Explanation = ev
	}

	return view
}
