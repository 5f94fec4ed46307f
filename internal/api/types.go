// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the cost prediction backend.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// =============================================================================
// PREDICTION REQUEST
// =============================================================================

// PredictionRequest is the flat record of demographic, behavioral, and
// medical fields posted to /api/predict. Field names match the backend's
// feature mapping exactly.
//
// Boolean conditions are encoded the way the backend expects: smoker as
// "Yes"/"No", chronic conditions as 0/1.
type PredictionRequest struct {
	Age                    int     `json:"age"`
	Gender                 string  `json:"gender"`
	BMI                    float64 `json:"bmi"`
	Smoker                 string  `json:"smoker"`
	Diabetes               int     `json:"diabetes"`
	Hypertension           int     `json:"hypertension"`
	HeartDisease           int     `json:"heart_disease"`
	Asthma                 int     `json:"asthma"`
	PhysicalActivityLevel  string  `json:"physical_activity_level"`
	DailySteps             int     `json:"daily_steps"`
	SleepHours             float64 `json:"sleep_hours"`
	StressLevel            int     `json:"stress_level"`
	DoctorVisitsPerYear    int     `json:"doctor_visits_per_year"`
	HospitalAdmissions     int     `json:"hospital_admissions"`
	MedicationCount        int     `json:"medication_count"`
	InsuranceType          string  `json:"insurance_type"`
	InsuranceCoveragePct   int     `json:"insurance_coverage_pct"`
	CityType               string  `json:"city_type"`
	PreviousYearCost       float64 `json:"previous_year_cost"`

	// UserEmail is attached only when a local session exists; the backend
	// uses it to store the prediction in the user's history.
	UserEmail string `json:"user_email,omitempty"`
}

// =============================================================================
// PREDICTION RESPONSE
// =============================================================================

// PredictionResponse is the backend's reply to a prediction request.
// On application failure Success is false and Error carries the reason;
// all other fields are then zero.
type PredictionResponse struct {
	Success               bool             `json:"success"`
	PredictionINR         float64          `json:"prediction_inr"`
	IndividualPredictions ModelEstimates   `json:"individual_predictions"`
	CostExplanation       *CostExplanation `json:"cost_explanation,omitempty"`
	Error                 string           `json:"error,omitempty"`
}

// ModelEstimate is one per-model estimate from the backend's ensemble.
type ModelEstimate struct {
	Name  string
	Value float64
}

// ModelEstimates preserves the backend's object order: the backend emits
// models in display order and encoding/json's map decoding would lose it.
type ModelEstimates []ModelEstimate

// UnmarshalJSON decodes a JSON object while keeping key order.
func (m *ModelEstimates) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*m = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("individual_predictions: expected object, got %v", tok)
	}

	out := make(ModelEstimates, 0, 8)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("individual_predictions: non-string key %v", keyTok)
		}

		var value float64
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("individual_predictions: value for %q: %w", key, err)
		}
		out = append(out, ModelEstimate{Name: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = out
	return nil
}

// MarshalJSON encodes the estimates back into an order-preserving object.
func (m ModelEstimates) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			b.WriteByte(',')
		}
		name, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		b.Write(name)
		b.WriteByte(':')
		value, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		b.Write(value)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// =============================================================================
// COST EXPLANATION
// =============================================================================

// CostExplanation is the backend's breakdown of why the estimate is what
// it is: a summary line, ordered contributing factors, and the insurance
// coverage split. Amounts arrive preformatted by the backend.
type CostExplanation struct {
	Summary           string            `json:"summary"`
	DetailedFactors   []FactorRow       `json:"detailed_factors"`
	TotalCostINR      string            `json:"total_cost_inr"`
	InsuranceCoverage InsuranceCoverage `json:"insurance_coverage"`
}

// FactorRow is one (factor name, impact category, contribution) triple.
// The backend serializes these as three-element JSON arrays.
type FactorRow struct {
	Name   string
	Impact string
	Amount string
}

// UnmarshalJSON decodes the backend's [name, impact, amount] array form.
func (f *FactorRow) UnmarshalJSON(data []byte) error {
	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("detailed_factors: %w", err)
	}
	if len(parts) != 3 {
		return fmt.Errorf("detailed_factors: expected 3 elements, got %d", len(parts))
	}
	f.Name, f.Impact, f.Amount = parts[0], parts[1], parts[2]
	return nil
}

// MarshalJSON encodes the row back into the array form.
func (f FactorRow) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{f.Name, f.Impact, f.Amount})
}

// InsuranceCoverage is the coverage split inside a cost explanation.
type InsuranceCoverage struct {
	Type               string `json:"type"`
	CoveragePercentage string `json:"coverage_percentage"`
	CoveredAmount      string `json:"covered_amount"`
	OutOfPocket        string `json:"out_of_pocket"`
}

// =============================================================================
// CHAT
// =============================================================================

// ChatKind distinguishes free-text messages from fixed-option selections.
type ChatKind string

const (
	ChatKindText   ChatKind = "text"
	ChatKindOption ChatKind = "option"
)

// ChatRequest is the body posted to /api/chat.
type ChatRequest struct {
	Message string   `json:"message"`
	Type    ChatKind `json:"type"`
}

// ChatResponse is the backend's chat reply.
type ChatResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response,omitempty"`
	Type     string `json:"type,omitempty"`
	Error    string `json:"error,omitempty"`
}

// =============================================================================
// STATISTICS
// =============================================================================

// Statistics is the aggregate dataset summary from /api/statistics.
// It is informational only; unknown fields are ignored.
type Statistics struct {
	TotalRecords             int                       `json:"total_records"`
	CostStatistics           map[string]float64        `json:"cost_statistics"`
	AgeStatistics            map[string]float64        `json:"age_statistics"`
	CategoricalDistributions map[string]map[string]int `json:"categorical_distributions"`
}

// =============================================================================
// VISUALIZATIONS
// =============================================================================

// ChartDataset is one named dataset from /api/visualizations. Simple charts
// carry Labels and Data; the scatter chart carries Labels, XData, YData, and
// point Sizes instead.
type ChartDataset struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data,omitempty"`
	XData  []float64 `json:"x_data,omitempty"`
	YData  []float64 `json:"y_data,omitempty"`
	Sizes  []float64 `json:"sizes,omitempty"`
}

// Validate rejects datasets whose parallel sequences disagree in length.
func (d *ChartDataset) Validate() error {
	if d.Data != nil && len(d.Labels) != len(d.Data) {
		return fmt.Errorf("labels/data length mismatch: %d vs %d", len(d.Labels), len(d.Data))
	}
	if d.XData != nil || d.YData != nil {
		if len(d.XData) != len(d.YData) {
			return fmt.Errorf("x_data/y_data length mismatch: %d vs %d", len(d.XData), len(d.YData))
		}
		if d.Sizes != nil && len(d.Sizes) != len(d.XData) {
			return fmt.Errorf("sizes length mismatch: %d vs %d", len(d.Sizes), len(d.XData))
		}
	}
	return nil
}

// IsEmpty reports whether the dataset carries no points at all.
func (d *ChartDataset) IsEmpty() bool {
	return len(d.Data) == 0 && len(d.XData) == 0
}

// VisualizationData holds the six named datasets from /api/visualizations.
type VisualizationData struct {
	LineChart    ChartDataset `json:"line_chart"`
	BarChart     ChartDataset `json:"bar_chart"`
	PieChart     ChartDataset `json:"pie_chart"`
	AreaChart    ChartDataset `json:"area_chart"`
	ScatterChart ChartDataset `json:"scatter_chart"`
	PolarChart   ChartDataset `json:"polar_chart"`
}

// Validate applies ChartDataset.Validate to every dataset.
func (v *VisualizationData) Validate() error {
	named := []struct {
		name string
		ds   *ChartDataset
	}{
		{"line_chart", &v.LineChart},
		{"bar_chart", &v.BarChart},
		{"pie_chart", &v.PieChart},
		{"area_chart", &v.AreaChart},
		{"scatter_chart", &v.ScatterChart},
		{"polar_chart", &v.PolarChart},
	}
	for _, n := range named {
		if err := n.ds.Validate(); err != nil {
			return fmt.Errorf("%s: %w", n.name, err)
		}
	}
	return nil
}
