// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package predict

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/carecost-tui/internal/api"
	"github.com/jeranaias/carecost-tui/internal/ui/styles"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := New(api.NewClient(), styles.NewTheme())
	m.SetSize(120, 40)
	return m
}

// =============================================================================
// FORM DEFAULTS
// =============================================================================

func TestNew_LoadsBackendDefaults(t *testing.T) {
	m := newTestModel(t)

	req, err := m.buildRequest()
	if err != nil {
		t.Fatalf("defaults should build a valid request: %v", err)
	}

	if req.Age != 30 {
		t.Errorf("age = %d, want 30", req.Age)
	}
	if req.Gender != "Male" {
		t.Errorf("gender = %q, want Male", req.Gender)
	}
	if req.BMI != 25 {
		t.Errorf("bmi = %v, want 25", req.BMI)
	}
	if req.Smoker != "No" {
		t.Errorf("smoker = %q, want No", req.Smoker)
	}
	if req.PhysicalActivityLevel != "Medium" {
		t.Errorf("activity = %q, want Medium", req.PhysicalActivityLevel)
	}
	if req.DailySteps != 5000 {
		t.Errorf("steps = %d, want 5000", req.DailySteps)
	}
	if req.InsuranceType != "Government" {
		t.Errorf("insurance = %q, want Government", req.InsuranceType)
	}
	if req.InsuranceCoveragePct != 50 {
		t.Errorf("coverage = %d, want 50", req.InsuranceCoveragePct)
	}
	if req.CityType != "Urban" {
		t.Errorf("city = %q, want Urban", req.CityType)
	}
	if req.UserEmail != "" {
		t.Errorf("user_email should be empty without a session, got %q", req.UserEmail)
	}
}

func TestSetUserEmail_AttachedToRequest(t *testing.T) {
	m := newTestModel(t)
	m.SetUserEmail("priya@example.com")

	req, err := m.buildRequest()
	if err != nil {
		t.Fatal(err)
	}
	if req.UserEmail != "priya@example.com" {
		t.Errorf("user_email = %q", req.UserEmail)
	}
}

// =============================================================================
// CLAMPING AND VALIDATION
// =============================================================================

func TestClampField_OutOfRangeSnapsToBound(t *testing.T) {
	m := newTestModel(t)

	m.values[fieldAge].input.SetValue("250")
	m.clampField(fieldAge)
	if got := m.values[fieldAge].input.Value(); got != "100" {
		t.Errorf("age clamped to %q, want 100", got)
	}

	m.values[fieldAge].input.SetValue("3")
	m.clampField(fieldAge)
	if got := m.values[fieldAge].input.Value(); got != "18" {
		t.Errorf("age clamped to %q, want 18", got)
	}
}

func TestClampField_LeavesPartialInputAlone(t *testing.T) {
	m := newTestModel(t)

	for _, partial := range []string{"", "-", "."} {
		m.values[fieldBMI].input.SetValue(partial)
		m.clampField(fieldBMI)
		if got := m.values[fieldBMI].input.Value(); got != partial {
			t.Errorf("partial input %q was rewritten to %q", partial, got)
		}
	}
}

func TestBuildRequest_RejectsNonNumeric(t *testing.T) {
	m := newTestModel(t)
	m.values[fieldSleepHours].input.SetValue("eight")

	_, err := m.buildRequest()
	if err == nil {
		t.Fatal("non-numeric field should abort submission")
	}
	if !strings.Contains(err.Error(), "Sleep hours") {
		t.Errorf("error should name the field, got %q", err)
	}
}

func TestSubmit_InvalidFieldKeepsFormEnabled(t *testing.T) {
	m := newTestModel(t)
	m.values[fieldAge].input.SetValue("abc")

	m, cmd := m.submit()

	if cmd != nil {
		t.Error("invalid form should not start a request")
	}
	if m.busy {
		t.Error("form should stay enabled on validation failure")
	}
	if m.lastErr == "" {
		t.Error("validation failure should surface an error line")
	}
}

// =============================================================================
// SELECT CYCLING
// =============================================================================

func TestSelectCycling(t *testing.T) {
	m := newTestModel(t)
	m.focus = fieldSmoker

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRight})
	if got := m.selectValue(fieldSmoker); got != "Yes" {
		t.Errorf("after right, smoker = %q, want Yes", got)
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRight})
	if got := m.selectValue(fieldSmoker); got != "No" {
		t.Errorf("cycling should wrap, got %q", got)
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyLeft})
	if got := m.selectValue(fieldSmoker); got != "Yes" {
		t.Errorf("left should wrap backwards, got %q", got)
	}
}

func TestConditionFlags_EncodeAsZeroOne(t *testing.T) {
	m := newTestModel(t)
	m.values[fieldDiabetes].selected = 1
	m.values[fieldAsthma].selected = 0

	req, err := m.buildRequest()
	if err != nil {
		t.Fatal(err)
	}
	if req.Diabetes != 1 {
		t.Errorf("diabetes = %d, want 1", req.Diabetes)
	}
	if req.Asthma != 0 {
		t.Errorf("asthma = %d, want 0", req.Asthma)
	}
}

// =============================================================================
// BUSY-STATE DISCIPLINE
// =============================================================================

func TestSubmit_SetsBusyAndStartsRequest(t *testing.T) {
	m := newTestModel(t)

	m, cmd := m.submit()

	if cmd == nil {
		t.Fatal("valid submit should start a request")
	}
	if !m.Busy() {
		t.Error("form should be busy while request is in flight")
	}
}

func TestHandleResult_ReenablesOnEveryPath(t *testing.T) {
	tests := []struct {
		name string
		msg  ResultMsg
	}{
		{"transport error", ResultMsg{Err: errors.New("dial tcp: refused")}},
		{"application error", ResultMsg{Response: &api.PredictionResponse{Success: false, Error: "bad input"}}},
		{"success", ResultMsg{Response: &api.PredictionResponse{Success: true, PredictionINR: 52340}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestModel(t)
			m, _ = m.submit()

			m, _ = m.handleResult(tc.msg)
			if m.Busy() {
				t.Error("form must be re-enabled after settle")
			}
		})
	}
}

func TestHandleResult_SuccessReplacesViewWholesale(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.handleResult(ResultMsg{Response: &api.PredictionResponse{
		Success:       true,
		PredictionINR: 52340.4,
		IndividualPredictions: api.ModelEstimates{
			{Name: "Random Forest", Value: 51000},
			{Name: "XGBoost", Value: 53000},
		},
	}})

	first := m.Result()
	if first == nil {
		t.Fatal("success should populate the result view")
	}
	if first.Primary != "₹52,340" {
		t.Errorf("primary = %q, want ₹52,340", first.Primary)
	}
	if len(first.Models) != 2 || first.Models[0].Name != "Random Forest" {
		t.Error("model rows should preserve backend order")
	}

	m, _ = m.handleResult(ResultMsg{Response: &api.PredictionResponse{
		Success:       true,
		PredictionINR: 61000,
	}})

	second := m.Result()
	if second.Primary != "₹61,000" {
		t.Errorf("primary = %q, want ₹61,000", second.Primary)
	}
	if len(second.Models) != 0 {
		t.Error("new response should replace the old view wholesale")
	}
}

func TestHandleResult_UnreachableShowsFriendlyError(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.handleResult(ResultMsg{Err: api.ErrUnreachable})

	if !strings.Contains(m.lastErr, "Can't reach") {
		t.Errorf("unreachable backend should show the friendly line, got %q", m.lastErr)
	}
	if m.Result() != nil {
		t.Error("failure should not populate a result view")
	}
}

// =============================================================================
// VIEW
// =============================================================================

func TestView_ShowsFieldsAndFooter(t *testing.T) {
	m := newTestModel(t)

	view := m.View()
	for _, label := range []string{"Age", "Smoker", "Insurance type", "Coverage %"} {
		if !strings.Contains(view, label) {
			t.Errorf("view should show field %q", label)
		}
	}
	if !strings.Contains(view, "submit") {
		t.Error("view should show the submit hint")
	}
}

func TestView_CoverageBoxShowsAllThreeAmounts(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.handleResult(ResultMsg{Response: &api.PredictionResponse{
		Success:       true,
		PredictionINR: 52340,
		CostExplanation: &api.CostExplanation{
			TotalCostINR: "₹52,340",
			InsuranceCoverage: api.InsuranceCoverage{
				CoveredAmount: "₹26,170",
				OutOfPocket:   "₹26,170",
			},
		},
	}})

	view := m.View()
	for _, want := range []string{"Total cost", "₹52,340", "Covered", "₹26,170", "Out of pocket"} {
		if !strings.Contains(view, want) {
			t.Errorf("coverage box missing %q", want)
		}
	}
}

func TestView_HidesModelBreakdownWhenDisabled(t *testing.T) {
	m := newTestModel(t)
	m.SetShowBreakdown(false)

	m, _ = m.handleResult(ResultMsg{Response: &api.PredictionResponse{
		Success:       true,
		PredictionINR: 52340,
		IndividualPredictions: api.ModelEstimates{
			{Name: "Random Forest", Value: 51000},
		},
	}})

	view := m.View()
	if strings.Contains(view, "Model estimates") {
		t.Error("breakdown table should be hidden when disabled")
	}
	if !strings.Contains(view, "₹52,340") {
		t.Error("headline estimate should still render")
	}
}

func TestView_ShowsResultAfterSuccess(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.handleResult(ResultMsg{Response: &api.PredictionResponse{
		Success:       true,
		PredictionINR: 123456.7,
	}})

	view := m.View()
	if !strings.Contains(view, "₹1,23,457") {
		t.Errorf("view should show the Indian-grouped estimate, got result %q", m.Result().Primary)
	}
}
