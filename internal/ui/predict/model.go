// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package predict

import (
	"fmt"
	"math"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/jeranaias/carecost-tui/internal/api"
	"github.com/jeranaias/carecost-tui/internal/model"
	"github.com/jeranaias/carecost-tui/internal/ui/components"
	"github.com/jeranaias/carecost-tui/internal/ui/styles"
	"github.com/jeranaias/carecost-tui/internal/util"
)

// =============================================================================
// PREDICT MODEL
// =============================================================================

// fieldValue holds the editable state for one field: a text input for
// numeric kinds, a selected option index for selects.
type fieldValue struct {
	input    textinput.Model
	selected int
}

// Model is the Bubble Tea model for the prediction form panel.
type Model struct {
	// Styling
	theme *styles.Theme

	// Backend
	client *api.Client

	// Attached to requests when a session exists
	userEmail string

	// Form state
	values  [fieldCount]fieldValue
	focus   int
	busy    bool
	lastErr string

	// Result state, replaced wholesale on each success
	result        *model.PredictionView
	showBreakdown bool

	// UI Components
	spinner components.Spinner

	// Dimensions
	width  int
	height int
}

// New creates the prediction form with backend defaults preloaded.
func New(client *api.Client, theme *styles.Theme) Model {
	m := Model{
		theme:         theme,
		client:        client,
		spinner:       components.NewCalculatingSpinner(),
		showBreakdown: true,
	}

	for i := range fieldSpecs {
		spec := fieldSpecs[i]
		if spec.kind == kindSelect {
			m.values[i].selected = defaultSelection(i)
			continue
		}

		input := textinput.New()
		input.CharLimit = 12
		input.Width = 10
		input.SetValue(spec.initial)
		m.values[i].input = input
	}

	m.values[m.focus].input.Focus()
	return m
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetClient swaps the backend client, e.g. after a config reload changes
// the base URL. In-flight requests finish against the old client.
func (m *Model) SetClient(client *api.Client) {
	m.client = client
}

// SetUserEmail attaches the signed-in user's email to future requests so
// the backend can store predictions in their history. Empty clears it.
func (m *Model) SetUserEmail(email string) {
	m.userEmail = email
}

// SetShowBreakdown toggles the per-model estimate table in the result pane.
func (m *Model) SetShowBreakdown(show bool) {
	m.showBreakdown = show
}

// Busy reports whether a prediction is in flight.
func (m Model) Busy() bool {
	return m.busy
}

// Result exposes the current view model for the root model and tests.
func (m Model) Result() *model.PredictionView {
	return m.result
}

// =============================================================================
// REQUEST ASSEMBLY
// =============================================================================

// clampField re-clamps a numeric field after an edit. Unset and partial
// values ("", "-", ".") are left alone so typing stays possible.
func (m *Model) clampField(i int) {
	spec := fieldSpecs[i]
	if spec.kind == kindSelect {
		return
	}

	raw := m.values[i].input.Value()
	if raw == "" || raw == "-" || raw == "." {
		return
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}

	clamped := util.ClampFloat(v, spec.min, spec.max)
	if clamped == v {
		return
	}

	if spec.kind == kindInt {
		m.values[i].input.SetValue(strconv.Itoa(int(clamped)))
	} else {
		m.values[i].input.SetValue(strconv.FormatFloat(clamped, 'f', -1, 64))
	}
}

// numericValue parses and clamps one numeric field for submission.
func (m *Model) numericValue(i int) (float64, error) {
	spec := fieldSpecs[i]
	raw := m.values[i].input.Value()

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s: %q is not a number", spec.label, raw)
	}

	return util.ClampFloat(v, spec.min, spec.max), nil
}

// selectValue returns the chosen option for a select field.
func (m *Model) selectValue(i int) string {
	return fieldSpecs[i].options[m.values[i].selected]
}

// conditionFlag encodes a yes/no select as the backend's 0/1 flag.
func (m *Model) conditionFlag(i int) int {
	return m.values[i].selected
}

// buildRequest assembles the wire request from the form. Every numeric
// field must parse finite; the first offender aborts the submit.
func (m *Model) buildRequest() (*api.PredictionRequest, error) {
	age, err := m.numericValue(fieldAge)
	if err != nil {
		return nil, err
	}
	bmi, err := m.numericValue(fieldBMI)
	if err != nil {
		return nil, err
	}
	steps, err := m.numericValue(fieldDailySteps)
	if err != nil {
		return nil, err
	}
	sleep, err := m.numericValue(fieldSleepHours)
	if err != nil {
		return nil, err
	}
	stress, err := m.numericValue(fieldStressLevel)
	if err != nil {
		return nil, err
	}
	visits, err := m.numericValue(fieldDoctorVisits)
	if err != nil {
		return nil, err
	}
	admissions, err := m.numericValue(fieldAdmissions)
	if err != nil {
		return nil, err
	}
	medications, err := m.numericValue(fieldMedications)
	if err != nil {
		return nil, err
	}
	coverage, err := m.numericValue(fieldCoveragePct)
	if err != nil {
		return nil, err
	}
	prevCost, err := m.numericValue(fieldPrevCost)
	if err != nil {
		return nil, err
	}

	return &api.PredictionRequest{
		Age:                   int(age),
		Gender:                m.selectValue(fieldGender),
		BMI:                   bmi,
		Smoker:                m.selectValue(fieldSmoker),
		Diabetes:              m.conditionFlag(fieldDiabetes),
		Hypertension:          m.conditionFlag(fieldHypertension),
		HeartDisease:          m.conditionFlag(fieldHeartDisease),
		Asthma:                m.conditionFlag(fieldAsthma),
		PhysicalActivityLevel: m.selectValue(fieldActivity),
		DailySteps:            int(steps),
		SleepHours:            sleep,
		StressLevel:           int(stress),
		DoctorVisitsPerYear:   int(visits),
		HospitalAdmissions:    int(admissions),
		MedicationCount:       int(medications),
		InsuranceType:         m.selectValue(fieldInsuranceType),
		InsuranceCoveragePct:  int(coverage),
		CityType:              m.selectValue(fieldCityType),
		PreviousYearCost:      prevCost,
		UserEmail:             m.userEmail,
	}, nil
}
