// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package predict

// =============================================================================
// FIELD SPECIFICATIONS
// =============================================================================

// fieldKind distinguishes typed numeric fields from cycling selects.
type fieldKind int

const (
	kindInt fieldKind = iota
	kindFloat
	kindSelect
)

// fieldSpec declares one form field: its label, its kind, and either a
// numeric range or the backend's categorical values. The order of this
// table is the form's navigation order.
type fieldSpec struct {
	label    string
	kind     fieldKind
	min, max float64
	options  []string
	initial  string // Backend default, preloaded into the form
}

// Field indices, in form order. The wire mapping lives in buildRequest.
const (
	fieldAge = iota
	fieldGender
	fieldBMI
	fieldSmoker
	fieldDiabetes
	fieldHypertension
	fieldHeartDisease
	fieldAsthma
	fieldActivity
	fieldDailySteps
	fieldSleepHours
	fieldStressLevel
	fieldDoctorVisits
	fieldAdmissions
	fieldMedications
	fieldInsuranceType
	fieldCoveragePct
	fieldCityType
	fieldPrevCost

	fieldCount
)

// yesNo encodes the backend's 0/1 chronic-condition flags.
var yesNo = []string{"No", "Yes"}

// fieldSpecs is the form definition. Ranges and categorical values match
// the backend's feature mapping; defaults match what the backend assumes
// for missing fields.
var fieldSpecs = [fieldCount]fieldSpec{
	fieldAge:           {label: "Age", kind: kindInt, min: 18, max: 100, initial: "30"},
	fieldGender:        {label: "Gender", kind: kindSelect, options: []string{"Male", "Female", "Other"}},
	fieldBMI:           {label: "BMI", kind: kindFloat, min: 10, max: 50, initial: "25"},
	fieldSmoker:        {label: "Smoker", kind: kindSelect, options: yesNo},
	fieldDiabetes:      {label: "Diabetes", kind: kindSelect, options: yesNo},
	fieldHypertension:  {label: "Hypertension", kind: kindSelect, options: yesNo},
	fieldHeartDisease:  {label: "Heart disease", kind: kindSelect, options: yesNo},
	fieldAsthma:        {label: "Asthma", kind: kindSelect, options: yesNo},
	fieldActivity:      {label: "Physical activity", kind: kindSelect, options: []string{"Low", "Medium", "High"}},
	fieldDailySteps:    {label: "Daily steps", kind: kindInt, min: 0, max: 30000, initial: "5000"},
	fieldSleepHours:    {label: "Sleep hours", kind: kindFloat, min: 3, max: 14, initial: "7"},
	fieldStressLevel:   {label: "Stress level (1-10)", kind: kindInt, min: 1, max: 10, initial: "5"},
	fieldDoctorVisits:  {label: "Doctor visits / year", kind: kindInt, min: 0, max: 52, initial: "2"},
	fieldAdmissions:    {label: "Hospital admissions", kind: kindInt, min: 0, max: 20, initial: "0"},
	fieldMedications:   {label: "Daily medications", kind: kindInt, min: 0, max: 30, initial: "0"},
	fieldInsuranceType: {label: "Insurance type", kind: kindSelect, options: []string{"Government", "Private", "None"}},
	fieldCoveragePct:   {label: "Coverage %", kind: kindInt, min: 0, max: 100, initial: "50"},
	fieldCityType:      {label: "City type", kind: kindSelect, options: []string{"Urban", "Rural"}},
	fieldPrevCost:      {label: "Previous year cost (₹)", kind: kindFloat, min: 0, max: 10000000, initial: "5000"},
}

// defaultSelection returns the initial option index for a select field,
// matching the backend defaults (Medium activity, Government insurance).
func defaultSelection(i int) int {
	switch i {
	case fieldActivity:
		return 1 // Medium
	default:
		return 0
	}
}
