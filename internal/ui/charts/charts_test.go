// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package charts

import (
	"errors"
	"strings"
	"testing"

	"github.com/jeranaias/carecost-tui/internal/api"
	"github.com/jeranaias/carecost-tui/internal/config"
	"github.com/jeranaias/carecost-tui/internal/ui/styles"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := New(api.NewClient(), styles.NewTheme(), config.Default())
	m.SetSize(100, 45)
	return m
}

func liveData() *api.VisualizationData {
	return &api.VisualizationData{
		LineChart: api.ChartDataset{
			Labels: []string{"<20", "20-30"},
			Data:   []float64{4200, 5800},
		},
		BarChart: api.ChartDataset{
			Labels: []string{"Private", "None"},
			Data:   []float64{6000, 17000},
		},
		PieChart: api.ChartDataset{
			Labels: []string{"Diabetes", "No Conditions"},
			Data:   []float64{500, 3500},
		},
		AreaChart: api.ChartDataset{
			Labels: []string{"Rural", "Urban"},
			Data:   []float64{9000, 7000},
		},
		ScatterChart: api.ChartDataset{
			Labels: []string{"2 visits", "10 visits"},
			XData:  []float64{2, 10},
			YData:  []float64{5200, 21000},
			Sizes:  []float64{240, 36},
		},
		PolarChart: api.ChartDataset{
			Labels: []string{"Male Smokers", "Female Non-Smokers"},
			Data:   []float64{19000, 6500},
		},
	}
}

func TestLoad_SetsLoadingAndStartsFetch(t *testing.T) {
	m := newTestModel(t)

	m, cmd := m.Load()
	if !m.Loading() {
		t.Error("Load should mark the panel loading")
	}
	if cmd == nil {
		t.Error("Load should return a fetch command")
	}

	_, cmd = m.Load()
	if cmd != nil {
		t.Error("Load while loading should be a no-op")
	}
}

func TestHandleData_SuccessShowsLiveData(t *testing.T) {
	m := newTestModel(t)
	m, _ = m.Load()

	m, _ = m.handleData(DataMsg{Data: liveData()})

	if m.Loading() {
		t.Error("settle should clear loading")
	}
	if m.Source() != SourceLive {
		t.Errorf("source = %v, want SourceLive", m.Source())
	}

	view := m.View()
	if strings.Contains(view, "sample data") {
		t.Error("live data should not show the fallback banner")
	}
}

func TestHandleData_FailureFallsBackToSample(t *testing.T) {
	m := newTestModel(t)
	m, _ = m.Load()

	m, _ = m.handleData(DataMsg{Err: errors.New("connection refused")})

	if m.Source() != SourceSample {
		t.Errorf("source = %v, want SourceSample", m.Source())
	}
	if !strings.Contains(m.View(), "sample data") {
		t.Error("fallback should be flagged in the view")
	}
}

func TestSampleFixture_SkipsScatterAndPolar(t *testing.T) {
	sample := sampleVisualizations()

	if sample.LineChart.IsEmpty() || sample.BarChart.IsEmpty() ||
		sample.PieChart.IsEmpty() || sample.AreaChart.IsEmpty() {
		t.Error("sample fixture should cover the four simple charts")
	}
	if !sample.ScatterChart.IsEmpty() || !sample.PolarChart.IsEmpty() {
		t.Error("sample fixture has no scatter or polar data")
	}
	if err := sample.Validate(); err != nil {
		t.Errorf("sample fixture should validate: %v", err)
	}

	m := newTestModel(t)
	m, _ = m.handleData(DataMsg{Err: errors.New("down")})

	view := m.View()
	if strings.Contains(view, "Doctor visits") {
		t.Error("scatter section should be skipped in sample mode")
	}
	if strings.Contains(view, "gender and smoking") {
		t.Error("polar section should be skipped in sample mode")
	}
}

func TestReload_ReplacesContentWholesale(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.handleData(DataMsg{Err: errors.New("down")})
	if !strings.Contains(m.View(), "Government") {
		t.Fatal("sample bar chart should list Government insurance")
	}

	m, _ = m.handleData(DataMsg{Data: liveData()})

	view := m.View()
	if strings.Contains(view, "Government") {
		t.Error("old sample rows must not survive a reload")
	}
	if !strings.Contains(view, "Doctor visits") {
		t.Error("live scatter table should appear after reload")
	}
	if m.Source() != SourceLive {
		t.Error("reload should switch the source back to live")
	}
}

func TestHandleData_FallbackDisabledShowsError(t *testing.T) {
	cfg := config.Default()
	cfg.Charts.SampleFallback = false

	m := New(api.NewClient(), styles.NewTheme(), cfg)
	m.SetSize(100, 45)

	m, _ = m.handleData(DataMsg{Err: errors.New("connection refused")})

	if m.Source() != SourceNone {
		t.Errorf("source = %v, want SourceNone when fallback is off", m.Source())
	}
	if !strings.Contains(m.View(), "Could not load visualizations") {
		t.Error("disabled fallback should surface the load error")
	}
}

func TestScatterTable_HalvesSizesToPatientCounts(t *testing.T) {
	m := newTestModel(t)
	m, _ = m.handleData(DataMsg{Data: liveData()})

	view := m.View()
	if !strings.Contains(view, "120") {
		t.Error("scatter table should show 240/2 = 120 patients")
	}
	if !strings.Contains(view, "₹5,200") {
		t.Error("scatter table should show the formatted average cost")
	}
}
