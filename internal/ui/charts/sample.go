// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package charts

import "github.com/jeranaias/carecost-tui/internal/api"

// sampleVisualizations is the offline fixture shown when the backend cannot
// be reached. Only the four simple charts have sample data; scatter and
// polar stay empty and their sections are skipped.
func sampleVisualizations() *api.VisualizationData {
	return &api.VisualizationData{
		LineChart: api.ChartDataset{
			Labels: []string{"<20", "20-30", "30-40", "40-50", "50-60", "60-70", "70-80", "80+"},
			Data:   []float64{5000, 6000, 7500, 9000, 11000, 13000, 15000, 17000},
		},
		BarChart: api.ChartDataset{
			Labels: []string{"Private", "Government", "None"},
			Data:   []float64{5500, 8000, 18000},
		},
		PieChart: api.ChartDataset{
			Labels: []string{"Diabetes", "Hypertension", "Heart Disease", "Asthma", "No Conditions"},
			Data:   []float64{500, 600, 300, 400, 3200},
		},
		AreaChart: api.ChartDataset{
			Labels: []string{"Rural", "Semi-Urban", "Urban"},
			Data:   []float64{9500, 8500, 7500},
		},
	}
}
