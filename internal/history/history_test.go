// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jeranaias/carecost-tui/internal/api"
)

func testRequest(age int) *api.PredictionRequest {
	return &api.PredictionRequest{
		Age:                   age,
		Gender:                "Male",
		BMI:                   28.5,
		Smoker:                "Yes",
		PhysicalActivityLevel: "Low",
		InsuranceType:         "Private",
		CityType:              "Metro",
	}
}

func openTestStore(t *testing.T, maxEntries int) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"), maxEntries)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_RecordAndRecent(t *testing.T) {
	store := openTestStore(t, 0)
	ctx := context.Background()

	entry, err := store.Record(ctx, testRequest(45), &api.PredictionResponse{
		Success:       true,
		PredictionINR: 52340,
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if entry.ID == "" {
		t.Error("entry should get an ID")
	}
	if entry.Summary != "45y Male, BMI 28.5, smoker" {
		t.Errorf("Summary = %q", entry.Summary)
	}
	if entry.EstimateINR() != "₹52,340" {
		t.Errorf("EstimateINR() = %q", entry.EstimateINR())
	}

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Recent returned %d entries, want 1", len(entries))
	}
	if entries[0].ID != entry.ID {
		t.Errorf("Recent[0].ID = %q, want %q", entries[0].ID, entry.ID)
	}
	if entries[0].Estimate != 52340 {
		t.Errorf("Estimate = %v", entries[0].Estimate)
	}
}

func TestStore_RecentRespectsLimit(t *testing.T) {
	store := openTestStore(t, 0)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := store.Record(ctx, testRequest(30+i), &api.PredictionResponse{
			Success:       true,
			PredictionINR: float64(10000 * (i + 1)),
		}); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	entries, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Recent returned %d entries, want 2", len(entries))
	}
}

func TestStore_PruneKeepsNewest(t *testing.T) {
	store := openTestStore(t, 5)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		if _, err := store.Record(ctx, testRequest(20+i), &api.PredictionResponse{
			Success:       true,
			PredictionINR: float64(1000 + i),
		}); err != nil {
			t.Fatalf("Record %d failed: %v", i, err)
		}
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 5 {
		t.Errorf("Count = %d, want 5 after prune", n)
	}
}

func TestStore_ClearAll(t *testing.T) {
	store := openTestStore(t, 0)
	ctx := context.Background()

	if _, err := store.Record(ctx, testRequest(40), &api.PredictionResponse{
		Success:       true,
		PredictionINR: 1234,
	}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if err := store.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Count = %d, want 0", n)
	}
}

func TestStore_ClosedErrors(t *testing.T) {
	store := openTestStore(t, 0)
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	ctx := context.Background()
	if _, err := store.Record(ctx, testRequest(40), &api.PredictionResponse{}); err != ErrClosed {
		t.Errorf("Record after close = %v, want ErrClosed", err)
	}
	if _, err := store.Recent(ctx, 10); err != ErrClosed {
		t.Errorf("Recent after close = %v, want ErrClosed", err)
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		req  *api.PredictionRequest
		want string
	}{
		{
			&api.PredictionRequest{Age: 45, Gender: "Male", BMI: 28.5, Smoker: "Yes"},
			"45y Male, BMI 28.5, smoker",
		},
		{
			&api.PredictionRequest{Age: 30, Gender: "Female", BMI: 22, Smoker: "No"},
			"30y Female, BMI 22.0, non-smoker",
		},
	}
	for i, tt := range tests {
		if got := summarize(tt.req); got != tt.want {
			t.Errorf("case %d: summarize() = %q, want %q", i, got, tt.want)
		}
	}
}
