// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Backend reachability and dataset statistics.

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/jeranaias/carecost-tui/internal/api"
	"github.com/jeranaias/carecost-tui/internal/history"
	"github.com/jeranaias/carecost-tui/internal/session"
	"github.com/jeranaias/carecost-tui/internal/util"
)

// HandleStatus checks the backend, prints dataset statistics when it is up,
// and summarizes the local state (session, history count).
func HandleStatus(args Args) error {
	client := buildClient(args)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reachErr := client.CheckRunning(ctx)

	var stats *api.Statistics
	if reachErr == nil {
		// Statistics are best-effort; a failure here doesn't change
		// the reachability verdict.
		stats, _ = client.Statistics(ctx)
	}

	user := loadUser()
	historyCount := loadHistoryCount(ctx)

	if args.JSON {
		return printStatusJSON(reachErr, stats, user, historyCount)
	}

	fmt.Println(TitleStyle.Render("carecost status"))

	if reachErr == nil {
		fmt.Println(RenderKV("Backend", SuccessStyle.Render("reachable")))
	} else {
		fmt.Println(RenderKV("Backend", ErrorStyle.Render("unreachable")))
	}
	fmt.Println(RenderKV("User", user.DisplayName()))
	fmt.Println(RenderKV("Saved predictions", fmt.Sprintf("%d", historyCount)))

	if stats != nil {
		fmt.Println(Divider())
		fmt.Println(SectionStyle.Render("Dataset"))
		fmt.Println(RenderKV("Records", fmt.Sprintf("%d", stats.TotalRecords)))
		printFloatMap("Cost", stats.CostStatistics, true)
		printFloatMap("Age", stats.AgeStatistics, false)
	}

	if reachErr != nil {
		fmt.Println()
		fmt.Println(DimStyle.Render("Start the prediction backend to enable estimates and chat."))
		return reachErr
	}
	return nil
}

// printFloatMap prints a statistics map in stable key order.
func printFloatMap(prefix string, m map[string]float64, asCurrency bool) {
	if len(m) == 0 {
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		value := fmt.Sprintf("%.1f", m[k])
		if asCurrency {
			value = util.FormatINR(m[k])
		}
		fmt.Println(RenderKV(prefix+" "+k, value))
	}
}

func printStatusJSON(reachErr error, stats *api.Statistics, user session.UserSession, historyCount int) error {
	out := map[string]any{
		"backend_reachable": reachErr == nil,
		"user":              user.DisplayName(),
		"anonymous":         user.IsAnonymous(),
		"saved_predictions": historyCount,
	}
	if reachErr != nil {
		out["backend_error"] = reachErr.Error()
	}
	if stats != nil {
		out["statistics"] = stats
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}
	return reachErr
}

// loadUser reads the stored session, anonymous on any failure.
func loadUser() session.UserSession {
	path, err := session.DefaultSessionPath()
	if err != nil {
		return session.Anonymous()
	}
	store, err := session.NewStore(path)
	if err != nil {
		return session.Anonymous()
	}
	user, err := store.Load()
	if err != nil {
		return session.Anonymous()
	}
	return user
}

// loadHistoryCount counts saved predictions, 0 on any failure.
func loadHistoryCount(ctx context.Context) int {
	path, err := history.DefaultPath()
	if err != nil {
		return 0
	}
	store, err := history.Open(path, 0)
	if err != nil {
		return 0
	}
	defer store.Close()

	count, err := store.Count(ctx)
	if err != nil {
		return 0
	}
	return count
}
