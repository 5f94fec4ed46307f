// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history_cmd.go - The "history" subcommand: list or clear saved predictions.

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jeranaias/carecost-tui/internal/history"
)

const historyListLimit = 20

// HandleHistory lists recent predictions, or clears them with the "clear"
// subcommand.
func HandleHistory(args Args) error {
	store, err := history.Open("", 0)
	if err != nil {
		return NewCommandError("history", "open store", err)
	}
	defer store.Close()

	ctx := context.Background()

	switch args.Subcommand {
	case "clear":
		if err := store.ClearAll(ctx); err != nil {
			return NewCommandError("history", "clear", err)
		}
		if !args.Quiet {
			fmt.Println(SuccessStyle.Render("History cleared."))
		}
		return nil

	case "", "show", "list":
		return listHistory(ctx, store, args)

	default:
		return fmt.Errorf("unknown history subcommand %q (try: history, history clear)", args.Subcommand)
	}
}

func listHistory(ctx context.Context, store *history.Store, args Args) error {
	entries, err := store.Recent(ctx, historyListLimit)
	if err != nil {
		return NewCommandError("history", "list", err)
	}

	if args.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println(DimStyle.Render("No saved predictions yet. Run the TUI and submit the form."))
		return nil
	}

	fmt.Println(TitleStyle.Render("Recent predictions"))
	for _, e := range entries {
		when := e.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("%s  %s  %s\n",
			DimStyle.Render(when),
			SuccessStyle.Render(e.EstimateINR()),
			ValueStyle.Render(e.Summary))
	}
	fmt.Println()
	fmt.Println(DimStyle.Render(fmt.Sprintf("Showing up to %d entries. Use --json for full records.", historyListLimit)))
	return nil
}
