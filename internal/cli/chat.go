// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Plain-terminal interactive chat against the backend assistant.
//
// This is the non-TUI chat surface: a readline-style loop with input
// history, slash commands, and the backend's fixed quick options. The
// full-screen panel lives in internal/ui/chat.

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/peterh/liner"

	"github.com/jeranaias/carecost-tui/internal/api"
	"github.com/jeranaias/carecost-tui/internal/config"
)

// quickOptions are the backend's fixed chat options, in display order.
var quickOptions = []struct {
	Value string
	Label string
}{
	{"quick_estimate", "Quick Estimate"},
	{"health_tips", "Health Tips"},
	{"insurance_info", "Insurance Info"},
	{"cost_factors", "Cost Factors"},
}

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI with input history loaded from the config
// directory (or a temp dir when that is unavailable).
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	cli := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	cli.LoadHistory()
	return cli
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line with history navigation.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists command history with owner-only permissions.
func (c *ChatCLI) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// CHAT COMMAND
// =============================================================================

// HandleChat runs the interactive chat loop.
func HandleChat(args Args) error {
	if !IsTTY() {
		return fmt.Errorf("chat requires an interactive terminal")
	}

	client := buildClient(args)

	// Reachability check up front so the first message doesn't hang.
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	err := client.CheckRunning(ctx)
	cancel()
	if err != nil {
		DisplayError(err, args.JSON)
		return err
	}

	input := NewChatCLI()
	defer input.Close()

	renderer := newMarkdownRenderer()

	if !args.Quiet {
		printChatWelcome()
	}

	for {
		line, err := input.ReadInput("you> ")
		if err != nil {
			// Ctrl+C or Ctrl+D ends the session.
			if err == liner.ErrPromptAborted {
				fmt.Println()
			}
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			done, err := handleSlashCommand(line, client, renderer)
			if err != nil {
				DisplayError(err, false)
			}
			if done {
				return nil
			}
			continue
		}

		sendAndPrint(client, renderer, line, api.ChatKindText)
	}
}

// sendAndPrint sends one message and prints the reply or the failure.
func sendAndPrint(client *api.Client, renderer *glamour.TermRenderer, message string, kind api.ChatKind) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client.Chat(ctx, message, kind)
	if err != nil {
		fmt.Println(ErrorStyle.Render("assistant> ") + "Sorry, I could not reach the prediction service. Please try again in a moment.")
		return
	}
	if !resp.Success {
		reason := resp.Error
		if reason == "" {
			reason = "unknown error"
		}
		fmt.Println(ErrorStyle.Render("assistant> ") + "Something went wrong: " + reason)
		return
	}

	fmt.Print(SuccessStyle.Render("assistant> "))
	fmt.Println(renderMarkdown(renderer, resp.Response))
}

// handleSlashCommand processes a /command. Returns true when the loop
// should exit.
func handleSlashCommand(cmd string, client *api.Client, renderer *glamour.TermRenderer) (bool, error) {
	fields := strings.Fields(cmd)

	switch fields[0] {
	case "/quit", "/exit", "/q":
		return true, nil

	case "/help", "/?":
		printChatHelp()
		return false, nil

	case "/options":
		fmt.Println(SectionStyle.Render("Quick options"))
		for i, opt := range quickOptions {
			fmt.Printf("  %d. %s\n", i+1, opt.Label)
		}
		fmt.Println(DimStyle.Render("Use /option <number> to send one."))
		return false, nil

	case "/option":
		if len(fields) < 2 {
			return false, fmt.Errorf("usage: /option <number>")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 || n > len(quickOptions) {
			return false, fmt.Errorf("option must be 1-%d", len(quickOptions))
		}
		opt := quickOptions[n-1]
		fmt.Println(DimStyle.Render("you> " + opt.Label))
		sendAndPrint(client, renderer, opt.Value, api.ChatKindOption)
		return false, nil

	default:
		return false, fmt.Errorf("unknown command %s (try /help)", fields[0])
	}
}

func printChatWelcome() {
	fmt.Println(TitleStyle.Render("Health Cost Assistant"))
	fmt.Println(DimStyle.Render("Ask about insurance costs, health tips, or what drives your estimate."))
	fmt.Println(DimStyle.Render("Commands: /options  /option <n>  /help  /quit"))
	fmt.Println()
}

func printChatHelp() {
	fmt.Println(SectionStyle.Render("Chat commands"))
	fmt.Println("  /options      List the quick options")
	fmt.Println("  /option <n>   Send quick option n")
	fmt.Println("  /help         This help")
	fmt.Println("  /quit         End the session")
}

// newMarkdownRenderer builds a glamour renderer sized to the terminal.
// Returns nil when construction fails; renderMarkdown falls back to raw.
func newMarkdownRenderer() *glamour.TermRenderer {
	width := GetTerminalWidth()
	if width > 100 {
		width = 100
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return nil
	}
	return renderer
}

func renderMarkdown(renderer *glamour.TermRenderer, text string) string {
	if renderer == nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}
