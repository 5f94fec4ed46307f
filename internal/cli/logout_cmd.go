// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// logout_cmd.go - The "logout" subcommand: forget the stored user session.

package cli

import (
	"fmt"

	"github.com/jeranaias/carecost-tui/internal/session"
)

// HandleLogout clears the stored session so predictions stop carrying a
// user email. Logging out when anonymous is not an error.
func HandleLogout(args Args) error {
	path, err := session.DefaultSessionPath()
	if err != nil {
		return NewCommandError("logout", "resolve session path", err)
	}

	store, err := session.NewStore(path)
	if err != nil {
		return NewCommandError("logout", "open session store", err)
	}

	user, err := store.Load()
	if err == nil && user.IsAnonymous() {
		if !args.Quiet {
			fmt.Println(DimStyle.Render("No user session stored."))
		}
		return nil
	}

	if err := store.Clear(); err != nil {
		return NewCommandError("logout", "clear session", err)
	}

	if !args.Quiet {
		fmt.Println(SuccessStyle.Render("Logged out. ") + "Future predictions will be anonymous.")
	}
	return nil
}
