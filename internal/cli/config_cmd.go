// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - The "config" subcommand: show, get, set, path.

package cli

import (
	"fmt"

	"github.com/jeranaias/carecost-tui/internal/config"
)

// HandleConfig dispatches the config subcommands.
func HandleConfig(args Args) error {
	switch args.Subcommand {
	case "", "show":
		return configShow()

	case "get":
		return configGet(args.ConfigKey)

	case "set":
		return configSet(args.ConfigKey, args.ConfigVal)

	case "path":
		path, err := config.ConfigPathTOML()
		if err != nil {
			return NewCommandError("config", "resolve path", err)
		}
		fmt.Println(path)
		return nil

	default:
		return fmt.Errorf("unknown config subcommand %q (try: show, get, set, path)", args.Subcommand)
	}
}

func configShow() error {
	cfg, err := config.Load()
	if err != nil {
		return NewCommandError("config", "load", err)
	}

	fmt.Println(TitleStyle.Render("carecost configuration"))
	for _, key := range config.GetAllKeys() {
		value, err := cfg.Get(key)
		if err != nil {
			continue
		}
		fmt.Println(RenderKV(key, fmt.Sprintf("%v", value)))
	}
	return nil
}

func configGet(key string) error {
	if key == "" {
		return fmt.Errorf("usage: config get <key>")
	}

	cfg, err := config.Load()
	if err != nil {
		return NewCommandError("config", "load", err)
	}

	value, err := cfg.Get(key)
	if err != nil {
		return NewCommandError("config", "get "+key, err)
	}

	fmt.Printf("%v\n", value)
	return nil
}

func configSet(key, value string) error {
	if key == "" || value == "" {
		return fmt.Errorf("usage: config set <key> <value>")
	}

	cfg, err := config.Load()
	if err != nil {
		return NewCommandError("config", "load", err)
	}

	if err := cfg.Set(key, value); err != nil {
		return NewCommandError("config", "set "+key, err)
	}
	if err := cfg.Validate(); err != nil {
		return NewCommandError("config", "validate", err)
	}
	if err := config.Save(cfg); err != nil {
		return NewCommandError("config", "save", err)
	}

	fmt.Println(SuccessStyle.Render("Saved ") + key + " = " + value)
	return nil
}
