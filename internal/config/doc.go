// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for carecost.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - BackendConfig: Prediction backend connection settings
//   - ChatConfig: Chat assistant behavior
//   - HistoryConfig: Local prediction history settings
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CARECOST_*)
//   - ~/.carecost/config.toml
//   - ~/.carecost/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	baseURL := cfg.Backend.BaseURL
//	theme := cfg.UI.Theme
//
// Watch rewrites the global config when ~/.carecost/config.toml changes on
// disk, so a running TUI picks up edits without a restart.
package config
