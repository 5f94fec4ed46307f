// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"time"

	"github.com/jeranaias/carecost-tui/internal/api"
	"github.com/jeranaias/carecost-tui/internal/config"
)

// buildClient constructs a backend client from the loaded configuration,
// with the --backend flag taking precedence over the config file.
func buildClient(args Args) *api.Client {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}

	clientCfg := &api.ClientConfig{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: time.Duration(cfg.Backend.TimeoutSecs) * time.Second,
	}
	if args.Backend != "" {
		clientCfg.BaseURL = args.Backend
	}

	return api.NewClientWithConfig(clientCfg)
}
