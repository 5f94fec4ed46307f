// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfig_ConcurrentAccess tests that Global(), SetGlobal(), and ReloadGlobal()
// can be safely called concurrently without race conditions.
// Run with: go test -race -v ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	ResetGlobalForTesting()

	var wg sync.WaitGroup

	// 50 writers using SetGlobal, 50 readers using Global
	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			c := Default()
			c.Version = "test"
			SetGlobal(c)
		}()

		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}

	wg.Wait()
}

// TestConfig_ConcurrentMixedOperations tests a mix of all global operations
// happening concurrently.
func TestConfig_ConcurrentMixedOperations(t *testing.T) {
	ResetGlobalForTesting()

	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		switch i % 3 {
		case 0:
			go func() {
				defer wg.Done()
				if Global() == nil {
					t.Error("Global() returned nil")
				}
			}()
		case 1:
			go func() {
				defer wg.Done()
				c := Default()
				c.Version = "concurrent-test"
				SetGlobal(c)
			}()
		case 2:
			go func() {
				defer wg.Done()
				_ = ReloadGlobal()
			}()
		}
	}

	wg.Wait()
}

// TestConfig_Default tests that Default() returns a valid config with defaults.
func TestConfig_Default(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, "http://localhost:5000", cfg.Backend.BaseURL)
	assert.Equal(t, 30, cfg.Backend.TimeoutSecs)
	assert.Equal(t, "predict", cfg.UI.DefaultPanel)
	assert.True(t, cfg.Charts.SampleFallback)
	assert.True(t, cfg.History.Enabled)
	assert.NoError(t, cfg.Validate())
}

// TestConfig_Validate tests configuration validation.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "invalid backend scheme",
			mutate:  func(c *Config) { c.Backend.BaseURL = "ftp://example.com" },
			wantErr: true,
		},
		{
			name:    "timeout zero",
			mutate:  func(c *Config) { c.Backend.TimeoutSecs = 0 },
			wantErr: true,
		},
		{
			name:    "timeout above maximum",
			mutate:  func(c *Config) { c.Backend.TimeoutSecs = 500 },
			wantErr: true,
		},
		{
			name:    "negative rate limit",
			mutate:  func(c *Config) { c.Chat.MessagesPerMinute = -1 },
			wantErr: true,
		},
		{
			name:    "unlimited rate (zero) is valid",
			mutate:  func(c *Config) { c.Chat.MessagesPerMinute = 0 },
			wantErr: false,
		},
		{
			name:    "chart width too narrow",
			mutate:  func(c *Config) { c.Charts.MaxWidth = 5 },
			wantErr: true,
		},
		{
			name:    "invalid theme",
			mutate:  func(c *Config) { c.UI.Theme = "solarized" },
			wantErr: true,
		},
		{
			name:    "invalid panel",
			mutate:  func(c *Config) { c.UI.DefaultPanel = "dashboard" },
			wantErr: true,
		},
		{
			name:    "history max entries out of range",
			mutate:  func(c *Config) { c.History.MaxEntries = 50000 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestConfig_Migrate tests migration of legacy panel names.
func TestConfig_Migrate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"prediction", "predict"},
		{"visualization", "charts"},
		{"visualizations", "charts"},
		{"chat", "chat"},
	}
	for _, tt := range tests {
		cfg := Default()
		cfg.UI.DefaultPanel = tt.in
		require.NoError(t, cfg.Migrate())
		assert.Equal(t, tt.want, cfg.UI.DefaultPanel)
	}
}

// TestConfig_MigrateTrimsBaseURL tests trailing-slash normalization.
func TestConfig_MigrateTrimsBaseURL(t *testing.T) {
	cfg := Default()
	cfg.Backend.BaseURL = "http://localhost:5000/"
	require.NoError(t, cfg.Migrate())
	assert.Equal(t, "http://localhost:5000", cfg.Backend.BaseURL)
}

// TestConfig_ApplyEnvOverrides tests environment variable overrides.
func TestConfig_ApplyEnvOverrides(t *testing.T) {
	t.Setenv("CARECOST_BACKEND_URL", "http://api.example.com:8080")
	t.Setenv("CARECOST_TIMEOUT_SECS", "60")
	t.Setenv("CARECOST_PANEL", "chat")
	t.Setenv("CARECOST_THEME", "light")
	t.Setenv("CARECOST_HISTORY", "false")
	t.Setenv("CARECOST_MARKDOWN", "0")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "http://api.example.com:8080", cfg.Backend.BaseURL)
	assert.Equal(t, 60, cfg.Backend.TimeoutSecs)
	assert.Equal(t, "chat", cfg.UI.DefaultPanel)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.False(t, cfg.History.Enabled)
	assert.False(t, cfg.Chat.Markdown)
}

// TestConfig_EnvOverrideBadTimeoutIgnored tests that a non-numeric timeout
// override is ignored rather than zeroing the config.
func TestConfig_EnvOverrideBadTimeoutIgnored(t *testing.T) {
	t.Setenv("CARECOST_TIMEOUT_SECS", "soon")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, 30, cfg.Backend.TimeoutSecs)
}

// TestConfig_TOMLRoundTrip tests saving and loading a TOML config file.
func TestConfig_TOMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.Backend.BaseURL = "http://backend.test:9000"
	cfg.UI.Theme = "light"
	require.NoError(t, SaveTOML(cfg, path))

	// Saved with owner-only permissions
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "http://backend.test:9000", loaded.Backend.BaseURL)
	assert.Equal(t, "light", loaded.UI.Theme)
}

// TestConfig_JSONRoundTrip tests saving and loading a JSON config file.
func TestConfig_JSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := Default()
	cfg.History.MaxEntries = 500
	require.NoError(t, SaveJSON(cfg, path))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 500, loaded.History.MaxEntries)
}

// TestConfig_LoadFixesPermissions tests that loading a world-readable config
// tightens its permissions.
func TestConfig_LoadFixesPermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = \"1.0.0\"\n"), 0644))

	cfg := Default()
	require.NoError(t, LoadTOML(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

// TestConfig_PartialFileGetsDefaults tests that fields missing from the file
// fall back to defaults.
func TestConfig_PartialFileGetsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\ntheme = \"light\"\n"), 0600))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "light", loaded.UI.Theme)
	assert.Equal(t, "http://localhost:5000", loaded.Backend.BaseURL)
	assert.Equal(t, 30, loaded.Backend.TimeoutSecs)
	assert.Equal(t, "predict", loaded.UI.DefaultPanel)
}

// TestConfig_GetSet tests Get and Set methods with dot notation.
func TestConfig_GetSet(t *testing.T) {
	cfg := Default()

	val, err := cfg.Get("backend.base_url")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", val)

	require.NoError(t, cfg.Set("ui.theme", "light"))
	val, _ = cfg.Get("ui.theme")
	assert.Equal(t, "light", val)

	require.NoError(t, cfg.Set("backend.timeout_secs", "45"))
	val, _ = cfg.Get("backend.timeout_secs")
	assert.Equal(t, 45, val)

	_, err = cfg.Get("invalid.key")
	assert.Error(t, err)
}

// TestConfig_GetAllKeysResolvable tests that every advertised key resolves.
func TestConfig_GetAllKeysResolvable(t *testing.T) {
	cfg := Default()
	for _, key := range GetAllKeys() {
		_, err := cfg.Get(key)
		assert.NoError(t, err, "key %q should resolve", key)
	}
}

// TestConfig_Clone tests that Clone creates an independent copy.
func TestConfig_Clone(t *testing.T) {
	original := Default()
	original.Version = "original"

	clone := original.Clone()
	clone.Version = "cloned"

	assert.Equal(t, "original", original.Version)
	assert.Equal(t, "cloned", clone.Version)
}

// TestConfig_Merge tests merging two configs.
func TestConfig_Merge(t *testing.T) {
	base := Default()

	other := &Config{
		Backend: BackendConfig{BaseURL: "http://merged:5000"},
		UI:      UIConfig{Theme: "light"},
	}

	base.Merge(other)

	assert.Equal(t, "http://merged:5000", base.Backend.BaseURL)
	assert.Equal(t, "light", base.UI.Theme)
	// Unset fields in other must not clobber base values
	assert.Equal(t, 30, base.Backend.TimeoutSecs)
	assert.Equal(t, "predict", base.UI.DefaultPanel)
}

// TestIsConfigFile tests the watcher's file filter.
func TestIsConfigFile(t *testing.T) {
	assert.True(t, isConfigFile("/home/u/.carecost/config.toml"))
	assert.True(t, isConfigFile("/home/u/.carecost/config.json"))
	assert.False(t, isConfigFile("/home/u/.carecost/session.json"))
	assert.False(t, isConfigFile("/home/u/.carecost/history.db"))
}
