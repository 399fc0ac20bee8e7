// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Backend.BaseURL != "http://localhost:8000" {
		t.Errorf("Backend.BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Jurisdiction != "india" {
		t.Errorf("Backend.Jurisdiction = %q", cfg.Backend.Jurisdiction)
	}
	if !cfg.History.Enabled {
		t.Error("History.Enabled should default to true")
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("UI.Theme = %q", cfg.UI.Theme)
	}
	if cfg.UI.ToastDurationMillis != 5000 {
		t.Errorf("UI.ToastDurationMillis = %d", cfg.UI.ToastDurationMillis)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromPathTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
version = "1.0"

[backend]
base_url = "http://10.0.0.5:9000"
jurisdiction = "india"

[ui]
theme = "dark"
show_welcome = false
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.Backend.BaseURL != "http://10.0.0.5:9000" {
		t.Errorf("BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("Theme = %q", cfg.UI.Theme)
	}
	if cfg.UI.ShowWelcome {
		t.Error("ShowWelcome should be false")
	}
	// Unset fields get defaults.
	if cfg.UI.ToastDurationMillis != 5000 {
		t.Errorf("ToastDurationMillis = %d, want default", cfg.UI.ToastDurationMillis)
	}
}

func TestLoadFromPathJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"backend": {"base_url": "https://legal.example.com"}}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.Backend.BaseURL != "https://legal.example.com" {
		t.Errorf("BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Jurisdiction != "india" {
		t.Errorf("Jurisdiction = %q, want default", cfg.Backend.Jurisdiction)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"bad url", func(c *Config) { c.Backend.BaseURL = "not a url" }, true},
		{"ftp scheme", func(c *Config) { c.Backend.BaseURL = "ftp://x.example.com" }, true},
		{"bad theme", func(c *Config) { c.UI.Theme = "solarized" }, true},
		{"negative retention", func(c *Config) { c.History.RetentionDays = -1 }, true},
		{"https ok", func(c *Config) { c.Backend.BaseURL = "https://backend.example.com" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("LEXQUERY_BACKEND_URL", "http://override:8080")
	t.Setenv("LEXQUERY_THEME", "light")
	t.Setenv("LEXQUERY_HISTORY", "false")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Backend.BaseURL != "http://override:8080" {
		t.Errorf("BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q", cfg.UI.Theme)
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled should be overridden to false")
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Backend.BaseURL = "http://saved:8000"
	cfg.UI.Theme = "dark"
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML() error: %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if loaded.Backend.BaseURL != "http://saved:8000" {
		t.Errorf("BaseURL = %q", loaded.Backend.BaseURL)
	}
	if loaded.UI.Theme != "dark" {
		t.Errorf("Theme = %q", loaded.UI.Theme)
	}
}

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := SaveTOML(Default(), path); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *Config, 1)
	w, err := NewWatcher(path, func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewWatcher() error: %v", err)
	}
	defer w.Close()

	updated := Default()
	updated.UI.Theme = "light"
	if err := SaveTOML(updated, path); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.UI.Theme != "light" {
			t.Errorf("reloaded Theme = %q, want light", cfg.UI.Theme)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not reload after config change")
	}
}

func TestWatcherIgnoresInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := SaveTOML(Default(), path); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *Config, 4)
	w, err := NewWatcher(path, func(cfg *Config) { reloaded <- cfg })
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	// Invalid theme: reload must be dropped.
	bad := Default()
	bad.UI.Theme = "solarized"
	if err := SaveTOML(bad, path); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		t.Errorf("invalid config was delivered: %+v", cfg.UI)
	case <-time.After(1500 * time.Millisecond):
	}
}
