package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./streamgrid.db" {
			t.Errorf("expected database path ./streamgrid.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}

		if config.Twitch.Backend != BackendKraken {
			t.Errorf("expected kraken backend, got %s", config.Twitch.Backend)
		}

		if config.Twitch.BaseURL != "https://wind-bow.glitch.me/twitch-api" {
			t.Errorf("unexpected base URL %s", config.Twitch.BaseURL)
		}

		if len(config.Channels.Defaults) != 8 {
			t.Errorf("expected 8 default channels, got %d", len(config.Channels.Defaults))
		}

		if err := config.Validate(); err != nil {
			t.Errorf("default config should validate, got %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[database]
path = "/custom/path.db"

[server]
host = "0.0.0.0"
port = 8080

[channels]
defaults = ["one", "two"]
refresh_interval_seconds = 0
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Server.Addr() != "0.0.0.0:8080" {
			t.Errorf("expected addr 0.0.0.0:8080, got %s", config.Server.Addr())
		}

		if len(config.Channels.Defaults) != 2 || config.Channels.Defaults[0] != "one" {
			t.Errorf("expected overridden defaults, got %v", config.Channels.Defaults)
		}

		if config.Channels.RefreshInterval() != 0 {
			t.Errorf("expected refresh disabled, got %v", config.Channels.RefreshInterval())
		}

		if config.Twitch.Backend != BackendKraken {
			t.Errorf("expected unset sections to keep defaults, got backend %q", config.Twitch.Backend)
		}
	})

	t.Run("LoadConfig Invalid TOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[server\nport = "), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("SaveConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		config := DefaultConfig()
		config.Server.Port = 4242

		if err := SaveConfig(configPath, config); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		loaded, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load saved config: %v", err)
		}
		if loaded.Server.Port != 4242 {
			t.Errorf("expected port 4242, got %d", loaded.Server.Port)
		}
	})
}

func TestConfigValidate(t *testing.T) {
	tc := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{
			name:    "helix without credentials",
			mutate:  func(c *Config) { c.Twitch.Backend = BackendHelix },
			wantErr: ErrMissingCredentials,
		},
		{
			name: "helix with credentials",
			mutate: func(c *Config) {
				c.Twitch.Backend = BackendHelix
				c.Twitch.ClientID = "id"
				c.Twitch.ClientSecret = "secret"
			},
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Twitch.Backend = "jsonp" },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "negative concurrency",
			mutate:  func(c *Config) { c.Channels.MaxConcurrency = -1 },
			wantErr: ErrInvalidConfig,
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)

			err := config.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDurations(t *testing.T) {
	if got := (TwitchConfig{}).Timeout(); got != 10*time.Second {
		t.Errorf("expected 10s default timeout, got %v", got)
	}
	if got := (TwitchConfig{TimeoutSeconds: 3}).Timeout(); got != 3*time.Second {
		t.Errorf("expected 3s timeout, got %v", got)
	}
	if got := (ChannelsConfig{RefreshIntervalSeconds: 30}).RefreshInterval(); got != 30*time.Second {
		t.Errorf("expected 30s interval, got %v", got)
	}
}
