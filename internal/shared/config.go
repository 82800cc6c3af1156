package shared

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Backend names accepted in [TwitchConfig.Backend].
const (
	BackendKraken = "kraken"
	BackendHelix  = "helix"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Twitch   TwitchConfig   `toml:"twitch"`
	Channels ChannelsConfig `toml:"channels"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
}

// TwitchConfig selects and configures the status API backend.
type TwitchConfig struct {
	Backend        string `toml:"backend"`
	BaseURL        string `toml:"base_url"`
	HelixURL       string `toml:"helix_url"`
	ClientID       string `toml:"client_id"`
	ClientSecret   string `toml:"client_secret"`
	TokenURL       string `toml:"token_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// ChannelsConfig contains the default channel list and refresh settings.
type ChannelsConfig struct {
	Defaults               []string `toml:"defaults"`
	MaxConcurrency         int      `toml:"max_concurrency"`
	RefreshIntervalSeconds int      `toml:"refresh_interval_seconds"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host         string  `toml:"host"`
	Port         int     `toml:"port"`
	RefreshRate  float64 `toml:"refresh_rate"`
	RefreshBurst int     `toml:"refresh_burst"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Timeout returns the per-request HTTP timeout.
func (c TwitchConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RefreshInterval returns the auto-refresh period, or zero when disabled.
func (c ChannelsConfig) RefreshInterval() time.Duration {
	if c.RefreshIntervalSeconds <= 0 {
		return 0
	}
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

// Addr returns the host:port listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Twitch.Backend {
	case BackendKraken, "":
	case BackendHelix:
		if c.Twitch.ClientID == "" || c.Twitch.ClientSecret == "" {
			return fmt.Errorf("%w: helix backend requires client_id and client_secret", ErrMissingCredentials)
		}
	default:
		return fmt.Errorf("%w: unknown twitch backend %q", ErrInvalidConfig, c.Twitch.Backend)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	if c.Channels.MaxConcurrency < 0 {
		return fmt.Errorf("%w: max_concurrency must not be negative", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads a TOML configuration file from the specified path and overlays it on [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveConfig encodes config as TOML and writes it to path.
func SaveConfig(path string, config *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
