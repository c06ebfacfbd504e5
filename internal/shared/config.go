package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

const (
	EnvDeveloperToken = "AMKIT_DEVELOPER_TOKEN"
	EnvUserToken      = "AMKIT_USER_TOKEN"
	EnvStorefront     = "AMKIT_STOREFRONT"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Client      ClientConfig      `toml:"client"`
	Log         LogConfig         `toml:"log"`
}

// CredentialsConfig contains Apple Music API tokens and the preferred storefront.
type CredentialsConfig struct {
	DeveloperToken string `toml:"developer_token"`
	UserToken      string `toml:"user_token"`
	Storefront     string `toml:"storefront"`
}

// ClientConfig contains HTTP client and retry settings.
type ClientConfig struct {
	BaseURL           string        `toml:"base_url"`
	Timeout           time.Duration `toml:"timeout"`
	MaxRetries        int           `toml:"max_retries"`
	RetryFallback     time.Duration `toml:"retry_fallback"`
	RateLimit         float64       `toml:"rate_limit"`
	DefaultStorefront string        `toml:"default_storefront"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// Validate reports obviously broken settings.
func (c *Config) Validate() error {
	if c.Client.MaxRetries < 0 {
		return fmt.Errorf("%w: max_retries must not be negative", ErrInvalidConfig)
	}
	if c.Client.RateLimit < 0 {
		return fmt.Errorf("%w: rate_limit must not be negative", ErrInvalidConfig)
	}
	if c.Client.Timeout < 0 || c.Client.RetryFallback < 0 {
		return fmt.Errorf("%w: durations must not be negative", ErrInvalidConfig)
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ApplyEnv overrides credentials with any AMKIT_* environment variables that are set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvDeveloperToken); v != "" {
		c.Credentials.DeveloperToken = v
	}
	if v := os.Getenv(EnvUserToken); v != "" {
		c.Credentials.UserToken = v
	}
	if v := os.Getenv(EnvStorefront); v != "" {
		c.Credentials.Storefront = v
	}
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
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

	if err := os.WriteFile(path, exampleConf, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveConfig writes the configuration to path, replacing any existing file.
func SaveConfig(path string, config *Config) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
