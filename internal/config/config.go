package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	appName    = "plexapi"
	envPrefix  = "PLEXAPI"
	configFile = "config.yaml"
)

// Config holds all application configuration
type Config struct {
	Account AccountConfig `mapstructure:"account"`
	Server  ServerConfig  `mapstructure:"server"`
	Client  ClientConfig  `mapstructure:"client"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`

	path string // file the config was loaded from and is saved to
}

// AccountConfig holds plex.tv credentials
type AccountConfig struct {
	Token            string `mapstructure:"token"`
	Username         string `mapstructure:"username"`          // display only
	ClientIdentifier string `mapstructure:"client_identifier"` // overrides the host-derived id
}

// ServerConfig selects the server to talk to. URL wins over Name when both are set.
type ServerConfig struct {
	Name string `mapstructure:"name"` // device name as listed by plex.tv
	URL  string `mapstructure:"url"`  // direct base URL, e.g. http://127.0.0.1:32400
}

// ClientConfig tunes the HTTP client
type ClientConfig struct {
	Product         string        `mapstructure:"product"`
	Version         string        `mapstructure:"version"`
	PageSize        int           `mapstructure:"page_size"`
	Timeout         time.Duration `mapstructure:"timeout"`
	RateLimit       float64       `mapstructure:"rate_limit"` // requests per second, 0 disables
	Burst           int           `mapstructure:"burst"`
	BreakerFailures uint32        `mapstructure:"breaker_failures"` // 0 disables the circuit breaker
	BreakerCooldown time.Duration `mapstructure:"breaker_cooldown"`
}

// CacheConfig controls the on-disk section cache
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("account.token", "")
	v.SetDefault("account.username", "")
	v.SetDefault("account.client_identifier", "")

	v.SetDefault("server.name", "")
	v.SetDefault("server.url", "")

	v.SetDefault("client.product", appName)
	v.SetDefault("client.version", "")
	v.SetDefault("client.page_size", 100)
	v.SetDefault("client.timeout", 30*time.Second)
	v.SetDefault("client.rate_limit", 0.0)
	v.SetDefault("client.burst", 1)
	v.SetDefault("client.breaker_failures", 0)
	v.SetDefault("client.breaker_cooldown", 30*time.Second)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.path", defaultCachePath())

	v.SetDefault("logging.file", defaultLogPath())
	v.SetDefault("logging.level", "INFO")
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName, appName+".log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName, appName+".log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), appName, "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName, "cache")
	}
}

// DefaultFile returns the config file LoadConfig reads.
func DefaultFile() string {
	return filepath.Join(defaultConfigPath(), configFile)
}

// LoadConfig loads configuration from the default file and environment
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultFile())
}

// LoadConfigFrom loads configuration from path, then applies PLEXAPI_*
// environment overrides (e.g. PLEXAPI_ACCOUNT_TOKEN). A missing file is
// not an error; defaults are used.
func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.path = path
	return cfg, nil
}

// Path returns the file the config is saved to.
func (c *Config) Path() string {
	if c.path == "" {
		return DefaultFile()
	}
	return c.path
}

// SaveConfig writes cfg back to the file it was loaded from
func SaveConfig(cfg *Config) error {
	path := cfg.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to keep snake_case key names
	v := viper.New()
	v.Set("account.token", cfg.Account.Token)
	v.Set("account.username", cfg.Account.Username)
	v.Set("account.client_identifier", cfg.Account.ClientIdentifier)

	v.Set("server.name", cfg.Server.Name)
	v.Set("server.url", cfg.Server.URL)

	v.Set("client.product", cfg.Client.Product)
	v.Set("client.version", cfg.Client.Version)
	v.Set("client.page_size", cfg.Client.PageSize)
	v.Set("client.timeout", cfg.Client.Timeout.String())
	v.Set("client.rate_limit", cfg.Client.RateLimit)
	v.Set("client.burst", cfg.Client.Burst)
	v.Set("client.breaker_failures", cfg.Client.BreakerFailures)
	v.Set("client.breaker_cooldown", cfg.Client.BreakerCooldown.String())

	v.Set("cache.enabled", cfg.Cache.Enabled)
	v.Set("cache.path", cfg.Cache.Path)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveToken stores token (and the username it belongs to) and writes the file
func SaveToken(cfg *Config, username, token string) error {
	cfg.Account.Token = token
	cfg.Account.Username = username
	return SaveConfig(cfg)
}

// IsConfigured returns true if a token and a server are set
func (c *Config) IsConfigured() bool {
	return c.Account.Token != "" && (c.Server.Name != "" || c.Server.URL != "")
}

// CachePath returns the cache directory with a leading ~ expanded
func (c *Config) CachePath() string {
	return expandHome(c.Cache.Path)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
