package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"gigboard/internal/eventbus"
)

// Environment variables that override file settings
const (
	EnvURL      = "GIGBOARD_URL"
	EnvUser     = "GIGBOARD_USER"
	EnvPassword = "GIGBOARD_PASSWORD"
)

// Config represents the application configuration
type Config struct {
	Version  int             `toml:"version"`
	Server   ServerSettings  `toml:"server"`
	UI       UISettings      `toml:"ui"`
	Refresh  RefreshSettings `toml:"refresh"`
	LogFile  string          `toml:"log_file"`
	Password string          `toml:"-"` // env only, never persisted
}

// ServerSettings describes the marketplace endpoint
type ServerSettings struct {
	BaseURL  string   `toml:"base_url"`
	Username string   `toml:"username"`
	Timeout  Duration `toml:"timeout"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	PageSize           int    `toml:"page_size"`
	SuggestionLimit    int    `toml:"suggestion_limit"`
	SuggestionMinChars int    `toml:"suggestion_min_chars"`
	Currency           string `toml:"currency"`
	ShowRatings        bool   `toml:"show_ratings"`
}

// RefreshSettings controls the background pollers
type RefreshSettings struct {
	BalanceInterval       Duration `toml:"balance_interval"`
	NotificationsInterval Duration `toml:"notifications_interval"`
}

// Duration is a time.Duration stored as a string like "10s"
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = v
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
	getenv   func(string) string
}

// DefaultPath returns $XDG_CONFIG_HOME/gigboard/config.toml or the platform equivalent
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "gigboard", "config.toml")
}

// NewConfigService creates a config service reading the default path
func NewConfigService() ConfigService {
	return NewConfigServiceAt(DefaultPath(), nil)
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	return NewConfigServiceAt(DefaultPath(), bus)
}

// NewConfigServiceAt creates a config service bound to path. bus may be nil.
func NewConfigServiceAt(path string, bus eventbus.EventBus) ConfigService {
	return &configService{
		bus:      bus,
		filePath: path,
		getenv:   os.Getenv,
	}
}

// Load loads the configuration from file, falling back to defaults when the
// file does not exist. Environment overrides are applied in both cases.
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	ApplyEnv(cfg, cs.getenv)

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			BaseURL:  cfg.Server.BaseURL,
			Username: cfg.Server.Username,
		})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path. Missing fields keep
// their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	normalize(cfg)
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv copies the GIGBOARD_* environment overrides into cfg
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv(EnvURL); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := getenv(EnvUser); v != "" {
		cfg.Server.Username = v
	}
	if v := getenv(EnvPassword); v != "" {
		cfg.Password = v
	}
}

// normalize replaces zero or invalid values with defaults
func normalize(cfg *Config) {
	def := DefaultConfig()
	if cfg.UI.PageSize <= 0 {
		cfg.UI.PageSize = def.UI.PageSize
	}
	if cfg.UI.SuggestionLimit <= 0 {
		cfg.UI.SuggestionLimit = def.UI.SuggestionLimit
	}
	if cfg.UI.SuggestionMinChars <= 0 {
		cfg.UI.SuggestionMinChars = def.UI.SuggestionMinChars
	}
	if cfg.UI.Currency == "" {
		cfg.UI.Currency = def.UI.Currency
	}
	if cfg.Refresh.BalanceInterval.Duration <= 0 {
		cfg.Refresh.BalanceInterval = def.Refresh.BalanceInterval
	}
	if cfg.Refresh.NotificationsInterval.Duration <= 0 {
		cfg.Refresh.NotificationsInterval = def.Refresh.NotificationsInterval
	}
	if cfg.Server.Timeout.Duration <= 0 {
		cfg.Server.Timeout = def.Server.Timeout
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Server: ServerSettings{
			BaseURL: "http://localhost:8000",
			Timeout: Duration{15 * time.Second},
		},
		UI: UISettings{
			PageSize:           15,
			SuggestionLimit:    5,
			SuggestionMinChars: 2,
			Currency:           "Taka",
			ShowRatings:        true,
		},
		Refresh: RefreshSettings{
			BalanceInterval:       Duration{10 * time.Second},
			NotificationsInterval: Duration{30 * time.Second},
		},
		LogFile: "gigboard.log",
	}
}
