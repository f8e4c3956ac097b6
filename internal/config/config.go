package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Browse  BrowseConfig  `mapstructure:"browse"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds catalog backend configuration
type ServerConfig struct {
	URL   string `mapstructure:"url"`   // Backend base URL, e.g. http://localhost:8080
	Token string `mapstructure:"token"` // Session token sent as Authorization bearer
}

// BrowseConfig holds catalog browsing preferences
type BrowseConfig struct {
	Scheme      string `mapstructure:"scheme"`       // "categories" or "prefixes"
	PageSize    int    `mapstructure:"page_size"`    // Items fetched per page
	ContentType string `mapstructure:"content_type"` // Initial tab: LIVE, VOD, SERIES, RADIO
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme string `mapstructure:"theme"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:   "",
			Token: "",
		},
		Browse: BrowseConfig{
			Scheme:      "categories",
			PageSize:    50,
			ContentType: "LIVE",
		},
		UI: UIConfig{
			Theme: "default",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "ipteav", "ipteav.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "ipteav", "ipteav.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "ipteav")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "ipteav")
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "ipteav")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "ipteav")
	}
}

// Load loads configuration from file and environment
func Load() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("IPTEAV")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Save saves the current configuration to file
func Save(cfg *Config) error {
	configPath := defaultConfigPath()

	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("server.url", cfg.Server.URL)
	viper.Set("server.token", cfg.Server.Token)

	viper.Set("browse.scheme", cfg.Browse.Scheme)
	viper.Set("browse.page_size", cfg.Browse.PageSize)
	viper.Set("browse.content_type", cfg.Browse.ContentType)

	viper.Set("ui.theme", cfg.UI.Theme)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if the backend URL is set
func (c *Config) IsConfigured() bool {
	return c.Server.URL != ""
}

// DataPath returns the data directory used for the session store
func DataPath() string {
	return defaultDataPath()
}
