package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server Server
	Model  Model
	Fetch  Fetch
	Store  Store
	Sweep  Sweep
	Notify Notify
}

// Server holds HTTP server configuration
type Server struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Model holds the extraction model configuration
type Model struct {
	APIKey  string `mapstructure:"api_key"`
	Name    string `mapstructure:"name"`
	BaseURL string `mapstructure:"base_url"`
	// RequestsPerMinute caps outbound model calls; 0 disables the limiter
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
}

// Fetch holds page scraping configuration
type Fetch struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	Retries   int           `mapstructure:"retries"`
}

// Store holds persistence configuration
type Store struct {
	Path string `mapstructure:"path"`
}

// Sweep holds change-sweep configuration
type Sweep struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}

// Notify holds notification delivery configuration
type Notify struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/lunchradar/")

	v.SetEnvPrefix("LUNCHRADAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3001")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// An explicit default is what lets AutomaticEnv surface the key;
	// viper only consults the environment for keys it already knows.
	v.SetDefault("model.api_key", "")
	v.SetDefault("model.name", "gemini-2.0-flash")
	v.SetDefault("model.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("model.requests_per_minute", 15)

	v.SetDefault("fetch.timeout", "30s")
	v.SetDefault("fetch.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	v.SetDefault("fetch.retries", 2)

	v.SetDefault("store.path", "./menu_cache.db")

	v.SetDefault("sweep.enabled", true)
	v.SetDefault("sweep.interval", "1h")

	v.SetDefault("notify.timeout", "10s")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Model.APIKey == "" {
		return fmt.Errorf("model API key is required (set LUNCHRADAR_MODEL_API_KEY)")
	}

	if config.Store.Path == "" {
		return fmt.Errorf("store path must not be empty")
	}

	if config.Sweep.Enabled && config.Sweep.Interval <= 0 {
		return fmt.Errorf("sweep interval must be positive, got: %s", config.Sweep.Interval)
	}

	return nil
}
