package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Search    SearchConfig
	Cache     CacheConfig
	Matching  MatchingConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SearchConfig holds custom search API configuration. Missing credentials or
// enabled=false do not fail validation: the engine serves fallback results
// instead of calling the network.
type SearchConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	EngineID   string        `mapstructure:"engine_id"`
	BaseURL    string        `mapstructure:"base_url"`
	Enabled    bool          `mapstructure:"enabled"`
	MaxResults int           `mapstructure:"max_results"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// Configured reports whether the live search path can be used at all.
func (s SearchConfig) Configured() bool {
	return s.Enabled && s.APIKey != "" && s.EngineID != ""
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// MatchingConfig holds the similarity tuning knobs. The defaults were tuned
// empirically against hand-labeled result sets; see the matcher for how the
// weights combine.
type MatchingConfig struct {
	SameThreshold      float64 `mapstructure:"same_threshold"`
	BrandWeight        float64 `mapstructure:"brand_weight"`
	TokenWeight        float64 `mapstructure:"token_weight"`
	EditWeight         float64 `mapstructure:"edit_weight"`
	EnableDebugLogging bool    `mapstructure:"enable_debug_logging"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP  int `mapstructure:"per_ip"`
	Search int `mapstructure:"search"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shopscout/")

	// Environment variable settings
	v.SetEnvPrefix("SHOPSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"chrome-extension://*"})

	// Search defaults. Credentials default to empty so the env-bound keys
	// are known to Unmarshal; empty credentials mean fallback mode.
	v.SetDefault("search.api_key", "")
	v.SetDefault("search.engine_id", "")
	v.SetDefault("search.base_url", "https://www.googleapis.com/customsearch/v1")
	v.SetDefault("search.enabled", true)
	v.SetDefault("search.max_results", 10)
	v.SetDefault("search.timeout", "10s")

	// Cache defaults
	v.SetDefault("cache.ttl", "24h")

	// Matching defaults
	v.SetDefault("matching.same_threshold", 0.65)
	v.SetDefault("matching.brand_weight", 0.3)
	v.SetDefault("matching.token_weight", 0.4)
	v.SetDefault("matching.edit_weight", 0.3)
	v.SetDefault("matching.enable_debug_logging", false)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.search", 100)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got: %s", config.Cache.TTL)
	}

	if t := config.Matching.SameThreshold; t <= 0 || t >= 1 {
		return fmt.Errorf("matching same_threshold must be in (0,1), got: %v", t)
	}

	if config.Search.MaxResults < 1 || config.Search.MaxResults > 10 {
		return fmt.Errorf("search max_results must be between 1 and 10, got: %d", config.Search.MaxResults)
	}

	if config.Search.Timeout <= 0 {
		return fmt.Errorf("search timeout must be positive, got: %s", config.Search.Timeout)
	}

	return nil
}
