package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Engine    EngineConfig    `yaml:"engine" mapstructure:"engine"`
	Narrative NarrativeConfig `yaml:"narrative" mapstructure:"narrative"`
	Gemini    GeminiConfig    `yaml:"gemini" mapstructure:"gemini"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Display   DisplayConfig   `yaml:"display" mapstructure:"display"`
	Evaluate  EvaluateConfig  `yaml:"evaluate" mapstructure:"evaluate"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port            int      `yaml:"port" mapstructure:"port"`
	RatePerMinute   int      `yaml:"rate_per_minute" mapstructure:"rate_per_minute"`
	Burst           int      `yaml:"burst" mapstructure:"burst"`
	CORSOrigins     []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	ReadTimeoutSecs int      `yaml:"read_timeout_secs" mapstructure:"read_timeout_secs"`
}

// EngineConfig points at optional overrides for the cost tables.
type EngineConfig struct {
	TablesFile string `yaml:"tables_file" mapstructure:"tables_file"`
}

// NarrativeConfig configures the advisory text generator.
type NarrativeConfig struct {
	Provider          string `yaml:"provider" mapstructure:"provider"` // none, gemini, anthropic
	TimeoutSecs       int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RequestsPerMinute int    `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
	MaxAttempts       int    `yaml:"max_attempts" mapstructure:"max_attempts"`
	CircuitFailures   int    `yaml:"circuit_failures" mapstructure:"circuit_failures"`
	CircuitResetSecs  int    `yaml:"circuit_reset_secs" mapstructure:"circuit_reset_secs"`
	CacheTTLHours     int    `yaml:"cache_ttl_hours" mapstructure:"cache_ttl_hours"`
	MaxChars          int    `yaml:"max_chars" mapstructure:"max_chars"`
}

// Timeout returns TimeoutSecs as a duration.
func (n NarrativeConfig) Timeout() time.Duration {
	return time.Duration(n.TimeoutSecs) * time.Second
}

// CacheTTL returns CacheTTLHours as a duration.
func (n NarrativeConfig) CacheTTL() time.Duration {
	return time.Duration(n.CacheTTLHours) * time.Hour
}

// GeminiConfig holds Google Gemini settings.
type GeminiConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
}

// CacheConfig selects the narrative cache backend.
type CacheConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"` // none, memory, sqlite, postgres, redis
	DSN    string `yaml:"dsn" mapstructure:"dsn"`
}

// DisplayConfig configures currency presentation.
type DisplayConfig struct {
	Currency string  `yaml:"currency" mapstructure:"currency"`
	USDRate  float64 `yaml:"usd_rate" mapstructure:"usd_rate"`
	EURRate  float64 `yaml:"eur_rate" mapstructure:"eur_rate"`
}

// EvaluateConfig configures batch evaluation from the CLI.
type EvaluateConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// Load reads configuration from .env, config file and environment.
func Load() (*Config, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("FEASIBILITY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_per_minute", 60)
	v.SetDefault("server.burst", 10)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.read_timeout_secs", 15)
	v.SetDefault("engine.tables_file", "")
	v.SetDefault("narrative.provider", "none")
	v.SetDefault("narrative.timeout_secs", 20)
	v.SetDefault("narrative.requests_per_minute", 30)
	v.SetDefault("narrative.max_attempts", 3)
	v.SetDefault("narrative.circuit_failures", 5)
	v.SetDefault("narrative.circuit_reset_secs", 30)
	v.SetDefault("narrative.cache_ttl_hours", 24)
	v.SetDefault("narrative.max_chars", 600)
	v.SetDefault("gemini.key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 300)
	v.SetDefault("anthropic.base_url", "")
	v.SetDefault("cache.driver", "memory")
	v.SetDefault("cache.dsn", "")
	v.SetDefault("display.currency", "SAR")
	v.SetDefault("display.usd_rate", 3.75)
	v.SetDefault("display.eur_rate", 4.0)
	v.SetDefault("evaluate.concurrency", 4)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

var (
	providers = []string{"none", "gemini", "anthropic"}
	drivers   = []string{"none", "memory", "sqlite", "postgres", "redis"}
	// Currency codes accepted by the display package.
	currencies = []string{"SAR", "USD", "EUR"}
)

// Validate checks the settings needed by mode ("evaluate" or "serve").
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "evaluate":
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, "server.port must be > 0 and <= 65535")
		}
		if c.Server.RatePerMinute < 0 {
			errs = append(errs, "server.rate_per_minute must be >= 0")
		}
		if c.Server.RatePerMinute > 0 && c.Server.Burst < 1 {
			errs = append(errs, "server.burst must be >= 1 when rate limiting is on")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Evaluate.Concurrency < 1 || c.Evaluate.Concurrency > 64 {
		errs = append(errs, "evaluate.concurrency must be between 1 and 64")
	}

	switch c.Narrative.Provider {
	case "gemini":
		if c.Gemini.Key == "" {
			errs = append(errs, "gemini.key is required when narrative.provider is gemini")
		}
	case "anthropic":
		if c.Anthropic.Key == "" {
			errs = append(errs, "anthropic.key is required when narrative.provider is anthropic")
		}
	}
	if !slices.Contains(providers, c.Narrative.Provider) {
		errs = append(errs, fmt.Sprintf("narrative.provider must be one of %s", strings.Join(providers, ", ")))
	}
	if c.Narrative.TimeoutSecs < 0 {
		errs = append(errs, "narrative.timeout_secs must be >= 0")
	}

	if !slices.Contains(drivers, c.Cache.Driver) {
		errs = append(errs, fmt.Sprintf("cache.driver must be one of %s", strings.Join(drivers, ", ")))
	}
	switch c.Cache.Driver {
	case "sqlite", "postgres", "redis":
		if c.Cache.DSN == "" {
			errs = append(errs, fmt.Sprintf("cache.dsn is required for the %s driver", c.Cache.Driver))
		}
	}

	if !slices.Contains(currencies, strings.ToUpper(c.Display.Currency)) {
		errs = append(errs, fmt.Sprintf("display.currency must be one of %s", strings.Join(currencies, ", ")))
	}
	if c.Display.USDRate <= 0 || c.Display.EURRate <= 0 {
		errs = append(errs, "display rates must be > 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
