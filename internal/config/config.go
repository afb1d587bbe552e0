package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	pkgRetry "github.com/promptcraft/promptcraft-backend/internal/pkg/retry"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8000"`

	// Development mode. Switches the prompt fallback to the labeled
	// placeholder variant and is reported on the root endpoint.
	DevMode bool `env:"DEV_MODE" envDefault:"false"`

	// CORS origin allow-list for the browser frontend
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:5173,http://localhost:3000"`

	// Gemini upstream configuration. An empty API key leaves the upstream
	// unconfigured and every flow answers from its deterministic fallback.
	GeminiCfg GeminiConnectorConfig `envPrefix:"GEMINI_"`

	// Request size limits
	LimitsCfg RequestLimitsConfig `envPrefix:"LIMITS_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Telegram bot configuration (only the bot binary requires a token)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

type GeminiConnectorConfig struct {
	HTTPClientConfig
	BaseURL string `env:"BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"gemini-1.5-flash"`
}

// Configured reports whether the upstream can be called at all.
func (c GeminiConnectorConfig) Configured() bool {
	return c.APIKey != ""
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"45s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"45s"`
}

// RequestLimitsConfig bounds incoming payloads before they reach the model.
type RequestLimitsConfig struct {
	MaxIdeaChars   int `env:"MAX_IDEA_CHARS" envDefault:"8000"`
	MaxPromptChars int `env:"MAX_PROMPT_CHARS" envDefault:"20000"`
	MaxAnswers     int `env:"MAX_ANSWERS" envDefault:"50"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string               `env:"BOT_TOKEN"`
	UpdateTimeout      int                  `env:"UPDATE_TIMEOUT" envDefault:"30"`
	StateTTL           time.Duration        `env:"STATE_TTL" envDefault:"30m"`
	StateCleanup       time.Duration        `env:"STATE_CLEANUP_INTERVAL" envDefault:"10m"`
	RateLimitPerMinute int                  `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	RateLimitBurst     int                  `env:"RATE_LIMIT_BURST" envDefault:"5"`
	ShutdownTimeout    int                  `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds
	Retry              pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errs []string

	if strings.TrimSpace(cfg.ServerAddr) == "" {
		errs = append(errs, "SERVER_ADDR must not be empty")
	}

	if len(cfg.AllowedOrigins) == 0 {
		errs = append(errs, "ALLOWED_ORIGINS must list at least one origin")
	}
	for _, origin := range cfg.AllowedOrigins {
		if strings.TrimSpace(origin) == "" {
			errs = append(errs, "ALLOWED_ORIGINS contains an empty origin")
			break
		}
	}

	if cfg.GeminiCfg.Model == "" {
		errs = append(errs, "GEMINI_MODEL must not be empty")
	}

	if cfg.LimitsCfg.MaxIdeaChars < 10 {
		errs = append(errs, fmt.Sprintf("LIMITS_MAX_IDEA_CHARS must be at least 10, got %d", cfg.LimitsCfg.MaxIdeaChars))
	}
	if cfg.LimitsCfg.MaxPromptChars < cfg.LimitsCfg.MaxIdeaChars {
		errs = append(errs, fmt.Sprintf("LIMITS_MAX_PROMPT_CHARS must not be below LIMITS_MAX_IDEA_CHARS(%d), got %d",
			cfg.LimitsCfg.MaxIdeaChars, cfg.LimitsCfg.MaxPromptChars))
	}
	if cfg.LimitsCfg.MaxAnswers < 1 {
		errs = append(errs, fmt.Sprintf("LIMITS_MAX_ANSWERS must be at least 1, got %d", cfg.LimitsCfg.MaxAnswers))
	}

	if cfg.TelegramCfg.RateLimitPerMinute < 1 || cfg.TelegramCfg.RateLimitPerMinute > 60 {
		errs = append(errs, fmt.Sprintf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", cfg.TelegramCfg.RateLimitPerMinute))
	}
	if cfg.TelegramCfg.RateLimitBurst < 1 || cfg.TelegramCfg.RateLimitBurst > 20 {
		errs = append(errs, fmt.Sprintf("TELEGRAM_RATE_LIMIT_BURST must be between 1 and 20, got %d", cfg.TelegramCfg.RateLimitBurst))
	}
	if cfg.TelegramCfg.ShutdownTimeout < 1 || cfg.TelegramCfg.ShutdownTimeout > 300 {
		errs = append(errs, fmt.Sprintf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", cfg.TelegramCfg.ShutdownTimeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
