package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validTestConfig() *Config {
	return &Config{
		ServerAddr:     ":8000",
		AllowedOrigins: []string{"http://localhost:5173"},
		GeminiCfg:      GeminiConnectorConfig{Model: "gemini-1.5-flash"},
		LimitsCfg: RequestLimitsConfig{
			MaxIdeaChars:   8000,
			MaxPromptChars: 20000,
			MaxAnswers:     50,
		},
		TelegramCfg: TelegramConfig{
			RateLimitPerMinute: 20,
			RateLimitBurst:     5,
			ShutdownTimeout:    30,
		},
	}
}

func TestValidateConfig_Valid(t *testing.T) {
	assert.NoError(t, validateConfig(validTestConfig()))
}

func TestValidateConfig_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{
			name:    "empty server addr",
			mutate:  func(c *Config) { c.ServerAddr = "  " },
			wantMsg: "SERVER_ADDR",
		},
		{
			name:    "no allowed origins",
			mutate:  func(c *Config) { c.AllowedOrigins = nil },
			wantMsg: "ALLOWED_ORIGINS",
		},
		{
			name:    "blank origin in list",
			mutate:  func(c *Config) { c.AllowedOrigins = []string{"http://localhost:5173", " "} },
			wantMsg: "empty origin",
		},
		{
			name:    "empty model name",
			mutate:  func(c *Config) { c.GeminiCfg.Model = "" },
			wantMsg: "GEMINI_MODEL",
		},
		{
			name:    "idea limit too small",
			mutate:  func(c *Config) { c.LimitsCfg.MaxIdeaChars = 5 },
			wantMsg: "LIMITS_MAX_IDEA_CHARS",
		},
		{
			name: "prompt limit below idea limit",
			mutate: func(c *Config) {
				c.LimitsCfg.MaxIdeaChars = 1000
				c.LimitsCfg.MaxPromptChars = 500
			},
			wantMsg: "LIMITS_MAX_PROMPT_CHARS",
		},
		{
			name:    "zero max answers",
			mutate:  func(c *Config) { c.LimitsCfg.MaxAnswers = 0 },
			wantMsg: "LIMITS_MAX_ANSWERS",
		},
		{
			name:    "rate limit out of range",
			mutate:  func(c *Config) { c.TelegramCfg.RateLimitPerMinute = 120 },
			wantMsg: "TELEGRAM_RATE_LIMIT_PER_MINUTE",
		},
		{
			name:    "burst out of range",
			mutate:  func(c *Config) { c.TelegramCfg.RateLimitBurst = 0 },
			wantMsg: "TELEGRAM_RATE_LIMIT_BURST",
		},
		{
			name:    "shutdown timeout out of range",
			mutate:  func(c *Config) { c.TelegramCfg.ShutdownTimeout = 0 },
			wantMsg: "TELEGRAM_SHUTDOWN_TIMEOUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidateConfig_CollectsAllErrors(t *testing.T) {
	cfg := validTestConfig()
	cfg.ServerAddr = ""
	cfg.GeminiCfg.Model = ""
	cfg.LimitsCfg.MaxAnswers = 0

	err := validateConfig(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "SERVER_ADDR")
	assert.Contains(t, err.Error(), "GEMINI_MODEL")
	assert.Contains(t, err.Error(), "LIMITS_MAX_ANSWERS")
}

func TestGetEnvFile(t *testing.T) {
	tests := []struct {
		environment string
		want        string
	}{
		{"prod", ".env.prod"},
		{"production", ".env.prod"},
		{"local", ".env.local"},
		{"dev", ".env.local"},
		{"development", ".env.local"},
		{"staging", ".env.staging"},
	}

	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			assert.Equal(t, tt.want, getEnvFile(tt.environment))
		})
	}
}
