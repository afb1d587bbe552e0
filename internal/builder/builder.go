package builder

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/promptcraft/promptcraft-backend/internal/api"
	promptapi "github.com/promptcraft/promptcraft-backend/internal/api/prompt"
	"github.com/promptcraft/promptcraft-backend/internal/config"
	"github.com/promptcraft/promptcraft-backend/internal/integration/gemini"
	"github.com/promptcraft/promptcraft-backend/internal/pkg/validator"
	"github.com/promptcraft/promptcraft-backend/internal/telegram"
	"github.com/promptcraft/promptcraft-backend/internal/usecase/prompt"
)

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Initialize validators
	requestValidator := validator.NewRequestValidator(cfg.LimitsCfg)
	logger.Info("Validators initialized")

	// Initialize the model upstream. Without an API key the usecase gets a
	// nil connector and every flow answers from its deterministic fallback.
	model := setupModelConnector(cfg, logger)

	// Initialize use cases
	promptUC := prompt.NewUsecase(model, cfg.DevMode)
	logger.Info("Use cases initialized", zap.Bool("dev_mode", cfg.DevMode))

	// Setup API handlers
	promptHandler := promptapi.NewHandler(promptUC, requestValidator, cfg.DevMode)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(promptHandler, cfg.AllowedOrigins, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (telegram.Bot, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	model := setupModelConnector(cfg, logger)

	promptUC := prompt.NewUsecase(model, cfg.DevMode)
	logger.Info("Use cases initialized", zap.Bool("dev_mode", cfg.DevMode))

	bot, err := telegram.NewBot(&cfg.TelegramCfg, promptUC, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, nil
}

func setupModelConnector(cfg *config.Config, logger *zap.Logger) prompt.ModelConnector {
	if !cfg.GeminiCfg.Configured() {
		logger.Warn("GEMINI_API_KEY is not set, serving deterministic fallbacks for all flows")
		return nil
	}

	logger.Info("Using Gemini model upstream",
		zap.String("model", cfg.GeminiCfg.Model),
		zap.String("base_url", cfg.GeminiCfg.BaseURL),
	)
	return gemini.NewConnector(cfg.GeminiCfg)
}
