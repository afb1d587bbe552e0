package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/promptcraft/promptcraft-backend/internal/config"
	"github.com/promptcraft/promptcraft-backend/internal/pkg/formatter"
	"github.com/promptcraft/promptcraft-backend/internal/telegram/bot"
	"github.com/promptcraft/promptcraft-backend/internal/telegram/handlers"
	"github.com/promptcraft/promptcraft-backend/internal/telegram/keyboard"
	"github.com/promptcraft/promptcraft-backend/internal/telegram/sender"
	"github.com/promptcraft/promptcraft-backend/internal/telegram/state"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(
	cfg *config.TelegramConfig,
	promptUC handlers.PromptUsecase,
	logger *zap.Logger,
) (Bot, error) {
	if cfg.BotToken == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN is not set")
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}
	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	// Conversations live in memory and expire after the configured TTL
	storage := state.NewMemoryStorage(cfg.StateTTL, cfg.StateCleanup)
	stateManager := state.NewManager(storage)

	snd := sender.New(api, &cfg.Retry, logger)
	kb := keyboard.NewBuilder()

	b := bot.New(api, cfg, stateManager, snd, kb, logger)

	registerHandlers(b, snd, stateManager, promptUC, kb, logger)

	logger.Info("telegram bot initialized successfully")

	return b, nil
}

// registerHandlers registers all stage handlers with the bot
func registerHandlers(
	b *bot.Bot,
	snd *sender.Sender,
	stateManager *state.Manager,
	promptUC handlers.PromptUsecase,
	kb *keyboard.Builder,
	logger *zap.Logger,
) {
	// Callback handler covers every button tap
	b.RegisterHandler(handlers.NewCallbackHandler(snd, stateManager, promptUC, kb, formatter.NewFactory(), logger))

	// Idea handler receives the free-text idea description
	b.RegisterHandler(handlers.NewIdeaHandler(snd, stateManager, promptUC, kb, logger))

	// Answer handler records typed answers during the question walk
	b.RegisterHandler(handlers.NewAnswerHandler(snd, stateManager, promptUC, kb, logger))

	logger.Info("telegram handlers registered",
		zap.Int("handler_count", 3),
	)
}
