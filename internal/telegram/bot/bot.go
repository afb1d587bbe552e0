package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/promptcraft/promptcraft-backend/internal/config"
	"github.com/promptcraft/promptcraft-backend/internal/telegram/handlers"
	"github.com/promptcraft/promptcraft-backend/internal/telegram/keyboard"
	"github.com/promptcraft/promptcraft-backend/internal/telegram/middleware"
	"github.com/promptcraft/promptcraft-backend/internal/telegram/render"
	"github.com/promptcraft/promptcraft-backend/internal/telegram/sender"
	"github.com/promptcraft/promptcraft-backend/internal/telegram/state"
)

const helpText = `🤖 Bot commands:

/start - Start building a prompt
/help - Show this help
/cancel - Discard the current conversation

How it works:
1. Pick what kind of project you have
2. Describe your idea in a couple of sentences
3. Answer a few short questions. Tap 💡 if you want me to answer one for you
4. Get a polished prompt, ready to copy or download

Start with /start`

// Bot polls Telegram for updates and routes them through the middleware
// chain to the stage handlers.
type Bot struct {
	api         *tgbotapi.BotAPI
	cfg         *config.TelegramConfig
	states      *state.Manager
	handlers    map[state.Stage]handlers.Handler
	snd         *sender.Sender
	keyboard    *keyboard.Builder
	logger      *zap.Logger
	loggingMW   *middleware.LoggingMiddleware
	recoveryMW  *middleware.RecoveryMiddleware
	rateLimitMW *middleware.RateLimiterMiddleware
	updatesChan tgbotapi.UpdatesChannel
	stopChan    chan struct{}
	wg          sync.WaitGroup
}

// New assembles the bot around an already authorized API client.
func New(
	api *tgbotapi.BotAPI,
	cfg *config.TelegramConfig,
	states *state.Manager,
	snd *sender.Sender,
	kb *keyboard.Builder,
	logger *zap.Logger,
) *Bot {
	b := &Bot{
		api:      api,
		cfg:      cfg,
		states:   states,
		snd:      snd,
		keyboard: kb,
		logger:   logger,
		handlers: make(map[state.Stage]handlers.Handler),
		stopChan: make(chan struct{}),
	}

	b.loggingMW = middleware.NewLoggingMiddleware(logger)
	b.recoveryMW = middleware.NewRecoveryMiddleware(logger, snd)
	b.rateLimitMW = middleware.NewRateLimiterMiddleware(
		cfg.RateLimitPerMinute,
		cfg.RateLimitBurst,
		logger,
		snd,
	)

	return b
}

// RegisterHandler registers a handler for a conversation stage
func (b *Bot) RegisterHandler(handler handlers.Handler) {
	stage := handler.Stage()

	if !handlers.IsValidStage(stage) {
		b.logger.Fatal("invalid handler stage",
			zap.String("stage", string(stage)),
		)
	}

	b.handlers[stage] = handler
	b.logger.Info("handler registered",
		zap.String("stage", string(stage)),
	)
}

// Start begins polling for updates
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	b.updatesChan = b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)
	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

// processUpdates processes incoming updates
func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update := <-b.updatesChan:
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdateWithMiddleware(u)
			}(update)
		}
	}
}

// handleUpdateWithMiddleware processes an update through the middleware chain
func (b *Bot) handleUpdateWithMiddleware(update tgbotapi.Update) {
	b.rateLimitMW.Handle(update, func(u tgbotapi.Update) {
		b.loggingMW.Handle(u, func(u2 tgbotapi.Update) {
			b.recoveryMW.Handle(u2, func(u3 tgbotapi.Update) {
				b.handleUpdate(u3)
			})
		})
	})
}

// handleUpdate routes an update to the appropriate handler
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	ctx := ctxzap.ToContext(context.Background(), b.logger)

	if update.CallbackQuery != nil {
		b.handleCallbackQuery(ctx, update.CallbackQuery)
		return
	}

	if update.Message != nil {
		b.handleMessage(ctx, update.Message)
		return
	}
}

// handleMessage handles incoming text messages
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	userID := message.From.ID
	chatID := message.Chat.ID

	conv, err := b.states.Get(ctx, userID)
	if errors.Is(err, state.ErrNotFound) {
		b.sendText(ctx, chatID, render.MsgNoConversation)
		return
	} else if err != nil {
		ctxzap.Error(ctx, "failed to get conversation",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		b.sendText(ctx, chatID, render.ErrGeneric)
		return
	}

	// A typed reply while a cancel confirmation is pending counts as
	// choosing to continue.
	if conv.PendingCancel {
		conv.PendingCancel = false
		if err := b.states.Save(ctx, conv); err != nil {
			ctxzap.Error(ctx, "failed to clear pending cancel", zap.Error(err))
		}
	}

	handler, exists := b.handlers[conv.Stage]
	if !exists {
		ctxzap.Debug(ctx, "no message handler for stage",
			zap.String("stage", string(conv.Stage)),
			zap.Int64("user_id", userID),
		)
		b.sendText(ctx, chatID, render.MsgUseButtons)
		return
	}

	msg := &handlers.Message{
		ChatID:    chatID,
		UserID:    userID,
		MessageID: message.MessageID,
		Text:      message.Text,
	}

	if err := handler.Handle(ctx, msg); err != nil {
		ctxzap.Error(ctx, "handler error",
			zap.Error(err),
			zap.String("stage", string(conv.Stage)),
			zap.Int64("user_id", userID),
		)
		b.sendText(ctx, chatID, render.ClassifyError(err))
	}
}

// handleCommand handles bot commands
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	command := message.Command()

	ctxzap.Info(ctx, "command received",
		zap.String("command", command),
		zap.Int64("user_id", message.From.ID),
	)

	switch command {
	case "start":
		b.handleStartCommand(ctx, message)
	case "help":
		b.sendText(ctx, message.Chat.ID, helpText)
	case "cancel":
		b.handleCancelCommand(ctx, message)
	default:
		b.sendText(ctx, message.Chat.ID, "❌ Unknown command. Try /start")
	}
}

// handleStartCommand handles the /start command
func (b *Bot) handleStartCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if err := b.snd.Send(ctx, chatID, render.MsgWelcome, b.keyboard.StartKeyboard()); err != nil {
		ctxzap.Error(ctx, "failed to send welcome message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

// handleCancelCommand handles the /cancel command with a confirmation step
func (b *Bot) handleCancelCommand(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID

	conv, err := b.states.Get(ctx, userID)
	if errors.Is(err, state.ErrNotFound) {
		b.sendText(ctx, chatID, render.MsgNoConversation)
		return
	} else if err != nil {
		ctxzap.Error(ctx, "failed to get conversation", zap.Error(err))
		b.sendText(ctx, chatID, render.ErrGeneric)
		return
	}

	conv.PendingCancel = true
	if err := b.states.Save(ctx, conv); err != nil {
		ctxzap.Error(ctx, "failed to save pending cancel", zap.Error(err))
		b.sendText(ctx, chatID, render.ErrGeneric)
		return
	}

	if err := b.snd.Send(ctx, chatID, render.MsgCancelConfirm, b.keyboard.CancelConfirmKeyboard()); err != nil {
		ctxzap.Error(ctx, "failed to send cancel confirmation",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

// handleCallbackQuery handles inline button taps. The callback is
// acknowledged right away so the client drops its spinner; the work
// itself runs here, inside the already tracked update goroutine.
func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if _, err := keyboard.ParseCallback(query.Data); err != nil {
		ctxzap.Error(ctx, "invalid callback data",
			zap.Error(err),
			zap.String("data", query.Data),
		)
		b.snd.AnswerCallback(query.ID, "❌ Bad button data")
		return
	}

	b.snd.AnswerCallback(query.ID, "")

	if query.Message == nil {
		ctxzap.Warn(ctx, "callback query without message", zap.String("data", query.Data))
		return
	}

	handler, exists := b.handlers[handlers.StageCallback]
	if !exists {
		ctxzap.Warn(ctx, "callback handler not registered")
		return
	}

	msg := &handlers.Message{
		ChatID:       query.Message.Chat.ID,
		UserID:       query.From.ID,
		MessageID:    query.Message.MessageID,
		CallbackData: query.Data,
		CallbackID:   query.ID,
	}

	if err := handler.Handle(ctx, msg); err != nil {
		ctxzap.Error(ctx, "callback handler error",
			zap.Error(err),
			zap.Int64("user_id", msg.UserID),
		)
		b.sendText(ctx, msg.ChatID, render.ClassifyError(err))
	}
}

// sendText sends a plain message, logging delivery failures
func (b *Bot) sendText(ctx context.Context, chatID int64, text string) {
	if err := b.snd.Send(ctx, chatID, text, nil); err != nil {
		ctxzap.Error(ctx, "failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}
