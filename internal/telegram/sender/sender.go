package sender

import (
	"context"

	"github.com/avast/retry-go/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	pkgretry "github.com/promptcraft/promptcraft-backend/internal/pkg/retry"
)

// Sender delivers bot messages with a bounded retry policy. Telegram
// hiccups are common enough that user-facing sends deserve more than one
// attempt; callback acks and typing actions stay fire-and-forget.
type Sender struct {
	api      *tgbotapi.BotAPI
	retryCfg *pkgretry.RetryConfig
	logger   *zap.Logger
}

// New creates a Sender around the bot API.
func New(api *tgbotapi.BotAPI, retryCfg *pkgretry.RetryConfig, logger *zap.Logger) *Sender {
	return &Sender{
		api:      api,
		retryCfg: retryCfg,
		logger:   logger,
	}
}

// Send delivers a text message, with optional reply markup.
func (s *Sender) Send(ctx context.Context, chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}

	return s.deliver(ctx, chatID, func() error {
		_, err := s.api.Send(msg)
		return err
	})
}

// maxMessageLength is Telegram's limit for a single text message.
const maxMessageLength = 4096

// SendLong delivers text of any length, splitting it into multiple
// messages on line boundaries where possible. Only the last chunk carries
// the reply markup.
func (s *Sender) SendLong(ctx context.Context, chatID int64, text string, markup interface{}) error {
	chunks := splitMessage(text, maxMessageLength)
	for i, chunk := range chunks {
		var chunkMarkup interface{}
		if i == len(chunks)-1 {
			chunkMarkup = markup
		}
		if err := s.Send(ctx, chatID, chunk, chunkMarkup); err != nil {
			return err
		}
	}
	return nil
}

// splitMessage cuts text into chunks of at most limit runes, preferring to
// break after a newline.
func splitMessage(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(runes) > limit {
		cut := limit
		for i := limit - 1; i > limit/2; i-- {
			if runes[i] == '\n' {
				cut = i + 1
				break
			}
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}

// SendDocument delivers in-memory file bytes as a document attachment.
func (s *Sender) SendDocument(ctx context.Context, chatID int64, filename string, data []byte) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  filename,
		Bytes: data,
	})

	return s.deliver(ctx, chatID, func() error {
		_, err := s.api.Send(doc)
		return err
	})
}

// AnswerCallback acknowledges a callback query so the client stops showing
// the loading spinner. Not retried: a late ack is worthless.
func (s *Sender) AnswerCallback(callbackID, text string) {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := s.api.Request(callback); err != nil {
		s.logger.Error("failed to answer callback",
			zap.Error(err),
			zap.String("callback_id", callbackID),
		)
	}
}

func (s *Sender) deliver(ctx context.Context, chatID int64, send func() error) error {
	ctx, cancel := context.WithTimeout(ctx, s.retryCfg.Timeout)
	defer cancel()

	opts := append(s.retryCfg.ToRetryOptions(),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			s.logger.Warn("message delivery failed, retrying",
				zap.Error(err),
				zap.Uint("attempt", attempt+1),
				zap.Int64("chat_id", chatID),
			)
		}),
	)

	if err := retry.Do(send, opts...); err != nil {
		s.logger.Error("message delivery failed after all retries",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		return err
	}

	return nil
}
