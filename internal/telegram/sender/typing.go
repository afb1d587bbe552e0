package sender

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Typing keeps the "typing..." indicator alive in a chat while the bot
// works on a slow operation. Telegram expires the action after five
// seconds, so it is refreshed every four.
type Typing struct {
	sender *Sender
	chatID int64
	done   chan struct{}
}

// StartTyping shows the typing indicator until Stop is called or the
// context ends.
func (s *Sender) StartTyping(ctx context.Context, chatID int64) *Typing {
	t := &Typing{
		sender: s,
		chatID: chatID,
		done:   make(chan struct{}),
	}

	t.send()
	go t.loop(ctx)

	return t
}

// Stop ends the typing indicator.
func (t *Typing) Stop() {
	close(t.done)
}

func (t *Typing) loop(ctx context.Context) {
	ticker := time.NewTicker(4 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.send()
		case <-t.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (t *Typing) send() {
	action := tgbotapi.NewChatAction(t.chatID, tgbotapi.ChatTyping)
	if _, err := t.sender.api.Request(action); err != nil {
		t.sender.logger.Warn("failed to send typing action",
			zap.Error(err),
			zap.Int64("chat_id", t.chatID),
		)
	}
}
