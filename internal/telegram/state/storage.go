package state

import (
	"context"
	"errors"
	"time"

	"github.com/promptcraft/promptcraft-backend/internal/entity"
)

// ErrNotFound is returned when a user has no active conversation.
var ErrNotFound = errors.New("conversation not found")

// Stage identifies where in the prompt-building dialog a user currently is.
type Stage string

const (
	StageChoosingCategory Stage = "CHOOSING_CATEGORY"
	StageAwaitingIdea     Stage = "AWAITING_IDEA"
	StageAnswering        Stage = "ANSWERING"
	StageDone             Stage = "DONE"
)

// Conversation is the full per-user dialog state. It lives only in memory
// and expires with the storage TTL; an expired conversation simply means
// the user starts over with /start.
type Conversation struct {
	UserID         int64
	ConversationID string
	Stage          Stage

	Category entity.IdeaCategory
	Idea     string

	// Questions to walk through and the answers collected so far,
	// keyed by question id. Skipped questions leave no entry.
	Questions []entity.Question
	Answers   map[string]any
	Index     int

	// Prompt holds the generated result while the user picks a download
	// format.
	Prompt string

	// PendingCancel marks that /cancel was issued and awaits confirmation.
	PendingCancel bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CurrentQuestion returns the question the user is expected to answer now.
func (c *Conversation) CurrentQuestion() (*entity.Question, bool) {
	if c.Index < 0 || c.Index >= len(c.Questions) {
		return nil, false
	}
	return &c.Questions[c.Index], true
}

// Storage persists conversations keyed by Telegram user ID.
type Storage interface {
	Get(ctx context.Context, userID int64) (*Conversation, error)
	Set(ctx context.Context, conv *Conversation) error
	Delete(ctx context.Context, userID int64) error
}
