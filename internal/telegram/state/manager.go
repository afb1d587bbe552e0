package state

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Manager manages per-user conversation state on top of Storage.
type Manager struct {
	storage Storage
}

// NewManager creates a new state manager
func NewManager(storage Storage) *Manager {
	return &Manager{
		storage: storage,
	}
}

// Get retrieves the user's conversation. Returns ErrNotFound when the user
// has none or it expired.
func (m *Manager) Get(ctx context.Context, userID int64) (*Conversation, error) {
	conv, err := m.storage.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get conversation from storage: %w", err)
	}

	return conv, nil
}

// Save stores the conversation and stamps its update time.
func (m *Manager) Save(ctx context.Context, conv *Conversation) error {
	conv.UpdatedAt = time.Now()

	if err := m.storage.Set(ctx, conv); err != nil {
		return fmt.Errorf("save conversation to storage: %w", err)
	}

	return nil
}

// Delete removes the user's conversation.
func (m *Manager) Delete(ctx context.Context, userID int64) error {
	if err := m.storage.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete conversation from storage: %w", err)
	}

	return nil
}

// Begin replaces whatever the user had with a fresh conversation at the
// category selection stage.
func (m *Manager) Begin(ctx context.Context, userID int64) (*Conversation, error) {
	now := time.Now()
	conv := &Conversation{
		UserID:         userID,
		ConversationID: uuid.NewString(),
		Stage:          StageChoosingCategory,
		Answers:        make(map[string]any),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := m.storage.Set(ctx, conv); err != nil {
		return nil, fmt.Errorf("save conversation to storage: %w", err)
	}

	return conv, nil
}
