package state

import (
	"context"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStorage keeps conversations in an expiring in-process cache. The
// TTL is refreshed on every write, so only abandoned dialogs expire.
type MemoryStorage struct {
	cache *gocache.Cache
}

// NewMemoryStorage creates conversation storage with the given TTL and
// cleanup interval.
func NewMemoryStorage(ttl, cleanupInterval time.Duration) *MemoryStorage {
	return &MemoryStorage{
		cache: gocache.New(ttl, cleanupInterval),
	}
}

func (s *MemoryStorage) Get(_ context.Context, userID int64) (*Conversation, error) {
	value, ok := s.cache.Get(storageKey(userID))
	if !ok {
		return nil, ErrNotFound
	}

	conv, ok := value.(*Conversation)
	if !ok {
		return nil, ErrNotFound
	}
	return conv, nil
}

func (s *MemoryStorage) Set(_ context.Context, conv *Conversation) error {
	s.cache.Set(storageKey(conv.UserID), conv, gocache.DefaultExpiration)
	return nil
}

func (s *MemoryStorage) Delete(_ context.Context, userID int64) error {
	s.cache.Delete(storageKey(userID))
	return nil
}

func storageKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
