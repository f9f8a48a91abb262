package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tasktracker/internal/cache"
)

const sessionKeyPrefix = "session:"

// SessionStoreInterface defines the interface for session storage operations.
type SessionStoreInterface interface {
	StoreSession(ctx context.Context, tokenID string, userID uint, username string, ttl time.Duration) error
	GetSession(ctx context.Context, tokenID string) (userID uint, username string, err error)
	DeleteSession(ctx context.Context, tokenID string) error
}

// SessionStore keeps the server-side session records in Redis, keyed by the
// refresh token's ID. A record holds the authenticated user's id and display
// name and nothing else.
type SessionStore struct {
	cache *cache.Client
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(cache *cache.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

type sessionRecord struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

// StoreSession stores a session record in Redis with TTL.
func (s *SessionStore) StoreSession(ctx context.Context, tokenID string, userID uint, username string, ttl time.Duration) error {
	payload, err := json.Marshal(sessionRecord{UserID: userID, Username: username})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	key := sessionKeyPrefix + tokenID
	return s.cache.Set(ctx, key, payload, ttl)
}

// GetSession retrieves a session record from Redis.
func (s *SessionStore) GetSession(ctx context.Context, tokenID string) (userID uint, username string, err error) {
	key := sessionKeyPrefix + tokenID
	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return 0, "", fmt.Errorf("session not found")
	}

	var record sessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return 0, "", fmt.Errorf("unmarshal session: %w", err)
	}

	return record.UserID, record.Username, nil
}

// DeleteSession removes a session record from Redis.
func (s *SessionStore) DeleteSession(ctx context.Context, tokenID string) error {
	key := sessionKeyPrefix + tokenID
	return s.cache.Delete(ctx, key)
}
