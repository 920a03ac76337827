// Package sessions manages user sessions in redis.
package sessions

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrSessionNotFound is returned when no session exists for a token.
var ErrSessionNotFound = errors.New("session not found")

type SessionManager struct {
	rdb *redis.Client
}

func NewSessionManager(rdb *redis.Client) *SessionManager {
	return &SessionManager{
		rdb: rdb,
	}
}

// NewSession stores a session for a user, expiration 0 keeps it forever.
func (sm *SessionManager) NewSession(token string, user int, expiration time.Duration) error {
	return sm.rdb.Set(sm.rdb.Context(), sessionKey(token), user, expiration).Err()
}

// GetUserIDForSession returns the user a session token belongs to.
func (sm *SessionManager) GetUserIDForSession(token string) (int, error) {
	id, err := sm.rdb.Get(sm.rdb.Context(), sessionKey(token)).Int()
	if err != nil {
		if err == redis.Nil {
			return 0, ErrSessionNotFound
		}

		return 0, err
	}

	return id, nil
}

// CloseSession removes a session.
func (sm *SessionManager) CloseSession(token string) error {
	return sm.rdb.Del(sm.rdb.Context(), sessionKey(token)).Err()
}

func sessionKey(token string) string {
	return fmt.Sprintf("session_%s", token)
}
