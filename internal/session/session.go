// Package session holds the admin's auth token and username between runs.
package session

import (
	"context"
	"io"
	"sync"
	"time"

	"portfolio-admin/internal/common/errors"
	"portfolio-admin/internal/common/logger"
)

// Persisted keys.
const (
	KeyToken    = "authToken"
	KeyUsername = "username"
)

const storageTimeout = 3 * time.Second

// Session is the token store every API module reads through. A Session with a
// nil Storage is a no-op: getters report absent and setters do nothing.
type Session struct {
	mu      sync.Mutex
	storage Storage
	logger  logger.Logger
}

func New(storage Storage, log logger.Logger) *Session {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Session{storage: storage, logger: log}
}

// Token returns the stored token. Read failures are logged and reported as absent.
func (s *Session) Token() (string, bool) {
	return s.get(KeyToken)
}

func (s *Session) SetToken(token string) error {
	return s.set(KeyToken, token)
}

func (s *Session) Username() (string, bool) {
	return s.get(KeyUsername)
}

func (s *Session) SetUsername(username string) error {
	return s.set(KeyUsername, username)
}

// Clear removes the token and the username together.
func (s *Session) Clear() error {
	if s.storage == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	if err := s.storage.Del(ctx, KeyToken, KeyUsername); err != nil {
		return errors.NewSessionStorageError("clear", err)
	}
	return nil
}

// IsAuthenticated is true iff a non-empty token is stored. Validity is the backend's call.
func (s *Session) IsAuthenticated() bool {
	token, ok := s.Token()
	return ok && token != ""
}

// Close releases the storage backend if it holds a connection.
func (s *Session) Close() error {
	if c, ok := s.storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *Session) get(key string) (string, bool) {
	if s.storage == nil {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	v, ok, err := s.storage.Get(ctx, key)
	if err != nil {
		s.logger.Warn("session storage read failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return "", false
	}
	return v, ok
}

func (s *Session) set(key, value string) error {
	if s.storage == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	if err := s.storage.Set(ctx, key, value); err != nil {
		return errors.NewSessionStorageError("write", err)
	}
	return nil
}
