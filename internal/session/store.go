// Package session owns the persisted session token: one bearer token
// under one fixed storage path, surviving restarts. It is the single
// source of truth for "is anyone signed in, and who".
package session

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/campusrate/campusrate-go/internal/token"
)

// Store reads and writes the persisted session token. Reads hit storage
// on every call, so a change made by another process is observed on the
// next read rather than pushed. Decode failures degrade to "no session"
// and are never surfaced to callers.
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore creates a session store persisting the token at path.
func NewStore(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, logger: logger}
}

// Token returns the raw persisted token, or "" when none is stored.
// It makes no expiry or well-formedness judgment; outgoing requests
// attach whatever is persisted, exactly as the storage holds it.
func (s *Store) Token() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("failed to read session storage", zap.Error(err))
		}
		return ""
	}
	return strings.TrimSpace(string(data))
}

// GetCurrentUser derives the current user from the persisted token.
// Absent token: nil. Malformed token or unrecognized role: logged, nil.
// Expired token: the persisted token is erased as if sign-out had been
// called, then nil. Never returns an error.
func (s *Store) GetCurrentUser() *token.CurrentUser {
	raw := s.Token()
	if raw == "" {
		return nil
	}

	user, err := token.UserFromToken(raw)
	if err != nil {
		s.logger.Warn("discarding undecodable session token", zap.Error(err))
		return nil
	}

	if user.Expired() {
		s.logger.Info("session expired", zap.Time("expired_at", user.ExpiresAt))
		s.ClearToken()
		return nil
	}

	return user
}

// SetToken persists the token, unconditionally replacing any prior one.
func (s *Store) SetToken(raw string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(raw), 0o600)
}

// ClearToken erases the persisted token. Calling it with no token
// present is a no-op, not an error.
func (s *Store) ClearToken() {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("failed to clear session storage", zap.Error(err))
	}
}

// Watch emits an event whenever the persisted token changes underneath
// this store, e.g. a sign-out performed by another process sharing the
// same storage. The channel closes when ctx is done. This is an opt-in
// consistency upgrade: without a watcher, changes are still picked up
// on the next read.
func (s *Store) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory: removing and recreating the token file would
	// silently detach a watch on the file itself.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return nil, err
	}

	events := make(chan struct{}, 1)
	go func() {
		defer watcher.Close()
		defer close(events)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(s.path) {
					continue
				}
				select {
				case events <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("session storage watch error", zap.Error(err))
			}
		}
	}()

	return events, nil
}
