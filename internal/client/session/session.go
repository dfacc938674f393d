// Package session holds the caller's agent key for the local client profile.
//
// The key is persisted in the local SQLite metadata table so it survives
// restarts, and is only ever read back to be sent as the X-API-Key header.
// A Session is created once by the application and handed to whatever needs
// the key; there is no package-level state.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/portal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/portal/internal/dbx"
)

const (
	keyAgentKey = "agent_key"
	keySetAt    = "agent_key_set_at"
)

var ErrEmptyCredential = errors.New("agent key is empty")

type Session struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Session {
	return &Session{db: db, now: time.Now}
}

func (s *Session) repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

// Get returns the stored agent key, or "" when none is set.
func (s *Session) Get(ctx context.Context) (string, error) {
	v, err := s.repo(s.db).Get(ctx, keyAgentKey)
	if err != nil {
		return "", fmt.Errorf("read agent key: %w", err)
	}
	return string(v), nil
}

// Set trims value, rejects it if empty, persists it and returns what was stored.
func (s *Session) Set(ctx context.Context, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", ErrEmptyCredential
	}

	setAt := s.now().UTC().Format(time.RFC3339)
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, keyAgentKey, []byte(value)); err != nil {
			return err
		}
		return repo.Set(ctx, keySetAt, []byte(setAt))
	})
	if err != nil {
		return "", fmt.Errorf("store agent key: %w", err)
	}
	return value, nil
}

// Clear removes the stored key. Clearing an empty session is not an error.
func (s *Session) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Delete(ctx, keyAgentKey); err != nil {
			return err
		}
		return repo.Delete(ctx, keySetAt)
	})
	if err != nil {
		return fmt.Errorf("clear agent key: %w", err)
	}
	return nil
}

// SetAt reports when the current key was stored. ok is false when no key is set.
func (s *Session) SetAt(ctx context.Context) (t time.Time, ok bool, err error) {
	v, err := s.repo(s.db).Get(ctx, keySetAt)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("read agent key timestamp: %w", err)
	}
	if v == nil {
		return time.Time{}, false, nil
	}
	t, err = time.Parse(time.RFC3339, string(v))
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse agent key timestamp: %w", err)
	}
	return t, true, nil
}

// Present reports whether a non-empty key is stored. Read errors count as
// absent.
func (s *Session) Present(ctx context.Context) bool {
	key, err := s.Get(ctx)
	return err == nil && strings.TrimSpace(key) != ""
}

// Fingerprint renders a key for display without revealing it: the first four
// characters and an ellipsis.
func Fingerprint(key string) string {
	if key == "" {
		return ""
	}
	r := []rune(key)
	if len(r) <= 4 {
		return "****"
	}
	return string(r[:4]) + "…"
}
