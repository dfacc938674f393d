package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/portal/internal/client/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) (*Session, string) {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "portal.db")
	db, err := store.InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db), dsn
}

func TestGet_EmptySession(t *testing.T) {
	s, _ := newSession(t)

	got, err := s.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, "", got)
}

func TestSet_TrimsAndReturnsStoredValue(t *testing.T) {
	s, _ := newSession(t)
	ctx := context.Background()

	stored, err := s.Set(ctx, "  ak_live_123 \n")
	require.NoError(t, err)
	require.Equal(t, "ak_live_123", stored)

	got, err := s.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "ak_live_123", got)
}

func TestSet_RejectsBlank(t *testing.T) {
	s, _ := newSession(t)
	ctx := context.Background()

	for _, v := range []string{"", "   ", "\t\n"} {
		_, err := s.Set(ctx, v)
		require.ErrorIs(t, err, ErrEmptyCredential)
	}

	got, err := s.Get(ctx)
	require.NoError(t, err)
	require.Empty(t, got, "rejected value must not be stored")
}

func TestClear_RemovesKeyAndTimestamp(t *testing.T) {
	s, _ := newSession(t)
	ctx := context.Background()

	_, err := s.Set(ctx, "ak")
	require.NoError(t, err)
	require.NoError(t, s.Clear(ctx))

	got, err := s.Get(ctx)
	require.NoError(t, err)
	require.Empty(t, got)

	_, ok, err := s.SetAt(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Clear(ctx), "clearing twice is fine")
}

func TestSetAt_RecordsStoreTime(t *testing.T) {
	s, _ := newSession(t)
	ctx := context.Background()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	_, err := s.Set(ctx, "ak")
	require.NoError(t, err)

	at, ok, err := s.SetAt(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, fixed.Equal(at))
}

func TestKeySurvivesReopen(t *testing.T) {
	s, dsn := newSession(t)
	ctx := context.Background()

	_, err := s.Set(ctx, "ak_persist")
	require.NoError(t, err)

	db, err := store.InitDatabase(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	got, err := New(db).Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "ak_persist", got)
}

func TestPresent(t *testing.T) {
	s, _ := newSession(t)
	ctx := context.Background()

	assert.False(t, s.Present(ctx))

	_, err := s.Set(ctx, "ak_live_123")
	require.NoError(t, err)
	assert.True(t, s.Present(ctx))

	require.NoError(t, s.Clear(ctx))
	assert.False(t, s.Present(ctx))
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, "", Fingerprint(""))
	assert.Equal(t, "****", Fingerprint("abc"))
	assert.Equal(t, "****", Fingerprint("abcd"))
	assert.Equal(t, "ak_l…", Fingerprint("ak_live_123"))
}
