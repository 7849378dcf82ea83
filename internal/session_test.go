package internal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionValid(t *testing.T) {
	t.Run("nil session", func(t *testing.T) {
		var s *Session
		assert.False(t, s.Valid())
	})

	t.Run("empty token", func(t *testing.T) {
		s := &Session{ExpiresAt: time.Now().Add(time.Hour)}
		assert.False(t, s.Valid())
	})

	t.Run("expired token", func(t *testing.T) {
		s := &Session{Token: "tok", ExpiresAt: time.Now().Add(-time.Minute)}
		assert.False(t, s.Valid())
	})

	t.Run("live token", func(t *testing.T) {
		s := &Session{Token: "tok", ExpiresAt: time.Now().Add(sessionTTL)}
		assert.True(t, s.Valid())
	})
}

func TestSessionPersistence(t *testing.T) {
	dir := t.TempDir()
	path := sessionPath(filepath.Join(dir, "ptshare-client-config.yaml"))

	t.Run("missing file is not an error", func(t *testing.T) {
		s, err := loadSession(path)
		require.NoError(t, err)
		assert.Nil(t, s)
	})

	t.Run("round trip", func(t *testing.T) {
		want := &Session{
			Token:     "tok-abc",
			ExpiresAt: time.Now().Add(sessionTTL).Truncate(time.Second),
			UserID:    7,
			UserName:  "alice",
		}
		require.NoError(t, saveSession(path, want))

		got, err := loadSession(path)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, want.Token, got.Token)
		assert.Equal(t, want.UserID, got.UserID)
		assert.Equal(t, want.UserName, got.UserName)
		assert.True(t, want.ExpiresAt.Equal(got.ExpiresAt))
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, removeSession(path))

		s, err := loadSession(path)
		require.NoError(t, err)
		assert.Nil(t, s)

		// Removing twice is fine.
		require.NoError(t, removeSession(path))
	})
}

func TestSessionPath(t *testing.T) {
	got := sessionPath("/home/alice/.config/ptshare-client-config.yaml")
	assert.Equal(t, "/home/alice/.config/ptshare-session.yaml", got)
}
