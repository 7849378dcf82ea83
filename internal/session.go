package internal

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// sessionTTL matches the backend token lifetime.
const sessionTTL = 12 * time.Hour

// Session is the authenticated user's bearer token and identity. The
// auth flow on the root Model is the sole writer; every other component
// only reads it, to attach the token to requests and to stamp author
// fields on writes.
type Session struct {
	Token     string    `yaml:"token"`
	ExpiresAt time.Time `yaml:"expires_at"`
	UserID    int64     `yaml:"user_id"`
	UserName  string    `yaml:"user_name"`
}

// Valid reports whether the session holds an unexpired token.
func (s *Session) Valid() bool {
	return s != nil && s.Token != "" && time.Now().Before(s.ExpiresAt)
}

// sessionPath puts the session file next to the config file.
func sessionPath(cfgPath string) string {
	return filepath.Join(filepath.Dir(cfgPath), "ptshare-session.yaml")
}

// loadSession reads a persisted session. A missing file is not an
// error; it just means nobody is logged in.
func loadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func saveSession(path string, s *Session) error {
	out, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0600)
}

func removeSession(path string) error {
	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
