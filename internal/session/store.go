// Package session persists the authenticated user profile between
// invocations, the way the web client keeps it in browser local storage.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/edgehq/edge-cli/internal/models"
)

// ErrNotOnboarded is returned when no session exists yet.
var ErrNotOnboarded = errors.New("no active session: run 'edge onboard' or 'edge login' first")

// Session is the locally persisted identity: the user profile plus the
// bearer token for the identity provider, when one is in use. There is no
// refresh or expiry logic; the session is trusted until cleared.
type Session struct {
	User        models.User `json:"user"`
	AccessToken string      `json:"access_token,omitempty"`
}

// Store reads and writes the session file.
type Store struct {
	path string
}

// NewStore creates a store rooted at dataDir.
func NewStore(dataDir string) *Store {
	return &Store{path: filepath.Join(dataDir, "session.json")}
}

// Path returns the session file location.
func (s *Store) Path() string { return s.path }

// Load reads the persisted session. A missing file means the user has not
// onboarded on this machine.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotOnboarded
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parse session file %s: %w", s.path, err)
	}
	if sess.User.ID == "" {
		return nil, ErrNotOnboarded
	}
	return &sess, nil
}

// Save writes the session atomically with owner-only permissions.
func (s *Store) Save(sess *Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace session: %w", err)
	}
	return nil
}

// Clear removes the session file. Clearing an absent session is not an
// error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
