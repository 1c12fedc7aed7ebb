// Package session persists the operator's session marker between CLI runs.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/veritaslab/veritas/internal/client/api"
	"github.com/veritaslab/veritas/internal/filex"
)

const markerFileName = "session.json"

// Store reads and writes the session marker file under a directory in the
// current working directory.
type Store struct {
	dirName string
}

// NewStore creates a session store rooted at dirName.
func NewStore(dirName string) *Store {
	return &Store{dirName: dirName}
}

func (s *Store) markerPath() (string, error) {
	dir, err := filex.EnsureSubDir(s.dirName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, markerFileName), nil
}

// Load returns the persisted session, or nil when there is none. An expired
// or unreadable marker is discarded so a stale session never survives a
// restart.
func (s *Store) Load() (*api.Session, error) {
	path, err := s.markerPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session marker: %w", err)
	}

	var session api.Session
	if err := json.Unmarshal(data, &session); err != nil {
		_ = os.Remove(path)
		return nil, nil
	}
	if session.Expired() {
		_ = os.Remove(path)
		return nil, nil
	}
	return &session, nil
}

// Save persists the session marker.
func (s *Store) Save(session *api.Session) error {
	path, err := s.markerPath()
	if err != nil {
		return err
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session marker: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write session marker: %w", err)
	}
	return nil
}

// Clear removes the session marker if present.
func (s *Store) Clear() error {
	path, err := s.markerPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session marker: %w", err)
	}
	return nil
}
