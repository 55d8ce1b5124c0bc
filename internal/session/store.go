package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store persists the authentication flag across client restarts. The
// interface exists so tests can inject a double instead of touching the
// user's config directory.
type Store interface {
	// Get reads the persisted flag. A missing flag is (false, nil).
	Get() (bool, error)
	// Set writes the flag.
	Set(v bool) error
	// Remove deletes the flag. Removing an absent flag is not an error.
	Remove() error
}

// FileStore keeps the flag in a single file under the user config
// directory, the client-side equivalent of the browser's local storage
// entry.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Get implements Store.
func (s *FileStore) Get() (bool, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read session flag: %w", err)
	}
	return strings.TrimSpace(string(raw)) == "true", nil
}

// Set implements Store.
func (s *FileStore) Set(v bool) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	value := "false"
	if v {
		value = "true"
	}
	if err := os.WriteFile(s.path, []byte(value+"\n"), 0o600); err != nil {
		return fmt.Errorf("write session flag: %w", err)
	}
	return nil
}

// Remove implements Store.
func (s *FileStore) Remove() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session flag: %w", err)
	}
	return nil
}
