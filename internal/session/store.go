package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/XY-Finance/callforge/internal/builder"
)

// ErrNoSession is returned when no call is being built.
var ErrNoSession = errors.New("no call in progress — start one with `callforge new <function>`")

const sessionFile = "session.json"

// Store persists the in-progress call between CLI invocations. The call
// itself has no persistence requirement — this is glue so each `callforge`
// command can pick up where the previous one left off.
type Store struct {
	path string
}

// NewStore creates a Store rooted at the config directory.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, sessionFile)}
}

// Load reads the current call. ErrNoSession if none was started.
func (s *Store) Load() (*builder.Call, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	var c builder.Call
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing session: %w", err)
	}
	if c.Values == nil {
		c.Values = make(map[string]*builder.Value)
	}
	return &c, nil
}

// Save writes the current call to disk.
func (s *Store) Save(c *builder.Call) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Discard deletes the session. Discarding a non-existent session is fine.
func (s *Store) Discard() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Exists reports whether a call is in progress.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}
