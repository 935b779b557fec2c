// Package store persists the user aggregate as an indented JSON file.
//
// There is no long-lived in-memory copy: every transaction re-reads the file,
// mutates the aggregate and writes the whole file back before the lock is
// released. The file is the single source of truth, so a crash between
// transactions loses nothing.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/CalvinTheRed/BallotBot/internal/domain"
	"github.com/CalvinTheRed/BallotBot/internal/metrics"
)

// FileStore is the durable user store plus the concurrency guard that
// serializes all read-modify-write access to it.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by the file at path. The file is not
// touched until the first transaction.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the aggregate from disk. A missing file yields an empty
// aggregate; so does an unreadable or corrupt one. Losing a corrupt store is
// an accepted tradeoff, the error is only logged.
func (s *FileStore) Load() domain.UserData {
	blob, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Info("User store not found, initializing new store", "path", s.path)
		return domain.NewUserData()
	}
	if err != nil {
		slog.Error("Failed to read user store, starting empty", "path", s.path, "error", err)
		metrics.StoreLoadErrors.Inc()
		return domain.NewUserData()
	}

	var data domain.UserData
	if err := json.Unmarshal(blob, &data); err != nil {
		slog.Error("User store is corrupt, starting empty", "path", s.path, "error", err)
		metrics.StoreLoadErrors.Inc()
		return domain.NewUserData()
	}
	if data.Whitelist == nil {
		data.Whitelist = []string{}
	}
	if data.Blacklist == nil {
		data.Blacklist = []string{}
	}
	if data.Votes == nil {
		data.Votes = map[string]string{}
	}
	return data
}

// Update runs fn against the current persisted aggregate under the store
// lock. fn reports whether it mutated the aggregate; if so the whole file is
// rewritten before the lock is released. Save failures are logged and the
// in-memory result is discarded — callers continue regardless.
func (s *FileStore) Update(fn func(*domain.UserData) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.Load()
	if !fn(&data) {
		return
	}

	if err := s.save(data); err != nil {
		slog.Error("Failed to save user store", "path", s.path, "error", err)
		metrics.StoreSaveErrors.Inc()
		return
	}
	metrics.StoreSaves.Inc()
}

// save rewrites the whole file. The write goes through a temp file and a
// rename so a crash mid-write cannot leave a truncated store behind.
func (s *FileStore) save(data domain.UserData) error {
	blob, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal user store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return fmt.Errorf("write user store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace user store: %w", err)
	}
	return nil
}
