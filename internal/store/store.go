// Package store persists the deck collection as a single JSON document.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/conorfennell/vocard/internal/domain"
)

// Store reads and writes the whole deck collection at a fixed path.
// The document on disk is an array of decks with nested cards; every save
// rewrites it in full.
type Store struct {
	path string
}

// New returns a store bound to the given document path. The parent
// directory is created if it does not exist.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store: empty document path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: creating directory for %s: %w", path, err)
	}
	return &Store{path: path}, nil
}

// Path returns the document path the store was built with.
func (s *Store) Path() string {
	return s.path
}

// Load reads the deck collection. A missing document is not an error: the
// first run returns (nil, nil). A document that exists but does not parse
// wraps domain.ErrCorruptData.
func (s *Store) Load() ([]domain.Deck, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: reading %s: %w", s.path, err)
	}

	var decks []domain.Deck
	if err := json.Unmarshal(data, &decks); err != nil {
		return nil, fmt.Errorf("store: parsing %s: %w: %v", s.path, domain.ErrCorruptData, err)
	}
	return decks, nil
}

// Save serializes the full collection and replaces the document. The write
// goes to a temp file in the same directory followed by a rename, so a
// reader never observes a half-written document. Failures wrap
// domain.ErrPersistence.
func (s *Store) Save(decks []domain.Deck) error {
	data, err := json.MarshalIndent(decks, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encoding decks: %w: %v", domain.ErrPersistence, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".vocard-*.json")
	if err != nil {
		return fmt.Errorf("store: creating temp file: %w: %v", domain.ErrPersistence, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("store: writing %s: %w: %v", tmpName, domain.ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: closing %s: %w: %v", tmpName, domain.ErrPersistence, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: replacing %s: %w: %v", s.path, domain.ErrPersistence, err)
	}
	return nil
}
