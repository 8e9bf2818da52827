package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileGateway persists the document as a single JSON file. Writes go through
// a temp file plus rename so a crash mid-write never corrupts the record.
type FileGateway struct {
	Path string

	// Now is the clock used when a load falls back to defaults. Nil means
	// time.Now.
	Now func() time.Time
}

// NewFileGateway returns a gateway persisting to path.
func NewFileGateway(path string) *FileGateway {
	return &FileGateway{Path: path}
}

func (g *FileGateway) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// Load reads the data file. Missing file, unreadable content or schema
// mismatch all yield the default state.
func (g *FileGateway) Load() PersistedState {
	raw, err := os.ReadFile(g.Path)
	if err != nil {
		return DefaultState(g.now())
	}
	return loadRaw(raw, g.now())
}

// Save writes the full document, overwriting whatever is stored.
func (g *FileGateway) Save(state PersistedState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	dir := filepath.Dir(g.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".elternrat-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, g.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}
