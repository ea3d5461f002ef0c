package catalog

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"velora-gallery/pkg/models"
)

// Store reads and writes the JSON index file.
//
// Writes are whole-file overwrites with no locking between processes: the
// last writer wins. That is an accepted limitation; in-process callers
// serialize through the catalog service instead.
type Store struct {
	path string
}

// NewStore returns a store backed by the index file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Read parses the index file. A missing file, unreadable file, or anything
// that is not a JSON object yields an empty catalog, never an error.
func (s *Store) Read() *models.Catalog {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return models.NewCatalog()
	}
	cat := models.NewCatalog()
	if err := json.Unmarshal(data, cat); err != nil {
		log.Printf("Ignoring invalid index file %s: %v", s.path, err)
		return models.NewCatalog()
	}
	return cat
}

// Write serializes the catalog pretty-printed, keys in catalog order, slashes
// unescaped, and overwrites the index file. Best-effort: a crash mid-write
// can corrupt the index.
func (s *Store) Write(cat *models.Catalog) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cat); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
