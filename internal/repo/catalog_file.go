// Package repo implements the persistence layer for the catalogue. The
// entire book collection lives in one JSON document that is rewritten in
// full on every mutation and re-read on process start.
//
// Error semantics:
//   - Load returns ErrNoCatalog when the file is missing, empty, or does not
//     parse; callers are expected to fall back to the seed catalogue.
//   - Save failures are returned to the caller, which logs and absorbs them
//     (the in-memory collection stays authoritative for the process).
package repo

import (
	"errors"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"github.com/dkoutsos/go-library-backend/internal/domain"
)

// ErrNoCatalog is returned by Load when no usable catalogue document exists
// at the configured path (missing file, empty file, or malformed JSON).
var ErrNoCatalog = errors.New("no usable catalogue file")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CatalogFile reads and writes the catalogue document at a fixed path.
// It is not itself synchronized; the owning service serializes access.
type CatalogFile struct {
	path string
}

// NewCatalogFile returns a CatalogFile bound to path.
func NewCatalogFile(path string) *CatalogFile {
	return &CatalogFile{path: path}
}

// Path returns the location of the catalogue document.
func (f *CatalogFile) Path() string { return f.path }

// Load reads and parses the catalogue document. A missing, empty, or
// unparsable file yields ErrNoCatalog; other I/O errors are propagated.
//
// The decoded books carry whatever availableCopies value was on disk;
// the caller must recompute availability before using them.
func (f *CatalogFile) Load() ([]domain.Book, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoCatalog
		}
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrNoCatalog
	}

	var books []domain.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, ErrNoCatalog
	}
	return books, nil
}

// Save serializes the full collection and replaces the catalogue document.
// The write goes through a temp file in the same directory followed by a
// rename, so a crash mid-write never leaves a truncated document behind.
func (f *CatalogFile) Save(books []domain.Book) error {
	if books == nil {
		books = []domain.Book{}
	}
	data, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".catalog-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
