package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"storefront/internal/models"
)

// DefaultDataFile is the backing document location relative to the working directory.
const DefaultDataFile = "data/products.json"

// documentFileMode is applied to the temporary file before it replaces the document.
const documentFileMode fs.FileMode = 0o644

// JSONFileStore keeps the collection in a single JSON file.
type JSONFileStore struct {
	path string
}

// NewJSONFileStore creates a store backed by path, creating its directory if needed.
func NewJSONFileStore(path string) (*JSONFileStore, error) {
	if path == "" {
		path = DefaultDataFile
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &StorageError{Op: "init", Err: fmt.Errorf("failed to create data directory: %w", err)}
	}
	return &JSONFileStore{path: path}, nil
}

// Path returns the location of the backing document.
func (s *JSONFileStore) Path() string {
	return s.path
}

// Load reads the whole collection from disk.
func (s *JSONFileStore) Load() []models.Product {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("Error reading products file %s: %v", s.path, err)
		}
		return []models.Product{}
	}
	return decodeDocument(data, s.path)
}

// Save writes the collection to a temporary file and renames it over the
// document, so readers never observe a half-written file.
func (s *JSONFileStore) Save(products []models.Product) error {
	data, err := encodeDocument(products)
	if err != nil {
		return &StorageError{Op: "save", Err: fmt.Errorf("failed to encode products: %w", err)}
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".products-*.json")
	if err != nil {
		log.Printf("Error writing products file %s: %v", s.path, err)
		return &StorageError{Op: "save", Err: err}
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(documentFileMode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		log.Printf("Error writing products file %s: %v", s.path, err)
		return &StorageError{Op: "save", Err: err}
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		log.Printf("Error writing products file %s: %v", s.path, err)
		return &StorageError{Op: "save", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "save", Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		log.Printf("Error writing products file %s: %v", s.path, err)
		return &StorageError{Op: "save", Err: err}
	}
	return nil
}
