package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"companypicker/internal/domain"
)

// FileStore keeps each collection in its own JSON file holding a top-level array
type FileStore struct {
	mu            sync.RWMutex
	catalogPath   string
	selectionPath string
}

// NewFileStore creates the store, writing [] to any file that does not exist yet
func NewFileStore(catalogPath, selectionPath string) (*FileStore, error) {
	s := &FileStore{
		catalogPath:   catalogPath,
		selectionPath: selectionPath,
	}
	for _, path := range []string{catalogPath, selectionPath} {
		if err := ensureArrayFile(path); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// CatalogPath returns the catalog file location
func (s *FileStore) CatalogPath() string { return s.catalogPath }

// SelectionPath returns the selection file location
func (s *FileStore) SelectionPath() string { return s.selectionPath }

func (s *FileStore) LoadCatalog(ctx context.Context) ([]domain.Company, error) {
	return s.load(ctx, Catalog)
}

func (s *FileStore) LoadSelection(ctx context.Context) ([]domain.Company, error) {
	return s.load(ctx, Selection)
}

func (s *FileStore) SaveSelection(ctx context.Context, companies []domain.Company) error {
	return s.save(ctx, Selection, companies)
}

// ReplaceCatalog overwrites the catalog file
func (s *FileStore) ReplaceCatalog(ctx context.Context, companies []domain.Company) error {
	return s.save(ctx, Catalog, companies)
}

// ReadDocument returns the file contents as stored, after checking they hold an array
func (s *FileStore) ReadDocument(ctx context.Context, c Collection) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.path(c)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, err := os.ReadFile(path)
	s.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if _, err := ParseArray(data); err != nil {
		return nil, fmt.Errorf("failed to parse JSON from %s: %w", path, err)
	}
	return data, nil
}

// WriteDocument replaces the file with doc byte for byte
func (s *FileStore) WriteDocument(ctx context.Context, c Collection, doc json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(c)
	if err != nil {
		return err
	}
	if _, err := ParseArray(doc); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return writeFileAtomic(path, doc)
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) path(c Collection) (string, error) {
	switch c {
	case Catalog:
		return s.catalogPath, nil
	case Selection:
		return s.selectionPath, nil
	}
	return "", fmt.Errorf("unknown collection %q", c)
}

func (s *FileStore) load(ctx context.Context, c Collection) ([]domain.Company, error) {
	doc, err := s.ReadDocument(ctx, c)
	if err != nil {
		return nil, err
	}
	path, _ := s.path(c)
	return decodeCompanies(doc, path)
}

func (s *FileStore) save(ctx context.Context, c Collection, companies []domain.Company) error {
	doc, err := encodeCompanies(companies)
	if err != nil {
		return err
	}
	return s.WriteDocument(ctx, c, doc)
}

func ensureArrayFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	return nil
}

// writeFileAtomic replaces path through a rename so readers never observe a
// partially written file
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
