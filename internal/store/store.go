// Package store persists the company catalog and the selection list.
//
// Every backend treats a missing collection as an empty array and stores the
// selection verbatim: deduplication and the capacity limit belong to the UI.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"companypicker/internal/config"
	"companypicker/internal/domain"
)

// Driver names accepted in storage.driver
const (
	DriverFile   = "file"
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
)

// Collection names one of the two stored arrays
type Collection string

const (
	Catalog   Collection = "catalog"
	Selection Collection = "selection"
)

var (
	// ErrUnknownDriver is returned by Open for an unsupported storage.driver
	ErrUnknownDriver = errors.New("unknown storage driver")

	// ErrNotArray is returned for a document that is not a single JSON array
	ErrNotArray = errors.New("document is not a JSON array")
)

// Store provides access to the catalog and the selection.
//
// ReadDocument and WriteDocument move a collection as raw JSON so items the
// typed methods do not know about survive a round trip untouched.
type Store interface {
	LoadCatalog(ctx context.Context) ([]domain.Company, error)
	LoadSelection(ctx context.Context) ([]domain.Company, error)
	SaveSelection(ctx context.Context, companies []domain.Company) error
	ReadDocument(ctx context.Context, c Collection) (json.RawMessage, error)
	WriteDocument(ctx context.Context, c Collection, doc json.RawMessage) error
	Close() error
}

// CatalogImporter replaces the whole catalog
type CatalogImporter interface {
	ReplaceCatalog(ctx context.Context, companies []domain.Company) error
}

// Open creates the backend named by cfg.Driver. Non-file backends with an
// empty catalog are seeded from cfg.CatalogSeed when it is set.
func Open(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	var (
		s   Store
		err error
	)
	switch cfg.Driver {
	case DriverFile, "":
		return NewFileStore(
			filepath.Join(cfg.DataDir, cfg.CatalogFile),
			filepath.Join(cfg.DataDir, cfg.SelectionFile),
		)
	case DriverBolt:
		s, err = NewBoltStore(filepath.Join(cfg.DataDir, "companypicker.bolt"))
	case DriverSQLite:
		s, err = NewSQLiteStore(ctx, filepath.Join(cfg.DataDir, "companypicker.sqlite"))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.CatalogSeed != "" {
		if err := seedCatalog(ctx, s, cfg.CatalogSeed, logger); err != nil {
			_ = s.Close()
			return nil, err
		}
	}
	return s, nil
}

func seedCatalog(ctx context.Context, s Store, path string, logger *zap.Logger) error {
	importer, ok := s.(CatalogImporter)
	if !ok {
		return nil
	}
	existing, err := s.LoadCatalog(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	companies, err := ReadCompaniesFile(path)
	if err != nil {
		return err
	}
	if err := importer.ReplaceCatalog(ctx, companies); err != nil {
		return err
	}
	logger.Info("seeded catalog", zap.String("path", path), zap.Int("count", len(companies)))
	return nil
}

// ReadCompaniesFile parses a JSON file holding a top-level array of companies
func ReadCompaniesFile(path string) ([]domain.Company, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return decodeCompanies(data, path)
}

// ParseArray checks that doc holds exactly one JSON array and returns its
// elements. The elements themselves are not inspected.
func ParseArray(doc []byte) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(doc, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotArray, err)
	}
	if items == nil {
		// null
		return nil, ErrNotArray
	}
	return items, nil
}

func encodeCompanies(companies []domain.Company) (json.RawMessage, error) {
	data, err := json.MarshalIndent(domain.Clone(companies), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return data, nil
}

func decodeCompanies(data []byte, source string) ([]domain.Company, error) {
	var companies []domain.Company
	if err := json.Unmarshal(data, &companies); err != nil {
		return nil, fmt.Errorf("failed to parse JSON from %s: %w", source, err)
	}
	return domain.Clone(companies), nil
}
