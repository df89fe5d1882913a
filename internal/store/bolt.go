package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"companypicker/internal/domain"
)

// each bucket holds one JSON array under boltItemsKey; buckets are named
// after the Collection
var boltItemsKey = []byte("items")

// BoltStore keeps both collections in a bbolt database, one JSON array per bucket
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens (or creates) the database at path
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database %s: %w", path, err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		for _, c := range []Collection{Catalog, Selection} {
			if _, err := tx.CreateBucketIfNotExists([]byte(c)); err != nil {
				return err
			}
		}

		return nil
	}); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (b *BoltStore) LoadCatalog(ctx context.Context) ([]domain.Company, error) {
	return b.load(ctx, Catalog)
}

func (b *BoltStore) LoadSelection(ctx context.Context) ([]domain.Company, error) {
	return b.load(ctx, Selection)
}

func (b *BoltStore) SaveSelection(ctx context.Context, companies []domain.Company) error {
	return b.save(ctx, Selection, companies)
}

// ReplaceCatalog overwrites the catalog bucket
func (b *BoltStore) ReplaceCatalog(ctx context.Context, companies []domain.Company) error {
	return b.save(ctx, Catalog, companies)
}

func (b *BoltStore) Close() error {
	return b.db.Close()
}

// ReadDocument returns the stored array, or [] when nothing was written yet
func (b *BoltStore) ReadDocument(ctx context.Context, c Collection) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(c))
		if bucket == nil {
			return fmt.Errorf("unknown collection %q", c)
		}
		if v := bucket.Get(boltItemsKey); v != nil {
			// v is only valid inside the transaction
			data = append([]byte(nil), v...)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c, err)
	}
	if data == nil {
		return json.RawMessage("[]"), nil
	}

	return data, nil
}

// WriteDocument stores doc as given
func (b *BoltStore) WriteDocument(ctx context.Context, c Collection, doc json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := ParseArray(doc); err != nil {
		return err
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(c))
		if bucket == nil {
			return fmt.Errorf("unknown collection %q", c)
		}
		if err := bucket.Put(boltItemsKey, doc); err != nil {
			return fmt.Errorf("failed to write %s: %w", c, err)
		}

		return nil
	})
}

func (b *BoltStore) load(ctx context.Context, c Collection) ([]domain.Company, error) {
	doc, err := b.ReadDocument(ctx, c)
	if err != nil {
		return nil, err
	}

	return decodeCompanies(doc, "bolt bucket "+string(c))
}

func (b *BoltStore) save(ctx context.Context, c Collection, companies []domain.Company) error {
	doc, err := encodeCompanies(companies)
	if err != nil {
		return err
	}

	return b.WriteDocument(ctx, c, doc)
}
