// Package lossdb persists per-patch training losses so that hard patches can
// be resampled across epochs. Records are keyed by dataset and patch
// identifier and stored in a local leveldb database, typically the file named
// by the loss_by_patch_file configuration key.
package lossdb

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
	"golang.org/x/exp/slices"
)

const keySeparator = "/"

// Record is the loss of a single training patch at the epoch it was last
// visited.
type Record struct {
	Dataset string    `json:"dataset"`
	PatchID string    `json:"patchID"`
	Epoch   int       `json:"epoch"`
	Loss    float64   `json:"loss"`
	Updated time.Time `json:"updated"`
}

type DB struct {
	db *leveldb.DB
}

// Open opens or creates the loss database at path.
func Open(path string) (*DB, error) {
	if path == "" {
		return nil, errors.New("loss database path not set")
	}
	if basepath := filepath.Dir(path); basepath != "" {
		os.MkdirAll(basepath, os.ModePerm)
	}
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func recordKey(dataset, patchID string) []byte {
	return []byte(dataset + keySeparator + patchID)
}

func (d *DB) Put(ctx context.Context, record Record) error {
	if record.Updated.IsZero() {
		record.Updated = time.Now()
	}
	val, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return d.db.Put(recordKey(record.Dataset, record.PatchID), val, nil)
}

// Get returns the record for a patch, or ok=false when none was stored.
func (d *DB) Get(ctx context.Context, dataset, patchID string) (Record, bool, error) {
	val, err := d.db.Get(recordKey(dataset, patchID), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return Record{}, false, nil
		}
		return Record{}, false, err
	}
	var record Record
	if err := json.Unmarshal(val, &record); err != nil {
		return Record{}, false, err
	}
	return record, true, nil
}

// Range returns all records of a dataset sorted by patch identifier.
func (d *DB) Range(ctx context.Context, dataset string) ([]Record, error) {
	iter := d.db.NewIterator(util.BytesPrefix([]byte(dataset+keySeparator)), nil)
	defer iter.Release()

	out := []Record{}
	for iter.Next() {
		var record Record
		if err := json.Unmarshal(iter.Value(), &record); err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return out, nil
}

// Hardest returns the n records of a dataset with the highest losses, most
// lossy first.
func (d *DB) Hardest(ctx context.Context, dataset string, n int) ([]Record, error) {
	records, err := d.Range(ctx, dataset)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(records, func(a, b Record) bool {
		return a.Loss > b.Loss
	})
	if n < len(records) {
		records = records[:n]
	}
	return records, nil
}

// Remove deletes the record for a patch. Deleting a missing record is not an
// error.
func (d *DB) Remove(ctx context.Context, dataset, patchID string) error {
	return d.db.Delete(recordKey(dataset, patchID), nil)
}

// Datasets lists the datasets having at least one record.
func (d *DB) Datasets(ctx context.Context) ([]string, error) {
	iter := d.db.NewIterator(nil, nil)
	defer iter.Release()

	seen := map[string]struct{}{}
	out := []string{}
	for iter.Next() {
		key := string(iter.Key())
		dataset, _, found := strings.Cut(key, keySeparator)
		if !found {
			continue
		}
		if _, ok := seen[dataset]; ok {
			continue
		}
		seen[dataset] = struct{}{}
		out = append(out, dataset)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return out, nil
}
