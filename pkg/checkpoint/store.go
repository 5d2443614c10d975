// Package checkpoint persists execution option snapshots so a restarted job can
// restore, or compare against, the options it ran with.
package checkpoint

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/joeydtaylor/steeze-doris/pkg/execution"
)

// ErrNotFound is returned by Load when no snapshot exists for the key.
var ErrNotFound = errors.New("checkpoint: snapshot not found")

const keyPrefix = "execution/"

// Store is a BadgerDB-backed snapshot store.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a store in dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	// Snapshots are a few hundred bytes; keep them in the LSM tree.
	opts.ValueThreshold = 1 << 10

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: open badger: %w", err)
	}
	return &Store{db: db}, nil
}

func key(name string) []byte { return []byte(keyPrefix + name) }

// Save writes the snapshot of o under name, replacing any previous one.
func (s *Store) Save(name string, o execution.Options) error {
	data, err := execution.Encode(o)
	if err != nil {
		return fmt.Errorf("checkpoint: encode %q: %w", name, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(name), data)
	})
}

// Load restores the snapshot saved under name.
func (s *Store) Load(name string) (execution.Options, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(name))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return execution.Options{}, ErrNotFound
	}
	if err != nil {
		return execution.Options{}, fmt.Errorf("checkpoint: load %q: %w", name, err)
	}
	o, err := execution.Decode(data)
	if err != nil {
		return execution.Options{}, fmt.Errorf("checkpoint: restore %q: %w", name, err)
	}
	return o, nil
}

// Delete removes the snapshot under name. Missing keys are not an error.
func (s *Store) Delete(name string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(key(name)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return nil
	})
}

// Names lists the names with a saved snapshot.
func (s *Store) Names() ([]string, error) {
	var out []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			out = append(out, string(it.Item().Key()[len(keyPrefix):]))
		}
		return nil
	})
	return out, err
}

// Close closes the store
func (s *Store) Close() error {
	return s.db.Close()
}
