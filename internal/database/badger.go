package database

import (
	"errors"
	"fmt"
	"log"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// BadgerStore implements Store on BadgerDB, giving the application a
// durable local key/value space that survives restarts.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens (or creates) a Badger database under dir.
func OpenBadger(dir string, logger *log.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // badger's own logger is too chatty for a client library

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open store at %s: %w", dir, err)
	}

	if logger != nil {
		logger.Printf("Opened local store at %s", dir)
	}

	return &BadgerStore{db: db}, nil
}

// Get decodes the value at key into v.
func (s *BadgerStore) Get(key Key, v any) error {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key.bytes())
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	return err
}

// Put encodes v and writes it at key.
func (s *BadgerStore) Put(key Key, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key.bytes(), data)
	})
}

// Delete removes the value at key.
func (s *BadgerStore) Delete(key Key) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key.bytes())
	})
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
