package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/speculum/internal/interfaces"
)

// kvPrefix namespaces raw keys away from badgerhold's typed records.
const kvPrefix = "kv:"

// KVStorage stores small operational values (robots cache, run state)
// as raw Badger entries, bypassing badgerhold's struct encoding.
type KVStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewKVStorage creates key-value storage backed by Badger
func NewKVStorage(db *BadgerDB, logger arbor.ILogger) interfaces.KVStorage {
	return &KVStorage{db: db, logger: logger}
}

func rawKey(key string) []byte {
	return []byte(kvPrefix + key)
}

// Set stores a value under a key
func (s *KVStorage) Set(ctx context.Context, key string, value []byte) error {
	err := s.db.Store().Badger().Update(func(txn *badger.Txn) error {
		return txn.Set(rawKey(key), value)
	})
	if err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// Get retrieves a value by key. Returns nil when absent.
func (s *KVStorage) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.Store().Badger().View(func(txn *badger.Txn) error {
		item, err := txn.Get(rawKey(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return value, nil
}

// Delete removes a key
func (s *KVStorage) Delete(ctx context.Context, key string) error {
	err := s.db.Store().Badger().Update(func(txn *badger.Txn) error {
		return txn.Delete(rawKey(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}
