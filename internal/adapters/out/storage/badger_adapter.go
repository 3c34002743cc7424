package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/ports/out"
	"github.com/dgraph-io/badger/v4"
)

type BadgerAdapter struct {
	db     *badger.DB
	logger out.LoggerPort
}

// NewBadgerAdapter opens the database at path. An empty path opens an in-memory instance.
func NewBadgerAdapter(path string, logger out.LoggerPort) (*BadgerAdapter, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		logger.Error("storage.badger.open_failed", out.LogFields{
			"path":  path,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("storage.badger.open_failed: %w", err)
	}

	logger.Info("storage.badger.opened", out.LogFields{
		"path":     path,
		"inMemory": path == "",
	})

	return &BadgerAdapter{db: db, logger: logger}, nil
}

func (b *BadgerAdapter) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte

	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage.badger.get_failed: %w", err)
	}

	return value, true, nil
}

func (b *BadgerAdapter) Put(ctx context.Context, key string, value []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("storage.badger.put_failed: %w", err)
	}
	return nil
}

func (b *BadgerAdapter) Close() error {
	return b.db.Close()
}
