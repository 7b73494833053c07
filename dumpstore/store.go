// Copyright 2025 Pressgather Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package dumpstore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

// Store persists raw page payloads that yielded no parseable results, for
// offline inspection. Each entry is keyed by (keyword, page, timestamp) so
// concurrent page fetchers never contend on a key.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// badgerLoggerAdapter adapts slog.Logger to the badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// Open opens a dump store at the given directory, creating it if needed.
func Open(dir string) (*Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		info, err = os.Stat(dir)
		if err != nil {
			return nil, err
		}
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory opens a store that keeps dumps only for the process
// lifetime. Used by tests and callers that opt out of on-disk debug data.
func OpenInMemory() (*Store, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Store, error) {
	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, logger: slog.Default()}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveDump stores one raw page payload under a unique
// (keyword, page, timestamp) key. Failures here never fail a harvest; the
// caller logs and continues.
func (s *Store) SaveDump(ctx context.Context, keyword string, page int, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := makeDumpKey(keyword, page, time.Now())
	return s.db.Update(func(tx *badger.Txn) error {
		return tx.Set(key, payload)
	})
}

// Dump is one stored payload reference.
type Dump struct {
	Key     string
	Payload []byte
}

// DumpsForKeyword returns every stored payload for a keyword in write
// order.
func (s *Store) DumpsForKeyword(ctx context.Context, keyword string) ([]Dump, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var dumps []Dump
	err := s.db.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeKeywordPrefix(keyword)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			payload, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			dumps = append(dumps, Dump{Key: string(item.Key()), Payload: payload})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dumps, nil
}

// Count returns the number of stored dumps across all keywords.
func (s *Store) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count := 0
	err := s.db.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(dumpPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	})
	return count, err
}
