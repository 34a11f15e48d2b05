// Package store caches certified optima in BadgerDB, keyed by instance fingerprint.
//
// Only Converged results are worth caching: a budget-limited answer depends on the
// budget and the machine, a certified optimum does not.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/katalvlaran/lvbnb/knapsack"
)

// ErrNotCertified is returned by Put for results that are not Converged.
var ErrNotCertified = errors.New("store: only converged results can be cached")

// Config configures Open.
type Config struct {
	// Path is the database directory; ignored when InMemory is set.
	Path string

	// InMemory keeps everything in RAM (tests).
	InMemory bool

	// Logger receives badger's own log lines; nil silences them.
	Logger *slog.Logger
}

// Record is the cached form of a certified result.
type Record struct {
	Value     float64   `json:"value"`
	Selection []int     `json:"selection"`
	Items     int       `json:"items"`
	Capacity  float64   `json:"capacity"`
	SolvedAt  time.Time `json:"solved_at"`
}

// FromResult builds a Record from a converged result.
func FromResult(res knapsack.Result, items int, capacity float64) (Record, error) {
	if res.Status != knapsack.Converged {
		return Record{}, ErrNotCertified
	}

	return Record{
		Value:     res.Value,
		Selection: append([]int{}, res.Selection...),
		Items:     items,
		Capacity:  capacity,
		SolvedAt:  time.Now().UTC(),
	}, nil
}

// Store is a fingerprint → Record cache. Safe for concurrent use.
type Store struct {
	db *badger.DB
}

// badgerLogger adapts slog.Logger to badger.Logger.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Open opens (creating if needed) the cache described by cfg.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("store: path is required for a persistent cache")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("store: create %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: open badger: %w", err)
	}

	return &Store{db: db}, nil
}

func key(fp uint64) []byte {
	return []byte(fmt.Sprintf("result/%016x", fp))
}

// Get returns the cached record for fp; ok is false on a miss.
func (s *Store) Get(fp uint64) (rec Record, ok bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(fp))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		ok = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return Record{}, false, fmt.Errorf("store: get %016x: %w", fp, err)
	}

	return rec, ok, nil
}

// Put stores rec under fp, replacing any previous entry.
func (s *Store) Put(fp uint64, rec Record) error {
	val, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(fp), val)
	})
	if err != nil {
		return fmt.Errorf("store: put %016x: %w", fp, err)
	}

	return nil
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
