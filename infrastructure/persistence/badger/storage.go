// Package badger keeps store snapshots in an embedded BadgerDB, one key per
// slot. It suits single-node deployments that need snapshots to survive a
// restart without an external database.
package badger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	pkgerrors "journeybuilder/pkg/errors"
)

const keyPrefix = "slot/"

// Config holds configuration for a BadgerDB instance
type Config struct {
	// Path is the directory for BadgerDB files. Ignored when InMemory is true.
	Path string

	// InMemory keeps everything in RAM. Useful for testing.
	InMemory bool

	SyncWrites bool

	// GCInterval is how often to run value log garbage collection. 0 disables it.
	GCInterval     time.Duration
	GCDiscardRatio float64
}

// DefaultConfig returns defaults for persistent use at path
func DefaultConfig(path string) Config {
	return Config{
		Path:           path,
		SyncWrites:     true,
		GCInterval:     5 * time.Minute,
		GCDiscardRatio: 0.5,
	}
}

// InMemoryConfig returns configuration for tests
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// Storage implements ports.StateStorage on top of BadgerDB
type Storage struct {
	db     *badger.DB
	logger *zap.Logger

	stopGC chan struct{}
	gcDone chan struct{}
}

// zapLogger adapts zap to BadgerDB's Logger interface
type zapLogger struct {
	sugar *zap.SugaredLogger
}

func (l zapLogger) Errorf(format string, args ...interface{})   { l.sugar.Errorf(format, args...) }
func (l zapLogger) Warningf(format string, args ...interface{}) { l.sugar.Warnf(format, args...) }
func (l zapLogger) Infof(format string, args ...interface{})    { l.sugar.Debugf(format, args...) }
func (l zapLogger) Debugf(format string, args ...interface{})   { l.sugar.Debugf(format, args...) }

// Open opens (creating if needed) a BadgerDB and starts value log GC when
// configured. Caller must call Close.
func Open(cfg Config, logger *zap.Logger) (*Storage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.
		WithSyncWrites(cfg.SyncWrites).
		WithNumVersionsToKeep(1).
		WithLogger(zapLogger{sugar: logger.Named("badger").Sugar()})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}

	s := &Storage{db: db, logger: logger}
	if cfg.GCInterval > 0 && !cfg.InMemory {
		s.stopGC = make(chan struct{})
		s.gcDone = make(chan struct{})
		go s.runGC(cfg.GCInterval, cfg.GCDiscardRatio)
	}
	return s, nil
}

// Load returns the snapshot stored under key
func (s *Storage) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, pkgerrors.NewStorageError("badger", "get", key, err)
	}
	return out, true, nil
}

// Save replaces the snapshot stored under key
func (s *Storage) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+key), data)
	})
	if err != nil {
		return pkgerrors.NewStorageError("badger", "set", key, err)
	}
	return nil
}

// Close stops GC and closes the database
func (s *Storage) Close() error {
	if s.stopGC != nil {
		close(s.stopGC)
		<-s.gcDone
		s.stopGC = nil
	}
	return s.db.Close()
}

func (s *Storage) runGC(interval time.Duration, ratio float64) {
	defer close(s.gcDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopGC:
			return
		case <-ticker.C:
			// RunValueLogGC returns ErrNoRewrite when there is nothing to collect
			if err := s.db.RunValueLogGC(ratio); err != nil && !errors.Is(err, badger.ErrNoRewrite) {
				s.logger.Warn("Badger value log GC failed", zap.Error(err))
			}
		}
	}
}
