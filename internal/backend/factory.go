package backend

import (
	"fmt"
	"log/slog"

	"masareef/internal/flatfile"
	"masareef/internal/memory"
	"masareef/internal/storage"
)

// Factory creates ledger stores from configuration
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// CreateStore builds the store for one backend slot (primary or fallback).
func (f *Factory) CreateStore(config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite repository: %w", err)
		}
		f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
		return &Result{Store: repo, Cleanup: repo.Close}, nil

	case FlatFileBackend:
		store, err := flatfile.NewStore(config.FlatFileDir)
		if err != nil {
			return nil, fmt.Errorf("initialize flat-file store: %w", err)
		}
		f.logger.Info("Initialized flat-file backend", "dir", config.FlatFileDir)
		return &Result{Store: store}, nil

	case MemoryBackend:
		f.logger.Info("Initialized memory backend")
		return &Result{Store: memory.New()}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}
