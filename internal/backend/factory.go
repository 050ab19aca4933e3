package backend

import (
	"fmt"
	"log/slog"

	"spendlog/internal/store/csvfile"
	"spendlog/internal/store/memory"
	"spendlog/internal/store/sqlite"
)

// Factory creates record stores based on configuration.
type Factory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// Create builds the record store described by config.
func (f *Factory) Create(config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case CSVBackend:
		s, err := csvfile.New(config.CSVPath)
		if err != nil {
			return nil, fmt.Errorf("initialize csv store: %w", err)
		}
		f.logger.Info("Initialized CSV backend", "path", config.CSVPath)
		return &Result{Store: s}, nil

	case SQLiteBackend:
		s, err := sqlite.New(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
		return &Result{Store: s, Cleanup: s.Close}, nil

	case MemoryBackend:
		f.logger.Info("Initialized memory backend")
		return &Result{Store: memory.New()}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}
