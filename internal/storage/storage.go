package storage

import (
	"context"
	"fmt"

	"github.com/fatali-fataliyev/finance_ledger/config"
	"github.com/fatali-fataliyev/finance_ledger/internal/budget"
)

var (
	_ budget.Storage = (*SQLStorage)(nil)
	_ budget.Storage = (*InMemoryStorage)(nil)
)

// Open returns the backend selected by cfg.DBDriver. The caller closes it.
func Open(ctx context.Context, cfg *config.Config) (budget.Storage, error) {
	var (
		store *SQLStorage
		err   error
	)
	switch cfg.DBDriver {
	case config.DriverSQLite:
		store, err = NewSQLiteStorage(ctx, cfg.DBPath)
	case config.DriverMySQL:
		store, err = NewMySQLStorage(ctx, cfg.DBDSN)
	case config.DriverMemory:
		return NewInMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unknown database driver '%s'", cfg.DBDriver)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}
