package kvstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Amund211/bosslevels/internal/adapters/database"
	"github.com/Amund211/bosslevels/internal/config"
)

const cacheTTL = 10 * time.Minute

// Open connects to and migrates the storage selected in the config.
// Database backed stores are read through a cache.
func Open(ctx context.Context, conf config.Config, logger *slog.Logger) (Store, func(), error) {
	switch conf.Storage() {
	case config.StorageMemory:
		logger.WarnContext(ctx, "Using in-memory storage, progression is lost on restart")
		return NewMemory(), func() {}, nil

	case config.StorageSQLite:
		db, err := database.NewSQLiteDatabase(conf.SQLitePath())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}

		err = database.NewDatabaseMigrator(db, logger.With("component", "migrator")).MigrateSQLite(ctx)
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to migrate sqlite database: %w", err)
		}

		logger.InfoContext(ctx, "Initialized sqlite storage", slog.String("path", conf.SQLitePath()))
		return NewCached(NewSQLite(db, time.Now), cacheTTL), func() { db.Close() }, nil

	case config.StoragePostgres:
		db, err := database.NewPostgresDatabaseFromConfig(conf)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open postgres database: %w", err)
		}

		schemaName := database.GetSchemaName(!conf.IsProduction())

		err = database.NewDatabaseMigrator(db, logger.With("component", "migrator")).Migrate(ctx, schemaName)
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to migrate postgres database: %w", err)
		}

		logger.InfoContext(ctx, "Initialized postgres storage", slog.String("schema", schemaName))
		return NewCached(NewPostgres(db, schemaName, time.Now), cacheTTL), func() { db.Close() }, nil
	}

	return nil, nil, fmt.Errorf("unknown storage: %s", conf.Storage())
}
