package repository

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/marvinpacsands/Project-List-Designers/config"
	"github.com/marvinpacsands/Project-List-Designers/pkg/database"
)

// OpenStore builds the Store selected by cfg.Store.Driver. The postgres
// driver connects, applies pending migrations, and closes the connection
// pool together with the store.
func OpenStore(cfg *config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverFile:
		store, err := NewFileStore(cfg.Store.Path, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("file store opened", zap.String("path", cfg.Store.Path))
		return store, nil

	case config.StoreDriverPostgres:
		db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("get sql.DB: %w", err)
		}
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			sqlDB.Close()
			return nil, err
		}
		logger.Info("postgres store opened", zap.String("host", cfg.Database.Host), zap.String("db", cfg.Database.Name))
		return &ownedPostgresStore{PostgresStore: NewPostgresStore(db, logger), db: db}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

type ownedPostgresStore struct {
	*PostgresStore
	db *gorm.DB
}

func (s *ownedPostgresStore) Close() error {
	if err := s.PostgresStore.Close(); err != nil {
		return err
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
