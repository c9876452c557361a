// Package store opens the local sqlite database behind draft persistence.
package store

import (
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dhruvent/billing/internal/config"
	"github.com/dhruvent/billing/internal/invoice/repository"
	"github.com/dhruvent/billing/internal/observability/logger"
)

var Module = fx.Module("store",
	fx.Provide(NewDB),
)

// NewDB opens the sqlite database and migrates the draft schema.
func NewDB(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	if dir := filepath.Dir(cfg.DBPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger: logger.NewGormLogger(),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&repository.Draft{}); err != nil {
		return nil, err
	}

	log.Info("store.opened", zap.String("path", cfg.DBPath))
	return db, nil
}
