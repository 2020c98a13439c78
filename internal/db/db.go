package db

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"asset-tracker-backend/config"
	"asset-tracker-backend/internal/model"
)

// Init opens the embedded SQLite database and runs migrations. The returned
// handle is the single connection for the process lifetime; close the
// underlying sql.DB on shutdown.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	// Single writer, no concurrent statements: one connection keeps PRAGMA
	// state consistent across the process lifetime.
	sqlDB.SetMaxOpenConns(1)

	if err := applyPragmas(db, cfg); err != nil {
		return nil, err
	}

	log.Println("Running database migrations...")
	if err := db.AutoMigrate(
		&model.Category{},
		&model.Department{},
		&model.Employee{},
		&model.Asset{},
		&model.AssetChangeLog{},
	); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	if err := applyIndexDDL(db); err != nil {
		return nil, err
	}

	log.Println("Database initialization complete.")
	return db, nil
}

func applyPragmas(db *gorm.DB, cfg *config.DatabaseConfig) error {
	pragmas := []string{
		"PRAGMA foreign_keys = ON;",
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA cache_size = 10000;",
		fmt.Sprintf("PRAGMA busy_timeout = %d;", cfg.BusyTimeoutMillis),
	}
	for _, p := range pragmas {
		if err := db.Exec(p).Error; err != nil {
			return fmt.Errorf("pragma failed on %q: %w", p, err)
		}
	}
	return nil
}

func applyIndexDDL(db *gorm.DB) error {
	ddls := []string{
		"CREATE INDEX IF NOT EXISTS idx_assets_category ON assets(category_id);",
		"CREATE INDEX IF NOT EXISTS idx_assets_user ON assets(user_id);",
		"CREATE INDEX IF NOT EXISTS idx_assets_status ON assets(status);",
		"CREATE INDEX IF NOT EXISTS idx_changelog_asset ON asset_change_logs(asset_id);",
		"CREATE INDEX IF NOT EXISTS idx_changelog_time ON asset_change_logs(change_time);",
	}
	for _, ddl := range ddls {
		if err := db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("DDL failed on %q: %w", ddl, err)
		}
	}
	return nil
}
