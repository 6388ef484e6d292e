package datastore

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/riceguard/riceguard-go/internal/conf"
)

// SQLiteStore implements Interface for SQLite
type SQLiteStore struct {
	DataStore
	Settings *conf.Settings
}

// Open sets up the SQLite database connection and runs migrations.
func (store *SQLiteStore) Open() error {
	dbPath := store.Settings.Output.SQLite.Path

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{Logger: createGormLogger()})
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}

	store.DB = db
	return performAutoMigration(db, store.Settings.Debug, "SQLite", dbPath)
}

// Close is a no-op for SQLite; GORM manages the underlying pool.
func (store *SQLiteStore) Close() error {
	return nil
}
