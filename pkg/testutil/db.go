package testutil

import (
	"testing"

	"catalog/db"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory SQLite database with foreign keys
// enforced. The connection pool is pinned to one connection so every query
// sees the same in-memory database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	database, err := db.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), gormlogger.Silent)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(database); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return database
}
