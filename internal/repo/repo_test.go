package repo

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"
)

// newTestDB инициализирует файловую SQLite в TempDir через InitDB,
// то есть вместе с миграциями и сидом настроек.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := InitDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to init sqlite db: %v", err)
	}
	return db
}
