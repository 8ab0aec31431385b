package repo

import (
	"sort"
	"strings"
	"time"

	"roadworthy/internal/model"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// Items required out of the box; everything else defaults to optional.
var defaultRequiredItems = []string{"VIN", "Under Vehicle", "Engine Bay"}

// InitDB открывает БД по DSN, прогоняет миграции и сеет настройки по умолчанию.
// A postgres:// DSN selects the postgres driver, anything else is treated as a
// SQLite file path (modernc driver, cgo-free).
func InitDB(dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dial = postgres.Open(dsn)
	} else {
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&model.Inspection{}, &model.Settings{}); err != nil {
		return nil, err
	}

	if err := seedSettings(db); err != nil {
		return nil, err
	}

	return db, nil
}

// seedSettings creates the singleton settings row on first run.
func seedSettings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Settings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	itemSettings := make(map[string]string, len(model.ChecklistItems))
	for _, item := range model.ChecklistItems {
		itemSettings[item] = model.LevelOptional
	}
	for _, item := range defaultRequiredItems {
		itemSettings[item] = model.LevelRequired
	}

	order := make([]string, len(model.ChecklistItems))
	copy(order, model.ChecklistItems)
	sort.Strings(order)

	s := &model.Settings{
		ID:                    uuid.NewString(),
		ChecklistItemSettings: itemSettings,
		ChecklistItemOrder:    order,
		UpdatedAt:             time.Now().UTC(),
	}
	return db.Create(s).Error
}
