package repo

import (
	"context"
	"sort"
	"testing"

	"roadworthy/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_SeedsDefaultSettings(t *testing.T) {
	r := NewSettingsRepository(newTestDB(t))

	s, err := r.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, s)

	// три пункта required из коробки, остальные optional
	assert.Equal(t, model.LevelRequired, s.ItemLevel("VIN"))
	assert.Equal(t, model.LevelRequired, s.ItemLevel("Under Vehicle"))
	assert.Equal(t, model.LevelRequired, s.ItemLevel("Engine Bay"))
	assert.Equal(t, model.LevelOptional, s.ItemLevel("Other"))
	assert.Len(t, s.ChecklistItemSettings, len(model.ChecklistItems))

	// порядок по умолчанию — алфавитный словарь целиком
	assert.Len(t, s.ChecklistItemOrder, len(model.ChecklistItems))
	assert.True(t, sort.StringsAreSorted(s.ChecklistItemOrder))
}

func TestInitDB_SeedIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	// повторный сид не создаёт вторую строку
	require.NoError(t, seedSettings(db))

	var count int64
	require.NoError(t, db.Model(&model.Settings{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSettingsRepository_Save(t *testing.T) {
	r := NewSettingsRepository(newTestDB(t))
	ctx := context.Background()

	s, err := r.Get(ctx)
	require.NoError(t, err)

	s.ChecklistItemSettings["Other"] = model.LevelHidden
	s.NetworkFolderPath = "backups/rwc"
	require.NoError(t, r.Save(ctx, s))

	got, err := r.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.LevelHidden, got.ItemLevel("Other"))
	assert.Equal(t, "backups/rwc", got.NetworkFolderPath)
}
