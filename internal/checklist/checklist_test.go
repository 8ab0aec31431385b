package checklist

import (
	"testing"

	"roadworthy/internal/model"

	"github.com/stretchr/testify/assert"
)

func testSettings(levels map[string]string) *model.Settings {
	return &model.Settings{ChecklistItemSettings: levels}
}

func TestProgress_RequiredOnly(t *testing.T) {
	settings := testSettings(map[string]string{
		"VIN":           model.LevelRequired,
		"Under Vehicle": model.LevelRequired,
		"Engine Bay":    model.LevelRequired,
	})
	insp := &model.Inspection{ChecklistItems: map[string]bool{
		"VIN":   true,
		"Other": true, // optional, must not count
	}}

	p := Progress(insp, settings)
	assert.Equal(t, 1, p.Completed)
	assert.Equal(t, 3, p.Total)
	assert.Equal(t, 33, p.Percentage)
}

func TestProgress_FallbackWithoutSettings(t *testing.T) {
	// без настроек считаем по всем пунктам словаря
	insp := &model.Inspection{ChecklistItems: map[string]bool{"VIN": true}}

	p := Progress(insp, nil)
	assert.Equal(t, 1, p.Completed)
	assert.Equal(t, len(model.ChecklistItems), p.Total)
	assert.GreaterOrEqual(t, p.Percentage, 0)
	assert.LessOrEqual(t, p.Percentage, 100)
}

func TestProgress_NoRequiredIsVacuouslyComplete(t *testing.T) {
	levels := make(map[string]string)
	for _, item := range model.ChecklistItems {
		levels[item] = model.LevelOptional
	}
	p := Progress(&model.Inspection{}, testSettings(levels))
	assert.Equal(t, 0, p.Total)
	assert.Equal(t, 100, p.Percentage)
}

func TestProgress_Bounds(t *testing.T) {
	settings := testSettings(map[string]string{"VIN": model.LevelRequired})
	for _, insp := range []*model.Inspection{
		nil,
		{},
		{ChecklistItems: map[string]bool{"VIN": true}},
	} {
		p := Progress(insp, settings)
		assert.LessOrEqual(t, p.Completed, p.Total)
		assert.GreaterOrEqual(t, p.Percentage, 0)
		assert.LessOrEqual(t, p.Percentage, 100)
	}
}

func TestItemStatus(t *testing.T) {
	settings := testSettings(map[string]string{"VIN": model.LevelRequired})
	insp := &model.Inspection{
		ChecklistItems: map[string]bool{"VIN": true},
		Photos:         map[string][]string{"VIN": {"/api/photos/a.jpg", "/api/photos/b.jpg"}},
	}

	st := ItemStatus("VIN", insp, settings)
	assert.True(t, st.Required)
	assert.True(t, st.Completed)
	assert.Equal(t, 2, st.PhotoCount)

	st = ItemStatus("Other", insp, settings)
	assert.False(t, st.Required)
	assert.False(t, st.Completed)
	assert.Equal(t, 0, st.PhotoCount)
}

func TestCanComplete(t *testing.T) {
	settings := testSettings(map[string]string{
		"VIN":        model.LevelRequired,
		"Engine Bay": model.LevelRequired,
	})

	ok, missing := CanComplete(&model.Inspection{ChecklistItems: map[string]bool{"VIN": true}}, settings)
	assert.False(t, ok)
	assert.Equal(t, []string{"Engine Bay"}, missing)

	ok, missing = CanComplete(&model.Inspection{ChecklistItems: map[string]bool{
		"VIN":        true,
		"Engine Bay": true,
	}}, settings)
	assert.True(t, ok)
	assert.Empty(t, missing)
}

func TestCanComplete_OptionalAndMissingSettingsNeverBlock(t *testing.T) {
	// отсутствующие настройки ⇒ все пункты optional
	ok, missing := CanComplete(&model.Inspection{}, nil)
	assert.True(t, ok)
	assert.Empty(t, missing)
}

// Уровень пункта одно-значен: hidden исключает required по построению,
// поэтому скрытый пункт не может молча блокировать завершение.
func TestCanComplete_HiddenNeverBlocks(t *testing.T) {
	settings := testSettings(map[string]string{
		"LPG Tank Plate": model.LevelHidden,
	})

	assert.NotContains(t, DisplayOrder(settings), "LPG Tank Plate")

	ok, missing := CanComplete(&model.Inspection{}, settings)
	assert.True(t, ok)
	assert.Empty(t, missing)
}

func TestDisplayOrder_ExplicitOrderWinsAndFiltersHidden(t *testing.T) {
	settings := &model.Settings{
		ChecklistItemSettings: map[string]string{
			"Fault": model.LevelHidden,
		},
		ChecklistItemOrder: []string{"Other", "VIN", "Fault", "not-an-item"},
	}

	order := DisplayOrder(settings)
	assert.Equal(t, []string{"Other", "VIN"}, order)
}

func TestDisplayOrder_LegacyFallback(t *testing.T) {
	settings := testSettings(map[string]string{
		"VIN":           model.LevelRequired,
		"Under Vehicle": model.LevelRequired,
		"Fault":         model.LevelHidden,
	})

	order := DisplayOrder(settings)

	// required раньше optional, внутри группы — по алфавиту
	assert.Equal(t, "Under Vehicle", order[0])
	assert.Equal(t, "VIN", order[1])
	assert.NotContains(t, order, "Fault")
	for i := 2; i < len(order)-1; i++ {
		assert.Less(t, order[i], order[i+1])
	}
}
