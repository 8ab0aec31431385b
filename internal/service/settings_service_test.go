package service

import (
	"context"
	"path/filepath"
	"testing"

	"roadworthy/internal/model"
	"roadworthy/internal/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newSettingsService(t *testing.T) *SettingsService {
	t.Helper()
	db, err := repo.InitDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return NewSettingsService(repo.NewSettingsRepository(db))
}

func strPtr(s string) *string { return &s }

func TestSettingsUpdate_HashesPassword(t *testing.T) {
	svc := newSettingsService(t)
	ctx := context.Background()

	s, err := svc.Update(ctx, SettingsUpdate{
		NetworkFolderPath: strPtr("//srv/rwc"),
		NetworkUsername:   strPtr("inspector"),
		NetworkPassword:   strPtr("s3cret"),
	})
	require.NoError(t, err)

	assert.Equal(t, "//srv/rwc", s.NetworkFolderPath)
	assert.Equal(t, "inspector", s.NetworkUsername)
	// хранится только bcrypt-хеш
	assert.NotEqual(t, "s3cret", s.NetworkPasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(s.NetworkPasswordHash), []byte("s3cret")))
}

func TestSettingsUpdate_BlankPasswordKeepsOldHash(t *testing.T) {
	svc := newSettingsService(t)
	ctx := context.Background()

	first, err := svc.Update(ctx, SettingsUpdate{NetworkPassword: strPtr("s3cret")})
	require.NoError(t, err)

	second, err := svc.Update(ctx, SettingsUpdate{NetworkPassword: strPtr("   ")})
	require.NoError(t, err)
	assert.Equal(t, first.NetworkPasswordHash, second.NetworkPasswordHash)
}

func TestSettingsUpdate_ValidatesLevels(t *testing.T) {
	svc := newSettingsService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, SettingsUpdate{
		ChecklistItemSettings: map[string]string{"VIN": "mandatory"},
	})
	assert.ErrorIs(t, err, ErrInvalidLevel)

	_, err = svc.Update(ctx, SettingsUpdate{
		ChecklistItemSettings: map[string]string{"Not An Item": model.LevelRequired},
	})
	assert.ErrorIs(t, err, ErrUnknownItem)

	s, err := svc.Update(ctx, SettingsUpdate{
		ChecklistItemSettings: map[string]string{"VIN": model.LevelHidden},
	})
	require.NoError(t, err)
	assert.Equal(t, model.LevelHidden, s.ItemLevel("VIN"))
}

func TestSetLogo(t *testing.T) {
	svc := newSettingsService(t)

	s, err := svc.SetLogo(context.Background(), "/uploads/logos/logo-1.png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/logos/logo-1.png", s.LogoURL)
}
