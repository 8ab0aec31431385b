package commands

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"roadworthy/internal/backup"
	"roadworthy/internal/config"
	"roadworthy/internal/handlers"
	"roadworthy/internal/repo"
	"roadworthy/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// captureOut подменяет общий writer CLI на время теста.
func captureOut(t *testing.T) *bytes.Buffer {
	t.Helper()
	old := Out
	buf := &bytes.Buffer{}
	Out = buf
	t.Cleanup(func() { Out = old })
	return buf
}

// startTestAPI поднимает настоящий сервер поверх временной SQLite.
func startTestAPI(t *testing.T) *config.Config {
	t.Helper()

	db, err := repo.InitDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	cfg := &config.Config{
		UploadDir:      t.TempDir(),
		BackupDir:      t.TempDir(),
		PhotoMaxSizeMB: 10,
		LogoMaxSizeMB:  5,
	}

	inspections := repo.NewInspectionRepository(db)
	settings := repo.NewSettingsRepository(db)
	local := backup.NewLocal(cfg.UploadDir, cfg.BackupDir)
	logger := zap.NewNop().Sugar()

	h := handlers.NewHandler(
		service.NewInspectionService(inspections, settings, local, nil, cfg.UploadDir, logger),
		service.NewSettingsService(settings),
		logger,
		cfg,
	)

	srv := httptest.NewServer(h.Router)
	t.Cleanup(srv.Close)
	cfg.ServerURL = srv.URL
	return cfg
}

func TestDispatch_NoArgsShowsUsage(t *testing.T) {
	buf := captureOut(t)

	code := Dispatch(context.Background(), &config.Config{}, nil)
	assert.Equal(t, 2, code)
	assert.Contains(t, buf.String(), "Roadworthy CLI")
	assert.Contains(t, buf.String(), "list [in-progress|completed]")
}

func TestDispatch_UnknownCommand(t *testing.T) {
	buf := captureOut(t)

	code := Dispatch(context.Background(), &config.Config{}, []string{"frobnicate"})
	assert.Equal(t, 2, code)
	assert.Contains(t, buf.String(), "Unknown command: frobnicate")
}

func TestDispatch_HelpForCommand(t *testing.T) {
	buf := captureOut(t)

	code := Dispatch(context.Background(), &config.Config{}, []string{"help", "new"})
	assert.Equal(t, 0, code)
	assert.Contains(t, buf.String(), "new <roadworthy-number>")
}

func TestDispatch_BadArgsShowUsage(t *testing.T) {
	buf := captureOut(t)

	code := Dispatch(context.Background(), &config.Config{}, []string{"new"})
	assert.Equal(t, 2, code)
	assert.Contains(t, buf.String(), "Usage: new <roadworthy-number>")
}

func TestNewAndListAgainstServer(t *testing.T) {
	cfg := startTestAPI(t)
	buf := captureOut(t)

	code := Dispatch(context.Background(), cfg, []string{"new", "RWC-1", "Alice"})
	require.Equal(t, 0, code, buf.String())
	assert.Contains(t, buf.String(), "RWC-1")

	// дубликат номера — ошибка сервера, код 1
	buf.Reset()
	code = Dispatch(context.Background(), cfg, []string{"new", "RWC-1"})
	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "already exists")

	buf.Reset()
	code = Dispatch(context.Background(), cfg, []string{"list"})
	require.Equal(t, 0, code, buf.String())
	assert.Contains(t, buf.String(), "RWC-1")
	assert.Contains(t, buf.String(), "Всего: 1")

	buf.Reset()
	code = Dispatch(context.Background(), cfg, []string{"list", "completed"})
	require.Equal(t, 0, code, buf.String())
	assert.Contains(t, buf.String(), "Нет проверок")
}
