package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"roadworthy/internal/backup"
	"roadworthy/internal/config"
	"roadworthy/internal/handlers"
	"roadworthy/internal/model"
	"roadworthy/internal/repo"
	"roadworthy/internal/service"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testServer поднимает полный стек поверх временной SQLite и TempDir-каталогов.
type testServer struct {
	router    http.Handler
	cfg       *config.Config
	settings  repo.SettingsRepository
	uploadDir string
	backupDir string
}

func newTestServer(t *testing.T) *testServer {
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

	inspectionSvc := service.NewInspectionService(inspections, settings, local, nil, cfg.UploadDir, logger)
	settingsSvc := service.NewSettingsService(settings)

	h := handlers.NewHandler(inspectionSvc, settingsSvc, logger, cfg)
	return &testServer{
		router:    h.Router,
		cfg:       cfg,
		settings:  settings,
		uploadDir: cfg.UploadDir,
		backupDir: cfg.BackupDir,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

// uploadPhoto шлёт multipart-запрос, как это делает клиент.
func (s *testServer) uploadPhoto(t *testing.T, id, item string, photo []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("itemName", item))
	part, err := mw.CreateFormFile("photo", "photo.jpg")
	require.NoError(t, err)
	_, err = part.Write(photo)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/inspections/"+id+"/photos", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func (s *testServer) createInspection(t *testing.T, number, client string) model.Inspection {
	t.Helper()

	rr := s.do(t, http.MethodPost, "/api/inspections", map[string]string{
		"roadworthyNumber": number,
		"clientName":       client,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var insp model.Inspection
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &insp))
	return insp
}

func decodeInspection(t *testing.T, rr *httptest.ResponseRecorder) model.Inspection {
	t.Helper()
	var insp model.Inspection
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &insp))
	return insp
}
