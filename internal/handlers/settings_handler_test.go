package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"

	"roadworthy/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSettings_Defaults(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(t, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))

	levels, ok := body["checklistItemSettings"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, model.LevelRequired, levels["VIN"])
	assert.Equal(t, model.LevelRequired, levels["Under Vehicle"])
	assert.Equal(t, model.LevelRequired, levels["Engine Bay"])
	assert.Equal(t, model.LevelOptional, levels["Brake Test Print"])

	order, ok := body["checklistItemOrder"].([]any)
	require.True(t, ok)
	assert.Len(t, order, len(model.ChecklistItems))
}

func TestUpdateSettings_PasswordNeverEchoed(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(t, http.MethodPatch, "/api/settings", map[string]any{
		"networkFolderPath": "//srv/rwc",
		"networkUsername":   "inspector",
		"networkPassword":   "s3cret",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	// ни пароль, ни хеш наружу не уходят
	assert.NotContains(t, rr.Body.String(), "s3cret")
	assert.NotContains(t, rr.Body.String(), "networkPasswordHash")
	assert.Contains(t, rr.Body.String(), "//srv/rwc")

	rr = s.do(t, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "s3cret")
}

func TestUpdateSettings_InvalidLevel(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(t, http.MethodPatch, "/api/settings", map[string]any{
		"checklistItemSettings": map[string]string{"VIN": "mandatory"},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(t, http.MethodPatch, "/api/settings", map[string]any{
		"checklistItemSettings": map[string]string{"Not An Item": model.LevelRequired},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// Понижение уровня до optional сразу влияет на завершение проверок.
func TestUpdateSettings_AffectsCompletion(t *testing.T) {
	s := newTestServer(t)
	insp := s.createInspection(t, "RWC-10", "")

	rr := s.do(t, http.MethodPatch, "/api/settings", map[string]any{
		"checklistItemSettings": map[string]string{
			"VIN":           model.LevelOptional,
			"Under Vehicle": model.LevelOptional,
			"Engine Bay":    model.LevelOptional,
		},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = s.do(t, http.MethodPost, "/api/inspections/"+insp.ID+"/complete", nil)
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func TestChecklistItemsEndpoint(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(t, http.MethodGet, "/api/checklist-items", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var items []string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &items))
	assert.Equal(t, model.ChecklistItems, items)
}

func uploadLogo(t *testing.T, s *testServer, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="logo"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload-logo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func TestUploadLogo(t *testing.T) {
	s := newTestServer(t)

	rr := uploadLogo(t, s, "logo.png", "image/png", []byte("png-bytes"))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		LogoURL string `json:"logoUrl"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.LogoURL)
	assert.FileExists(t, filepath.Join(s.uploadDir, "logos", filepath.Base(resp.LogoURL)))

	// настройки запоминают путь, статика отдаёт файл
	settings := s.do(t, http.MethodGet, "/api/settings", nil)
	assert.Contains(t, settings.Body.String(), resp.LogoURL)

	req := httptest.NewRequest(http.MethodGet, resp.LogoURL, nil)
	static := httptest.NewRecorder()
	s.router.ServeHTTP(static, req)
	assert.Equal(t, http.StatusOK, static.Code)
	assert.Equal(t, "png-bytes", static.Body.String())
}

func TestUploadLogo_RejectsNonImage(t *testing.T) {
	s := newTestServer(t)

	rr := uploadLogo(t, s, "notes.txt", "text/plain", []byte("hello"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Only image files")
}
