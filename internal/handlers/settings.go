package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"roadworthy/internal/config"
	"roadworthy/internal/model"
	"roadworthy/internal/repo"
	"roadworthy/internal/service"

	"go.uber.org/zap"
)

// SettingsHandler обрабатывает настройки, словарь чек-листа и логотип.
type SettingsHandler struct {
	Service *service.SettingsService
	Logger  *zap.SugaredLogger
	Config  *config.Config
}

// NewSettingsHandler создаёт хендлер settings
func NewSettingsHandler(s *service.SettingsService, logger *zap.SugaredLogger, cfg *config.Config) *SettingsHandler {
	return &SettingsHandler{Service: s, Logger: logger, Config: cfg}
}

func (h *SettingsHandler) translateError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownItem), errors.Is(err, service.ErrInvalidLevel):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repo.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Settings not found")
	default:
		h.Logger.Errorw(op+": internal error", "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.Service.Get(r.Context())
	if err != nil {
		h.translateError(w, "Get", err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// Update принимает частичное обновление. Пароль сетевой папки приходит
// открытым текстом, хешируется на сервере и никогда не возвращается.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req service.SettingsUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Update: invalid request body", "error", err)
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	s, err := h.Service.Update(r.Context(), req)
	if err != nil {
		h.translateError(w, "Update", err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// ChecklistItems возвращает фиксированный словарь пунктов.
func (h *SettingsHandler) ChecklistItems(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.ChecklistItems)
}

// UploadLogo принимает картинку логотипа и прописывает её путь в настройках.
func (h *SettingsHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	maxBody := int64(h.Config.LogoMaxSizeMB)*1024*1024 + 1*1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		h.Logger.Warnw("UploadLogo: invalid multipart form", "error", err)
		writeMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if ct := header.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		writeMessage(w, http.StatusBadRequest, "Only image files are allowed")
		return
	}

	logosDir := filepath.Join(h.Config.UploadDir, "logos")
	if err := os.MkdirAll(logosDir, 0o755); err != nil {
		h.Logger.Errorw("UploadLogo: failed to create logos dir", "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	ext := filepath.Ext(header.Filename)
	filename := "logo-" + strconv.FormatInt(time.Now().UnixMilli(), 10) + ext
	dst := filepath.Join(logosDir, filename)
	out, err := os.Create(dst)
	if err != nil {
		h.Logger.Errorw("UploadLogo: failed to create file", "file", dst, "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal error")
		return
	}
	if _, err := out.ReadFrom(file); err != nil {
		out.Close()
		_ = os.Remove(dst)
		writeMessage(w, http.StatusBadRequest, "failed to read logo")
		return
	}
	if err := out.Close(); err != nil {
		h.Logger.Errorw("UploadLogo: failed to close file", "file", dst, "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	logoURL := "/uploads/logos/" + filename
	if _, err := h.Service.SetLogo(r.Context(), logoURL); err != nil {
		_ = os.Remove(dst)
		h.translateError(w, "UploadLogo", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Logo uploaded successfully",
		"logoUrl": logoURL,
	})
}
