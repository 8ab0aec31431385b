package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"roadworthy/internal/config"
	"roadworthy/internal/repo"
	"roadworthy/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// InspectionHandler обрабатывает REST-операции над проверками.
type InspectionHandler struct {
	Service *service.InspectionService
	Logger  *zap.SugaredLogger
	Config  *config.Config
}

// NewInspectionHandler создаёт хендлер inspections
func NewInspectionHandler(s *service.InspectionService, logger *zap.SugaredLogger, cfg *config.Config) *InspectionHandler {
	return &InspectionHandler{Service: s, Logger: logger, Config: cfg}
}

// translateError переводит ошибки сервиса в HTTP-статусы (таксономия: 400/404/500).
func (h *InspectionHandler) translateError(w http.ResponseWriter, op string, err error) {
	var missing *service.ErrMissingItems
	switch {
	case errors.As(err, &missing):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message":      "Missing required items",
			"missingItems": missing.Items,
		})
	case errors.Is(err, service.ErrNumberRequired),
		errors.Is(err, service.ErrDuplicateNumber),
		errors.Is(err, service.ErrUnknownItem),
		errors.Is(err, service.ErrInvalidStatus):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPhotoNotFound):
		writeMessage(w, http.StatusNotFound, "Photo not found")
	case errors.Is(err, repo.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Inspection not found")
	default:
		h.Logger.Errorw(op+": internal error", "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *InspectionHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListAll(r.Context())
	if err != nil {
		h.translateError(w, "List", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *InspectionHandler) ListInProgress(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListInProgress(r.Context())
	if err != nil {
		h.translateError(w, "ListInProgress", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *InspectionHandler) ListCompleted(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListCompleted(r.Context())
	if err != nil {
		h.translateError(w, "ListCompleted", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *InspectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	insp, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.translateError(w, "Get", err)
		return
	}
	writeJSON(w, http.StatusOK, insp)
}

func (h *InspectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Create: invalid request body", "error", err)
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	insp, err := h.Service.Create(r.Context(), req)
	if err != nil {
		h.translateError(w, "Create", err)
		return
	}
	writeJSON(w, http.StatusCreated, insp)
}

func (h *InspectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Update: invalid request body", "error", err)
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	insp, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.translateError(w, "Update", err)
		return
	}
	writeJSON(w, http.StatusOK, insp)
}

// photoFilename собирает имя рабочего файла: <id>_<item>_<ts><ext>.
// Пробелы в имени пункта заменяются подчёркиваниями.
func photoFilename(id, item, original string) string {
	ext := filepath.Ext(original)
	if ext == "" {
		ext = ".jpg"
	}
	slug := strings.ReplaceAll(item, " ", "_")
	return id + "_" + slug + "_" + strconv.FormatInt(time.Now().UnixMilli(), 10) + ext
}

// UploadPhoto принимает multipart-загрузку фото для пункта чек-листа.
// Сохранённый файл привязывается к пункту, пункт отмечается выполненным.
func (h *InspectionHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	maxBody := int64(h.Config.PhotoMaxSizeMB)*1024*1024 + 1*1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		h.Logger.Warnw("UploadPhoto: invalid multipart form", "error", err)
		writeMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	item := r.FormValue("itemName")
	if item == "" {
		writeMessage(w, http.StatusBadRequest, "missing itemName")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		h.Logger.Warnw("UploadPhoto: missing photo file", "error", err)
		writeMessage(w, http.StatusBadRequest, "No photo uploaded")
		return
	}
	defer file.Close()

	if err := os.MkdirAll(h.Config.UploadDir, 0o755); err != nil {
		h.Logger.Errorw("UploadPhoto: failed to create upload dir", "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	filename := photoFilename(id, item, header.Filename)
	dst := filepath.Join(h.Config.UploadDir, filename)
	out, err := os.Create(dst)
	if err != nil {
		h.Logger.Errorw("UploadPhoto: failed to create file", "file", dst, "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal error")
		return
	}
	if _, err := out.ReadFrom(file); err != nil {
		out.Close()
		_ = os.Remove(dst)
		h.Logger.Warnw("UploadPhoto: failed to write file", "file", dst, "error", err)
		writeMessage(w, http.StatusBadRequest, "failed to read photo")
		return
	}
	if err := out.Close(); err != nil {
		h.Logger.Errorw("UploadPhoto: failed to close file", "file", dst, "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	insp, err := h.Service.AttachPhoto(r.Context(), id, item, filename)
	if err != nil {
		// запись не привязана — рабочий файл не нужен
		_ = os.Remove(dst)
		h.translateError(w, "UploadPhoto", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Photo uploaded successfully",
		"filename":   filename,
		"inspection": insp,
	})
}

func (h *InspectionHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	item := chi.URLParam(r, "itemName")
	if dec, err := url.PathUnescape(item); err == nil {
		item = dec
	}

	index, err := strconv.Atoi(chi.URLParam(r, "photoIndex"))
	if err != nil || index < 0 {
		writeMessage(w, http.StatusBadRequest, "Valid photo index is required")
		return
	}

	insp, err := h.Service.RemovePhoto(r.Context(), id, item, index)
	if err != nil {
		h.translateError(w, "DeletePhoto", err)
		return
	}
	writeJSON(w, http.StatusOK, insp)
}

func (h *InspectionHandler) Complete(w http.ResponseWriter, r *http.Request) {
	res, err := h.Service.Complete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.translateError(w, "Complete", err)
		return
	}

	var networkUpload map[string]any
	if res.RemoteError != nil {
		networkUpload = map[string]any{
			"success": false,
			"error":   "Network upload failed, photos saved locally",
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "Inspection completed successfully",
		"localPath":     res.LocalPath,
		"networkUpload": networkUpload,
		"inspection":    res.Inspection,
	})
}

func (h *InspectionHandler) Retest(w http.ResponseWriter, r *http.Request) {
	insp, err := h.Service.Retest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.translateError(w, "Retest", err)
		return
	}
	writeJSON(w, http.StatusCreated, insp)
}

func (h *InspectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.translateError(w, "Delete", err)
		return
	}
	writeMessage(w, http.StatusOK, "Inspection deleted successfully")
}
