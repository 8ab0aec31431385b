package handlers

import (
	"encoding/json"
	"net/http"
	"path/filepath"

	"roadworthy/internal/config"
	"roadworthy/internal/middleware"
	"roadworthy/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	inspectionService *service.InspectionService,
	settingsService *service.SettingsService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)

	// Handlers
	inspectionHandler := NewInspectionHandler(inspectionService, logger, config)
	settingsHandler := NewSettingsHandler(settingsService, logger, config)

	// Inspection routes
	r.Get("/api/inspections", inspectionHandler.List)
	r.Get("/api/inspections/in-progress", inspectionHandler.ListInProgress)
	r.Get("/api/inspections/completed", inspectionHandler.ListCompleted)
	r.Get("/api/inspections/{id}", inspectionHandler.Get)
	r.Post("/api/inspections", inspectionHandler.Create)
	r.Patch("/api/inspections/{id}", inspectionHandler.Update)
	r.Delete("/api/inspections/{id}", inspectionHandler.Delete)
	r.Post("/api/inspections/{id}/photos", inspectionHandler.UploadPhoto)
	r.Delete("/api/inspections/{id}/photos/{itemName}/{photoIndex}", inspectionHandler.DeletePhoto)
	r.Post("/api/inspections/{id}/complete", inspectionHandler.Complete)
	r.Post("/api/inspections/{id}/retest", inspectionHandler.Retest)

	// Settings routes
	r.Get("/api/settings", settingsHandler.Get)
	r.Patch("/api/settings", settingsHandler.Update)
	r.Get("/api/checklist-items", settingsHandler.ChecklistItems)
	r.Post("/api/upload-logo", settingsHandler.UploadLogo)

	// Static serving of uploaded photos and logos
	r.Handle("/api/photos/*", http.StripPrefix("/api/photos/",
		http.FileServer(http.Dir(config.UploadDir))))
	r.Handle("/uploads/logos/*", http.StripPrefix("/uploads/logos/",
		http.FileServer(http.Dir(filepath.Join(config.UploadDir, "logos")))))

	return &Handler{Router: r}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
