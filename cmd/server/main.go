package main

import (
	"context"
	"net/http"
	"os"

	"roadworthy/internal/backup"
	"roadworthy/internal/config"
	"roadworthy/internal/handlers"
	"roadworthy/internal/middleware"
	"roadworthy/internal/repo"
	"roadworthy/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx := context.Background()

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		sugar.Fatalw("failed to create upload dir", "dir", cfg.UploadDir, "error", err)
	}

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	inspectionRepo := repo.NewInspectionRepository(gormDB)
	settingsRepo := repo.NewSettingsRepository(gormDB)

	local := backup.NewLocal(cfg.UploadDir, cfg.BackupDir)

	// Удалённый бэкап опционален: без эндпоинта/бакета остаётся только локальный.
	var remote backup.Remote
	if s3remote, err := backup.NewS3Remote(ctx, cfg); err != nil {
		sugar.Warnw("remote backup disabled", "error", err)
	} else if s3remote != nil {
		remote = s3remote
	}

	inspectionService := service.NewInspectionService(inspectionRepo, settingsRepo, local, remote, cfg.UploadDir, sugar)
	settingsService := service.NewSettingsService(settingsRepo)

	h := handlers.NewHandler(inspectionService, settingsService, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"DatabaseDSN", cfg.DatabaseDSN,
		"UploadDir", cfg.UploadDir,
		"BackupDir", cfg.BackupDir,
		"RemoteBackup", remote != nil,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
