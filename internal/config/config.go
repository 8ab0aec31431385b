package config

import (
	"flag"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server-side settings
	DatabaseDSN    string `env:"DATABASE_URI"`
	UploadDir      string `env:"UPLOAD_DIR"`
	BackupDir      string `env:"BACKUP_DIR"`
	PhotoMaxSizeMB int    `env:"PHOTO_MAX_SIZE_MB"`
	LogoMaxSizeMB  int    `env:"LOGO_MAX_SIZE_MB"`

	// Remote backup target (S3-compatible). Empty endpoint or bucket
	// disables the remote leg entirely.
	S3BaseEndpoint string `env:"S3_BASE_ENDPOINT"`
	S3Region       string `env:"S3_REGION"`
	S3Bucket       string `env:"S3_BUCKET"`
	S3AccessKey    string `env:"S3_ACCESS_KEY"`
	S3SecretKey    string `env:"S3_SECRET_KEY"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL    string `env:"-"`
	CameraFacing string `env:"CAMERA_FACING"`
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (sqlite path или postgres:// DSN)")
	flag.StringVar(&cfg.UploadDir, "uploads", cfg.UploadDir, "directory for working photo and logo files")
	flag.StringVar(&cfg.BackupDir, "backups", cfg.BackupDir, "directory for completed-inspection backups")
	flag.StringVar(&cfg.S3BaseEndpoint, "s3-endpoint", cfg.S3BaseEndpoint, "S3-compatible endpoint for remote backups (empty disables)")
	flag.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "S3 bucket for remote backups")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "server address as host:port")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	flag.StringVar(&cfg.CameraFacing, "facing", cfg.CameraFacing, "preferred camera facing mode (environment|user)")

	flag.Parse()

	// Defaults
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = "roadworthy.db"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	if cfg.BackupDir == "" {
		cfg.BackupDir = "network_uploads"
	}
	if cfg.PhotoMaxSizeMB <= 0 {
		cfg.PhotoMaxSizeMB = 10
	}
	if cfg.LogoMaxSizeMB <= 0 {
		cfg.LogoMaxSizeMB = 5
	}
	if cfg.S3Region == "" {
		cfg.S3Region = "us-east-1"
	}
	if cfg.CameraFacing == "" {
		cfg.CameraFacing = "environment"
	}

	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8080"
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	return cfg
}
