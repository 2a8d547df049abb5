package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultListenAddr   = "0.0.0.0:8080"
	DefaultViewCacheTTL = 10 * time.Minute
	DefaultExportDir    = "./exports"
	DefaultS3Region     = "us-east-1"
)

type S3Config struct {
	Bucket   string
	Region   string
	Endpoint string
}

type Config struct {
	DatabaseURL   string
	PublicBaseURL string
	AdminPassword string
	ListenAddr    string
	NATSURL       string
	ViewCacheTTL  time.Duration
	ExportDir     string
	ExportS3      S3Config
}

// Load reads envFile, if it exists, into the environment and builds the
// configuration from it. Variables already set in the environment win.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		PublicBaseURL: firstSet("NEXT_PUBLIC_SITE_URL", "PUBLIC_BASE_URL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		ListenAddr:    withDefault("LISTEN_ADDR", DefaultListenAddr),
		NATSURL:       os.Getenv("NATS_URL"),
		ViewCacheTTL:  DefaultViewCacheTTL,
		ExportDir:     withDefault("EXPORT_DIR", DefaultExportDir),
		ExportS3: S3Config{
			Bucket:   os.Getenv("EXPORT_S3_BUCKET"),
			Region:   withDefault("EXPORT_S3_REGION", DefaultS3Region),
			Endpoint: os.Getenv("EXPORT_S3_ENDPOINT"),
		},
	}

	if raw := os.Getenv("VIEW_CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			return Config{}, fmt.Errorf("VIEW_CACHE_TTL must be a positive duration, got %q", raw)
		}
		cfg.ViewCacheTTL = ttl
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.PublicBaseURL == "" {
		missing = append(missing, "NEXT_PUBLIC_SITE_URL or PUBLIC_BASE_URL")
	}
	if cfg.AdminPassword == "" {
		missing = append(missing, "ADMIN_PASSWORD")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func firstSet(keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}

func withDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
