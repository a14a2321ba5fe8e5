package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DatabaseURL      string
	EmbeddedDatabase bool
	StorageDriver    string // postgres | memory

	// File storage
	StorageBackend        string // local | supabase
	UploadDir             string
	PosterDir             string
	SupabaseURL           string
	SupabaseServiceKey    string
	SupabaseStorageBucket string

	// Admin
	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string
	SessionSecret     string
	SessionTTL        time.Duration

	// Shop
	ShopName string
	Location *time.Location

	// Server
	Port            string
	Environment     string
	MaxRequestBytes int64
}

func Load() (*Config, error) {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	maxRequestBytes, err := strconv.ParseInt(getEnv("MAX_REQUEST_BYTES", strconv.Itoa(210<<20)), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_REQUEST_BYTES: %w", err)
	}

	location, err := time.LoadLocation(getEnv("TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	cfg := &Config{
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		EmbeddedDatabase: getEnv("EMBEDDED_DATABASE", "false") == "true",
		StorageDriver:    getEnv("STORAGE_DRIVER", "postgres"),

		StorageBackend:        getEnv("STORAGE_BACKEND", "local"),
		UploadDir:             getEnv("UPLOAD_DIR", "uploads"),
		PosterDir:             getEnv("POSTER_DIR", "static/posters"),
		SupabaseURL:           getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey:    getEnv("SUPABASE_SERVICE_KEY", ""),
		SupabaseStorageBucket: getEnv("SUPABASE_STORAGE_BUCKET", "print-orders"),

		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		SessionSecret:     getEnv("SESSION_SECRET", ""),
		SessionTTL:        sessionTTL,

		ShopName: getEnv("SHOP_NAME", "Fikri Production"),
		Location: location,

		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		MaxRequestBytes: maxRequestBytes,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case "postgres":
		if c.DatabaseURL == "" && !c.EmbeddedDatabase {
			return fmt.Errorf("DATABASE_URL is required unless EMBEDDED_DATABASE=true or STORAGE_DRIVER=memory")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	switch c.StorageBackend {
	case "local":
		if c.UploadDir == "" || c.PosterDir == "" {
			return fmt.Errorf("UPLOAD_DIR and POSTER_DIR are required for local storage")
		}
	case "supabase":
		if c.SupabaseURL == "" {
			return fmt.Errorf("SUPABASE_URL is required")
		}
		if c.SupabaseServiceKey == "" {
			return fmt.Errorf("SUPABASE_SERVICE_KEY is required")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}

	if c.AdminPassword == "" && c.AdminPasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}
	if len(c.SessionSecret) < 32 {
		return fmt.Errorf("SESSION_SECRET must be at least 32 characters")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.MaxRequestBytes <= 0 {
		return fmt.Errorf("MAX_REQUEST_BYTES must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
