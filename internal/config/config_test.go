package config_test

import (
	"testing"
	"time"

	"github.com/Dafin1723/fikri-production/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("ADMIN_PASSWORD", "secret")
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "local", cfg.StorageBackend)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, int64(210<<20), cfg.MaxRequestBytes)
	assert.NotNil(t, cfg.Location)
}

func TestLoad_InvalidSessionTTL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SESSION_TTL", "soon")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		return &config.Config{
			StorageDriver:   "memory",
			StorageBackend:  "local",
			UploadDir:       "uploads",
			PosterDir:       "posters",
			AdminPassword:   "secret",
			SessionSecret:   "0123456789abcdef0123456789abcdef",
			SessionTTL:      time.Hour,
			MaxRequestBytes: 1 << 20,
		}
	}

	assert.NoError(t, valid().Validate())

	cfg := valid()
	cfg.StorageDriver = "postgres"
	assert.Error(t, cfg.Validate(), "postgres without DATABASE_URL")

	cfg.EmbeddedDatabase = true
	assert.NoError(t, cfg.Validate())

	cfg = valid()
	cfg.SessionSecret = "short"
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.AdminPassword = ""
	assert.Error(t, cfg.Validate())
	cfg.AdminPasswordHash = "$2a$10$abcdefghijklmnopqrstuv"
	assert.NoError(t, cfg.Validate())

	cfg = valid()
	cfg.StorageBackend = "supabase"
	assert.Error(t, cfg.Validate())
	cfg.SupabaseURL = "https://example.supabase.co"
	cfg.SupabaseServiceKey = "key"
	assert.NoError(t, cfg.Validate())
}
