package myconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults without env-file", func(t *testing.T) {
		// when
		cfg, err := Load("test", []string{"--env-file", filepath.Join(t.TempDir(), "absent.env")})

		// then
		assert.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "uploads", cfg.UploadDir)
		assert.Equal(t, 2*time.Hour, cfg.SessionIdleTimeout)
		assert.Equal(t, 3, cfg.Redis.ReadTimeout)
		assert.Equal(t, 587, cfg.SMTP.Port)
		assert.False(t, cfg.SMTPConfigured())
	})

	t.Run("Env-file and flag", func(t *testing.T) {
		// given
		envFile := filepath.Join(t.TempDir(), "test.env")
		err := os.WriteFile(envFile, []byte("UPLOAD_DIR=/tmp/pharmacare\nSESSION_IDLE_TIMEOUT=30m\nWHATSAPP_PHONE_NUMBER_ID=123\n"), 0644)
		assert.NoError(t, err)
		t.Setenv("PORT", "9090")
		defer os.Unsetenv("UPLOAD_DIR")
		defer os.Unsetenv("SESSION_IDLE_TIMEOUT")
		defer os.Unsetenv("WHATSAPP_PHONE_NUMBER_ID")

		// when
		cfg, err := Load("test", []string{"--env-file", envFile, "--port", "7070"})

		// then
		assert.NoError(t, err)
		assert.Equal(t, "7070", cfg.Port)
		assert.Equal(t, "/tmp/pharmacare", cfg.UploadDir)
		assert.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout)
		assert.True(t, cfg.WhatsAppConfigured())
	})

	t.Run("Invalid environment", func(t *testing.T) {
		// given
		t.Setenv("SESSION_IDLE_TIMEOUT", "forever")

		// when
		_, err := Load("test", []string{"--env-file", filepath.Join(t.TempDir(), "absent.env")})

		// then
		assert.Error(t, err)
	})
}
