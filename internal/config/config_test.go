package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DASHBOARD_API_BASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "Study Dashboard", cfg.AppName)
	require.Equal(t, ":3000", cfg.HTTPAddress())
	require.Equal(t, "http://localhost:8000/api", cfg.APIBaseURL)
	require.Equal(t, 10*time.Second, cfg.APITimeout)
	require.Equal(t, int64(32<<20), cfg.MaxAttachmentBytes)
	require.Equal(t, 5*time.Minute, cfg.CoursesCacheTTL)
	require.Equal(t, 3, cfg.TestNotificationLimit)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DASHBOARD_APP_PORT", ":9090")
	t.Setenv("DASHBOARD_API_BASE_URL", "https://backend.example.com/api/")
	t.Setenv("DASHBOARD_API_TOKEN", " secret ")
	t.Setenv("DASHBOARD_API_TIMEOUT", "3s")
	t.Setenv("DASHBOARD_COURSES_CACHE_TTL", "30s")
	t.Setenv("DASHBOARD_API_MAX_ATTACHMENT_BYTES", "1048576")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddress())
	require.Equal(t, "https://backend.example.com/api", cfg.APIBaseURL)
	require.Equal(t, "secret", cfg.APIToken)
	require.Equal(t, 3*time.Second, cfg.APITimeout)
	require.Equal(t, 30*time.Second, cfg.CoursesCacheTTL)
	require.Equal(t, int64(1<<20), cfg.MaxAttachmentBytes)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("base url without scheme", func(t *testing.T) {
		t.Setenv("DASHBOARD_API_BASE_URL", "backend.local/api")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("bad timeout", func(t *testing.T) {
		t.Setenv("DASHBOARD_API_TIMEOUT", "soon")
		_, err := Load()
		require.Error(t, err)
	})
}
