package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/newsroom/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"NEWSROOM_API_URL", "NEWSROOM_HTTP_TIMEOUT", "NEWSROOM_GUEST_LIMIT",
		"NEWSROOM_STATE_STORE", "NEWSROOM_STATE_PATH", "NEWSROOM_SHARE_BASE_URL",
		"PORT", "USE_HTTP2", "CORS_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "newsroom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestBuildConfig_Defaults(t *testing.T) {
	clearEnv(t)

	settings, err := loadSettings("")
	require.NoError(t, err)
	cfg, err := buildConfig(settings)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8000", cfg.Backend.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 2, cfg.GuestLimit)
	assert.Equal(t, storage.File, cfg.Storage.Type)
	assert.True(t, filepath.IsAbs(cfg.Storage.Path))
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "http://localhost:8080", cfg.ShareBaseURL)
}

func TestBuildConfig_SettingsFile(t *testing.T) {
	clearEnv(t)
	path := writeSettings(t, `
api:
  url: http://backend.test
  timeout: 5s
guest_limit: 3
state:
  store: in_mem
share_base_url: https://newsroom.example/
server:
  port: "9000"
  cors_origins: ["http://ui.test"]
`)

	settings, err := loadSettings(path)
	require.NoError(t, err)
	cfg, err := buildConfig(settings)
	require.NoError(t, err)

	assert.Equal(t, "http://backend.test", cfg.Backend.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 3, cfg.GuestLimit)
	assert.Equal(t, storage.InMem, cfg.Storage.Type)
	assert.Equal(t, "https://newsroom.example", cfg.ShareBaseURL)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, []string{"http://ui.test"}, cfg.Server.CorsOrigins)
}

func TestBuildConfig_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeSettings(t, "api:\n  url: http://backend.test\nguest_limit: 3\n")
	t.Setenv("NEWSROOM_API_URL", "http://env.test")
	t.Setenv("NEWSROOM_GUEST_LIMIT", "5")
	t.Setenv("NEWSROOM_STATE_PATH", "~/custom/state.json")

	settings, err := loadSettings(path)
	require.NoError(t, err)
	cfg, err := buildConfig(settings)
	require.NoError(t, err)

	assert.Equal(t, "http://env.test", cfg.Backend.BaseURL)
	assert.Equal(t, 5, cfg.GuestLimit)
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "custom", "state.json"), cfg.Storage.Path)
}

func TestBuildConfig_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		settings string
		env      map[string]string
	}{
		{name: "guest limit", env: map[string]string{"NEWSROOM_GUEST_LIMIT": "zero"}},
		{name: "timeout", settings: "api:\n  timeout: soon\n"},
		{name: "store", env: map[string]string{"NEWSROOM_STATE_STORE": "redis"}},
		{name: "port", env: map[string]string{"PORT": "http"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.settings != "" {
				path = writeSettings(t, tt.settings)
			}

			settings, err := loadSettings(path)
			require.NoError(t, err)
			_, err = buildConfig(settings)
			assert.Error(t, err)
		})
	}
}

func TestLoadSettings_MissingFile(t *testing.T) {
	_, err := loadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
