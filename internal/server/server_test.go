package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticHealth bool

func (h staticHealth) Healthy(context.Context) bool { return bool(h) }

func TestLoadConfig(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("USE_HTTP2", "true")
	t.Setenv("CORS_ORIGINS", " http://a.test , ,http://b.test")

	cfg, err := LoadConfig(DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.UseHttp2)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CorsOrigins)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := LoadConfig(Config{})
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"*"}, cfg.CorsOrigins)
}

func TestLoadConfig_InvalidPort(t *testing.T) {
	for _, port := range []string{"abc", "0", "70000"} {
		t.Setenv("PORT", port)
		_, err := LoadConfig(DefaultConfig())
		assert.Error(t, err, port)
	}
}

func TestServer_HealthCheck(t *testing.T) {
	tests := []struct {
		name    string
		healthy bool
		status  int
	}{
		{name: "healthy", healthy: true, status: http.StatusOK},
		{name: "unhealthy", healthy: false, status: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			s := New(&cfg, staticHealth(tt.healthy)).
				SetupMiddlewares().
				SetupErrorHandler().
				SetupHealthChecks("")

			rec := httptest.NewRecorder()
			s.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, DefaultHealthPath, nil))

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
