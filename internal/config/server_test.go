package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"API_PORT", "API_ENV", "SCENARIO_DIR", "CORS_ALLOWED_ORIGINS", "FORECAST_CACHE_TTL", "RESULT_TTL"} {
		t.Setenv(k, "")
	}
	s, err := ServerFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", s.Port)
	assert.False(t, s.Production())
	assert.Empty(t, s.AllowedOrigins)
	assert.Equal(t, time.Hour, s.ForecastTTL)
	assert.Equal(t, 24*time.Hour, s.ResultTTL)
}

func TestServerFromEnv_Overrides(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("API_ENV", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("RESULT_TTL", "15m")

	s, err := ServerFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "9090", s.Port)
	assert.True(t, s.Production())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, s.AllowedOrigins)
	assert.Equal(t, 15*time.Minute, s.ResultTTL)
}

func TestServerFromEnv_BadDuration(t *testing.T) {
	t.Setenv("FORECAST_CACHE_TTL", "soon")
	_, err := ServerFromEnv()
	assert.ErrorContains(t, err, "FORECAST_CACHE_TTL")
}
