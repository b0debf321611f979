package forecast

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renewable-invest/internal/model"
)

type failingProvider struct{}

func (failingProvider) WeatherAdjustmentFactors(context.Context, model.Location) (model.WeatherFactors, error) {
	return nil, errors.New("offline")
}

type countingProvider struct {
	calls atomic.Int32
}

func (p *countingProvider) WeatherAdjustmentFactors(context.Context, model.Location) (model.WeatherFactors, error) {
	p.calls.Add(1)
	return model.WeatherFactors{model.SourceSolar: 0.7}, nil
}

func TestResolve_FallsBackToNeutral(t *testing.T) {
	loc := model.Location{Latitude: 57.7, Longitude: 11.97}

	for name, p := range map[string]Provider{
		"nil":     nil,
		"failing": failingProvider{},
		"empty":   Static{},
	} {
		t.Run(name, func(t *testing.T) {
			got := Resolve(context.Background(), p, loc, zerolog.Nop())
			assert.Equal(t, model.NeutralWeather(), got)
		})
	}
}

func TestResolve_ClampsAndFills(t *testing.T) {
	p := Static{model.SourceSolar: 1.4, model.SourceWind: -0.2}
	got := Resolve(context.Background(), p, model.Location{}, zerolog.Nop())

	assert.Equal(t, 1.0, got[model.SourceSolar])
	assert.Equal(t, 0.0, got[model.SourceWind])
	assert.Equal(t, 1.0, got[model.SourceHydro])
	assert.Equal(t, 1.0, got[model.SourceWave])
}

func TestClimatology(t *testing.T) {
	ctx := context.Background()

	equator, err := Climatology{}.WeatherAdjustmentFactors(ctx, model.Location{Latitude: 0})
	require.NoError(t, err)
	north, err := Climatology{}.WeatherAdjustmentFactors(ctx, model.Location{Latitude: 60})
	require.NoError(t, err)
	south, err := Climatology{}.WeatherAdjustmentFactors(ctx, model.Location{Latitude: -60})
	require.NoError(t, err)

	assert.Equal(t, 1.0, equator[model.SourceSolar])
	assert.Greater(t, equator[model.SourceSolar], north[model.SourceSolar])
	assert.Less(t, equator[model.SourceWind], north[model.SourceWind])
	assert.Equal(t, north, south)
	for _, f := range []model.WeatherFactors{equator, north} {
		for _, v := range f {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}

	_, err = Climatology{}.WeatherAdjustmentFactors(ctx, model.Location{Latitude: 91})
	assert.Error(t, err)
}

func TestHTTPClient_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/weather-factors", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.Equal(t, "57.7", r.URL.Query().Get("latitude"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"factors":{"solar":0.82,"wind":1.0,"geothermal":0.5}}`))
	}))
	defer srv.Close()

	c := NewHTTPClient("secret", srv.URL, zerolog.Nop())
	got, err := c.WeatherAdjustmentFactors(context.Background(), model.Location{Latitude: 57.7, Longitude: 11.97})
	require.NoError(t, err)

	assert.InDelta(t, 0.82, got[model.SourceSolar], 1e-12)
	assert.InDelta(t, 1.0, got[model.SourceWind], 1e-12)
	assert.Len(t, got, 2)
}

func TestHTTPClient_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		code   string
	}{
		{"unauthorized", http.StatusForbidden, "", "UNAUTHORIZED"},
		{"rate limited", http.StatusTooManyRequests, "", "RATE_LIMIT_EXCEEDED"},
		{"server error", http.StatusInternalServerError, "", "API_ERROR"},
		{"bad body", http.StatusOK, "not json", "INVALID_RESPONSE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status == http.StatusTooManyRequests {
					w.Header().Set("Retry-After", "30")
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewHTTPClient("", srv.URL, zerolog.Nop())
			_, err := c.WeatherAdjustmentFactors(context.Background(), model.Location{})

			var perr *ProviderError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.code, perr.Code)
			if tt.status == http.StatusTooManyRequests {
				assert.Equal(t, "30", perr.RetryAfter)
			}
		})
	}
}

func TestCached(t *testing.T) {
	next := &countingProvider{}
	c := NewCached(next, time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	loc := model.Location{Latitude: 10, Longitude: 20}
	ctx := context.Background()

	_, err := c.WeatherAdjustmentFactors(ctx, loc)
	require.NoError(t, err)
	got, err := c.WeatherAdjustmentFactors(ctx, loc)
	require.NoError(t, err)
	assert.Equal(t, int32(1), next.calls.Load())
	assert.InDelta(t, 0.7, got[model.SourceSolar], 1e-12)

	// mutating a returned map must not poison the cache
	got[model.SourceSolar] = 0
	again, _ := c.WeatherAdjustmentFactors(ctx, loc)
	assert.InDelta(t, 0.7, again[model.SourceSolar], 1e-12)

	now = now.Add(2 * time.Minute)
	c.Sweep()
	assert.Equal(t, 0, c.Len())

	_, err = c.WeatherAdjustmentFactors(ctx, loc)
	require.NoError(t, err)
	assert.Equal(t, int32(2), next.calls.Load())
}

func TestCached_DoesNotCacheErrors(t *testing.T) {
	c := NewCached(failingProvider{}, time.Minute)
	_, err := c.WeatherAdjustmentFactors(context.Background(), model.Location{})
	assert.Error(t, err)
	assert.Equal(t, 0, c.Len())
}
