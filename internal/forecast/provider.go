// Package forecast supplies per-technology weather adjustment factors for a
// location. The calculation engine never calls a provider itself; callers
// resolve factors first and pass them in.
package forecast

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"renewable-invest/internal/model"
)

// Provider returns output multipliers in [0, 1] keyed by source type.
type Provider interface {
	WeatherAdjustmentFactors(ctx context.Context, loc model.Location) (model.WeatherFactors, error)
}

// Static always returns the same factors.
type Static model.WeatherFactors

func (s Static) WeatherAdjustmentFactors(_ context.Context, _ model.Location) (model.WeatherFactors, error) {
	out := make(model.WeatherFactors, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out, nil
}

// Climatology is a deterministic latitude heuristic: solar yield falls and
// wind yield rises away from the equator. Hydro and wave use fixed factors.
type Climatology struct{}

const (
	climatologyHydro = 0.9
	climatologyWave  = 0.85
)

func (Climatology) WeatherAdjustmentFactors(_ context.Context, loc model.Location) (model.WeatherFactors, error) {
	if math.IsNaN(loc.Latitude) || loc.Latitude < -90 || loc.Latitude > 90 {
		return nil, fmt.Errorf("latitude %v out of range [-90, 90]", loc.Latitude)
	}
	lat := math.Abs(loc.Latitude)
	return model.WeatherFactors{
		model.SourceSolar: clamp01(1 - lat/150),
		model.SourceWind:  clamp01(0.6 + lat/150),
		model.SourceHydro: climatologyHydro,
		model.SourceWave:  climatologyWave,
	}, nil
}

// Resolve asks p for factors at loc. A nil provider, a provider error or an
// empty answer all yield neutral factors; the failure is logged, never returned.
// Every source type is present in the result and every value lies in [0, 1].
func Resolve(ctx context.Context, p Provider, loc model.Location, logger zerolog.Logger) model.WeatherFactors {
	if p == nil {
		return model.NeutralWeather()
	}
	factors, err := p.WeatherAdjustmentFactors(ctx, loc)
	if err != nil {
		logger.Warn().Err(err).
			Float64("latitude", loc.Latitude).
			Float64("longitude", loc.Longitude).
			Msg("weather forecast unavailable, using neutral factors")
		return model.NeutralWeather()
	}
	if len(factors) == 0 {
		logger.Warn().Msg("weather forecast returned no factors, using neutral factors")
		return model.NeutralWeather()
	}
	return normalize(factors)
}

func normalize(in model.WeatherFactors) model.WeatherFactors {
	out := model.NeutralWeather()
	for _, t := range model.SourceTypes {
		if v, ok := in[t]; ok && !math.IsNaN(v) {
			out[t] = clamp01(v)
		}
	}
	return out
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
