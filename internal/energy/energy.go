// Package energy projects daily, monthly, yearly and lifetime output of a
// system configuration.
package energy

import (
	"math"

	"renewable-invest/internal/model"
)

// DailyKWh is a single source's first-year daily output with the weather
// multiplier applied. Disabled sources produce nothing.
func DailyKWh(src model.EnergySource, factor float64) model.KilowattHours {
	if !src.Enabled {
		return 0
	}
	return model.KilowattHours(float64(src.CapacityKW) * float64(src.DailyProductionHours) * factor)
}

// SourceSeries returns one source's annual output for years 1..years.
// Degradation compounds per year: year y is scaled by (1 - rate)^(y-1).
func SourceSeries(src model.EnergySource, factor float64, years int) []model.KilowattHours {
	out := make([]model.KilowattHours, years)
	if !src.Enabled {
		return out
	}
	base := float64(DailyKWh(src, factor)) * model.DaysPerYear
	retain := 1 - src.DegradationRatePct.Fraction()
	for y := 1; y <= years; y++ {
		out[y-1] = model.KilowattHours(base * math.Pow(retain, float64(y-1)))
	}
	return out
}

// Project computes the production model for cfg. weather may be nil, in which
// case every source uses a multiplier of 1.
//
// The lifetime series is built per source and then summed, so sources with
// different degradation rates age independently.
func Project(cfg model.SystemConfiguration, weather model.WeatherFactors) model.EnergyGeneration {
	years := cfg.OperationalLifetimeYears
	if years < 0 {
		years = 0
	}
	gen := model.EnergyGeneration{
		ByYear:   make([]model.EnergyByYear, years),
		BySource: []model.SourceEnergy{},
	}
	for y := range gen.ByYear {
		gen.ByYear[y].Year = y + 1
	}

	for _, src := range cfg.EnabledSources() {
		factor := weather.Factor(src.Type)
		daily := DailyKWh(src, factor)
		gen.DailyKWh += daily
		gen.BySource = append(gen.BySource, model.SourceEnergy{
			Type:          src.Type,
			WeatherFactor: factor,
			DailyKWh:      daily,
			YearlyKWh:     daily * model.DaysPerYear,
		})
		for i, kwh := range SourceSeries(src, factor, years) {
			gen.ByYear[i].EnergyKWh += kwh
		}
	}

	gen.MonthlyKWh = gen.DailyKWh * model.DaysPerMonth
	gen.YearlyKWh = gen.DailyKWh * model.DaysPerYear
	for _, e := range gen.ByYear {
		gen.LifetimeKWh += e.EnergyKWh
	}
	return gen
}
