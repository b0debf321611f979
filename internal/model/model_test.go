package model

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solar() EnergySource {
	s, _ := DefaultSource(SourceSolar)
	return s
}

func TestSystemConfiguration_DisabledSourcesExcluded(t *testing.T) {
	wind := EnergySource{
		Type:                     SourceWind,
		Enabled:                  false,
		CapacityKW:               9999,
		EfficiencyPct:            99,
		CostPerKW:                1e6,
		DailyProductionHours:     24,
		OperationalCostPerKWYear: 1e5,
	}
	cfg := SystemConfiguration{Sources: []EnergySource{solar(), wind}}

	assert.Equal(t, Kilowatts(10), cfg.TotalCapacityKW())
	assert.Equal(t, Percent(20), cfg.AverageEfficiencyPct())
	assert.Equal(t, Currency(150000), cfg.TotalInstallationCost())
	assert.Equal(t, Currency(2000), cfg.TotalOperationalCostPerYear())
}

func TestSystemConfiguration_TotalsFollowSources(t *testing.T) {
	cfg := SystemConfiguration{Sources: []EnergySource{solar()}}
	require.Equal(t, Currency(150000), cfg.TotalInstallationCost())

	hydro, ok := DefaultSource(SourceHydro)
	require.True(t, ok)
	hydro.Enabled = true
	cfg.Sources = append(cfg.Sources, hydro)

	assert.Equal(t, Kilowatts(30), cfg.TotalCapacityKW())
	assert.Equal(t, Currency(150000+20*30000), cfg.TotalInstallationCost())
	assert.Equal(t, Percent((20+85)/2.0), cfg.AverageEfficiencyPct())
}

func TestSystemConfiguration_AverageEfficiencyNoEnabled(t *testing.T) {
	s := solar()
	s.Enabled = false
	cfg := SystemConfiguration{Sources: []EnergySource{s}}
	assert.Zero(t, cfg.AverageEfficiencyPct())
}

func TestSystemConfiguration_Validate(t *testing.T) {
	valid := SystemConfiguration{
		Sources:                    []EnergySource{solar()},
		GridEmissionFactorKgPerKWh: 0.95,
		OperationalLifetimeYears:   25,
	}
	require.NoError(t, valid.Validate())

	bad := valid.WithSources([]EnergySource{{Type: SourceSolar, Enabled: true, EfficiencyPct: 120}})
	bad.OperationalLifetimeYears = 0
	bad.GridEmissionFactorKgPerKWh = 0

	err := bad.Validate()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))

	fields := map[string]bool{}
	for _, f := range ve.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["energy_sources[0].capacity_kw"])
	assert.True(t, fields["energy_sources[0].efficiency_pct"])
	assert.True(t, fields["grid_emission_factor_kg_per_kwh"])
	assert.True(t, fields["operational_lifetime_years"])
}

func TestEnergySource_ValidateRejectsNonFinite(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	tests := []struct {
		field  string
		mutate func(*EnergySource)
	}{
		{"capacity_kw", func(s *EnergySource) { s.CapacityKW = Kilowatts(inf) }},
		{"efficiency_pct", func(s *EnergySource) { s.EfficiencyPct = Percent(nan) }},
		{"cost_per_kw", func(s *EnergySource) { s.CostPerKW = Currency(nan) }},
		{"cost_per_kw", func(s *EnergySource) { s.CostPerKW = Currency(inf) }},
		{"daily_production_hours", func(s *EnergySource) { s.DailyProductionHours = Hours(nan) }},
		{"degradation_rate_pct", func(s *EnergySource) { s.DegradationRatePct = Percent(nan) }},
		{"operational_cost_per_kw_year", func(s *EnergySource) { s.OperationalCostPerKWYear = Currency(math.Inf(-1)) }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			s := solar()
			tt.mutate(&s)
			var ve *ValidationError
			require.ErrorAs(t, s.Validate(), &ve)
			require.Len(t, ve.Fields, 1)
			assert.Equal(t, tt.field, ve.Fields[0].Field)
		})
	}
}

func TestSystemConfiguration_ValidateRequiresEnabledSource(t *testing.T) {
	s := solar()
	s.Enabled = false
	cfg := SystemConfiguration{Sources: []EnergySource{s}, GridEmissionFactorKgPerKWh: 0.5, OperationalLifetimeYears: 10}
	assert.Error(t, cfg.Validate())
}

func TestFinancialConfiguration_Validate(t *testing.T) {
	fin := FinancialConfiguration{
		ElectricityPricePerKWh:      2.2,
		ElectricityPriceIncreasePct: 8,
		FinancingYears:              10,
		InterestRatePct:             7,
		DiscountRatePct:             8,
	}
	require.NoError(t, fin.Validate())

	fin.DiscountRatePct = -1
	fin.InterestRatePct = 101
	err := fin.Validate()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 2)
}

func TestDefaultSources_CoverAllTypes(t *testing.T) {
	sources := DefaultSources()
	require.Len(t, sources, len(SourceTypes))
	for i, s := range sources {
		assert.Equal(t, SourceTypes[i], s.Type)
		assert.NoError(t, s.Validate())
	}
}

func TestWeatherFactors_Factor(t *testing.T) {
	var none WeatherFactors
	assert.Equal(t, 1.0, none.Factor(SourceWave))

	w := WeatherFactors{SourceSolar: 0.8}
	assert.Equal(t, 0.8, w.Factor(SourceSolar))
	assert.Equal(t, 1.0, w.Factor(SourceWind))
}
