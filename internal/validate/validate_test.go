package validate

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renewable-invest/internal/model"
)

func fullForm() map[string]any {
	return map[string]any{
		"capacity_kw":                     10.0,
		"efficiency_pct":                  20.0,
		"cost_per_kw":                     "15 000 kr",
		"daily_production_hours":          "5.2",
		"degradation_rate_pct":            0.5,
		"operational_cost_per_year":       2000,
		"electricity_price_per_kwh":       2.2,
		"electricity_price_increase_pct":  8,
		"financing_years":                 10,
		"interest_rate_pct":               "7%",
		"inflation_rate_pct":              2,
		"discount_rate_pct":               8,
		"grid_emission_factor_kg_per_kwh": 0.95,
		"operational_lifetime_years":      25,
	}
}

func TestNormalize_ParsesNumericStrings(t *testing.T) {
	rec := Normalize(fullForm())

	assert.Empty(t, rec.Invalid)
	assert.Empty(t, rec.Missing)
	assert.Equal(t, 15000.0, rec.Values[FieldCostPerKW])
	assert.Equal(t, 5.2, rec.Values[FieldDailyHours])
	assert.Equal(t, 7.0, rec.Values[FieldInterestRate])
}

func TestNormalize_InvalidAndMissing(t *testing.T) {
	raw := map[string]any{
		"capacity":         "",
		"efficiency":       "abc",
		"electricityPrice": json.Number("2.5"),
		"colour":           "green",
	}
	rec := Normalize(raw)

	assert.ElementsMatch(t, []string{FieldCapacity, FieldEfficiency}, rec.Invalid)
	assert.True(t, math.IsNaN(rec.Values[FieldCapacity]))
	assert.Equal(t, 2.5, rec.Values[FieldPrice])
	assert.Equal(t, []string{"colour"}, rec.Unknown)
	assert.Contains(t, rec.Missing, FieldLifetime)
	assert.NotContains(t, rec.Missing, FieldCapacity)
}

func TestValidate_FullFormIsValid(t *testing.T) {
	res := Validate(Normalize(fullForm()))
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestValidate_RangeRules(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value any
	}{
		{"zero capacity", FieldCapacity, 0},
		{"efficiency above 100", FieldEfficiency, 101},
		{"zero efficiency", FieldEfficiency, 0},
		{"negative interest", FieldInterestRate, -1},
		{"interest above 100", FieldInterestRate, 150},
		{"fractional lifetime", FieldLifetime, 12.5},
		{"lifetime above 50", FieldLifetime, 60},
		{"negative discount", FieldDiscountRate, -3},
		{"zero grid factor", FieldGridFactor, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := fullForm()
			raw[tt.field] = tt.value
			res := Validate(Normalize(raw))

			require.False(t, res.IsValid)
			require.Len(t, res.Errors, 1)
			assert.Equal(t, tt.field, res.Errors[0].Field)
		})
	}
}

func TestValidate_WarningsDoNotInvalidate(t *testing.T) {
	raw := fullForm()
	raw[FieldCapacity] = 2500
	raw[FieldPrice] = 12
	res := Validate(Normalize(raw))

	assert.True(t, res.IsValid)
	require.Len(t, res.Warnings, 2)
	assert.Equal(t, FieldCapacity, res.Warnings[0].Field)
	assert.Equal(t, FieldPrice, res.Warnings[1].Field)
}

func TestValidate_NaNIsInvalid(t *testing.T) {
	raw := fullForm()
	raw[FieldCapacity] = "n/a"
	res := Validate(Normalize(raw))

	assert.False(t, res.IsValid)
	assert.Equal(t, "is not a number", res.Errors[0].Message)
}

func TestProcess_ImputesAndFlagsMissing(t *testing.T) {
	raw := fullForm()
	delete(raw, FieldInflationRate)
	delete(raw, FieldLifetime)

	rec, res := Process(raw)

	assert.True(t, res.IsValid)
	assert.ElementsMatch(t, []string{FieldInflationRate, FieldLifetime}, res.MissingDataFlags)
	assert.Equal(t, Defaults()[FieldLifetime], rec.Values[FieldLifetime])
	assert.Empty(t, rec.Missing)
}

func TestProcess_DoesNotImputeInvalid(t *testing.T) {
	raw := fullForm()
	raw[FieldPrice] = "free"
	rec, res := Process(raw)

	assert.False(t, res.IsValid)
	assert.True(t, math.IsNaN(rec.Values[FieldPrice]))
	assert.NotContains(t, res.MissingDataFlags, FieldPrice)
}

func TestToConfigs(t *testing.T) {
	rec := Normalize(fullForm())
	sys, fin, err := ToConfigs(rec, model.SourceSolar)
	require.NoError(t, err)

	require.NoError(t, sys.Validate())
	require.NoError(t, fin.Validate())
	assert.Equal(t, model.Currency(150000), sys.TotalInstallationCost())
	assert.InDelta(t, 2000, float64(sys.TotalOperationalCostPerYear()), 1e-9)
	assert.Equal(t, 25, sys.OperationalLifetimeYears)
	assert.Equal(t, 10, fin.FinancingYears)
}

func TestToConfigs_RejectsInvalid(t *testing.T) {
	raw := fullForm()
	raw[FieldCapacity] = -5
	_, _, err := ToConfigs(Normalize(raw), model.SourceSolar)

	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, FieldCapacity, ve.Fields[0].Field)
}
