package analysis

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renewable-invest/internal/config"
	"renewable-invest/internal/model"
)

func f64(v float64) *float64 { return &v }
func intp(v int) *int        { return &v }

func baseScenario() config.Config {
	return config.Config{
		Name: "base",
		System: config.SystemConfig{
			Sources:                    []config.SourceConfig{{Type: model.SourceSolar}},
			GridEmissionFactorKgPerKWh: f64(0.95),
			OperationalLifetimeYears:   intp(25),
		},
		Financial: config.FinancialConfig{
			ElectricityPricePerKWh:      f64(2.2),
			ElectricityPriceIncreasePct: f64(8),
			FinancingYears:              intp(10),
			InterestRatePct:             f64(7),
			DiscountRatePct:             f64(8),
		},
	}
}

func TestCompare_RanksByNPV(t *testing.T) {
	variations := []Variation{
		{Name: "as is"},
		{Name: "cheap panels", Config: config.Config{System: config.SystemConfig{
			Sources: []config.SourceConfig{{Type: model.SourceSolar, CostPerKW: f64(9000)}},
		}}},
		{Name: "low price", Config: config.Config{Financial: config.FinancialConfig{
			ElectricityPricePerKWh: f64(1.0),
		}}},
		{Name: "broken", Config: config.Config{Financial: config.FinancialConfig{
			ElectricityPricePerKWh: f64(-1),
		}}},
	}

	out := Compare(baseScenario(), variations, nil)
	require.Len(t, out, 4)

	names := make([]string, len(out))
	for i, o := range out {
		names[i] = o.Name
	}
	assert.Equal(t, []string{"cheap panels", "as is", "low price", "broken"}, names)

	assert.InDelta(t, 599155.8, float64(out[1].Result.Metrics.NPV), 1)
	assert.Nil(t, out[3].Result)
	assert.NotEmpty(t, out[3].Error)
	require.Len(t, out[3].Fields, 1)
	assert.Equal(t, "financial.electricity_price_per_kwh", out[3].Fields[0].Field)
}

func TestCompare_UnnamedVariationUsesConfigName(t *testing.T) {
	out := Compare(baseScenario(), []Variation{{Config: config.Config{Name: "from config"}}}, nil)
	require.Len(t, out, 1)
	assert.Equal(t, "from config", out[0].Name)
}

func TestSensitivity_PriceMovesNPV(t *testing.T) {
	in := baseScenario().Input(nil)

	points, err := Sensitivity(in, ParamElectricityPrice, []float64{-20, 0, 20})
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.InDelta(t, 1.76, points[0].Value, 1e-9)
	assert.InDelta(t, 2.2, points[1].Value, 1e-9)
	assert.Less(t, float64(points[0].NPV), float64(points[1].NPV))
	assert.Less(t, float64(points[1].NPV), float64(points[2].NPV))

	// input is not mutated
	assert.Equal(t, model.Currency(2.2), in.Financial.ElectricityPricePerKWh)
}

func TestSensitivity_SourceParamDoesNotMutateInput(t *testing.T) {
	in := baseScenario().Input(nil)
	_, err := Sensitivity(in, ParamCostPerKW, []float64{50})
	require.NoError(t, err)
	assert.Equal(t, model.Currency(15000), in.System.Sources[0].CostPerKW)
}

func TestSensitivity_KeepsFailedPoints(t *testing.T) {
	points, err := Sensitivity(baseScenario().Input(nil), ParamElectricityPrice, []float64{-100, 0})
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, -100.0, points[0].Change)
	assert.NotEmpty(t, points[0].Error)
	require.Len(t, points[0].Fields, 1)
	assert.Equal(t, "financial.electricity_price_per_kwh", points[0].Fields[0].Field)
	assert.Nil(t, points[0].IRR)

	assert.Empty(t, points[1].Error)
	assert.NotNil(t, points[1].IRR)
}

func TestFieldsOf_WrappedValidationError(t *testing.T) {
	ve := &model.ValidationError{Fields: []model.FieldError{{Field: "system.operational_lifetime_years", Message: "must be in [1, 50]"}}}
	assert.Equal(t, ve.Fields, fieldsOf(fmt.Errorf("run: %w", ve)))
	assert.Nil(t, fieldsOf(errors.New("boom")))
}

func TestSensitivity_UnknownParam(t *testing.T) {
	_, err := Sensitivity(baseScenario().Input(nil), "colour", []float64{10})
	assert.Error(t, err)
}
