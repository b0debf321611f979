package price

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renewable-invest/internal/model"
)

func TestEscalate(t *testing.T) {
	series := Escalate(2.20, 8, 3)
	require.Len(t, series, 3)

	assert.Equal(t, 1, series[0].Year)
	assert.InDelta(t, 2.20, float64(series[0].Price), 1e-12)
	assert.InDelta(t, 2.376, float64(series[1].Price), 1e-12)
	assert.InDelta(t, 2.56608, float64(series[2].Price), 1e-12)
}

func TestEscalate_NoYears(t *testing.T) {
	assert.Empty(t, Escalate(1, 5, 0))
}

func TestForecast_RealPriceFlatWhenInflationMatches(t *testing.T) {
	fin := model.FinancialConfiguration{ElectricityPricePerKWh: 1.5, ElectricityPriceIncreasePct: 3, InflationRatePct: 3}
	for _, p := range Forecast(fin, 10) {
		assert.InDelta(t, 1.5, float64(p.RealPrice), 1e-9, "year %d", p.Year)
	}
}
