package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renewable-invest/internal/cashflow"
	"renewable-invest/internal/energy"
	"renewable-invest/internal/model"
)

func referenceScenario() (model.SystemConfiguration, model.FinancialConfiguration) {
	sys := model.SystemConfiguration{
		Sources: []model.EnergySource{{
			Type:                     model.SourceSolar,
			Enabled:                  true,
			CapacityKW:               10,
			EfficiencyPct:            20,
			CostPerKW:                15000,
			DailyProductionHours:     5.2,
			DegradationRatePct:       0.5,
			OperationalCostPerKWYear: 200,
		}},
		GridEmissionFactorKgPerKWh: 0.95,
		OperationalLifetimeYears:   25,
	}
	fin := model.FinancialConfiguration{
		ElectricityPricePerKWh:      2.20,
		ElectricityPriceIncreasePct: 8,
		FinancingYears:              10,
		InterestRatePct:             7,
		DiscountRatePct:             8,
	}
	return sys, fin
}

func rowsFromFlows(flows ...model.Currency) []model.YearlyCashFlow {
	rows := make([]model.YearlyCashFlow, len(flows))
	var cum model.Currency
	for i, cf := range flows {
		cum += cf
		rows[i] = model.YearlyCashFlow{Year: i, CashFlow: cf, CumulativeCashFlow: cum}
	}
	return rows
}

func TestNPV_ZeroDiscountIsPlainSum(t *testing.T) {
	flows := []model.Currency{-150000, 18856.37, 21971.9, 25319.4, -4000, 32781.2}
	var sum model.Currency
	for _, f := range flows {
		sum += f
	}
	npv, err := NPV(flows, 0)
	require.NoError(t, err)
	assert.Equal(t, sum, npv)
}

func TestNPV_Discounts(t *testing.T) {
	npv, err := NPV([]model.Currency{-100, 110}, 10)
	require.NoError(t, err)
	assert.InDelta(t, 0, float64(npv), 1e-9)
}

func TestNPV_RejectsUnusableRate(t *testing.T) {
	for _, rate := range []model.Percent{-1, model.Percent(math.NaN()), model.Percent(math.Inf(1))} {
		_, err := NPV([]model.Currency{-100, 50}, rate)
		var ce *model.ConfigurationError
		assert.ErrorAs(t, err, &ce, "rate %v", rate)
	}
}

func TestNPV_StopsAtBadTerm(t *testing.T) {
	flows := []model.Currency{-100, 50, model.Currency(math.Inf(1)), 70}
	npv, err := NPV(flows, 0)
	require.NoError(t, err)
	assert.Equal(t, model.Currency(-50), npv)
}

func TestIRR_SimpleProject(t *testing.T) {
	irr, err := IRR([]model.Currency{-100, 110})
	require.NoError(t, err)
	assert.InDelta(t, 10, float64(irr), 1e-4)
}

func TestIRR_MultipleSignChangesStaysInRange(t *testing.T) {
	schedules := [][]model.Currency{
		{-100, 230, -132},
		{-1000, 500, 500, -200, 400, -300, 600},
		{-1000, 100, 100, 100},
	}
	for _, flows := range schedules {
		irr, err := IRR(flows)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, float64(irr), -100.0)
		assert.LessOrEqual(t, float64(irr), 100.0)
	}
}

func TestIRR_ClampsToUpperBound(t *testing.T) {
	irr, err := IRR([]model.Currency{100, 100, 100})
	require.NoError(t, err)
	assert.Equal(t, model.Percent(100), irr)
}

func TestIRR_EmptySchedule(t *testing.T) {
	_, err := IRR(nil)
	assert.Error(t, err)
}

func TestPayback_Interpolates(t *testing.T) {
	rows := rowsFromFlows(-100, 30, 30, 60)
	years, ok := Payback(rows, 3)

	require.True(t, ok)
	// cumulative: -100, -70, -40, 20 → 2 + 40/60
	assert.InDelta(t, 2+40.0/60, years, 1e-12)
}

func TestPayback_Sentinels(t *testing.T) {
	never, ok := Payback(rowsFromFlows(-100, 10, 10), 2)
	assert.False(t, ok)
	assert.Equal(t, 2.0, never)

	immediate, ok := Payback(rowsFromFlows(0, 10, 10), 2)
	assert.False(t, ok)
	assert.Equal(t, 2.0, immediate)
}

func TestPayback_Consistency(t *testing.T) {
	rows := rowsFromFlows(-500, 80, 120, -40, 200, 250, 300)
	p, ok := Payback(rows, 6)
	require.True(t, ok)

	lo := int(math.Floor(p))
	frac := p - float64(lo)
	at := float64(rows[lo].CumulativeCashFlow) + frac*float64(rows[lo+1].CumulativeCashFlow-rows[lo].CumulativeCashFlow)
	assert.InDelta(t, 0, at, 1e-9)
	for y := 0; y < lo; y++ {
		assert.Negative(t, float64(rows[y].CumulativeCashFlow))
	}
}

func TestDiscountedPayback_LaterThanPlain(t *testing.T) {
	rows := rowsFromFlows(-100, 40, 40, 40, 40)
	plain, ok := Payback(rows, 4)
	require.True(t, ok)

	discounted, ok, err := DiscountedPayback(rows, 10, 4)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Greater(t, discounted, plain)

	same, _, err := DiscountedPayback(rows, 0, 4)
	require.NoError(t, err)
	assert.InDelta(t, plain, same, 1e-12)
}

func TestROI_CountsOnlyPositiveYears(t *testing.T) {
	roi, err := ROI([]model.Currency{-100, 50, -30, 100}, 100)
	require.NoError(t, err)
	assert.InDelta(t, 50, float64(roi), 1e-12)
}

func TestROI_ZeroInstallationCost(t *testing.T) {
	_, err := ROI([]model.Currency{0, 50}, 0)
	var ce *model.ConfigurationError
	assert.ErrorAs(t, err, &ce)
}

func TestROI_NonFiniteInstallationCost(t *testing.T) {
	_, err := ROI([]model.Currency{0, 50}, model.Currency(math.Inf(1)))
	var ce *model.ConfigurationError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Reason, "not a finite number")
}

func TestLCOE(t *testing.T) {
	lcoe, err := LCOE(1000, 100, 10, []model.KilowattHours{500, 500, 500, 500})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, float64(lcoe), 1e-12)

	_, err = LCOE(1000, 100, 10, []model.KilowattHours{0, 0})
	var ce *model.ConfigurationError
	assert.ErrorAs(t, err, &ce)
}

func TestCompute_ReferenceScenario(t *testing.T) {
	sys, fin := referenceScenario()
	gen := energy.Project(sys, nil)
	rows, err := cashflow.Build(sys, fin, gen.YearlySeries())
	require.NoError(t, err)

	m, err := Compute(sys, fin, rows, gen.YearlySeries())
	require.NoError(t, err)

	assert.True(t, m.PaybackReached)
	assert.Greater(t, m.PaybackPeriodYears, 0.0)
	assert.Less(t, m.PaybackPeriodYears, 25.0)
	assert.InDelta(t, 5.5999, m.PaybackPeriodYears, 1e-3)
	assert.InDelta(t, 599155.8, float64(m.NPV), 1)
	require.NotNil(t, m.IRR)
	assert.InDelta(t, 25.0038, float64(*m.IRR), 1e-3)
	assert.InDelta(t, 1608.73, float64(m.ROIPct), 0.01)
	assert.InDelta(t, 0.44734, float64(m.LCOEPerKWh), 1e-4)
	assert.Nil(t, m.Unavailable)
	assert.Len(t, m.YearlyCashFlows, 26)
}

func TestCompute_RejectsNegativeDiscount(t *testing.T) {
	sys, fin := referenceScenario()
	fin.DiscountRatePct = -2
	gen := energy.Project(sys, nil)
	rows, err := cashflow.Build(sys, fin, gen.YearlySeries())
	require.NoError(t, err)

	_, err = Compute(sys, fin, rows, gen.YearlySeries())
	var ce *model.ConfigurationError
	assert.ErrorAs(t, err, &ce)
}

func TestCompute_ZeroInstallationCost(t *testing.T) {
	sys, fin := referenceScenario()
	sys.Sources[0].CostPerKW = 0
	gen := energy.Project(sys, nil)
	rows, err := cashflow.Build(sys, fin, gen.YearlySeries())
	require.NoError(t, err)

	_, err = Compute(sys, fin, rows, gen.YearlySeries())
	var ce *model.ConfigurationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "roi", ce.Op)
}
