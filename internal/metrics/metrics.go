// Package metrics computes capital-budgeting metrics from a cash-flow schedule.
//
// Every function is pure. Arithmetic that would produce NaN or Inf is reported
// as a typed error from the model package instead.
package metrics

import (
	"fmt"
	"math"

	"renewable-invest/internal/model"
)

// NPV discounts flows[y] by (1+d)^y and sums them, year 0 included.
//
// A negative or non-finite discount rate is a *model.ConfigurationError. If a
// single term turns out non-finite the sum so far is returned.
func NPV(flows []model.Currency, discountPct model.Percent) (model.Currency, error) {
	d := float64(discountPct)
	if !finite(d) || d < 0 {
		return 0, model.NewConfigurationError("npv", fmt.Sprintf("discount rate must be a finite value >= 0, got %v", d))
	}
	base := 1 + discountPct.Fraction()
	var sum float64
	for y, cf := range flows {
		term := float64(cf) / math.Pow(base, float64(y))
		if !finite(term) {
			break
		}
		sum += term
	}
	return model.Currency(sum), nil
}

// Payback returns the interpolated year in which the cumulative cash flow
// first becomes non-negative, and true.
//
// When the schedule never recovers, or is already non-negative in year 0, the
// sentinel lifetimeYears is returned with false.
func Payback(rows []model.YearlyCashFlow, lifetimeYears int) (float64, bool) {
	cum := make([]float64, len(rows))
	for i, r := range rows {
		cum[i] = float64(r.CumulativeCashFlow)
	}
	return crossing(cum, lifetimeYears)
}

// DiscountedPayback is Payback over the cumulative sum of discounted flows.
func DiscountedPayback(rows []model.YearlyCashFlow, discountPct model.Percent, lifetimeYears int) (float64, bool, error) {
	d := float64(discountPct)
	if !finite(d) || d < 0 {
		return 0, false, model.NewConfigurationError("discounted payback", fmt.Sprintf("discount rate must be a finite value >= 0, got %v", d))
	}
	base := 1 + discountPct.Fraction()
	cum := make([]float64, len(rows))
	running := 0.0
	for i, r := range rows {
		running += float64(r.CashFlow) / math.Pow(base, float64(i))
		cum[i] = running
	}
	years, ok := crossing(cum, lifetimeYears)
	return years, ok, nil
}

func crossing(cum []float64, sentinel int) (float64, bool) {
	for i, c := range cum {
		if c < 0 {
			continue
		}
		if i == 0 {
			return float64(sentinel), false
		}
		prev := cum[i-1]
		return float64(i-1) + math.Abs(prev)/(c-prev), true
	}
	return float64(sentinel), false
}

// ROI is (sum of positive flows - installation cost) / installation cost × 100.
// Only years with a positive cash flow count; negative years are not netted.
func ROI(flows []model.Currency, installationCost model.Currency) (model.Percent, error) {
	if !finite(float64(installationCost)) {
		return 0, model.NewConfigurationError("roi", "total installation cost is not a finite number")
	}
	if installationCost == 0 {
		return 0, model.NewConfigurationError("roi", "total installation cost is zero")
	}
	var positive model.Currency
	for _, cf := range flows {
		if cf > 0 {
			positive += cf
		}
	}
	return model.Percent(float64(positive-installationCost) / float64(installationCost) * 100), nil
}

// LCOE is lifetime cost divided by lifetime energy.
func LCOE(installationCost, opCostPerYear model.Currency, lifetimeYears int, energy []model.KilowattHours) (model.Currency, error) {
	var total model.KilowattHours
	for _, e := range energy {
		total += e
	}
	if total <= 0 || !finite(float64(total)) {
		return 0, model.NewConfigurationError("lcoe", "total lifetime energy is zero")
	}
	cost := installationCost + opCostPerYear*model.Currency(lifetimeYears)
	return model.Currency(float64(cost) / float64(total)), nil
}

// Compute runs every metric over a built schedule. An IRR that cannot be
// determined is reported in Unavailable; configuration errors are returned.
func Compute(sys model.SystemConfiguration, fin model.FinancialConfiguration, rows []model.YearlyCashFlow, energy []model.KilowattHours) (model.FinancialMetrics, error) {
	flows := model.CashFlowValues(rows)
	installation := sys.TotalInstallationCost()
	lifetime := sys.OperationalLifetimeYears

	m := model.FinancialMetrics{
		YearlyCashFlows: rows,
		Unavailable:     map[string]string{},
	}

	npv, err := NPV(flows, fin.DiscountRatePct)
	if err != nil {
		return model.FinancialMetrics{}, err
	}
	m.NPV = npv

	if irr, err := IRR(flows); err != nil {
		m.Unavailable["irr"] = err.Error()
	} else {
		m.IRR = &irr
	}

	m.PaybackPeriodYears, m.PaybackReached = Payback(rows, lifetime)
	if m.DiscountedPayback, _, err = DiscountedPayback(rows, fin.DiscountRatePct, lifetime); err != nil {
		return model.FinancialMetrics{}, err
	}

	if m.ROIPct, err = ROI(flows, installation); err != nil {
		return model.FinancialMetrics{}, err
	}
	if m.LCOEPerKWh, err = LCOE(installation, sys.TotalOperationalCostPerYear(), lifetime, energy); err != nil {
		return model.FinancialMetrics{}, err
	}

	if len(m.Unavailable) == 0 {
		m.Unavailable = nil
	}
	return m, nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
