// Package goal suggests a system size that meets an energy or carbon target.
package goal

import (
	"math"

	"renewable-invest/internal/model"
)

// Metric names the forward relationship an estimate was inverted from.
type Metric string

const (
	MetricDaily   Metric = "daily_kwh"
	MetricMonthly Metric = "monthly_kwh"
	MetricYearly  Metric = "yearly_kwh"
	MetricCarbon  Metric = "yearly_carbon_kg"
)

// Target holds one or more desired outputs. Nil fields are unspecified.
type Target struct {
	DailyKWh       *float64 `json:"daily_kwh,omitempty"`
	MonthlyKWh     *float64 `json:"monthly_kwh,omitempty"`
	YearlyKWh      *float64 `json:"yearly_kwh,omitempty"`
	YearlyCarbonKg *float64 `json:"yearly_carbon_kg,omitempty"`
}

// Estimate is the capacity implied by a single metric.
type Estimate struct {
	Metric     Metric          `json:"metric"`
	Value      float64         `json:"value"`
	Derived    bool            `json:"derived"`
	CapacityKW model.Kilowatts `json:"capacity_kw"`
}

// Suggestion is the solver output. System is ready to feed into the forward
// pipeline: one enabled solar source of the suggested size.
type Suggestion struct {
	CapacityKW model.Kilowatts           `json:"capacity_kw"`
	Estimates  []Estimate                `json:"estimates"`
	System     model.SystemConfiguration `json:"system"`
}

// DefaultLifetimeYears is the horizon given to the suggested system.
const DefaultLifetimeYears = 25

// Solve inverts the four forward relationships of the production and carbon
// models and averages the resulting capacities.
//
// The first specified metric (daily, monthly, yearly, carbon, in that order)
// is the primary target; metrics left unspecified are derived from it. The
// average is a smoothing heuristic, not a physical law: when several metrics
// are given and disagree, the answer is a blend rather than an exact fit.
func Solve(target Target, gridFactor float64, dailyHours model.Hours) (Suggestion, error) {
	var errs []model.FieldError
	if !(dailyHours > 0) || math.IsInf(float64(dailyHours), 0) {
		errs = append(errs, model.FieldError{Field: "daily_production_hours", Message: "must be > 0"})
	}
	if !(gridFactor > 0) || math.IsInf(gridFactor, 0) {
		errs = append(errs, model.FieldError{Field: "grid_emission_factor_kg_per_kwh", Message: "must be > 0"})
	}
	for _, f := range []struct {
		name string
		v    *float64
	}{
		{string(MetricDaily), target.DailyKWh},
		{string(MetricMonthly), target.MonthlyKWh},
		{string(MetricYearly), target.YearlyKWh},
		{string(MetricCarbon), target.YearlyCarbonKg},
	} {
		if f.v != nil && (!(*f.v > 0) || math.IsInf(*f.v, 0)) {
			errs = append(errs, model.FieldError{Field: f.name, Message: "must be > 0"})
		}
	}
	primaryDaily, ok := impliedDaily(target, gridFactor)
	if !ok {
		errs = append(errs, model.FieldError{Field: "target", Message: "at least one target metric is required"})
	}
	if len(errs) > 0 {
		return Suggestion{}, &model.ValidationError{Fields: errs}
	}

	h := float64(dailyHours)
	estimates := []Estimate{
		estimate(MetricDaily, target.DailyKWh, primaryDaily, h),
		estimate(MetricMonthly, target.MonthlyKWh, primaryDaily*model.DaysPerMonth, h*model.DaysPerMonth),
		estimate(MetricYearly, target.YearlyKWh, primaryDaily*model.DaysPerYear, h*model.DaysPerYear),
	}
	estimates = append(estimates,
		estimate(MetricCarbon, target.YearlyCarbonKg, primaryDaily*model.DaysPerYear*gridFactor, gridFactor*h*model.DaysPerYear))

	var sum model.Kilowatts
	for _, e := range estimates {
		sum += e.CapacityKW
	}
	capacity := sum / model.Kilowatts(len(estimates))

	src, _ := model.DefaultSource(model.SourceSolar)
	src.Enabled = true
	src.CapacityKW = capacity
	src.DailyProductionHours = dailyHours

	return Suggestion{
		CapacityKW: capacity,
		Estimates:  estimates,
		System: model.SystemConfiguration{
			Sources:                    []model.EnergySource{src},
			GridEmissionFactorKgPerKWh: gridFactor,
			OperationalLifetimeYears:   DefaultLifetimeYears,
		},
	}, nil
}

// estimate inverts value / divisor, using derived when the metric was not given.
func estimate(m Metric, given *float64, derived, divisor float64) Estimate {
	e := Estimate{Metric: m, Value: derived, Derived: true}
	if given != nil {
		e.Value = *given
		e.Derived = false
	}
	e.CapacityKW = model.Kilowatts(e.Value / divisor)
	return e
}

// impliedDaily converts the primary target into a daily energy figure.
func impliedDaily(t Target, gridFactor float64) (float64, bool) {
	switch {
	case t.DailyKWh != nil:
		return *t.DailyKWh, true
	case t.MonthlyKWh != nil:
		return *t.MonthlyKWh / model.DaysPerMonth, true
	case t.YearlyKWh != nil:
		return *t.YearlyKWh / model.DaysPerYear, true
	case t.YearlyCarbonKg != nil:
		return *t.YearlyCarbonKg / gridFactor / model.DaysPerYear, true
	}
	return 0, false
}
