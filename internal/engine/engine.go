// Package engine runs a complete investment calculation: production, cash
// flows, metrics, carbon and price forecast.
package engine

import (
	"errors"
	"fmt"
	"math"

	"renewable-invest/internal/carbon"
	"renewable-invest/internal/cashflow"
	"renewable-invest/internal/energy"
	"renewable-invest/internal/metrics"
	"renewable-invest/internal/model"
	"renewable-invest/internal/price"
)

// Input is everything one run needs. Weather factors must already be
// resolved; a nil map means no adjustment.
type Input struct {
	System    model.SystemConfiguration
	Financial model.FinancialConfiguration
	Weather   model.WeatherFactors

	// CarbonCreditRatePerTonne values avoided emissions. Zero means
	// carbon.DefaultCreditRatePerTonne.
	CarbonCreditRatePerTonne model.Currency
}

type Result struct {
	System      model.SystemConfiguration    `json:"system"`
	Financial   model.FinancialConfiguration `json:"financial"`
	Weather     model.WeatherFactors         `json:"weather_factors"`
	Energy      model.EnergyGeneration       `json:"energy"`
	Metrics     model.FinancialMetrics       `json:"metrics"`
	Carbon      model.CarbonReduction        `json:"carbon"`
	Equivalents carbon.Equivalents           `json:"carbon_equivalents"`
	Prices      []model.PriceByYear          `json:"electricity_prices"`

	InstallationCost       model.Currency `json:"installation_cost"`
	OperationalCostPerYear model.Currency `json:"operational_cost_per_year"`
	LoanPaymentPerMonth    model.Currency `json:"loan_payment_per_month"`
}

// Run validates in and computes the full result. Validation problems come
// back as *model.ValidationError, impossible configurations as
// *model.ConfigurationError.
func Run(in Input) (*Result, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	sys, fin := in.System, in.Financial
	weather := model.NeutralWeather()
	for _, t := range model.SourceTypes {
		weather[t] = in.Weather.Factor(t)
	}

	gen := energy.Project(sys, weather)
	yearly := gen.YearlySeries()

	rows, err := cashflow.Build(sys, fin, yearly)
	if err != nil {
		return nil, fmt.Errorf("cash flows: %w", err)
	}

	m, err := metrics.Compute(sys, fin, rows, yearly)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	rate := in.CarbonCreditRatePerTonne
	if rate <= 0 {
		rate = carbon.DefaultCreditRatePerTonne
	}
	co2 := carbon.FromEnergy(gen, sys.GridEmissionFactorKgPerKWh, rate)

	installation := sys.TotalInstallationCost()
	return &Result{
		System:                 sys,
		Financial:              fin,
		Weather:                weather,
		Energy:                 gen,
		Metrics:                m,
		Carbon:                 co2,
		Equivalents:            carbon.EquivalentsOf(co2.YearlyKg),
		Prices:                 price.Forecast(fin, sys.OperationalLifetimeYears),
		InstallationCost:       installation,
		OperationalCostPerYear: sys.TotalOperationalCostPerYear(),
		LoanPaymentPerMonth:    cashflow.MonthlyLoanPayment(installation, fin.InterestRatePct, fin.FinancingYears),
	}, nil
}

// Validate merges system, financial and weather problems into one
// *model.ValidationError so a caller sees every offending field at once.
func Validate(in Input) error {
	var fields []model.FieldError
	checks := []struct {
		prefix string
		err    error
	}{
		{"system", in.System.Validate()},
		{"financial", in.Financial.Validate()},
	}
	for _, c := range checks {
		if c.err == nil {
			continue
		}
		var ve *model.ValidationError
		if !errors.As(c.err, &ve) {
			return c.err
		}
		for _, f := range ve.Fields {
			fields = append(fields, model.FieldError{Field: c.prefix + "." + f.Field, Message: f.Message})
		}
	}
	for _, t := range model.SourceTypes {
		f, ok := in.Weather[t]
		if ok && (math.IsNaN(f) || f < 0 || f > 1) {
			fields = append(fields, model.FieldError{
				Field:   "weather_factors." + string(t),
				Message: "must be between 0 and 1",
			})
		}
	}
	if len(fields) > 0 {
		return &model.ValidationError{Fields: fields}
	}
	return nil
}
