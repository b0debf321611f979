package model

import "math"

// FinancialConfiguration holds the financing and market terms of a run.
type FinancialConfiguration struct {
	ElectricityPricePerKWh      Currency `json:"electricity_price_per_kwh" yaml:"electricity_price_per_kwh"`
	ElectricityPriceIncreasePct Percent  `json:"electricity_price_increase_pct" yaml:"electricity_price_increase_pct"`
	FinancingYears              int      `json:"financing_years" yaml:"financing_years"`
	InterestRatePct             Percent  `json:"interest_rate_pct" yaml:"interest_rate_pct"`
	InflationRatePct            Percent  `json:"inflation_rate_pct" yaml:"inflation_rate_pct"`
	DiscountRatePct             Percent  `json:"discount_rate_pct" yaml:"discount_rate_pct"`
}

// Validate checks financing terms, collecting all field errors.
func (f FinancialConfiguration) Validate() error {
	var errs []FieldError
	if !finite(float64(f.ElectricityPricePerKWh)) || f.ElectricityPricePerKWh <= 0 {
		errs = append(errs, FieldError{Field: "electricity_price_per_kwh", Message: "must be > 0"})
	}
	if !finite(float64(f.ElectricityPriceIncreasePct)) || f.ElectricityPriceIncreasePct <= -100 {
		errs = append(errs, FieldError{Field: "electricity_price_increase_pct", Message: "must be > -100"})
	}
	if f.FinancingYears < 0 {
		errs = append(errs, FieldError{Field: "financing_years", Message: "must be >= 0"})
	}
	if !finite(float64(f.InterestRatePct)) || f.InterestRatePct < 0 || f.InterestRatePct > 100 {
		errs = append(errs, FieldError{Field: "interest_rate_pct", Message: "must be in [0, 100]"})
	}
	if !finite(float64(f.InflationRatePct)) || f.InflationRatePct <= -100 {
		errs = append(errs, FieldError{Field: "inflation_rate_pct", Message: "must be > -100"})
	}
	if !finite(float64(f.DiscountRatePct)) || f.DiscountRatePct < 0 {
		errs = append(errs, FieldError{Field: "discount_rate_pct", Message: "must be >= 0"})
	}
	return newValidationError(errs)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
