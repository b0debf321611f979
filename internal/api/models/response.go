package models

import (
	"time"

	"github.com/shopspring/decimal"

	"renewable-invest/internal/analysis"
	"renewable-invest/internal/carbon"
	"renewable-invest/internal/config"
	"renewable-invest/internal/engine"
	"renewable-invest/internal/goal"
	"renewable-invest/internal/model"
	"renewable-invest/internal/validate"
)

// CalculateResponse represents the response from a calculation run
type CalculateResponse struct {
	ID        string         `json:"id,omitempty"`
	Name      string         `json:"name,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	Summary   Summary        `json:"summary"`
	Result    *engine.Result `json:"result,omitempty"`
}

// Summary contains the headline figures of a calculation, with money rounded
// to two decimals.
type Summary struct {
	InstallationCost       decimal.Decimal      `json:"installation_cost"`
	OperationalCostPerYear decimal.Decimal      `json:"operational_cost_per_year"`
	LoanPaymentPerMonth    decimal.Decimal      `json:"loan_payment_per_month"`
	NPV                    decimal.Decimal      `json:"npv"`
	IRRPct                 *decimal.Decimal     `json:"irr_pct"`
	PaybackPeriodYears     decimal.Decimal      `json:"payback_period_years"`
	PaybackReached         bool                 `json:"payback_reached"`
	DiscountedPaybackYears decimal.Decimal      `json:"discounted_payback_years"`
	ROIPct                 decimal.Decimal      `json:"roi_pct"`
	LCOEPerKWh             decimal.Decimal      `json:"lcoe_per_kwh"`
	CapacityKW             decimal.Decimal      `json:"capacity_kw"`
	DailyKWh               decimal.Decimal      `json:"daily_kwh"`
	YearlyKWh              decimal.Decimal      `json:"yearly_kwh"`
	LifetimeKWh            decimal.Decimal      `json:"lifetime_kwh"`
	YearlyCarbonKg         decimal.Decimal      `json:"yearly_carbon_kg"`
	LifetimeCarbonKg       decimal.Decimal      `json:"lifetime_carbon_kg"`
	CarbonBenefit          decimal.Decimal      `json:"carbon_benefit"`
	Equivalents            carbon.Equivalents   `json:"carbon_equivalents"`
	WeatherFactors         model.WeatherFactors `json:"weather_factors"`
	Unavailable            map[string]string    `json:"unavailable,omitempty"`
}

func round(v float64, places int32) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(places)
}

// NewSummary rounds the headline figures of res.
func NewSummary(res *engine.Result) Summary {
	m := res.Metrics
	s := Summary{
		InstallationCost:       round(float64(res.InstallationCost), 2),
		OperationalCostPerYear: round(float64(res.OperationalCostPerYear), 2),
		LoanPaymentPerMonth:    round(float64(res.LoanPaymentPerMonth), 2),
		NPV:                    round(float64(m.NPV), 2),
		PaybackPeriodYears:     round(m.PaybackPeriodYears, 2),
		PaybackReached:         m.PaybackReached,
		DiscountedPaybackYears: round(m.DiscountedPayback, 2),
		ROIPct:                 round(float64(m.ROIPct), 2),
		LCOEPerKWh:             round(float64(m.LCOEPerKWh), 4),
		CapacityKW:             round(float64(res.System.TotalCapacityKW()), 2),
		DailyKWh:               round(float64(res.Energy.DailyKWh), 2),
		YearlyKWh:              round(float64(res.Energy.YearlyKWh), 2),
		LifetimeKWh:            round(float64(res.Energy.LifetimeKWh), 2),
		YearlyCarbonKg:         round(float64(res.Carbon.YearlyKg), 2),
		LifetimeCarbonKg:       round(float64(res.Carbon.LifetimeKg), 2),
		CarbonBenefit:          round(float64(res.Carbon.FinancialBenefit), 2),
		Equivalents:            res.Equivalents,
		WeatherFactors:         res.Weather,
		Unavailable:            m.Unavailable,
	}
	if m.IRR != nil {
		irr := round(float64(*m.IRR), 2)
		s.IRRPct = &irr
	}
	return s
}

// CompareResponse represents the response from a comparison
type CompareResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation
type ComparisonResult struct {
	Rank    int                `json:"rank,omitempty"`
	Name    string             `json:"name"`
	Summary *Summary           `json:"summary,omitempty"`
	Error   string             `json:"error,omitempty"`
	Fields  []model.FieldError `json:"fields,omitempty"`
}

// NewComparison numbers successful outcomes in order; failed ones get no rank.
func NewComparison(outcomes []analysis.Outcome) CompareResponse {
	out := CompareResponse{Comparison: make([]ComparisonResult, 0, len(outcomes))}
	rank := 0
	for _, o := range outcomes {
		r := ComparisonResult{Name: o.Name, Error: o.Error, Fields: o.Fields}
		if o.Result != nil {
			rank++
			s := NewSummary(o.Result)
			r.Rank = rank
			r.Summary = &s
		}
		out.Comparison = append(out.Comparison, r)
	}
	return out
}

// ValidateResponse carries the normalized record and its validation result.
// Values omits fields that could not be parsed; they are listed in Invalid.
type ValidateResponse struct {
	validate.Result
	Values  map[string]float64 `json:"values"`
	Invalid []string           `json:"invalid,omitempty"`
	Unknown []string           `json:"unknown,omitempty"`
	// System and Financial are set only for a valid record.
	System    *model.SystemConfiguration    `json:"system,omitempty"`
	Financial *model.FinancialConfiguration `json:"financial,omitempty"`
}

// GoalResponse represents the reverse-solver result
type GoalResponse struct {
	goal.Suggestion
	GridEmissionFactor   float64 `json:"grid_emission_factor_kg_per_kwh"`
	DailyProductionHours float64 `json:"daily_production_hours"`
}

// SourceDefaultsResponse lists the default catalogue.
type SourceDefaultsResponse struct {
	Sources []model.EnergySource `json:"energy_sources"`
	Form    map[string]float64   `json:"form_defaults"`
}

// ScenariosResponse lists server-side scenario files.
type ScenariosResponse struct {
	Scenarios []config.ScenarioInfo `json:"scenarios"`
}

// SensitivityResponse represents a one-parameter sweep.
type SensitivityResponse struct {
	Parameter string                      `json:"parameter"`
	Points    []analysis.SensitivityPoint `json:"points"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
