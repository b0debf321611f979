package validate

import "math"

// Field names accepted in a raw form record.
const (
	FieldCapacity        = "capacity_kw"
	FieldEfficiency      = "efficiency_pct"
	FieldCostPerKW       = "cost_per_kw"
	FieldDailyHours      = "daily_production_hours"
	FieldDegradation     = "degradation_rate_pct"
	FieldOperationalCost = "operational_cost_per_year"
	FieldPrice           = "electricity_price_per_kwh"
	FieldPriceIncrease   = "electricity_price_increase_pct"
	FieldFinancingYears  = "financing_years"
	FieldInterestRate    = "interest_rate_pct"
	FieldInflationRate   = "inflation_rate_pct"
	FieldDiscountRate    = "discount_rate_pct"
	FieldGridFactor      = "grid_emission_factor_kg_per_kwh"
	FieldLifetime        = "operational_lifetime_years"
)

// rule is the range check, default and warning threshold for one field.
type rule struct {
	Field        string
	Default      float64
	Min          float64
	Max          float64
	MinExclusive bool
	Integer      bool
	WarnAbove    float64
	WarnMessage  string
}

var inf = math.Inf(1)

// rules is ordered so error lists come out in form order.
var rules = []rule{
	{Field: FieldCapacity, Default: 10, Min: 0, Max: inf, MinExclusive: true, WarnAbove: 1000, WarnMessage: "capacity above 1000 kW is unusual for a single site"},
	{Field: FieldEfficiency, Default: 20, Min: 0, Max: 100, MinExclusive: true},
	{Field: FieldCostPerKW, Default: 15000, Min: 0, Max: inf},
	{Field: FieldDailyHours, Default: 5.2, Min: 0, Max: 24, WarnAbove: 20, WarnMessage: "more than 20 production hours per day is unusual"},
	{Field: FieldDegradation, Default: 0.5, Min: 0, Max: 100, WarnAbove: 5, WarnMessage: "degradation above 5 % per year is unusual"},
	{Field: FieldOperationalCost, Default: 2000, Min: 0, Max: inf},
	{Field: FieldPrice, Default: 2.2, Min: 0, Max: inf, MinExclusive: true, WarnAbove: 10, WarnMessage: "electricity price above 10 per kWh is unusual"},
	{Field: FieldPriceIncrease, Default: 3, Min: -100, Max: inf, MinExclusive: true},
	{Field: FieldFinancingYears, Default: 10, Min: 0, Max: inf, Integer: true},
	{Field: FieldInterestRate, Default: 7, Min: 0, Max: 100},
	{Field: FieldInflationRate, Default: 2, Min: -100, Max: inf, MinExclusive: true},
	{Field: FieldDiscountRate, Default: 8, Min: 0, Max: inf},
	{Field: FieldGridFactor, Default: 0.95, Min: 0, Max: inf, MinExclusive: true},
	{Field: FieldLifetime, Default: 25, Min: 1, Max: 50, Integer: true},
}

// aliases maps the camelCase names used by browser forms onto canonical fields.
var aliases = map[string]string{
	"capacity":                  FieldCapacity,
	"capacityKw":                FieldCapacity,
	"efficiency":                FieldEfficiency,
	"efficiencyPct":             FieldEfficiency,
	"costPerKw":                 FieldCostPerKW,
	"dailyProductionHours":      FieldDailyHours,
	"degradationRate":           FieldDegradation,
	"degradationRatePctPerYear": FieldDegradation,
	"operationalCost":           FieldOperationalCost,
	"operationalCostPerYear":    FieldOperationalCost,
	"electricityPrice":          FieldPrice,
	"electricityPricePerKwh":    FieldPrice,
	"electricityPriceIncrease":  FieldPriceIncrease,
	"priceIncrease":             FieldPriceIncrease,
	"financingYears":            FieldFinancingYears,
	"interestRate":              FieldInterestRate,
	"interestRatePct":           FieldInterestRate,
	"inflationRate":             FieldInflationRate,
	"discountRate":              FieldDiscountRate,
	"gridEmissionFactor":        FieldGridFactor,
	"operationalLifetime":       FieldLifetime,
	"operationalLifetimeYears":  FieldLifetime,
}

// Defaults returns a copy of the imputation table.
func Defaults() map[string]float64 {
	out := make(map[string]float64, len(rules))
	for _, r := range rules {
		out[r.Field] = r.Default
	}
	return out
}

func canonical(key string) (string, bool) {
	for _, r := range rules {
		if r.Field == key {
			return key, true
		}
	}
	if c, ok := aliases[key]; ok {
		return c, true
	}
	return "", false
}
