package validate

import (
	"fmt"
	"math"

	"renewable-invest/internal/model"
)

// Result is the outcome of validating a record. Warnings never affect IsValid.
type Result struct {
	IsValid          bool               `json:"is_valid"`
	Errors           []model.FieldError `json:"errors"`
	Warnings         []model.FieldError `json:"warnings"`
	MissingDataFlags []string           `json:"missing_data_flags,omitempty"`
}

// Validate applies the per-field rules to rec. A record with any missing or NaN
// field, or any rule violation, is invalid.
func Validate(rec Record) Result {
	res := Result{
		Errors:           []model.FieldError{},
		Warnings:         []model.FieldError{},
		MissingDataFlags: rec.MissingDataFlags,
	}
	for _, r := range rules {
		v, ok := rec.Values[r.Field]
		if !ok {
			res.Errors = append(res.Errors, model.FieldError{Field: r.Field, Message: "is required"})
			continue
		}
		if math.IsNaN(v) {
			res.Errors = append(res.Errors, model.FieldError{Field: r.Field, Message: "is not a number"})
			continue
		}
		if msg := r.check(v); msg != "" {
			res.Errors = append(res.Errors, model.FieldError{Field: r.Field, Message: msg})
			continue
		}
		if r.WarnMessage != "" && v > r.WarnAbove {
			res.Warnings = append(res.Warnings, model.FieldError{Field: r.Field, Message: r.WarnMessage})
		}
	}
	res.IsValid = len(res.Errors) == 0
	return res
}

func (r rule) check(v float64) string {
	if r.Integer && v != math.Trunc(v) {
		return "must be a whole number"
	}
	if r.MinExclusive && v <= r.Min {
		return fmt.Sprintf("must be > %g", r.Min)
	}
	if !r.MinExclusive && v < r.Min {
		return fmt.Sprintf("must be >= %g", r.Min)
	}
	if v > r.Max {
		return fmt.Sprintf("must be <= %g", r.Max)
	}
	return ""
}

// Process normalizes raw, imputes missing fields and validates the result.
func Process(raw map[string]any) (Record, Result) {
	rec := Impute(Normalize(raw))
	return rec, Validate(rec)
}

// ToConfigs turns a single-source form record into engine configurations.
// Invalid records yield a *model.ValidationError; callers must not run the
// metrics engine on them.
func ToConfigs(rec Record, sourceType model.SourceType) (model.SystemConfiguration, model.FinancialConfiguration, error) {
	res := Validate(rec)
	if !res.IsValid {
		return model.SystemConfiguration{}, model.FinancialConfiguration{}, &model.ValidationError{Fields: res.Errors}
	}
	if !sourceType.Valid() {
		return model.SystemConfiguration{}, model.FinancialConfiguration{}, &model.ValidationError{Fields: []model.FieldError{
			{Field: "type", Message: fmt.Sprintf("unsupported source type %q", sourceType)},
		}}
	}
	v := rec.Values
	capacity := v[FieldCapacity]
	src := model.EnergySource{
		Type:                     sourceType,
		Enabled:                  true,
		CapacityKW:               model.Kilowatts(capacity),
		EfficiencyPct:            model.Percent(v[FieldEfficiency]),
		CostPerKW:                model.Currency(v[FieldCostPerKW]),
		DailyProductionHours:     model.Hours(v[FieldDailyHours]),
		DegradationRatePct:       model.Percent(v[FieldDegradation]),
		OperationalCostPerKWYear: model.Currency(v[FieldOperationalCost] / capacity),
	}
	sys := model.SystemConfiguration{
		Sources:                    []model.EnergySource{src},
		GridEmissionFactorKgPerKWh: v[FieldGridFactor],
		OperationalLifetimeYears:   int(v[FieldLifetime]),
	}
	fin := model.FinancialConfiguration{
		ElectricityPricePerKWh:      model.Currency(v[FieldPrice]),
		ElectricityPriceIncreasePct: model.Percent(v[FieldPriceIncrease]),
		FinancingYears:              int(v[FieldFinancingYears]),
		InterestRatePct:             model.Percent(v[FieldInterestRate]),
		InflationRatePct:            model.Percent(v[FieldInflationRate]),
		DiscountRatePct:             model.Percent(v[FieldDiscountRate]),
	}
	return sys, fin, nil
}
