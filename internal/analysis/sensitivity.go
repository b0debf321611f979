package analysis

import (
	"fmt"

	"renewable-invest/internal/engine"
	"renewable-invest/internal/model"
)

// Parameter names accepted by Sensitivity.
const (
	ParamElectricityPrice = "electricity_price_per_kwh"
	ParamPriceIncrease    = "electricity_price_increase_pct"
	ParamCostPerKW        = "cost_per_kw"
	ParamDiscountRate     = "discount_rate_pct"
	ParamInterestRate     = "interest_rate_pct"
	ParamDailyHours       = "daily_production_hours"
)

// SensitivityPoint is one run with a single parameter scaled. When the scaled
// input cannot be calculated, Error holds the reason and the metrics are zero.
type SensitivityPoint struct {
	Change  float64            `json:"change_pct"`
	Value   float64            `json:"value"`
	NPV     model.Currency     `json:"npv"`
	IRR     *model.Percent     `json:"irr"`
	Payback float64            `json:"payback_period_years"`
	Reached bool               `json:"payback_reached"`
	Error   string             `json:"error,omitempty"`
	Fields  []model.FieldError `json:"fields,omitempty"`
}

// Sensitivity reruns in with param scaled by each of changesPct (e.g. -20, 0,
// +20). Scaling a per-source parameter applies it to every enabled source and
// reports the first one's value. A point whose run fails is kept with its error,
// so every requested change appears in the result in order.
func Sensitivity(in engine.Input, param string, changesPct []float64) ([]SensitivityPoint, error) {
	out := make([]SensitivityPoint, 0, len(changesPct))
	for _, change := range changesPct {
		scaled, value, err := scale(in, param, 1+change/100)
		if err != nil {
			return nil, err
		}
		res, err := engine.Run(scaled)
		if err != nil {
			out = append(out, SensitivityPoint{Change: change, Value: value, Error: err.Error(), Fields: fieldsOf(err)})
			continue
		}
		m := res.Metrics
		out = append(out, SensitivityPoint{
			Change:  change,
			Value:   value,
			NPV:     m.NPV,
			IRR:     m.IRR,
			Payback: m.PaybackPeriodYears,
			Reached: m.PaybackReached,
		})
	}
	return out, nil
}

func scale(in engine.Input, param string, k float64) (engine.Input, float64, error) {
	out := in
	out.System = in.System.WithSources(in.System.Sources)
	fin := &out.Financial

	var value float64
	switch param {
	case ParamElectricityPrice:
		fin.ElectricityPricePerKWh *= model.Currency(k)
		value = float64(fin.ElectricityPricePerKWh)
	case ParamPriceIncrease:
		fin.ElectricityPriceIncreasePct *= model.Percent(k)
		value = float64(fin.ElectricityPriceIncreasePct)
	case ParamDiscountRate:
		fin.DiscountRatePct *= model.Percent(k)
		value = float64(fin.DiscountRatePct)
	case ParamInterestRate:
		fin.InterestRatePct *= model.Percent(k)
		value = float64(fin.InterestRatePct)
	case ParamCostPerKW, ParamDailyHours:
		first := true
		for i := range out.System.Sources {
			s := &out.System.Sources[i]
			if !s.Enabled {
				continue
			}
			if param == ParamCostPerKW {
				s.CostPerKW *= model.Currency(k)
				if first {
					value = float64(s.CostPerKW)
				}
			} else {
				s.DailyProductionHours *= model.Hours(k)
				if first {
					value = float64(s.DailyProductionHours)
				}
			}
			first = false
		}
	default:
		return engine.Input{}, 0, fmt.Errorf("unsupported sensitivity parameter %q", param)
	}
	return out, value, nil
}
