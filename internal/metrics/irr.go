package metrics

import (
	"fmt"
	"math"

	"renewable-invest/internal/model"
)

const (
	irrMaxIterations   = 100
	irrDerivativeFloor = 1e-10
	irrTolerance       = 1e-6
	irrBoundPct        = 100
)

// IRR solves NPV(r) = 0 with Newton-Raphson starting at r = 0.
//
// Iteration stops when the derivative magnitude drops below 1e-10 or when
// successive iterates differ by less than 1e-6; the result is clamped to
// [-100, 100] percent. For schedules with several sign changes this returns a
// root in range, not necessarily the economically meaningful one. An iterate
// that becomes non-finite, or a budget of 100 steps without stabilising,
// yields a *model.NumericDivergenceError.
func IRR(flows []model.Currency) (model.Percent, error) {
	if len(flows) == 0 {
		return 0, model.NewConfigurationError("irr", "no cash flows")
	}
	r := 0.0
	for i := 1; i <= irrMaxIterations; i++ {
		npv, deriv := npvAndDerivative(flows, r)
		if !finite(npv) || !finite(deriv) {
			return 0, &model.NumericDivergenceError{Method: "irr", Iterations: i, Reason: fmt.Sprintf("npv not finite at rate %g", r)}
		}
		if math.Abs(deriv) < irrDerivativeFloor {
			return clampPct(r), nil
		}
		next := r - npv/deriv
		if !finite(next) {
			return 0, &model.NumericDivergenceError{Method: "irr", Iterations: i, Reason: "newton step not finite"}
		}
		if math.Abs(next-r) < irrTolerance {
			return clampPct(next), nil
		}
		r = next
	}
	return 0, &model.NumericDivergenceError{Method: "irr", Iterations: irrMaxIterations, Reason: "did not stabilise"}
}

// npvAndDerivative evaluates NPV and dNPV/dr at rate r (a ratio, not percent).
func npvAndDerivative(flows []model.Currency, r float64) (float64, float64) {
	var npv, deriv float64
	base := 1 + r
	for y, cf := range flows {
		t := float64(y)
		npv += float64(cf) / math.Pow(base, t)
		deriv -= t * float64(cf) / math.Pow(base, t+1)
	}
	return npv, deriv
}

func clampPct(r float64) model.Percent {
	pct := r * 100
	return model.Percent(math.Max(-irrBoundPct, math.Min(irrBoundPct, pct)))
}
