// Package carbon derives avoided emissions from a production projection.
package carbon

import "renewable-invest/internal/model"

// DefaultCreditRatePerTonne is the monetary value of one tonne of avoided CO2e.
const DefaultCreditRatePerTonne model.Currency = 190

// FromEnergy applies gridFactor (kg CO2e per kWh) to every figure of gen.
//
// The yearly series reuses gen.ByYear, so avoided emissions degrade in step
// with production. The financial benefit is lifetime tonnes × creditRatePerTonne.
func FromEnergy(gen model.EnergyGeneration, gridFactor float64, creditRatePerTonne model.Currency) model.CarbonReduction {
	kg := func(e model.KilowattHours) model.Kilograms {
		return model.Kilograms(float64(e) * gridFactor)
	}
	out := model.CarbonReduction{
		DailyKg:   kg(gen.DailyKWh),
		MonthlyKg: kg(gen.MonthlyKWh),
		YearlyKg:  kg(gen.YearlyKWh),
		ByYear:    make([]model.CarbonByYear, len(gen.ByYear)),
	}
	for i, e := range gen.ByYear {
		out.ByYear[i] = model.CarbonByYear{Year: e.Year, ReductionKg: kg(e.EnergyKWh)}
		out.LifetimeKg += out.ByYear[i].ReductionKg
	}
	out.FinancialBenefit = model.Currency(out.LifetimeKg.Tonnes()) * creditRatePerTonne
	return out
}
