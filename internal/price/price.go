// Package price forecasts electricity prices over the operational horizon.
package price

import (
	"math"

	"renewable-invest/internal/model"
)

// Escalate returns prices for years 1..years, compounding increasePct from the
// year-1 base price: price[y] = base × (1 + i)^(y-1). RealPrice is left equal
// to Price; use Real to deflate.
func Escalate(base model.Currency, increasePct model.Percent, years int) []model.PriceByYear {
	if years < 0 {
		years = 0
	}
	out := make([]model.PriceByYear, years)
	g := 1 + increasePct.Fraction()
	for y := 1; y <= years; y++ {
		p := model.Currency(float64(base) * math.Pow(g, float64(y-1)))
		out[y-1] = model.PriceByYear{Year: y, Price: p, RealPrice: p}
	}
	return out
}

// Real fills RealPrice with each year's price expressed in year-1 money,
// deflating by inflationPct per year.
func Real(series []model.PriceByYear, inflationPct model.Percent) []model.PriceByYear {
	out := make([]model.PriceByYear, len(series))
	d := 1 + inflationPct.Fraction()
	for i, p := range series {
		out[i] = p
		out[i].RealPrice = model.Currency(float64(p.Price) / math.Pow(d, float64(p.Year-1)))
	}
	return out
}

// Forecast is Escalate followed by Real using the financial configuration.
func Forecast(fin model.FinancialConfiguration, years int) []model.PriceByYear {
	return Real(Escalate(fin.ElectricityPricePerKWh, fin.ElectricityPriceIncreasePct, years), fin.InflationRatePct)
}
