package model

// WeatherFactors maps a source technology to an output multiplier in [0, 1].
// A missing entry (or a nil map) means no adjustment.
type WeatherFactors map[SourceType]float64

// Factor returns the multiplier for t, defaulting to 1.
func (w WeatherFactors) Factor(t SourceType) float64 {
	if w == nil {
		return 1
	}
	if f, ok := w[t]; ok {
		return f
	}
	return 1
}

// NeutralWeather returns a factor of 1.0 for every technology.
func NeutralWeather() WeatherFactors {
	out := make(WeatherFactors, len(SourceTypes))
	for _, t := range SourceTypes {
		out[t] = 1
	}
	return out
}

// EnergyByYear is one point of the lifetime production series.
type EnergyByYear struct {
	Year      int           `json:"year"`
	EnergyKWh KilowattHours `json:"energy_kwh"`
}

// SourceEnergy is the first-year production of a single enabled source.
type SourceEnergy struct {
	Type          SourceType    `json:"type"`
	WeatherFactor float64       `json:"weather_factor"`
	DailyKWh      KilowattHours `json:"daily_kwh"`
	YearlyKWh     KilowattHours `json:"yearly_kwh"`
}

// EnergyGeneration is the output of the production model.
type EnergyGeneration struct {
	DailyKWh    KilowattHours  `json:"daily_kwh"`
	MonthlyKWh  KilowattHours  `json:"monthly_kwh"`
	YearlyKWh   KilowattHours  `json:"yearly_kwh"`
	LifetimeKWh KilowattHours  `json:"lifetime_kwh"`
	ByYear      []EnergyByYear `json:"by_year"`
	BySource    []SourceEnergy `json:"by_source"`
}

// YearlySeries returns the degraded per-year energy values, index 0 = year 1.
func (g EnergyGeneration) YearlySeries() []KilowattHours {
	out := make([]KilowattHours, len(g.ByYear))
	for i, e := range g.ByYear {
		out[i] = e.EnergyKWh
	}
	return out
}

// CarbonByYear is one point of the avoided-emissions series.
type CarbonByYear struct {
	Year        int       `json:"year"`
	ReductionKg Kilograms `json:"reduction_kg"`
}

// CarbonReduction is the output of the carbon model.
type CarbonReduction struct {
	DailyKg          Kilograms      `json:"daily_kg"`
	MonthlyKg        Kilograms      `json:"monthly_kg"`
	YearlyKg         Kilograms      `json:"yearly_kg"`
	LifetimeKg       Kilograms      `json:"lifetime_kg"`
	ByYear           []CarbonByYear `json:"by_year"`
	FinancialBenefit Currency       `json:"financial_benefit"`
}

// YearlyCashFlow is one row of the cash-flow schedule. Year 0 is the initial outlay.
// The breakdown columns are zero for year 0.
type YearlyCashFlow struct {
	Year               int           `json:"year"`
	EnergyKWh          KilowattHours `json:"energy_kwh"`
	Revenue            Currency      `json:"revenue"`
	OperatingCost      Currency      `json:"operating_cost"`
	LoanPayment        Currency      `json:"loan_payment"`
	CashFlow           Currency      `json:"cash_flow"`
	CumulativeCashFlow Currency      `json:"cumulative_cash_flow"`
}

// CashFlowValues extracts the signed per-year cash flows.
func CashFlowValues(rows []YearlyCashFlow) []Currency {
	out := make([]Currency, len(rows))
	for i, r := range rows {
		out[i] = r.CashFlow
	}
	return out
}

// FinancialMetrics is the summary record of one run.
//
// IRR is nil when the solver could not produce a value; the reason is recorded
// in Unavailable under the "irr" key. No field ever holds NaN.
type FinancialMetrics struct {
	NPV                Currency          `json:"npv"`
	IRR                *Percent          `json:"irr"`
	PaybackPeriodYears float64           `json:"payback_period_years"`
	PaybackReached     bool              `json:"payback_reached"`
	DiscountedPayback  float64           `json:"discounted_payback_years"`
	ROIPct             Percent           `json:"roi_pct"`
	LCOEPerKWh         Currency          `json:"lcoe_per_kwh"`
	YearlyCashFlows    []YearlyCashFlow  `json:"yearly_cash_flows"`
	Unavailable        map[string]string `json:"unavailable,omitempty"`
}

// PriceByYear is one point of the electricity price forecast.
type PriceByYear struct {
	Year      int      `json:"year"`
	Price     Currency `json:"price"`
	RealPrice Currency `json:"real_price"`
}
