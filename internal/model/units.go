package model

// Unit-tagged scalars. Mixing them requires an explicit conversion, which keeps
// kW, kWh and currency from being added together by accident.
type (
	// Kilowatts is installed power capacity (kW).
	Kilowatts float64
	// KilowattHours is energy (kWh).
	KilowattHours float64
	// Currency is an amount in the scenario's currency unit.
	Currency float64
	// Percent is a percentage, e.g. 7 means 7 %.
	Percent float64
	// Kilograms is a mass of CO2-equivalent.
	Kilograms float64
	// Hours is a duration in hours (daily production hours, not wall time).
	Hours float64
)

const (
	// DaysPerMonth and DaysPerYear are the fixed calendar approximation used by the
	// production model. They are intentionally not calendar accurate.
	DaysPerMonth = 30
	DaysPerYear  = 365
)

// Fraction converts a percentage into a plain ratio (7 % -> 0.07).
func (p Percent) Fraction() float64 { return float64(p) / 100 }

// Tonnes converts kilograms to metric tonnes.
func (k Kilograms) Tonnes() float64 { return float64(k) / 1000 }
