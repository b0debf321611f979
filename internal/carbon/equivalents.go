package carbon

import "renewable-invest/internal/model"

const (
	// kgPerTreeYear is the CO2 absorbed by one mature tree in a year.
	kgPerTreeYear = 21.0
	// kgPerCarKm is the tailpipe CO2 of an average passenger car.
	kgPerCarKm = 0.17
)

// Equivalents restates an avoided mass in everyday terms.
type Equivalents struct {
	TreeYears float64 `json:"tree_years"`
	CarKm     float64 `json:"car_km"`
}

func EquivalentsOf(kg model.Kilograms) Equivalents {
	return Equivalents{
		TreeYears: float64(kg) / kgPerTreeYear,
		CarKm:     float64(kg) / kgPerCarKm,
	}
}
