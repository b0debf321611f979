package carbon

import "strings"

// GridEmissionFactors maps ISO 3166 alpha-2 country codes to average grid
// carbon intensity in kg CO2e per kWh.
var GridEmissionFactors = map[string]float64{
	"NO": 0.019, // Norway (hydro)
	"SE": 0.041, // Sweden
	"FR": 0.056, // France (nuclear)
	"DK": 0.151, // Denmark
	"GB": 0.207, // United Kingdom
	"ES": 0.174, // Spain
	"DE": 0.380, // Germany
	"US": 0.386, // United States
	"CN": 0.581, // China
	"IN": 0.713, // India
	"AU": 0.656, // Australia
	"ZA": 0.950, // South Africa (coal)
	"PL": 0.662, // Poland
	"BR": 0.096, // Brazil
	"JP": 0.462, // Japan
}

// DefaultGridFactor is used for countries without a specific entry.
const DefaultGridFactor = 0.475

// GridFactor returns the emission factor for country, falling back to
// DefaultGridFactor. Matching is case-insensitive.
func GridFactor(country string) float64 {
	if f, ok := GridEmissionFactors[strings.ToUpper(strings.TrimSpace(country))]; ok {
		return f
	}
	return DefaultGridFactor
}
