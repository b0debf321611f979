package model

import (
	"fmt"
	"math"
)

// Location is only consumed by forecast providers; the engine never reads it.
type Location struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	City      string  `json:"city,omitempty" yaml:"city"`
	Country   string  `json:"country,omitempty" yaml:"country"`
}

// SystemConfiguration aggregates the generation assets and site data for one run.
//
// The totals (capacity, efficiency, installation and operational cost) are
// methods rather than fields so they can never drift from Sources.
type SystemConfiguration struct {
	Sources                    []EnergySource `json:"energy_sources" yaml:"energy_sources"`
	GridEmissionFactorKgPerKWh float64        `json:"grid_emission_factor_kg_per_kwh" yaml:"grid_emission_factor_kg_per_kwh"`
	OperationalLifetimeYears   int            `json:"operational_lifetime_years" yaml:"operational_lifetime_years"`
	Location                   Location       `json:"location" yaml:"location"`
}

// MaxLifetimeYears bounds the projection horizon.
const MaxLifetimeYears = 50

// EnabledSources returns the sources that take part in aggregates.
func (c SystemConfiguration) EnabledSources() []EnergySource {
	out := make([]EnergySource, 0, len(c.Sources))
	for _, s := range c.Sources {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}

func (c SystemConfiguration) TotalCapacityKW() Kilowatts {
	var total Kilowatts
	for _, s := range c.EnabledSources() {
		total += s.CapacityKW
	}
	return total
}

// AverageEfficiencyPct is the unweighted mean over enabled sources, 0 when none are enabled.
func (c SystemConfiguration) AverageEfficiencyPct() Percent {
	enabled := c.EnabledSources()
	if len(enabled) == 0 {
		return 0
	}
	var sum Percent
	for _, s := range enabled {
		sum += s.EfficiencyPct
	}
	return sum / Percent(len(enabled))
}

func (c SystemConfiguration) TotalInstallationCost() Currency {
	var total Currency
	for _, s := range c.Sources {
		total += s.InstallationCost()
	}
	return total
}

func (c SystemConfiguration) TotalOperationalCostPerYear() Currency {
	var total Currency
	for _, s := range c.Sources {
		total += s.OperationalCostPerYear()
	}
	return total
}

// Validate checks site data and every source, collecting all field errors.
func (c SystemConfiguration) Validate() error {
	var errs []FieldError
	if len(c.EnabledSources()) == 0 {
		errs = append(errs, FieldError{Field: "energy_sources", Message: "at least one enabled source is required"})
	}
	for i, s := range c.Sources {
		errs = append(errs, prefixed(fmt.Sprintf("energy_sources[%d]", i), s.Validate())...)
	}
	if !(c.GridEmissionFactorKgPerKWh > 0) || math.IsInf(c.GridEmissionFactorKgPerKWh, 0) {
		errs = append(errs, FieldError{Field: "grid_emission_factor_kg_per_kwh", Message: "must be > 0"})
	}
	if c.OperationalLifetimeYears < 1 || c.OperationalLifetimeYears > MaxLifetimeYears {
		errs = append(errs, FieldError{Field: "operational_lifetime_years", Message: fmt.Sprintf("must be in [1, %d]", MaxLifetimeYears)})
	}
	return newValidationError(errs)
}

// WithSources returns a copy of c holding a fresh slice of sources, so callers
// can mutate the copy without touching a snapshot already handed to a run.
func (c SystemConfiguration) WithSources(sources []EnergySource) SystemConfiguration {
	out := c
	out.Sources = append([]EnergySource(nil), sources...)
	return out
}
