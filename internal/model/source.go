package model

import "fmt"

// SourceType identifies the generation technology of an EnergySource.
// Keep these values stable; they appear in YAML scenarios and API payloads.
type SourceType string

const (
	SourceSolar SourceType = "solar"
	SourceWind  SourceType = "wind"
	SourceHydro SourceType = "hydro"
	SourceWave  SourceType = "wave"
)

// SourceTypes lists every supported technology in catalogue order.
var SourceTypes = []SourceType{SourceSolar, SourceWind, SourceHydro, SourceWave}

// Valid reports whether t is one of the supported technologies.
func (t SourceType) Valid() bool {
	switch t {
	case SourceSolar, SourceWind, SourceHydro, SourceWave:
		return true
	}
	return false
}

// EnergySource is one generation asset.
// Units:
// - CapacityKW: kW installed
// - EfficiencyPct: 0..100
// - CostPerKW: currency per installed kW
// - DailyProductionHours: equivalent full-load hours per day
// - DegradationRatePct: annual output decline, % per year
// - OperationalCostPerKWYear: currency per kW per year
type EnergySource struct {
	Type                     SourceType `json:"type" yaml:"type"`
	Enabled                  bool       `json:"enabled" yaml:"enabled"`
	CapacityKW               Kilowatts  `json:"capacity_kw" yaml:"capacity_kw"`
	EfficiencyPct            Percent    `json:"efficiency_pct" yaml:"efficiency_pct"`
	CostPerKW                Currency   `json:"cost_per_kw" yaml:"cost_per_kw"`
	DailyProductionHours     Hours      `json:"daily_production_hours" yaml:"daily_production_hours"`
	DegradationRatePct       Percent    `json:"degradation_rate_pct" yaml:"degradation_rate_pct"`
	OperationalCostPerKWYear Currency   `json:"operational_cost_per_kw_year" yaml:"operational_cost_per_kw_year"`
}

// InstallationCost is capacity × cost per kW, or zero for a disabled source.
func (s EnergySource) InstallationCost() Currency {
	if !s.Enabled {
		return 0
	}
	return Currency(float64(s.CapacityKW) * float64(s.CostPerKW))
}

// OperationalCostPerYear is capacity × specific operational cost, or zero for a disabled source.
func (s EnergySource) OperationalCostPerYear() Currency {
	if !s.Enabled {
		return 0
	}
	return Currency(float64(s.CapacityKW) * float64(s.OperationalCostPerKWYear))
}

// Validate checks the source's fields. Disabled sources are still checked for a
// known type but their numeric fields may hold anything.
func (s EnergySource) Validate() error {
	var errs []FieldError
	if !s.Type.Valid() {
		errs = append(errs, FieldError{Field: "type", Message: fmt.Sprintf("unsupported source type %q", s.Type)})
	}
	if !s.Enabled {
		return newValidationError(errs)
	}
	if !finite(float64(s.CapacityKW)) || s.CapacityKW <= 0 {
		errs = append(errs, FieldError{Field: "capacity_kw", Message: "must be > 0"})
	}
	if !finite(float64(s.EfficiencyPct)) || s.EfficiencyPct <= 0 || s.EfficiencyPct > 100 {
		errs = append(errs, FieldError{Field: "efficiency_pct", Message: "must be in (0, 100]"})
	}
	if !finite(float64(s.CostPerKW)) || s.CostPerKW < 0 {
		errs = append(errs, FieldError{Field: "cost_per_kw", Message: "must be >= 0"})
	}
	if !finite(float64(s.DailyProductionHours)) || s.DailyProductionHours < 0 || s.DailyProductionHours > 24 {
		errs = append(errs, FieldError{Field: "daily_production_hours", Message: "must be in [0, 24]"})
	}
	if !finite(float64(s.DegradationRatePct)) || s.DegradationRatePct < 0 || s.DegradationRatePct > 100 {
		errs = append(errs, FieldError{Field: "degradation_rate_pct", Message: "must be in [0, 100]"})
	}
	if !finite(float64(s.OperationalCostPerKWYear)) || s.OperationalCostPerKWYear < 0 {
		errs = append(errs, FieldError{Field: "operational_cost_per_kw_year", Message: "must be >= 0"})
	}
	return newValidationError(errs)
}

// defaultCatalogue holds typical per-technology values for a small installation.
var defaultCatalogue = map[SourceType]EnergySource{
	SourceSolar: {
		Type:                     SourceSolar,
		Enabled:                  true,
		CapacityKW:               10,
		EfficiencyPct:            20,
		CostPerKW:                15000,
		DailyProductionHours:     5.2,
		DegradationRatePct:       0.5,
		OperationalCostPerKWYear: 200,
	},
	SourceWind: {
		Type:                     SourceWind,
		Enabled:                  false,
		CapacityKW:               5,
		EfficiencyPct:            35,
		CostPerKW:                20000,
		DailyProductionHours:     8,
		DegradationRatePct:       1.0,
		OperationalCostPerKWYear: 400,
	},
	SourceHydro: {
		Type:                     SourceHydro,
		Enabled:                  false,
		CapacityKW:               20,
		EfficiencyPct:            85,
		CostPerKW:                30000,
		DailyProductionHours:     16,
		DegradationRatePct:       0.2,
		OperationalCostPerKWYear: 600,
	},
	SourceWave: {
		Type:                     SourceWave,
		Enabled:                  false,
		CapacityKW:               15,
		EfficiencyPct:            30,
		CostPerKW:                45000,
		DailyProductionHours:     10,
		DegradationRatePct:       1.5,
		OperationalCostPerKWYear: 900,
	},
}

// DefaultSource returns the catalogue defaults for t. Unknown types return false.
func DefaultSource(t SourceType) (EnergySource, bool) {
	s, ok := defaultCatalogue[t]
	return s, ok
}

// DefaultSources returns a copy of the full catalogue in SourceTypes order.
func DefaultSources() []EnergySource {
	out := make([]EnergySource, 0, len(defaultCatalogue))
	for _, t := range SourceTypes {
		out = append(out, defaultCatalogue[t])
	}
	return out
}
