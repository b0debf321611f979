package models

import (
	"renewable-invest/internal/analysis"
	"renewable-invest/internal/config"
	"renewable-invest/internal/goal"
	"renewable-invest/internal/model"
)

// CalculateRequest represents the request body for running a calculation
type CalculateRequest struct {
	Scenario config.Config    `json:"scenario"`
	Options  CalculateOptions `json:"options,omitempty"`
}

// CalculateOptions contains optional calculation parameters
type CalculateOptions struct {
	// UseForecast resolves weather factors through the scenario's forecast
	// provider, falling back to the server's provider when none is named.
	UseForecast    bool `json:"use_forecast,omitempty"`
	IncludeDetails bool `json:"include_details,omitempty"` // default: false, summary only
	// ScenarioID loads a server-side scenario file as the base; Scenario
	// fields override it.
	ScenarioID string `json:"scenario_id,omitempty"`
}

// CompareRequest represents a request to compare scenario variations
type CompareRequest struct {
	BaseScenario config.Config        `json:"base_scenario"`
	Variations   []analysis.Variation `json:"variations" binding:"required,min=1"`
	Options      CalculateOptions     `json:"options,omitempty"`
}

// ValidateRequest carries a raw form record. Values may be numbers or
// strings containing formatting characters.
type ValidateRequest struct {
	Values     map[string]any   `json:"values" binding:"required"`
	SourceType model.SourceType `json:"source_type,omitempty"`
}

// GoalRequest represents a reverse-solver request. At least one target is
// required; the first one given (in daily, monthly, yearly, carbon order) is
// primary.
type GoalRequest struct {
	goal.Target
	DailyProductionHours float64 `json:"daily_production_hours,omitempty"` // default: 5.2
	GridEmissionFactor   float64 `json:"grid_emission_factor_kg_per_kwh,omitempty"`
	Country              string  `json:"country,omitempty"` // used when no grid factor is given
}

// SensitivityRequest sweeps one parameter around a scenario.
type SensitivityRequest struct {
	Scenario  config.Config `json:"scenario"`
	Parameter string        `json:"parameter" binding:"required"`
	ChangePct []float64     `json:"change_pct" binding:"required,min=1"`
}
