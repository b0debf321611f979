package config

import "renewable-invest/internal/model"

// MergeSource overlays the set fields of override onto base.
// This is used when loading a sources file and then applying overrides from
// the scenario or the request.
func MergeSource(base, override SourceConfig) SourceConfig {
	out := base
	if override.Type != "" {
		out.Type = override.Type
	}
	if override.Enabled != nil {
		out.Enabled = override.Enabled
	}
	if override.CapacityKW != nil {
		out.CapacityKW = override.CapacityKW
	}
	if override.EfficiencyPct != nil {
		out.EfficiencyPct = override.EfficiencyPct
	}
	if override.CostPerKW != nil {
		out.CostPerKW = override.CostPerKW
	}
	if override.DailyProductionHours != nil {
		out.DailyProductionHours = override.DailyProductionHours
	}
	if override.DegradationRatePct != nil {
		out.DegradationRatePct = override.DegradationRatePct
	}
	if override.OperationalCostPerKWYear != nil {
		out.OperationalCostPerKWYear = override.OperationalCostPerKWYear
	}
	return out
}

// MergeSources merges override onto base by source type. Base order is kept;
// types only present in override are appended.
func MergeSources(base, override []SourceConfig) []SourceConfig {
	out := append([]SourceConfig(nil), base...)
	index := make(map[model.SourceType]int, len(out))
	for i, s := range out {
		index[s.Type] = i
	}
	for _, o := range override {
		if i, ok := index[o.Type]; ok {
			out[i] = MergeSource(out[i], o)
			continue
		}
		index[o.Type] = len(out)
		out = append(out, o)
	}
	return out
}

// Merge overlays every set field of override onto base. Sources are merged by
// type and forecast settings are replaced wholesale when override names a
// provider.
func Merge(base, override Config) Config {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.SourcesFile != "" {
		out.SourcesFile = override.SourcesFile
	}

	out.System.Sources = MergeSources(base.System.Sources, override.System.Sources)
	if override.System.GridEmissionFactorKgPerKWh != nil {
		out.System.GridEmissionFactorKgPerKWh = override.System.GridEmissionFactorKgPerKWh
	}
	if override.System.OperationalLifetimeYears != nil {
		out.System.OperationalLifetimeYears = override.System.OperationalLifetimeYears
	}
	if override.System.Location != (model.Location{}) {
		out.System.Location = override.System.Location
	}

	bf, of := &out.Financial, override.Financial
	if of.ElectricityPricePerKWh != nil {
		bf.ElectricityPricePerKWh = of.ElectricityPricePerKWh
	}
	if of.ElectricityPriceIncreasePct != nil {
		bf.ElectricityPriceIncreasePct = of.ElectricityPriceIncreasePct
	}
	if of.FinancingYears != nil {
		bf.FinancingYears = of.FinancingYears
	}
	if of.InterestRatePct != nil {
		bf.InterestRatePct = of.InterestRatePct
	}
	if of.InflationRatePct != nil {
		bf.InflationRatePct = of.InflationRatePct
	}
	if of.DiscountRatePct != nil {
		bf.DiscountRatePct = of.DiscountRatePct
	}

	if override.Forecast.Provider != "" {
		out.Forecast = override.Forecast
	}
	if override.CarbonCreditRatePerTonne != nil {
		out.CarbonCreditRatePerTonne = override.CarbonCreditRatePerTonne
	}
	return out
}
