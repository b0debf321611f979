package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"renewable-invest/internal/carbon"
	"renewable-invest/internal/engine"
	"renewable-invest/internal/forecast"
	"renewable-invest/internal/model"
	"renewable-invest/internal/validate"
)

// Config is the on-disk scenario shape (YAML). The same shape is accepted as
// JSON by the API.
//
// Every numeric field is optional. Unset source fields fall back to the
// catalogue defaults of the source type; unset site and financial fields fall
// back to the form defaults.
type Config struct {
	Name string `yaml:"name" json:"name,omitempty"`
	// Optional: load sources from a separate YAML (e.g. examples/sources/*.yaml).
	// Sources listed in System override the file's sources of the same type.
	SourcesFile string          `yaml:"sources_file" json:"sources_file,omitempty"`
	System      SystemConfig    `yaml:"system" json:"system"`
	Financial   FinancialConfig `yaml:"financial" json:"financial"`
	Forecast    ForecastConfig  `yaml:"forecast" json:"forecast"`

	CarbonCreditRatePerTonne *float64 `yaml:"carbon_credit_rate_per_tonne" json:"carbon_credit_rate_per_tonne,omitempty"`
}

type SourceConfig struct {
	Type                     model.SourceType `yaml:"type" json:"type"`
	Enabled                  *bool            `yaml:"enabled" json:"enabled,omitempty"`
	CapacityKW               *float64         `yaml:"capacity_kw" json:"capacity_kw,omitempty"`
	EfficiencyPct            *float64         `yaml:"efficiency_pct" json:"efficiency_pct,omitempty"`
	CostPerKW                *float64         `yaml:"cost_per_kw" json:"cost_per_kw,omitempty"`
	DailyProductionHours     *float64         `yaml:"daily_production_hours" json:"daily_production_hours,omitempty"`
	DegradationRatePct       *float64         `yaml:"degradation_rate_pct" json:"degradation_rate_pct,omitempty"`
	OperationalCostPerKWYear *float64         `yaml:"operational_cost_per_kw_year" json:"operational_cost_per_kw_year,omitempty"`
}

type SystemConfig struct {
	Sources                    []SourceConfig `yaml:"energy_sources" json:"energy_sources,omitempty"`
	GridEmissionFactorKgPerKWh *float64       `yaml:"grid_emission_factor_kg_per_kwh" json:"grid_emission_factor_kg_per_kwh,omitempty"`
	OperationalLifetimeYears   *int           `yaml:"operational_lifetime_years" json:"operational_lifetime_years,omitempty"`
	Location                   model.Location `yaml:"location" json:"location"`
}

type FinancialConfig struct {
	ElectricityPricePerKWh      *float64 `yaml:"electricity_price_per_kwh" json:"electricity_price_per_kwh,omitempty"`
	ElectricityPriceIncreasePct *float64 `yaml:"electricity_price_increase_pct" json:"electricity_price_increase_pct,omitempty"`
	FinancingYears              *int     `yaml:"financing_years" json:"financing_years,omitempty"`
	InterestRatePct             *float64 `yaml:"interest_rate_pct" json:"interest_rate_pct,omitempty"`
	InflationRatePct            *float64 `yaml:"inflation_rate_pct" json:"inflation_rate_pct,omitempty"`
	DiscountRatePct             *float64 `yaml:"discount_rate_pct" json:"discount_rate_pct,omitempty"`
}

// Forecast provider names.
const (
	ProviderNone        = "none"
	ProviderStatic      = "static"
	ProviderClimatology = "climatology"
	ProviderHTTP        = "http"
)

type ForecastConfig struct {
	// Provider is one of none, static, climatology, http. Empty means none.
	Provider string                       `yaml:"provider" json:"provider,omitempty"`
	Factors  map[model.SourceType]float64 `yaml:"factors" json:"factors,omitempty"`
	URL      string                       `yaml:"url" json:"url,omitempty"`
	APIKey   string                       `yaml:"api_key" json:"-"`
	CacheTTL string                       `yaml:"cache_ttl" json:"cache_ttl,omitempty"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.Name == "" {
		c.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if c.SourcesFile != "" {
		if err := c.ResolveSourcesFile(filepath.Dir(path)); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

// ResolveSourcesFile loads c.SourcesFile and merges c.System.Sources onto it.
// Relative paths are tried against dir first, then against the working
// directory. A missing extension defaults to .yaml.
func (c *Config) ResolveSourcesFile(dir string) error {
	if c.SourcesFile == "" {
		return nil
	}
	p := c.SourcesFile
	if filepath.Ext(p) == "" {
		p += ".yaml"
	}
	if !filepath.IsAbs(p) && dir != "" {
		cand := filepath.Join(dir, p)
		if _, err := os.Stat(cand); err == nil {
			p = cand
		}
	}
	loaded, err := LoadSourcesFile(p)
	if err != nil {
		return err
	}
	c.System.Sources = MergeSources(loaded, c.System.Sources)
	return nil
}

// SourcesFile is the shape of a sources preset.
type SourcesFile struct {
	Name    string         `yaml:"name"`
	Sources []SourceConfig `yaml:"energy_sources"`
}

func LoadSourcesFile(path string) ([]SourceConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f SourcesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return f.Sources, nil
}

// Validate resolves the scenario and checks every field.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	switch c.Forecast.Provider {
	case "", ProviderNone, ProviderStatic, ProviderClimatology, ProviderHTTP:
	default:
		return &model.ValidationError{Fields: []model.FieldError{
			{Field: "forecast.provider", Message: fmt.Sprintf("unsupported provider %q", c.Forecast.Provider)},
		}}
	}
	if c.Forecast.CacheTTL != "" {
		if _, err := time.ParseDuration(c.Forecast.CacheTTL); err != nil {
			return &model.ValidationError{Fields: []model.FieldError{{Field: "forecast.cache_ttl", Message: err.Error()}}}
		}
	}
	for _, src := range c.System.Sources {
		if !src.Type.Valid() {
			return &model.ValidationError{Fields: []model.FieldError{
				{Field: "system.energy_sources", Message: fmt.Sprintf("unsupported source type %q", src.Type)},
			}}
		}
	}
	return engine.Validate(c.Input(nil))
}

// SystemConfiguration applies defaults and returns the model configuration.
// With no sources listed, the full default catalogue is used.
func (c Config) SystemConfiguration() model.SystemConfiguration {
	d := validate.Defaults()
	sys := model.SystemConfiguration{
		OperationalLifetimeYears: int(d[validate.FieldLifetime]),
		Location:                 c.System.Location,
	}
	if c.System.OperationalLifetimeYears != nil {
		sys.OperationalLifetimeYears = *c.System.OperationalLifetimeYears
	}
	switch {
	case c.System.GridEmissionFactorKgPerKWh != nil:
		sys.GridEmissionFactorKgPerKWh = *c.System.GridEmissionFactorKgPerKWh
	case c.System.Location.Country != "":
		sys.GridEmissionFactorKgPerKWh = carbon.GridFactor(c.System.Location.Country)
	default:
		sys.GridEmissionFactorKgPerKWh = d[validate.FieldGridFactor]
	}

	if len(c.System.Sources) == 0 {
		sys.Sources = model.DefaultSources()
		return sys
	}
	sys.Sources = make([]model.EnergySource, 0, len(c.System.Sources))
	for _, s := range c.System.Sources {
		sys.Sources = append(sys.Sources, s.ToModel())
	}
	return sys
}

// ToModel overlays the set fields of s onto the catalogue defaults of s.Type.
// A listed source is enabled unless it says otherwise.
func (s SourceConfig) ToModel() model.EnergySource {
	out, ok := model.DefaultSource(s.Type)
	if !ok {
		out = model.EnergySource{Type: s.Type}
	}
	out.Enabled = true
	if s.Enabled != nil {
		out.Enabled = *s.Enabled
	}
	if s.CapacityKW != nil {
		out.CapacityKW = model.Kilowatts(*s.CapacityKW)
	}
	if s.EfficiencyPct != nil {
		out.EfficiencyPct = model.Percent(*s.EfficiencyPct)
	}
	if s.CostPerKW != nil {
		out.CostPerKW = model.Currency(*s.CostPerKW)
	}
	if s.DailyProductionHours != nil {
		out.DailyProductionHours = model.Hours(*s.DailyProductionHours)
	}
	if s.DegradationRatePct != nil {
		out.DegradationRatePct = model.Percent(*s.DegradationRatePct)
	}
	if s.OperationalCostPerKWYear != nil {
		out.OperationalCostPerKWYear = model.Currency(*s.OperationalCostPerKWYear)
	}
	return out
}

// FinancialConfiguration applies the form defaults to unset fields.
func (c Config) FinancialConfiguration() model.FinancialConfiguration {
	d := validate.Defaults()
	f := c.Financial
	pick := func(v *float64, field string) float64 {
		if v != nil {
			return *v
		}
		return d[field]
	}
	years := int(d[validate.FieldFinancingYears])
	if f.FinancingYears != nil {
		years = *f.FinancingYears
	}
	return model.FinancialConfiguration{
		ElectricityPricePerKWh:      model.Currency(pick(f.ElectricityPricePerKWh, validate.FieldPrice)),
		ElectricityPriceIncreasePct: model.Percent(pick(f.ElectricityPriceIncreasePct, validate.FieldPriceIncrease)),
		FinancingYears:              years,
		InterestRatePct:             model.Percent(pick(f.InterestRatePct, validate.FieldInterestRate)),
		InflationRatePct:            model.Percent(pick(f.InflationRatePct, validate.FieldInflationRate)),
		DiscountRatePct:             model.Percent(pick(f.DiscountRatePct, validate.FieldDiscountRate)),
	}
}

// Input builds an engine input. weather overrides any static factors in the
// forecast section; pass nil to use them.
func (c Config) Input(weather model.WeatherFactors) engine.Input {
	if weather == nil && c.Forecast.Provider == ProviderStatic {
		weather = model.WeatherFactors(c.Forecast.Factors)
	}
	in := engine.Input{
		System:    c.SystemConfiguration(),
		Financial: c.FinancialConfiguration(),
		Weather:   weather,
	}
	if c.CarbonCreditRatePerTonne != nil {
		in.CarbonCreditRatePerTonne = model.Currency(*c.CarbonCreditRatePerTonne)
	}
	return in
}

// Provider builds the forecast provider named in the forecast section, or nil
// for none. fallbackURL and fallbackKey are used when the section leaves them
// empty (typically FORECAST_URL and FORECAST_API_KEY).
func (c Config) Provider(fallbackURL, fallbackKey string, logger zerolog.Logger) (forecast.Provider, error) {
	fc := c.Forecast
	switch fc.Provider {
	case "", ProviderNone:
		return nil, nil
	case ProviderStatic:
		return forecast.Static(fc.Factors), nil
	case ProviderClimatology:
		return forecast.Climatology{}, nil
	case ProviderHTTP:
		url, key := fc.URL, fc.APIKey
		if url == "" {
			url = fallbackURL
		}
		if key == "" {
			key = fallbackKey
		}
		if url == "" {
			return nil, errors.New("forecast.url is required for the http provider")
		}
		var p forecast.Provider = forecast.NewHTTPClient(key, url, logger)
		if fc.CacheTTL != "" {
			ttl, err := time.ParseDuration(fc.CacheTTL)
			if err != nil {
				return nil, fmt.Errorf("forecast.cache_ttl: %w", err)
			}
			p = forecast.NewCached(p, ttl)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported forecast provider %q", fc.Provider)
	}
}
