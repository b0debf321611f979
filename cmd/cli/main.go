// Command cli runs renewable-energy investment calculations from scenario files.
//
// Usage:
//
//	cli calculate --config examples/scenarios/residential_solar.yaml --out results/cashflows.csv
//	cli compare --config a.yaml --config b.yaml
//	cli goal --daily 52 --hours 5.2
//	cli validate --input form.json
//	cli sensitivity --config a.yaml --param electricity_price_per_kwh --change -20 --change 20
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"renewable-invest/internal/analysis"
	"renewable-invest/internal/carbon"
	"renewable-invest/internal/cashflow"
	"renewable-invest/internal/config"
	"renewable-invest/internal/engine"
	"renewable-invest/internal/forecast"
	"renewable-invest/internal/goal"
	"renewable-invest/internal/model"
	"renewable-invest/internal/validate"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "renewable-invest",
		Usage:   "Renewable energy investment calculator",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			calculateCommand(),
			compareCommand(),
			goalCommand(),
			validateCommand(),
			sensitivityCommand(),
			scenariosCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(c *cli.Context) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.String("log-level"))
	if err != nil {
		level = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()
}

var formatFlag = &cli.StringFlag{
	Name:    "format",
	Aliases: []string{"f"},
	Value:   "text",
	Usage:   "Output format (text, json)",
}

func writeJSON(v any) error {
	return writeJSONTo(os.Stdout, v)
}

func writeJSONTo(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// =============================================================================
// CALCULATE
// =============================================================================

func calculateCommand() *cli.Command {
	return &cli.Command{
		Name:  "calculate",
		Usage: "Run a scenario and print its financial and carbon results",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Path to scenario YAML",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Optional: write the yearly cash-flow schedule to this CSV path",
			},
			&cli.BoolFlag{
				Name:  "forecast",
				Usage: "Resolve weather factors through the scenario's forecast provider",
			},
			&cli.StringFlag{
				Name:    "forecast-url",
				Usage:   "Remote forecast service, used when the scenario's http provider names no URL",
				EnvVars: []string{"FORECAST_URL"},
			},
			&cli.StringFlag{
				Name:    "forecast-api-key",
				Usage:   "API key for the remote forecast service",
				EnvVars: []string{"FORECAST_API_KEY"},
			},
			formatFlag,
		},
		Action: runCalculate,
	}
}

func runCalculate(c *cli.Context) error {
	logger := newLogger(c)

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}

	var weather model.WeatherFactors
	if c.Bool("forecast") {
		p, err := cfg.Provider(c.String("forecast-url"), c.String("forecast-api-key"), logger)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(c.Context, 10*time.Second)
		weather = forecast.Resolve(ctx, p, cfg.System.Location, logger)
		cancel()
	}

	res, err := engine.Run(cfg.Input(weather))
	if err != nil {
		return err
	}

	if out := c.String("out"); out != "" {
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return err
		}
		if err := cashflow.WriteCSVFile(out, res.Metrics.YearlyCashFlows); err != nil {
			return fmt.Errorf("write cash flows: %w", err)
		}
		logger.Info().Str("path", out).Int("rows", len(res.Metrics.YearlyCashFlows)).Msg("wrote cash flows")
	}

	if c.String("format") == "json" {
		return writeJSON(res)
	}
	printResult(os.Stdout, cfg.Name, res)
	return nil
}

// =============================================================================
// COMPARE
// =============================================================================

func compareCommand() *cli.Command {
	return &cli.Command{
		Name:  "compare",
		Usage: "Run several scenarios and rank them by NPV",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Scenario YAML (repeat for each scenario)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "base",
				Usage: "Optional: base scenario every --config overlays",
			},
			formatFlag,
		},
		Action: runCompare,
	}
}

func runCompare(c *cli.Context) error {
	var base config.Config
	if p := c.String("base"); p != "" {
		b, err := config.LoadUnchecked(p)
		if err != nil {
			return fmt.Errorf("load base: %w", err)
		}
		base = *b
	}

	paths := c.StringSlice("config")
	variations := make([]analysis.Variation, 0, len(paths))
	for _, p := range paths {
		v, err := config.LoadUnchecked(p)
		if err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
		variations = append(variations, analysis.Variation{Name: v.Name, Config: *v})
	}

	outcomes := analysis.Compare(base, variations, nil)
	if c.String("format") == "json" {
		return writeJSON(outcomes)
	}
	printComparison(os.Stdout, outcomes)
	return nil
}

// =============================================================================
// GOAL
// =============================================================================

func goalCommand() *cli.Command {
	return &cli.Command{
		Name:  "goal",
		Usage: "Suggest a system size for an energy or carbon target",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "daily", Usage: "Target kWh per day"},
			&cli.Float64Flag{Name: "monthly", Usage: "Target kWh per month"},
			&cli.Float64Flag{Name: "yearly", Usage: "Target kWh per year"},
			&cli.Float64Flag{Name: "carbon", Usage: "Target kg CO2e avoided per year"},
			&cli.Float64Flag{
				Name:  "hours",
				Value: 5.2,
				Usage: "Full-load production hours per day",
			},
			&cli.Float64Flag{
				Name:  "grid-factor",
				Usage: "Grid emission factor, kg CO2e per kWh (default: by --country, else 0.95)",
			},
			&cli.StringFlag{
				Name:  "country",
				Usage: "ISO country code used to look up the grid emission factor",
			},
			formatFlag,
		},
		Action: runGoal,
	}
}

func runGoal(c *cli.Context) error {
	var target goal.Target
	for name, dst := range map[string]**float64{
		"daily":   &target.DailyKWh,
		"monthly": &target.MonthlyKWh,
		"yearly":  &target.YearlyKWh,
		"carbon":  &target.YearlyCarbonKg,
	} {
		if c.IsSet(name) {
			v := c.Float64(name)
			*dst = &v
		}
	}

	factor := c.Float64("grid-factor")
	if !c.IsSet("grid-factor") {
		factor = validate.Defaults()[validate.FieldGridFactor]
		if country := c.String("country"); country != "" {
			factor = carbon.GridFactor(country)
		}
	}

	s, err := goal.Solve(target, factor, model.Hours(c.Float64("hours")))
	if err != nil {
		return err
	}
	if c.String("format") == "json" {
		return writeJSON(s)
	}
	printSuggestion(os.Stdout, s, factor)
	return nil
}

// =============================================================================
// VALIDATE
// =============================================================================

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Normalize and validate a raw form record (JSON object)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "Path to a JSON object of form values, or - for stdin",
				Required: true,
			},
			formatFlag,
		},
		Action: runValidate,
	}
}

func runValidate(c *cli.Context) error {
	in := os.Stdin
	if p := c.String("input"); p != "-" {
		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	return validateRecord(in, os.Stdout, c.String("format"))
}

// validateRecord reports on the form record read from in. An invalid record
// exits with status 1 in every output format.
func validateRecord(in io.Reader, out io.Writer, format string) error {
	var raw map[string]any
	if err := json.NewDecoder(in).Decode(&raw); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}

	rec, res := validate.Process(raw)
	if format == "json" {
		if err := writeJSONTo(out, res); err != nil {
			return err
		}
	} else {
		printValidation(out, rec, res)
	}
	if !res.IsValid {
		return cli.Exit("", 1)
	}
	return nil
}

// =============================================================================
// SENSITIVITY
// =============================================================================

func sensitivityCommand() *cli.Command {
	return &cli.Command{
		Name:  "sensitivity",
		Usage: "Sweep one parameter of a scenario and report NPV, IRR and payback",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Path to scenario YAML",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "param",
				Value: analysis.ParamElectricityPrice,
				Usage: "Parameter to vary",
			},
			&cli.Float64SliceFlag{
				Name:  "change",
				Value: cli.NewFloat64Slice(-20, -10, 0, 10, 20),
				Usage: "Relative change in percent (repeatable)",
			},
			formatFlag,
		},
		Action: runSensitivity,
	}
}

func runSensitivity(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}
	points, err := analysis.Sensitivity(cfg.Input(nil), c.String("param"), c.Float64Slice("change"))
	if err != nil {
		return err
	}
	if c.String("format") == "json" {
		return writeJSON(points)
	}
	printSensitivity(os.Stdout, c.String("param"), points)
	return nil
}

// =============================================================================
// SCENARIOS
// =============================================================================

func scenariosCommand() *cli.Command {
	return &cli.Command{
		Name:  "scenarios",
		Usage: "List scenario files in a directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Value:   "examples/scenarios",
				Usage:   "Scenario directory",
				EnvVars: []string{"SCENARIO_DIR"},
			},
		},
		Action: func(c *cli.Context) error {
			logger := newLogger(c)
			infos, skipped, err := config.ListScenarios(c.String("dir"))
			if err != nil {
				return err
			}
			for file, err := range skipped {
				logger.Warn().Err(err).Str("file", file).Msg("skipping unreadable scenario")
			}
			for _, info := range infos {
				fmt.Printf("%-32s %s\n", info.ID, info.Name)
			}
			return nil
		},
	}
}
