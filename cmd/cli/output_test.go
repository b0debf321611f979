package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"renewable-invest/internal/analysis"
	"renewable-invest/internal/config"
	"renewable-invest/internal/engine"
	"renewable-invest/internal/model"
)

func TestPrintResult(t *testing.T) {
	cfg, err := config.Load("../../examples/scenarios/residential_solar.yaml")
	require.NoError(t, err)
	res, err := engine.Run(cfg.Input(nil))
	require.NoError(t, err)

	var buf bytes.Buffer
	printResult(&buf, cfg.Name, res)
	out := buf.String()

	assert.Contains(t, out, "150000.00")
	assert.Contains(t, out, "1741.63")
	assert.Contains(t, out, "5.60 y")
}

func TestPrintComparison_FailedRowsUnranked(t *testing.T) {
	var buf bytes.Buffer
	printComparison(&buf, []analysis.Outcome{{Name: "broken", Error: "invalid input"}})
	assert.Regexp(t, `(?m)^-\s+broken\s+error: invalid input`, buf.String())
}

func TestPrintSensitivity_FailedPoint(t *testing.T) {
	var buf bytes.Buffer
	printSensitivity(&buf, analysis.ParamElectricityPrice, []analysis.SensitivityPoint{
		{Change: -100, Value: 0, Error: "invalid input"},
	})
	assert.Regexp(t, `(?m)^-100%\s+0\s+error: invalid input`, buf.String())
}

func TestValidateRecord_ExitCode(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		t.Run(format, func(t *testing.T) {
			var out bytes.Buffer
			err := validateRecord(strings.NewReader(`{"capacity_kw": -5}`), &out, format)
			var exit cli.ExitCoder
			require.ErrorAs(t, err, &exit)
			assert.Equal(t, 1, exit.ExitCode())
			assert.NotEmpty(t, out.String())

			out.Reset()
			assert.NoError(t, validateRecord(strings.NewReader(`{}`), &out, format))
		})
	}
}

func TestPaybackString(t *testing.T) {
	assert.Equal(t, "not reached (>25 y)", paybackString(25, false))
	assert.Equal(t, "3.25 y", paybackString(3.25, true))
	assert.Equal(t, "n/a", irrString(nil))
	p := model.Percent(12.346)
	assert.Equal(t, "12.35%", irrString(&p))
}
