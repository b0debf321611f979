package analysis

import (
	"errors"
	"sort"

	"renewable-invest/internal/config"
	"renewable-invest/internal/engine"
	"renewable-invest/internal/model"
)

// Variation is a named overlay onto a base scenario. Only the fields set in
// Config replace the base.
type Variation struct {
	Name   string        `json:"name"`
	Config config.Config `json:"config"`
}

// Outcome is the result of one variation. Exactly one of Result and Error is set.
type Outcome struct {
	Name   string         `json:"name"`
	Result *engine.Result `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
	// Fields lists the offending inputs when the variation failed validation.
	Fields []model.FieldError `json:"fields,omitempty"`
}

// Compare runs every variation merged onto base with the given weather
// factors. Variations that fail validation or calculation are kept with their
// error so callers can report them; they sort after every successful run.
func Compare(base config.Config, variations []Variation, weather model.WeatherFactors) []Outcome {
	out := make([]Outcome, 0, len(variations))
	for _, v := range variations {
		merged := config.Merge(base, v.Config)
		name := v.Name
		if name == "" {
			name = merged.Name
		}

		res, err := engine.Run(merged.Input(weather))
		if err != nil {
			out = append(out, Outcome{Name: name, Error: err.Error(), Fields: fieldsOf(err)})
			continue
		}
		out = append(out, Outcome{Name: name, Result: res})
	}
	return RankByNPV(out)
}

// fieldsOf returns the offending fields of a validation failure anywhere in
// err's chain, or nil.
func fieldsOf(err error) []model.FieldError {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}

// RankByNPV sorts descending by NPV, keeping the input order for ties and
// moving failed outcomes to the end.
func RankByNPV(outcomes []Outcome) []Outcome {
	sort.SliceStable(outcomes, func(i, j int) bool {
		a, b := outcomes[i].Result, outcomes[j].Result
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.Metrics.NPV > b.Metrics.NPV
	})
	return outcomes
}
