// Package validate coerces raw form input into numeric fields, checks them
// against per-field range rules and fills gaps from a default table.
package validate

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Record is a normalized form record. Values holds NaN for fields that were
// present but could not be parsed.
type Record struct {
	Values           map[string]float64 `json:"values"`
	Invalid          []string           `json:"invalid,omitempty"`
	Missing          []string           `json:"missing,omitempty"`
	MissingDataFlags []string           `json:"missing_data_flags,omitempty"`
	Unknown          []string           `json:"unknown,omitempty"`
}

// Get returns the value of field and whether it is present.
func (r Record) Get(field string) (float64, bool) {
	v, ok := r.Values[field]
	return v, ok
}

// Normalize coerces every recognised field of raw to a float64. Numeric strings
// are accepted after stripping everything but digits, '.' and '-'. Empty or
// unparseable values become NaN and are listed in Invalid; fields that are
// absent are listed in Missing. Unrecognised keys are reported in Unknown.
func Normalize(raw map[string]any) Record {
	rec := Record{Values: make(map[string]float64, len(rules))}
	for key, v := range raw {
		field, ok := canonical(key)
		if !ok {
			rec.Unknown = append(rec.Unknown, key)
			continue
		}
		f, ok := toFloat(v)
		if !ok {
			f = math.NaN()
			rec.Invalid = append(rec.Invalid, field)
		}
		rec.Values[field] = f
	}
	for _, r := range rules {
		if _, ok := rec.Values[r.Field]; !ok {
			rec.Missing = append(rec.Missing, r.Field)
		}
	}
	sort.Strings(rec.Invalid)
	sort.Strings(rec.Unknown)
	return rec
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		return x, finite(x)
	case float32:
		return float64(x), finite(float64(x))
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case bool:
		return 0, false
	case fmt.Stringer:
		return parseNumeric(x.String())
	case string:
		return parseNumeric(x)
	default:
		return 0, false
	}
}

func parseNumeric(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, finite(f)
}

// Impute fills every missing field from the default table and records its name
// in MissingDataFlags. Invalid (NaN) fields are left alone so validation still
// rejects them.
func Impute(rec Record) Record {
	out := Record{
		Values:  make(map[string]float64, len(rec.Values)),
		Invalid: append([]string(nil), rec.Invalid...),
		Unknown: append([]string(nil), rec.Unknown...),
	}
	for k, v := range rec.Values {
		out.Values[k] = v
	}
	out.MissingDataFlags = append(out.MissingDataFlags, rec.MissingDataFlags...)
	defaults := Defaults()
	for _, field := range rec.Missing {
		out.Values[field] = defaults[field]
		out.MissingDataFlags = append(out.MissingDataFlags, field)
	}
	return out
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
