package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"renewable-invest/internal/analysis"
	"renewable-invest/internal/engine"
	"renewable-invest/internal/goal"
	"renewable-invest/internal/model"
	"renewable-invest/internal/validate"
)

func money(v model.Currency) string {
	return decimal.NewFromFloat(float64(v)).StringFixed(2)
}

func irrString(p *model.Percent) string {
	if p == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", float64(*p))
}

func paybackString(years float64, reached bool) string {
	if !reached {
		return fmt.Sprintf("not reached (>%g y)", years)
	}
	return fmt.Sprintf("%.2f y", years)
}

func printResult(w io.Writer, name string, res *engine.Result) {
	m := res.Metrics
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Scenario\t%s\n", name)
	fmt.Fprintf(tw, "Capacity\t%.2f kW\n", float64(res.System.TotalCapacityKW()))
	fmt.Fprintf(tw, "Installation cost\t%s\n", money(res.InstallationCost))
	fmt.Fprintf(tw, "Operating cost / year\t%s\n", money(res.OperationalCostPerYear))
	fmt.Fprintf(tw, "Loan payment / month\t%s\n", money(res.LoanPaymentPerMonth))
	fmt.Fprintf(tw, "Energy / day\t%.2f kWh\n", float64(res.Energy.DailyKWh))
	fmt.Fprintf(tw, "Energy / year (year 1)\t%.0f kWh\n", float64(res.Energy.YearlyKWh))
	fmt.Fprintf(tw, "Energy / lifetime\t%.0f kWh\n", float64(res.Energy.LifetimeKWh))
	fmt.Fprintf(tw, "NPV\t%s\n", money(m.NPV))
	fmt.Fprintf(tw, "IRR\t%s\n", irrString(m.IRR))
	fmt.Fprintf(tw, "Payback\t%s\n", paybackString(m.PaybackPeriodYears, m.PaybackReached))
	fmt.Fprintf(tw, "ROI\t%.2f%%\n", float64(m.ROIPct))
	fmt.Fprintf(tw, "LCOE\t%.4f / kWh\n", float64(m.LCOEPerKWh))
	fmt.Fprintf(tw, "CO2e avoided / year\t%.0f kg\n", float64(res.Carbon.YearlyKg))
	fmt.Fprintf(tw, "CO2e avoided / lifetime\t%.1f t\n", res.Carbon.LifetimeKg.Tonnes())
	fmt.Fprintf(tw, "Carbon credit value\t%s\n", money(res.Carbon.FinancialBenefit))
	fmt.Fprintf(tw, "Equivalent to\t%.0f tree-years, %.0f car km\n", res.Equivalents.TreeYears, res.Equivalents.CarKm)
	for reason, msg := range m.Unavailable {
		fmt.Fprintf(tw, "Unavailable %s\t%s\n", reason, msg)
	}
	tw.Flush()
}

func printComparison(w io.Writer, outcomes []analysis.Outcome) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tNAME\tNPV\tIRR\tPAYBACK\tLCOE")
	rank := 0
	for _, o := range outcomes {
		if o.Result == nil {
			fmt.Fprintf(tw, "-\t%s\terror: %s\t\t\t\n", o.Name, o.Error)
			continue
		}
		rank++
		m := o.Result.Metrics
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%.4f\n",
			rank, o.Name, money(m.NPV), irrString(m.IRR),
			paybackString(m.PaybackPeriodYears, m.PaybackReached), float64(m.LCOEPerKWh))
	}
	tw.Flush()
}

func printSuggestion(w io.Writer, s goal.Suggestion, gridFactor float64) {
	fmt.Fprintf(w, "Suggested capacity: %.2f kW (grid factor %.3f kg/kWh)\n", float64(s.CapacityKW), gridFactor)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tTARGET\tSOURCE\tIMPLIED kW")
	for _, e := range s.Estimates {
		src := "given"
		if e.Derived {
			src = "derived"
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%s\t%.2f\n", e.Metric, e.Value, src, float64(e.CapacityKW))
	}
	tw.Flush()
}

func printValidation(w io.Writer, rec validate.Record, res validate.Result) {
	status := "valid"
	if !res.IsValid {
		status = "invalid"
	}
	fmt.Fprintf(w, "Record is %s\n", status)
	for _, e := range res.Errors {
		fmt.Fprintf(w, "  error   %s\n", e)
	}
	for _, e := range res.Warnings {
		fmt.Fprintf(w, "  warning %s\n", e)
	}
	if len(res.MissingDataFlags) > 0 {
		fmt.Fprintf(w, "  imputed %s\n", strings.Join(res.MissingDataFlags, ", "))
	}
	if len(rec.Unknown) > 0 {
		fmt.Fprintf(w, "  ignored %s\n", strings.Join(rec.Unknown, ", "))
	}
}

func printSensitivity(w io.Writer, param string, points []analysis.SensitivityPoint) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "CHANGE\t%s\tNPV\tIRR\tPAYBACK\n", strings.ToUpper(param))
	for _, p := range points {
		if p.Error != "" {
			fmt.Fprintf(tw, "%+.0f%%\t%.4g\terror: %s\t\t\n", p.Change, p.Value, p.Error)
			continue
		}
		fmt.Fprintf(tw, "%+.0f%%\t%.4g\t%s\t%s\t%s\n",
			p.Change, p.Value, money(p.NPV), irrString(p.IRR), paybackString(p.Payback, p.Reached))
	}
	tw.Flush()
}
