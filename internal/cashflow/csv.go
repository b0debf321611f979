package cashflow

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"renewable-invest/internal/model"
)

// WriteCSVFile writes the schedule to path, creating or truncating it.
func WriteCSVFile(path string, rows []model.YearlyCashFlow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteCSV(f, rows)
}

// WriteCSV writes the schedule with currency columns rounded to cents.
func WriteCSV(out io.Writer, rows []model.YearlyCashFlow) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	header := []string{
		"year",
		"energy_kwh",
		"revenue",
		"operating_cost",
		"loan_payment",
		"cash_flow",
		"cumulative_cash_flow",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			strconv.Itoa(r.Year),
			fmtEnergy(r.EnergyKWh),
			fmtMoney(r.Revenue),
			fmtMoney(r.OperatingCost),
			fmtMoney(r.LoanPayment),
			fmtMoney(r.CashFlow),
			fmtMoney(r.CumulativeCashFlow),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtMoney(c model.Currency) string {
	return decimal.NewFromFloat(float64(c)).StringFixed(2)
}

func fmtEnergy(e model.KilowattHours) string {
	return strconv.FormatFloat(float64(e), 'f', 3, 64)
}
