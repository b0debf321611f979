// Package cashflow builds the year-by-year cash-flow schedule of an investment.
package cashflow

import (
	"fmt"
	"math"

	"renewable-invest/internal/model"
)

// MonthlyLoanPayment returns the fixed monthly payment for a loan of principal
// over financingYears using the annuity formula
//
//	M = P·r·(1+r)^n / ((1+r)^n − 1),  r = interest/12, n = years×12
//
// It is evaluated as P·r / (1 − (1+r)^−n), which stays finite for very long
// terms. A zero interest rate repays the principal linearly. financingYears <= 0
// is a cash purchase and returns 0.
func MonthlyLoanPayment(principal model.Currency, interestPct model.Percent, financingYears int) model.Currency {
	if financingYears <= 0 || principal == 0 {
		return 0
	}
	n := float64(financingYears) * 12
	if interestPct <= 0 {
		return principal / model.Currency(n)
	}
	r := interestPct.Fraction() / 12
	return model.Currency(float64(principal) * r / (1 - math.Pow(1+r, -n)))
}

// YearlyLoanPayment is twelve monthly payments.
func YearlyLoanPayment(principal model.Currency, interestPct model.Percent, financingYears int) model.Currency {
	return MonthlyLoanPayment(principal, interestPct, financingYears) * 12
}

// Build returns rows for years 0..OperationalLifetimeYears.
//
// Year 0 is exactly -TotalInstallationCost. Each later year earns the degraded
// energy of that year at the escalated price, minus the operating cost and,
// while the loan runs, the yearly loan payment. yearlyEnergyKWh[i] is the
// output of year i+1.
func Build(sys model.SystemConfiguration, fin model.FinancialConfiguration, yearlyEnergyKWh []model.KilowattHours) ([]model.YearlyCashFlow, error) {
	years := sys.OperationalLifetimeYears
	if years < 1 {
		return nil, model.NewConfigurationError("cashflow", fmt.Sprintf("operational lifetime must be >= 1 year, got %d", years))
	}
	if len(yearlyEnergyKWh) < years {
		return nil, model.NewConfigurationError("cashflow",
			fmt.Sprintf("energy series covers %d years, lifetime is %d", len(yearlyEnergyKWh), years))
	}

	installation := sys.TotalInstallationCost()
	if !finite(float64(installation)) {
		return nil, model.NewConfigurationError("cashflow", "installation cost is not a finite number")
	}
	opCost := sys.TotalOperationalCostPerYear()
	loan := YearlyLoanPayment(installation, fin.InterestRatePct, fin.FinancingYears)
	escalation := 1 + fin.ElectricityPriceIncreasePct.Fraction()

	rows := make([]model.YearlyCashFlow, 0, years+1)
	cum := -installation
	rows = append(rows, model.YearlyCashFlow{
		Year:               0,
		CashFlow:           -installation,
		CumulativeCashFlow: cum,
	})

	for year := 1; year <= years; year++ {
		energy := yearlyEnergyKWh[year-1]
		price := float64(fin.ElectricityPricePerKWh) * math.Pow(escalation, float64(year-1))
		revenue := model.Currency(float64(energy) * price)

		var payment model.Currency
		if year <= fin.FinancingYears {
			payment = loan
		}
		net := revenue - opCost - payment
		if !finite(float64(net)) {
			return nil, model.NewConfigurationError("cashflow", fmt.Sprintf("year %d cash flow is not a finite number", year))
		}
		cum += net

		rows = append(rows, model.YearlyCashFlow{
			Year:               year,
			EnergyKWh:          energy,
			Revenue:            revenue,
			OperatingCost:      opCost,
			LoanPayment:        payment,
			CashFlow:           net,
			CumulativeCashFlow: cum,
		})
	}
	return rows, nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
