// Package calculator turns a gross yearly income into net income using the
// progressive scale of a country.
package calculator

import (
	"github.com/Dan9191/irpf-calculator/internal/formatter"
	"github.com/Dan9191/irpf-calculator/internal/models"
	"github.com/Dan9191/irpf-calculator/internal/scales"
)

// DisplayCurrency is the currency every CalculateValue is formatted in
const DisplayCurrency = models.BaseCurrency

func taxFor(amount, percentage float64) float64 {
	return (percentage * amount) / 100
}

// ComputeNet returns the net income for gross under the country's scale.
// Unknown countries yield 0. Income equal to a bracket's lower bound stays in
// the bracket below it. Whatever is left always lands in the lowest bracket,
// so a negative gross is scaled by its rate. No rounding is applied.
func ComputeNet(countryCode string, gross float64) float64 {
	brackets, ok := scales.Lookup(countryCode)
	if !ok {
		return 0
	}

	remaining := gross
	taxes := make([]float64, 0, len(brackets))

	// brackets are ordered highest first
	lowest := len(brackets) - 1
	for i, b := range brackets {
		if remaining > b.From || i == lowest {
			portion := remaining - b.From
			remaining -= portion
			taxes = append(taxes, taxFor(portion, b.Percentage))
		}
	}

	var total float64
	for _, tax := range taxes {
		total += tax
	}
	return gross - total
}

// CalculateValues builds the display record for one calculation. gross must
// already be in the base currency and greater than zero; zero yields a
// non-finite percentage.
func CalculateValues(countryCode string, gross float64) models.CalculateValue {
	grossPerMonth := Round2(gross / 12)
	net := ComputeNet(countryCode, gross)
	netPerMonth := Round2(net / 12)
	finalPercentage := Round2(100 - (net*100)/gross)

	currencyFormatter := formatter.NumberFormatter(formatter.KindCurrency, DisplayCurrency)
	percentageFormatter := formatter.NumberFormatter(formatter.KindPercent, DisplayCurrency)

	return models.CalculateValue{
		GrossIncome:         currencyFormatter.Format(gross),
		GrossIncomePerMonth: currencyFormatter.Format(grossPerMonth),
		NetIncome:           currencyFormatter.Format(net),
		NetIncomePerMonth:   currencyFormatter.Format(netPerMonth),
		FinalPercentage:     percentageFormatter.Format(finalPercentage / 100),
	}
}
