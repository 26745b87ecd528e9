// Package formatter renders amounts and percentages for display using the
// locale bound to each supported currency.
package formatter

import (
	"fmt"
	"math"

	"github.com/Dan9191/irpf-calculator/internal/models"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Kind selects between currency and percent rendering
type Kind string

const (
	KindCurrency Kind = "currency"
	KindPercent  Kind = "percent"
)

// percentDigits is fixed regardless of locale
const percentDigits = 2

type currencyConfig struct {
	locale      language.Tag
	unit        currency.Unit
	symbolAfter bool
	// minGrouping is the number of digits that must precede the first
	// grouping separator, 2 for es-ES (1234,56 but 12.345,67).
	minGrouping int
}

var configs = map[models.Currency]currencyConfig{
	models.EUR: {locale: language.MustParse(models.EUR.Locale()), unit: currency.EUR, symbolAfter: true, minGrouping: 2},
	models.GBP: {locale: language.MustParse(models.GBP.Locale()), unit: currency.GBP, minGrouping: 1},
	models.USD: {locale: language.MustParse(models.USD.Locale()), unit: currency.USD, minGrouping: 1},
}

// Formatter formats numbers for one kind and currency
type Formatter struct {
	kind        Kind
	printer     *message.Printer
	symbol      string
	digits      int
	symbolAfter bool
	groupFrom   float64
}

// NumberFormatter builds a Formatter. Unknown currencies fall back to the base currency.
func NumberFormatter(kind Kind, c models.Currency) Formatter {
	cfg, ok := configs[c]
	if !ok {
		cfg = configs[models.BaseCurrency]
	}

	p := message.NewPrinter(cfg.locale)
	digits, _ := currency.Standard.Rounding(cfg.unit)

	return Formatter{
		kind:        kind,
		printer:     p,
		symbol:      p.Sprint(currency.NarrowSymbol(cfg.unit)),
		digits:      digits,
		symbolAfter: cfg.symbolAfter,
		groupFrom:   math.Pow10(3 + cfg.minGrouping - 1),
	}
}

// Kind returns the kind the formatter was built for
func (f Formatter) Kind() Kind {
	return f.kind
}

// Format renders v. Percent input is a fraction, so 0.1945 renders as 19.45%.
func (f Formatter) Format(v float64) string {
	if f.kind == KindPercent {
		return f.printer.Sprint(number.Percent(v, number.Scale(percentDigits)))
	}
	return f.formatCurrency(v)
}

func (f Formatter) formatCurrency(v float64) string {
	if math.IsNaN(v) {
		return f.printer.Sprint(number.Decimal(v))
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	opts := []number.Option{number.Scale(f.digits)}
	if f.rounded(v) < f.groupFrom {
		opts = append(opts, number.NoSeparator())
	}
	amount := f.printer.Sprint(number.Decimal(v, opts...))

	if f.symbolAfter {
		return fmt.Sprintf("%s%s %s", sign, amount, f.symbol)
	}
	return fmt.Sprintf("%s%s%s", sign, f.symbol, amount)
}

func (f Formatter) rounded(v float64) float64 {
	scale := math.Pow10(f.digits)
	return math.Round(v*scale) / scale
}

// ParseKind validates a kind name
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindCurrency, KindPercent:
		return k, nil
	default:
		return "", fmt.Errorf("unknown format kind %q", s)
	}
}
