package models

import (
	"fmt"
	"strings"
)

// Currency is one of the display currencies supported by the calculator
type Currency int

const (
	EUR Currency = iota
	GBP
	USD
)

// BaseCurrency is the currency all bracket calculations run in
const BaseCurrency = EUR

// Currencies lists the supported currencies in display order
var Currencies = []Currency{EUR, GBP, USD}

var currencyCodes = map[Currency]string{
	EUR: "EUR",
	GBP: "GBP",
	USD: "USD",
}

var currencyLocales = map[Currency]string{
	EUR: "es-ES",
	GBP: "en-GB",
	USD: "en-US",
}

// Code returns the ISO 4217 code
func (c Currency) Code() string {
	if code, ok := currencyCodes[c]; ok {
		return code
	}
	return fmt.Sprintf("Currency(%d)", int(c))
}

// Locale returns the BCP 47 tag the currency is displayed with
func (c Currency) Locale() string {
	return currencyLocales[c]
}

func (c Currency) String() string {
	return c.Code()
}

// Valid reports whether c is one of the declared currencies
func (c Currency) Valid() bool {
	_, ok := currencyCodes[c]
	return ok
}

// ParseCurrency converts an ISO code (case-insensitive) to a Currency
func ParseCurrency(code string) (Currency, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	for c, iso := range currencyCodes {
		if iso == normalized {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, code)
}

// MarshalText implements encoding.TextMarshaler so currencies travel as ISO codes
func (c Currency) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedCurrency, int(c))
	}
	return []byte(c.Code()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Currency) UnmarshalText(text []byte) error {
	parsed, err := ParseCurrency(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
