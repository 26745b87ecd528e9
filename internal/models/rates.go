package models

import "time"

// ExchangeRates holds EUR reference rates: how many units of X one euro buys
type ExchangeRates struct {
	Date      time.Time `json:"date"`
	EURUSD    float64   `json:"eur_usd"`
	EURGBP    float64   `json:"eur_gbp"`
	FetchedAt time.Time `json:"fetched_at"`
}

// USDEUR is the value of one dollar in euros
func (r *ExchangeRates) USDEUR() float64 {
	return 1 / r.EURUSD
}

// GBPEUR is the value of one pound in euros
func (r *ExchangeRates) GBPEUR() float64 {
	return 1 / r.EURGBP
}

// ToEUR returns the multiplier converting an amount in c into euros.
// A nil receiver yields 1 so missing rates mean no conversion.
func (r *ExchangeRates) ToEUR(c Currency) float64 {
	if r == nil {
		return 1
	}
	switch c {
	case USD:
		return r.USDEUR()
	case GBP:
		return r.GBPEUR()
	default:
		return 1
	}
}

// FromEUR returns how many units of c one euro buys, or 1 for EUR and nil rates
func (r *ExchangeRates) FromEUR(c Currency) float64 {
	if r == nil {
		return 1
	}
	switch c {
	case USD:
		return r.EURUSD
	case GBP:
		return r.EURGBP
	default:
		return 1
	}
}
