package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dan9191/irpf-calculator/internal/calculator"
	"github.com/Dan9191/irpf-calculator/internal/formatter"
	"github.com/Dan9191/irpf-calculator/internal/models"
	"github.com/Dan9191/irpf-calculator/internal/scales"
	"github.com/Dan9191/irpf-calculator/internal/validator"
	pgvalidator "github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// GrossTooLowMessage is shown when the gross amount is not positive
const GrossTooLowMessage = "Your gross amount should be higher than 0"

// RateProvider exposes the currently known exchange rates
type RateProvider interface {
	Current() *models.ExchangeRates
}

// CalculationRequest is the input collected from a form, API call or CLI
type CalculationRequest struct {
	Country  string  `json:"country" validate:"required,country"`
	Currency string  `json:"currency" validate:"omitempty,currency"`
	Gross    float64 `json:"gross" validate:"finite,gt=0"`
}

// Calculation is the outcome of one request
type Calculation struct {
	Country      string                `json:"country"`
	Currency     models.Currency       `json:"currency"`
	Gross        float64               `json:"gross"`
	GrossEUR     float64               `json:"gross_eur"`
	Multiplier   float64               `json:"multiplier"`
	ExchangeRate string                `json:"exchange_rate,omitempty"`
	Values       models.CalculateValue `json:"values"`
}

// Service handles business logic
type Service struct {
	rates RateProvider
	log   *logrus.Logger
}

// NewService initializes a new service
func NewService(rates RateProvider, log *logrus.Logger) *Service {
	return &Service{rates: rates, log: log}
}

// Countries returns the countries a calculation can be run for
func (s *Service) Countries() []models.Country {
	return scales.Countries()
}

// Rates returns the current exchange rates
func (s *Service) Rates() (*models.ExchangeRates, error) {
	rates := s.rates.Current()
	if rates == nil {
		return nil, models.ErrRatesUnavailable
	}
	return rates, nil
}

// AvailableCurrencies lists the input currencies that can be offered. Without
// rates only the base currency is usable.
func (s *Service) AvailableCurrencies() []models.Currency {
	if s.rates.Current() == nil {
		return []models.Currency{models.BaseCurrency}
	}
	return models.Currencies
}

// Calculate validates the request, converts the gross amount to the base
// currency and builds the display values. Missing rates mean no conversion.
func (s *Service) Calculate(_ context.Context, req CalculationRequest) (*Calculation, error) {
	if err := validator.Validate.Struct(req); err != nil {
		return nil, translateValidation(err)
	}

	cur := models.BaseCurrency
	if req.Currency != "" {
		cur, _ = models.ParseCurrency(req.Currency)
	}

	rates := s.rates.Current()
	if rates == nil && cur != models.BaseCurrency {
		s.log.WithField("currency", cur.Code()).Warn("No exchange rates available, using the amount unconverted")
	}

	multiplier := rates.ToEUR(cur)
	grossEUR := req.Gross * multiplier

	calc := &Calculation{
		Country:    req.Country,
		Currency:   cur,
		Gross:      req.Gross,
		GrossEUR:   grossEUR,
		Multiplier: multiplier,
		Values:     calculator.CalculateValues(req.Country, grossEUR),
	}
	if rates != nil && cur != models.BaseCurrency {
		calc.ExchangeRate = ExchangeRateLabel(rates, cur)
	}

	s.log.WithFields(logrus.Fields{
		"country":  calc.Country,
		"currency": cur.Code(),
		"gross":    calc.GrossEUR,
	}).Debug("Calculated net income")
	return calc, nil
}

// ExchangeRateLabel renders how much of cur one euro buys, e.g. "$1.08 = 1€"
func ExchangeRateLabel(rates *models.ExchangeRates, cur models.Currency) string {
	return fmt.Sprintf("%s = 1€", formatter.NumberFormatter(formatter.KindCurrency, cur).Format(rates.FromEUR(cur)))
}

var fieldErrors = map[string]error{
	"Country":  models.NewUserError("Please choose a supported country", models.ErrUnsupportedCountry),
	"Currency": models.NewUserError("Please choose EUR, GBP or USD", models.ErrUnsupportedCurrency),
	"Gross":    models.NewUserError(GrossTooLowMessage, models.ErrInvalidGross),
}

func translateValidation(err error) error {
	var verrs pgvalidator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate request: %w", err)
	}

	fields := lo.Map(verrs, func(fe pgvalidator.FieldError, _ int) string {
		return fe.Field()
	})
	for _, field := range []string{"Country", "Currency", "Gross"} {
		if lo.Contains(fields, field) {
			return fieldErrors[field]
		}
	}
	return fmt.Errorf("invalid request: %w", err)
}
