package validator

import (
	"math"

	"github.com/Dan9191/irpf-calculator/internal/models"
	"github.com/Dan9191/irpf-calculator/internal/scales"
	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())

	// country code with a known tax scale: "es", "it"
	_ = Validate.RegisterValidation("country", func(fl validator.FieldLevel) bool {
		return scales.Supported(fl.Field().String())
	})

	// ISO currency code accepted by the calculator
	_ = Validate.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		_, err := models.ParseCurrency(fl.Field().String())
		return err == nil
	})

	_ = Validate.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		v := fl.Field().Float()
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	})
}
