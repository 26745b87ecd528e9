package models

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedCountry  = errors.New("unsupported country")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrInvalidGross        = errors.New("invalid gross amount")
	ErrRatesUnavailable    = errors.New("exchange rates unavailable")
)

// UserError carries a message that is safe to show to the end user
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError wraps err with a user facing message
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage extracts the display message from err, falling back to err.Error()
func UserMessage(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return err.Error()
}
