// Package validation adapts go-playground/validator to echo's Validator
// interface for handlers that call c.Validate directly.
package validation

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: validator.New()}
}

// Validate maps failures to a 400 so c.Validate callers do not need their
// own status mapping.
func (v *Validator) Validate(i any) error {
	if err := v.v.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
