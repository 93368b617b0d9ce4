package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/config"
)

type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator wraps the decimal-aware validator for echo
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: config.NewValidator()}
}

// Validate checks a request struct against its tags
func (cv *CustomValidator) Validate(i any) error {
	return cv.validator.Struct(i)
}

// validationMessage turns validator output into a short client message
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			parts = append(parts, field+" is required")
		case "datetime":
			parts = append(parts, field+" must be a date like 2006-01-02")
		default:
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param()))
		}
	}
	return strings.Join(parts, "; ")
}
