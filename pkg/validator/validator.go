package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// builtin maps the stock tags used by request DTOs to a message suffix.
var builtin = map[string]func(param string) string{
	"required": func(string) string { return "is required" },
	"gte":      func(p string) string { return "must be greater than or equal to " + p },
	"lte":      func(p string) string { return "must be less than or equal to " + p },
}

type CustomValidator struct {
	validator *validator.Validate
	messages  map[string]string
}

func NewValidator() *CustomValidator {
	return &CustomValidator{
		validator: validator.New(),
		messages:  make(map[string]string),
	}
}

func (cv *CustomValidator) Validate(i any) error {
	return cv.validator.Struct(i)
}

// RegisterStringRule adds a tag that accepts a string field (or map key) when
// accept returns true. message is appended to the field name on failure.
func (cv *CustomValidator) RegisterStringRule(tag, message string, accept func(string) bool) error {
	if err := cv.validator.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return accept(fl.Field().String())
	}); err != nil {
		return err
	}
	cv.messages[tag] = message
	return nil
}

// FormatValidationErrors maps each failing field (map keys included, as
// Field[key]) to a readable message. Other errors yield an empty map.
func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	out := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return out
	}
	for _, e := range validationErrors {
		out[e.Field()] = e.Field() + " " + cv.message(e)
	}
	return out
}

func (cv *CustomValidator) message(e validator.FieldError) string {
	if msg, ok := cv.messages[e.Tag()]; ok {
		return msg
	}
	if msg, ok := builtin[e.Tag()]; ok {
		return msg(e.Param())
	}
	return "is invalid"
}
