package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type permissionsRequest struct {
	Permissions map[string]bool `json:"permissions" validate:"omitempty,dive,keys,color,endkeys"`
}

type pageRequest struct {
	Page  int `validate:"gte=1"`
	Limit int `validate:"gte=1,lte=100"`
}

func TestRegisterStringRule(t *testing.T) {
	v := NewValidator()
	require.NoError(t, v.RegisterStringRule("color", "is not a known color", func(s string) bool {
		return s == "red" || s == "blue"
	}))

	assert.NoError(t, v.Validate(permissionsRequest{Permissions: map[string]bool{"red": true, "blue": false}}))
	assert.NoError(t, v.Validate(permissionsRequest{}))

	err := v.Validate(permissionsRequest{Permissions: map[string]bool{"green": true}})
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	require.Len(t, errs, 1)
	for field, message := range errs {
		assert.Contains(t, field, "green")
		assert.Contains(t, message, "is not a known color")
	}
}

func TestFormatValidationErrors_BuiltinTags(t *testing.T) {
	v := NewValidator()

	err := v.Validate(pageRequest{Page: 0, Limit: 500})
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	assert.Equal(t, "Page must be greater than or equal to 1", errs["Page"])
	assert.Equal(t, "Limit must be less than or equal to 100", errs["Limit"])
}

func TestFormatValidationErrors_NotValidation(t *testing.T) {
	v := NewValidator()
	assert.Empty(t, v.FormatValidationErrors(assert.AnError))
}

func TestRegisterStringRule_EmptyTag(t *testing.T) {
	v := NewValidator()
	assert.Error(t, v.RegisterStringRule("", "never", func(string) bool { return true }))
}
