package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingForm struct {
	Email  string `validate:"required,email"`
	Name   string `validate:"required,min=2"`
	Age    int    `validate:"gte=0,lte=150"`
	Gender string `validate:"required,oneof=Male Female Other"`
	Date   string `validate:"omitempty,datetime=2006-01-02"`
}

func TestValidatePasses(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(&bookingForm{
		Email:  "jane@example.com",
		Name:   "Jane",
		Age:    34,
		Gender: "Female",
		Date:   "2025-03-09",
	})
	assert.NoError(t, err)
}

func TestValidateCollectsFieldErrors(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(&bookingForm{
		Email:  "not-an-email",
		Name:   "J",
		Age:    200,
		Gender: "Unknown",
		Date:   "09-03-2025",
	})
	require.Error(t, err)

	fieldErrors := cv.FormatValidationErrors(err)
	assert.Equal(t, "Email must be a valid email address", fieldErrors["Email"])
	assert.Equal(t, "Name must be at least 2", fieldErrors["Name"])
	assert.Equal(t, "Age must be less than or equal to 150", fieldErrors["Age"])
	assert.Equal(t, "Gender must be one of: Male Female Other", fieldErrors["Gender"])
	assert.Equal(t, "Date must match format 2006-01-02", fieldErrors["Date"])
}

func TestValidateRequiredFields(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(&bookingForm{})
	require.Error(t, err)

	fieldErrors := cv.FormatValidationErrors(err)
	assert.Equal(t, "Email is required", fieldErrors["Email"])
	assert.Equal(t, "Name is required", fieldErrors["Name"])
	assert.Equal(t, "Gender is required", fieldErrors["Gender"])
}
