package validator

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// bookingStatuses mirrors the values accepted by the bookings.status check constraint
var bookingStatuses = map[string]struct{}{
	"Pending":   {},
	"Confirmed": {},
	"Cancelled": {},
	"Completed": {},
}

// RegisterBindings adds the custom tags used by request structs to gin's validator
func RegisterBindings() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	return Register(v)
}

// Register adds the custom tags to a validator instance
func Register(v *validator.Validate) error {
	phones := NewPhoneValidator()

	if err := v.RegisterValidation("intlphone", func(fl validator.FieldLevel) bool {
		return phones.IsValid(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("failed to register intlphone: %w", err)
	}

	if err := v.RegisterValidation("booking_status", func(fl validator.FieldLevel) bool {
		_, ok := bookingStatuses[fl.Field().String()]
		return ok
	}); err != nil {
		return fmt.Errorf("failed to register booking_status: %w", err)
	}

	return nil
}
