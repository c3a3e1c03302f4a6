package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taggedRequest struct {
	Phone  string `validate:"omitempty,intlphone"`
	Status string `validate:"omitempty,booking_status"`
}

func TestRegister(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	tests := []struct {
		name  string
		req   taggedRequest
		valid bool
	}{
		{"empty", taggedRequest{}, true},
		{"valid phone", taggedRequest{Phone: "+44 20 7946 0958"}, true},
		{"bad phone", taggedRequest{Phone: "12ab"}, false},
		{"valid status", taggedRequest{Status: "Confirmed"}, true},
		{"status is case sensitive", taggedRequest{Status: "confirmed"}, false},
		{"unknown status", taggedRequest{Status: "Refunded"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(tc.req)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRegisterBindings(t *testing.T) {
	assert.NoError(t, RegisterBindings())
}
