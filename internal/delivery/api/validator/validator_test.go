package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type signUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

func TestValidator_Validate(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		input   signUpRequest
		wantErr string
	}{
		{
			name:  "valid",
			input: signUpRequest{Email: "ann@example.com", Password: "s3cretpass"},
		},
		{
			name:    "missing email",
			input:   signUpRequest{Password: "s3cretpass"},
			wantErr: "Email is required",
		},
		{
			name:    "short password and bad role",
			input:   signUpRequest{Email: "ann@example.com", Password: "short", Role: "owner"},
			wantErr: "Password must be at least 8; Role must be one of [user admin]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
