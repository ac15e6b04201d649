package dto

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr map[string]string
	}{
		{
			name: "valid",
			req:  RegisterRequest{Username: "ada", Email: "ada@x.com", Password: "secret1"},
		},
		{
			name: "all fields violated at once",
			req:  RegisterRequest{Username: "", Email: "bad", Password: "short"},
			wantErr: map[string]string{
				"username": "Username is required",
				"email":    "Please include a valid email",
				"password": "Please enter a password with 6 or more characters",
			},
		},
		{
			name: "password exactly six characters passes",
			req:  RegisterRequest{Username: "ada", Email: "ada@x.com", Password: "6chars"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			fieldErrs, ok := err.(validation.Errors)
			require.True(t, ok, "expected aggregated field errors, got %v", err)
			require.Len(t, fieldErrs, len(tt.wantErr))
			for field, msg := range tt.wantErr {
				require.Contains(t, fieldErrs, field)
				assert.Equal(t, msg, fieldErrs[field].Error())
			}
		})
	}
}

func TestLoginRequestValidate(t *testing.T) {
	assert.NoError(t, LoginRequest{Email: "ada@x.com", Password: "x"}.Validate())

	err := LoginRequest{Email: "nope", Password: ""}.Validate()
	fieldErrs, ok := err.(validation.Errors)
	require.True(t, ok)
	assert.Equal(t, "Please include a valid email", fieldErrs["email"].Error())
	assert.Equal(t, "Password is required", fieldErrs["password"].Error())
}
