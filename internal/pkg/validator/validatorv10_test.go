package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerInput struct {
	Name     string `json:"name" validate:"required,max=100,personname"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	OTP      string `json:"otp" validate:"omitempty,otp"`
	UserID   int64  `validate:"gte=0"`
}

func TestV10Validator(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	valid := registerInput{Name: "Ann O'Neil", Email: "ann@example.com", Password: "s3cret-pass", OTP: "1234"}

	tests := []struct {
		name   string
		mutate func(in *registerInput)
		fields []string
	}{
		{name: "Valid", mutate: func(*registerInput) {}},
		{name: "MissingEmail", mutate: func(in *registerInput) { in.Email = "" }, fields: []string{"email"}},
		{name: "BadEmail", mutate: func(in *registerInput) { in.Email = "ann" }, fields: []string{"email"}},
		{name: "ShortPassword", mutate: func(in *registerInput) { in.Password = "short" }, fields: []string{"password"}},
		{name: "PasswordOver72Bytes", mutate: func(in *registerInput) { in.Password = strings.Repeat("é", 37) }, fields: []string{"password"}},
		{name: "OTPNotDigits", mutate: func(in *registerInput) { in.OTP = "12a4" }, fields: []string{"otp"}},
		{name: "OTPTooLong", mutate: func(in *registerInput) { in.OTP = "12345" }, fields: []string{"otp"}},
		{name: "NameWithDigits", mutate: func(in *registerInput) { in.Name = "R2D2" }, fields: []string{"name"}},
		{name: "SnakeFallback", mutate: func(in *registerInput) { in.UserID = -1 }, fields: []string{"user_id"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			in := valid
			tt.mutate(&in)

			// Act
			err := v.Validate(in)

			// Assert
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}

			var verr V10ValidationError
			require.ErrorAs(t, err, &verr)
			for _, f := range tt.fields {
				assert.Contains(t, verr.Values(), f)
			}
			assert.Len(t, verr.Values(), len(tt.fields))
		})
	}
}

func TestV10ValidationErrorMessage(t *testing.T) {
	assert.Equal(t, "validation error", V10ValidationError{}.Error())
	assert.JSONEq(t, `{"otp":"otp must be a 4 digit code"}`, V10ValidationError{"otp": "otp must be a 4 digit code"}.Error())
}
