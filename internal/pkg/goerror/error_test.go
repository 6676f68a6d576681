package goerror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
		code Code
	}{
		{name: "Server", err: NewServer(errors.New("db down")), want: http.StatusInternalServerError, code: CodeInternal},
		{name: "Validation", err: NewValidation("Invalid or expired OTP"), want: http.StatusBadRequest, code: CodeBadRequest},
		{name: "InvalidInput", err: NewInvalidInput(errors.New("bad")), want: http.StatusUnprocessableEntity, code: CodeInvalidInput},
		{name: "InvalidFormat", err: NewInvalidFormat(), want: http.StatusBadRequest, code: CodeInvalidFormat},
		{name: "Auth", err: NewAuth("Invalid email or password"), want: http.StatusUnauthorized, code: CodeUnauthorized},
		{name: "NotFound", err: NewNotFound("No account"), want: http.StatusNotFound, code: CodeNotFound},
		{name: "RateLimit", err: NewRateLimit("Too many"), want: http.StatusTooManyRequests, code: CodeTooManyRequest},
		{name: "Cooldown", err: NewCooldown("Wait"), want: http.StatusTooManyRequests, code: CodeCooldown},
		{name: "Locked", err: NewLocked("Locked"), want: http.StatusLocked, code: CodeLocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			var gerr *Error
			require.ErrorAs(t, tt.err, &gerr)

			// Assert
			assert.Equal(t, tt.want, gerr.StatusCode())
			assert.True(t, HasCode(fmt.Errorf("wrapped: %w", tt.err), tt.code))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	cause := errors.New("connection refused")

	// Server errors hide the cause from the client but keep it for logs.
	err := NewServer(cause)
	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "Internal server error", gerr.Msg())
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, gerr.String(), "ERROR_TYPE_SERVER")

	err = NewInvalidInput(nil, "email", "email is taken")
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, map[string]string{"email": "email is taken"}, gerr.Fields())

	assert.False(t, HasCode(cause, CodeInternal))
}

func TestInvalidInputPairs(t *testing.T) {
	assert.True(t, HasCode(NewInvalidInput(nil, "email"), CodeInvalidFormat))
	assert.Equal(t, "Bad JSON", NewInvalidFormat("Bad JSON").Error())
	assert.Equal(t, "ERROR_CODE_INTERNAL", Code(99).String())
	assert.Equal(t, "ERROR_CODE_COOLDOWN", CodeCooldown.String())
}
