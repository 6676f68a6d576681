package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/otpgate/internal/identity/usecase"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/mail"
	"github.com/shandysiswandi/otpgate/internal/shared/mailtemplate"
)

type captureMail struct {
	err  error
	sent []mail.Message
}

func (c *captureMail) Send(_ context.Context, msg mail.Message) error {
	c.sent = append(c.sent, msg)
	return c.err
}

func (c *captureMail) Close() error { return nil }

func newTestMail(t *testing.T, client mail.Mail) *Mail {
	t.Helper()

	r, err := mail.NewRenderer(mailtemplate.FS())
	require.NoError(t, err)

	return NewMail(client, r, instrument.NewNoop())
}

func TestSendOTP(t *testing.T) {
	tests := []struct {
		template string
		subject  string
	}{
		{template: mailtemplate.UserActivation, subject: "Verify your email"},
		{template: mailtemplate.UserForgotPassword, subject: "Reset your password"},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			// Arrange
			client := &captureMail{}
			m := newTestMail(t, client)

			// Act
			err := m.SendOTP(context.Background(), usecase.OTPMail{
				Name:     "Ann",
				Email:    "ann@example.com",
				Code:     "4821",
				Template: tt.template,
				TTL:      5 * time.Minute,
			})

			// Assert
			require.NoError(t, err)
			require.Len(t, client.sent, 1)
			got := client.sent[0]
			assert.Equal(t, []string{"ann@example.com"}, got.To)
			assert.Equal(t, tt.subject, got.Subject)
			assert.Contains(t, got.TextBody, "4821")
			assert.Contains(t, got.TextBody, "5 minutes")
			assert.Contains(t, got.HTMLBody, "4821")
		})
	}
}

func TestSendOTPErrors(t *testing.T) {
	t.Run("UnknownTemplate", func(t *testing.T) {
		client := &captureMail{}
		m := newTestMail(t, client)

		err := m.SendOTP(context.Background(), usecase.OTPMail{Email: "ann@example.com", Template: "missing"})

		assert.ErrorIs(t, err, mail.ErrTemplateNotFound)
		assert.Empty(t, client.sent)
	})

	t.Run("SendFails", func(t *testing.T) {
		errSMTP := errors.New("smtp down")
		m := newTestMail(t, &captureMail{err: errSMTP})

		err := m.SendOTP(context.Background(), usecase.OTPMail{
			Name: "Ann", Email: "ann@example.com", Code: "1234", Template: mailtemplate.UserActivation, TTL: time.Minute,
		})

		assert.ErrorIs(t, err, errSMTP)
	})
}
