package email

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/mail"
	"github.com/shandysiswandi/otpgate/internal/shared/mailtemplate"
)

type stubMail struct {
	err  error
	sent []mail.Message
}

func (s *stubMail) Send(_ context.Context, msg mail.Message) error {
	s.sent = append(s.sent, msg)
	return s.err
}

func (s *stubMail) Close() error { return nil }

func newTestMail(t *testing.T, client mail.Mail) *Mail {
	t.Helper()

	r, err := mail.NewRenderer(mailtemplate.FS())
	require.NoError(t, err)

	return New(client, r, instrument.NewNoop())
}

func TestSendTemplate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		client := &stubMail{}
		m := newTestMail(t, client)

		// Act
		err := m.SendTemplate(context.Background(), "ann@example.com", "Welcome aboard", mailtemplate.UserWelcome,
			map[string]any{"name": "Ann", "email": "ann@example.com"})

		// Assert
		require.NoError(t, err)
		require.Len(t, client.sent, 1)
		assert.Equal(t, []string{"ann@example.com"}, client.sent[0].To)
		assert.Equal(t, "Welcome aboard", client.sent[0].Subject)
		assert.Contains(t, client.sent[0].TextBody, "Welcome, Ann!")
		assert.NotEmpty(t, client.sent[0].HTMLBody)
	})

	t.Run("MissingTemplate", func(t *testing.T) {
		client := &stubMail{}

		err := newTestMail(t, client).SendTemplate(context.Background(), "a@b.c", "x", "missing", nil)

		assert.ErrorIs(t, err, mail.ErrTemplateNotFound)
		assert.Empty(t, client.sent)
	})

	t.Run("SendFails", func(t *testing.T) {
		errSMTP := errors.New("smtp down")

		err := newTestMail(t, &stubMail{err: errSMTP}).SendTemplate(context.Background(), "a@b.c", "x",
			mailtemplate.UserPasswordChanged, map[string]any{"email": "a@b.c"})

		assert.ErrorIs(t, err, errSMTP)
	})
}
