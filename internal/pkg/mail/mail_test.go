package mail

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer(t *testing.T) {
	fsys := fstest.MapFS{
		"welcome.html": {Data: []byte(`<p>Hi {{.name}}</p>`)},
		"welcome.txt":  {Data: []byte(`Hi {{.name}}`)},
		"code.txt":     {Data: []byte(`Code {{.otp}}`)},
	}

	r, err := NewRenderer(fsys)
	require.NoError(t, err)

	t.Run("BothBodies", func(t *testing.T) {
		// Act
		c, err := r.Render("welcome", map[string]any{"name": "<b>Ann</b>"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "<p>Hi &lt;b&gt;Ann&lt;/b&gt;</p>", c.HTML)
		assert.Equal(t, "Hi <b>Ann</b>", c.Text)
	})

	t.Run("TextOnly", func(t *testing.T) {
		// Act
		c, err := r.Render("code", map[string]any{"otp": "1234"})

		// Assert
		require.NoError(t, err)
		assert.Empty(t, c.HTML)
		assert.Equal(t, "Code 1234", c.Text)
	})

	t.Run("MissingKey", func(t *testing.T) {
		_, err := r.Render("code", map[string]any{})
		assert.Error(t, err)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := r.Render("nope", nil)
		assert.ErrorIs(t, err, ErrTemplateNotFound)
	})
}

func TestCompose(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("Multipart", func(t *testing.T) {
		// Act
		raw := compose("no-reply@otpgate.dev", Message{
			To:       []string{"a@b.c"},
			Subject:  "Verify your email",
			TextBody: "text",
			HTMLBody: "<p>html</p>",
		}, at)

		// Assert
		assert.Contains(t, raw, "From: no-reply@otpgate.dev\r\n")
		assert.Contains(t, raw, "Subject: Verify your email\r\n")
		assert.Contains(t, raw, "Content-Type: multipart/alternative; boundary=otpgate-")
		assert.Less(t, strings.Index(raw, "text/plain"), strings.Index(raw, "text/html"))
	})

	t.Run("PlainText", func(t *testing.T) {
		raw := compose("x@y.z", Message{To: []string{"a@b.c"}, TextBody: "hello"}, at)
		assert.True(t, strings.HasSuffix(raw, "Content-Type: text/plain; charset=UTF-8\r\n\r\nhello"))
	})
}

func TestSenders(t *testing.T) {
	t.Run("SMTPRequiresHost", func(t *testing.T) {
		_, err := NewSMTP(SMTPConfig{})
		assert.ErrorIs(t, err, ErrSMTPHostPortRequired)
	})

	t.Run("SMTPRequiresRecipient", func(t *testing.T) {
		s, err := NewSMTP(SMTPConfig{Host: "localhost", Port: 1025, From: "x@y.z"})
		require.NoError(t, err)
		assert.ErrorIs(t, s.Send(context.Background(), Message{}), ErrNoRecipients)
	})

	t.Run("SMTPRequiresSender", func(t *testing.T) {
		s, err := NewSMTP(SMTPConfig{Host: "localhost", Port: 1025})
		require.NoError(t, err)
		assert.ErrorIs(t, s.Send(context.Background(), Message{To: []string{"a@b.c"}}), ErrNoSender)
	})

	t.Run("LogDriver", func(t *testing.T) {
		m, err := NewFromDriver("", SMTPConfig{From: "x@y.z"})
		require.NoError(t, err)
		assert.NoError(t, m.Send(context.Background(), Message{To: []string{"a@b.c"}}))
		assert.NoError(t, m.Close())
	})

	t.Run("UnknownDriver", func(t *testing.T) {
		_, err := NewFromDriver("ses", SMTPConfig{})
		assert.ErrorIs(t, err, ErrUnknownDriver)
	})
}
