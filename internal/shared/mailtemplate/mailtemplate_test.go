package mailtemplate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/otpgate/internal/pkg/mail"
)

func TestTemplatesRender(t *testing.T) {
	r, err := mail.NewRenderer(FS())
	require.NoError(t, err)

	data := map[string]any{"name": "Ann", "email": "ann@example.com", "otp": "4821", "ttl_minutes": 5}

	for _, name := range []string{UserActivation, UserForgotPassword, UserWelcome, UserPasswordChanged} {
		t.Run(name, func(t *testing.T) {
			// Act
			c, err := r.Render(name, data)

			// Assert
			require.NoError(t, err)
			assert.NotEmpty(t, c.HTML)
			assert.NotEmpty(t, c.Text)
		})
	}

	c, err := r.Render(UserActivation, data)
	require.NoError(t, err)
	assert.Contains(t, c.Text, "4821")
	assert.Contains(t, c.Text, "5 minutes")
}
