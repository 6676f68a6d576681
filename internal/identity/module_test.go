package identity

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/otpgate/internal/identity/entity"
	"github.com/shandysiswandi/otpgate/internal/pkg/config"
)

func TestOTPPolicyFromConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := config.NewViperFromBytes("yaml", []byte("app:\n  name: otpgate\n"))
		require.NoError(t, err)

		assert.Equal(t, entity.DefaultOTPPolicy(), otpPolicy(cfg))
	})

	t.Run("Overrides", func(t *testing.T) {
		cfg, err := config.NewViperFromBytes("yaml", []byte(`
modules:
  identity:
    otp:
      ttl_seconds: 120
      max_attempts: 5
`))
		require.NoError(t, err)

		p := otpPolicy(cfg)

		assert.Equal(t, 2*time.Minute, p.CodeTTL)
		assert.Equal(t, int64(5), p.MaxAttempts)
		assert.Equal(t, time.Minute, p.Cooldown)
	})
}

func TestCookieConfigFromConfig(t *testing.T) {
	cfg, err := config.NewViperFromBytes("yaml", []byte(`
modules:
  identity:
    cookie:
      domain: example.com
      insecure: true
      same_site: lax
`))
	require.NoError(t, err)

	c := cookieConfig(cfg)

	assert.Equal(t, "example.com", c.Domain)
	assert.True(t, c.Insecure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
}
