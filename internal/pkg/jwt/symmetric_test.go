package jwt

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/otpgate/internal/pkg/clock"
)

type fixedID string

func (f fixedID) Generate() string { return string(f) }

func newSigner(t *testing.T, clk clocker, secret, use string, ttl time.Duration) *Symmetric {
	t.Helper()

	s, err := NewHS512(Config{
		Secret:    []byte(secret),
		Issuer:    "otpgate",
		Audiences: []string{"otpgate-web"},
		Use:       use,
		TTL:       ttl,
		Clock:     clk,
		UUID:      fixedID("0199f0aa-0000-7000-8000-000000000001"),
	})
	require.NoError(t, err)
	return s
}

func TestSymmetric(t *testing.T) {
	accessSecret := strings.Repeat("a", 64)
	refreshSecret := strings.Repeat("r", 64)
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("RoundTrip", func(t *testing.T) {
		// Arrange
		clk := clock.NewManual(start)
		access := newSigner(t, clk, accessSecret, UseAccess, 15*time.Minute)

		// Act
		token, exp, err := access.Generate(42, "ann@example.com")
		require.NoError(t, err)
		claims, err := access.Verify(token)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, start.Add(15*time.Minute), exp)
		assert.Equal(t, int64(42), claims.UserID)
		assert.Equal(t, "42", claims.Subject)
		assert.Equal(t, "ann@example.com", claims.UserEmail)
		assert.Equal(t, UseAccess, claims.Use)
		assert.Equal(t, 15*time.Minute, access.TTL())
	})

	t.Run("Expired", func(t *testing.T) {
		// Arrange
		clk := clock.NewManual(start)
		access := newSigner(t, clk, accessSecret, UseAccess, 15*time.Minute)
		token, _, err := access.Generate(42, "ann@example.com")
		require.NoError(t, err)

		// Act
		clk.Advance(16 * time.Minute)
		_, err = access.Verify(token)

		// Assert
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("RefreshOutlivesAccess", func(t *testing.T) {
		// Arrange
		clk := clock.NewManual(start)
		refresh := newSigner(t, clk, refreshSecret, UseRefresh, 7*24*time.Hour)
		token, _, err := refresh.Generate(42, "ann@example.com")
		require.NoError(t, err)

		// Act
		clk.Advance(6 * 24 * time.Hour)
		_, err = refresh.Verify(token)

		// Assert
		assert.NoError(t, err)
	})

	t.Run("OtherSecretRejected", func(t *testing.T) {
		// Arrange
		clk := clock.NewManual(start)
		access := newSigner(t, clk, accessSecret, UseAccess, 15*time.Minute)
		refresh := newSigner(t, clk, refreshSecret, UseRefresh, 7*24*time.Hour)
		token, _, err := refresh.Generate(42, "ann@example.com")
		require.NoError(t, err)

		// Act
		_, err = access.Verify(token)

		// Assert
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("SameSecretWrongUse", func(t *testing.T) {
		// Arrange
		clk := clock.NewManual(start)
		access := newSigner(t, clk, accessSecret, UseAccess, 15*time.Minute)
		sneaky := newSigner(t, clk, accessSecret, UseRefresh, time.Hour)
		token, _, err := sneaky.Generate(42, "ann@example.com")
		require.NoError(t, err)

		// Act
		_, err = access.Verify(token)

		// Assert
		assert.ErrorIs(t, err, ErrWrongUse)
	})

	t.Run("ShortSecret", func(t *testing.T) {
		_, err := NewHS512(Config{Secret: []byte("short"), Clock: clock.NewManual(start)})
		assert.ErrorIs(t, err, ErrSigningKeyTooShort)
	})

	t.Run("Garbage", func(t *testing.T) {
		access := newSigner(t, clock.NewManual(start), accessSecret, UseAccess, time.Minute)
		_, err := access.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestAuthContext(t *testing.T) {
	assert.Nil(t, GetAuth(context.Background()))

	ctx := SetAuth(context.Background(), Claims{UserID: 7})
	require.NotNil(t, GetAuth(ctx))
	assert.Equal(t, int64(7), GetAuth(ctx).UserID)
}
