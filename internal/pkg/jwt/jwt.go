package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidSigningMethod is returned when the token is not signed with HS512.
	ErrInvalidSigningMethod = errors.New("jwt: invalid signing method")
	// ErrSigningKeyTooShort is returned when the HS512 key is shorter than 64 bytes.
	ErrSigningKeyTooShort = errors.New("jwt: HS512 signing key must be at least 64 bytes")
	// ErrTokenExpired is returned when the token has expired.
	ErrTokenExpired = errors.New("jwt: token has expired")
	// ErrInvalidToken is returned when the token is malformed or fails validation.
	ErrInvalidToken = errors.New("jwt: invalid token")
	// ErrWrongUse is returned when a token issued for another use is presented.
	ErrWrongUse = errors.New("jwt: token use mismatch")
)

// Token uses. Access and refresh tokens are signed with different secrets
// and also carry their use so one can never stand in for the other.
const (
	UseAccess  = "access"
	UseRefresh = "refresh"
)

// JWT generates and verifies tokens for one use.
type JWT interface {
	Generate(uid int64, email string) (token string, expiresAt time.Time, err error)
	Verify(token string) (Claims, error)
	TTL() time.Duration
}

type clocker interface {
	Now() time.Time
}

type generator interface {
	Generate() string
}

type jwtContextKey struct{}

// Config builds a signer.
type Config struct {
	// Secret is the HMAC key, at least 64 bytes.
	Secret    []byte
	Issuer    string
	Audiences []string
	// Use is UseAccess or UseRefresh.
	Use   string
	TTL   time.Duration
	Clock clocker
	// UUID generates the token id.
	UUID generator
}

// Claims are the registered claims plus the authenticated user.
type Claims struct {
	jwt.RegisteredClaims

	UserID    int64  `json:"user_id,string"`
	UserEmail string `json:"user_email"`
	Use       string `json:"token_use"`
}

// GetAuth returns the claims stored in ctx, or nil.
func GetAuth(ctx context.Context) *Claims {
	clm, ok := ctx.Value(jwtContextKey{}).(Claims)
	if !ok {
		return nil
	}
	return &clm
}

func SetAuth(ctx context.Context, clm Claims) context.Context {
	return context.WithValue(ctx, jwtContextKey{}, clm)
}
