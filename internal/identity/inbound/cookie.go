package inbound

import (
	"net/http"
	"strings"
	"time"

	"github.com/shandysiswandi/otpgate/internal/identity/usecase"
	"github.com/shandysiswandi/otpgate/internal/pkg/router"
)

const (
	AccessTokenCookie  = router.AccessTokenCookie
	RefreshTokenCookie = "refresh-token"
)

// CookieConfig shapes the token cookies.
type CookieConfig struct {
	Domain   string
	Insecure bool
	SameSite http.SameSite
}

// ParseSameSite maps "lax", "strict" or "none" to http.SameSite, defaulting to none.
func ParseSameSite(s string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lax":
		return http.SameSiteLaxMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteNoneMode
	}
}

func (c CookieConfig) cookie(name, value string, maxAge time.Duration) *http.Cookie {
	sameSite := c.SameSite
	if sameSite == 0 {
		sameSite = http.SameSiteNoneMode
	}

	ck := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   !c.Insecure,
		SameSite: sameSite,
		MaxAge:   int(maxAge / time.Second),
	}
	if maxAge < 0 {
		ck.MaxAge = -1
		ck.Expires = time.Unix(0, 0)
	}

	return ck
}

func (c CookieConfig) tokenCookies(t usecase.Tokens) []*http.Cookie {
	return []*http.Cookie{
		c.cookie(AccessTokenCookie, t.AccessToken, t.AccessTTL),
		c.cookie(RefreshTokenCookie, t.RefreshToken, t.RefreshTTL),
	}
}

func (c CookieConfig) clearedCookies() []*http.Cookie {
	return []*http.Cookie{
		c.cookie(AccessTokenCookie, "", -1),
		c.cookie(RefreshTokenCookie, "", -1),
	}
}
