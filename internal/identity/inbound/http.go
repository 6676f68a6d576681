package inbound

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/otpgate/internal/identity/entity"
	"github.com/shandysiswandi/otpgate/internal/identity/usecase"
	"github.com/shandysiswandi/otpgate/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) error
	RegisterVerify(ctx context.Context, in usecase.RegisterVerifyInput) (*usecase.RegisterVerifyOutput, error)

	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	RefreshToken(ctx context.Context, in usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error)

	PasswordForgot(ctx context.Context, in usecase.PasswordForgotInput) error
	PasswordForgotVerify(ctx context.Context, in usecase.PasswordForgotVerifyInput) error
	PasswordReset(ctx context.Context, in usecase.PasswordResetInput) error

	Profile(ctx context.Context) (*entity.User, error)
	Health(ctx context.Context) (*usecase.HealthOutput, error)
}

// PublicEndpoints are the identity routes reachable without an access token.
var PublicEndpoints = map[string][]string{
	http.MethodGet: {
		"/health",
	},
	http.MethodPost: {
		"/api/v1/identity/register",
		"/api/v1/identity/register/verify",
		"/api/v1/identity/login",
		"/api/v1/identity/refresh",
		"/api/v1/identity/logout",
		"/api/v1/identity/password/forgot",
		"/api/v1/identity/password/forgot/verify",
		"/api/v1/identity/password/reset",
	},
}

func RegisterHTTPEndpoint(r *router.Router, uc uc, cookies CookieConfig) {
	end := &HTTPEndpoint{uc: uc, cookies: cookies}

	r.GET("/health", end.Health)

	// Registration
	r.POST("/api/v1/identity/register", end.Register)
	r.POST("/api/v1/identity/register/verify", end.RegisterVerify)

	// Session
	r.POST("/api/v1/identity/login", end.Login)
	r.POST("/api/v1/identity/refresh", end.RefreshToken)
	r.POST("/api/v1/identity/logout", end.Logout)

	// Password
	r.POST("/api/v1/identity/password/forgot", end.PasswordForgot)
	r.POST("/api/v1/identity/password/forgot/verify", end.PasswordForgotVerify)
	r.POST("/api/v1/identity/password/reset", end.PasswordReset)

	// Profile (need authenticated)
	r.GET("/api/v1/identity/profile", end.Profile)
}
