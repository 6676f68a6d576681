package inbound

import (
	"github.com/shandysiswandi/otpgate/internal/identity/entity"
	"github.com/shandysiswandi/otpgate/internal/identity/usecase"
	"github.com/shandysiswandi/otpgate/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for registration, session and password workflows.
type HTTPEndpoint struct {
	uc      uc
	cookies CookieConfig
}

// Register sends an activation OTP to a new email address.
// @Summary Request registration OTP
// @Description Validates the payload, checks the OTP throttle and mails a 4 digit activation code.
// @Tags Identity, Registration
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration payload"
// @Success 200 {object} router.successResponse{data=RegisterResponse} "OTP sent"
// @Failure 400 {object} router.errorResponse "User already exists"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 423 {object} router.errorResponse "Identity locked"
// @Failure 429 {object} router.errorResponse "Cooldown or too many OTP requests"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/register [post]
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}); err != nil {
		return nil, err
	}

	return RegisterResponse{}, nil
}

// RegisterVerify confirms the activation OTP and creates the account.
// @Summary Confirm registration
// @Description Verifies the activation OTP and stores the user with a bcrypt password hash.
// @Tags Identity, Registration
// @Accept json
// @Produce json
// @Param request body RegisterVerifyRequest true "Registration confirmation payload"
// @Success 201 {object} router.successResponse{data=RegisterVerifyResponse} "User created"
// @Failure 400 {object} router.errorResponse "Invalid, expired or incorrect OTP"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 423 {object} router.errorResponse "Identity locked"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/register/verify [post]
func (h *HTTPEndpoint) RegisterVerify(r *router.Request) (any, error) {
	var req RegisterVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.RegisterVerify(r.Context(), usecase.RegisterVerifyInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		OTP:      req.OTP,
	})
	if err != nil {
		return nil, err
	}

	return RegisterVerifyResponse{User: newUserResponse(resp.User)}, nil
}

// Login authenticates a user and sets the token cookies.
// @Summary Authenticate user
// @Description Validates credentials, returns access/refresh tokens and sets them as HttpOnly cookies.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=LoginResponse} "Authentication result"
// @Failure 400 {object} router.errorResponse "Invalid email or password"
// @Failure 401 {object} router.errorResponse "Invalid email or password"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return h.sessionResponse("Login successful", resp.Tokens, resp.User), nil
}

// RefreshToken exchanges the refresh token for a new pair.
// @Summary Refresh tokens
// @Description Reads the refresh-token cookie, or the body when the cookie is absent, and issues a new token pair.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest false "Refresh token payload"
// @Success 200 {object} router.successResponse{data=LoginResponse} "New tokens"
// @Failure 401 {object} router.errorResponse "Invalid or expired refresh token"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/refresh [post]
func (h *HTTPEndpoint) RefreshToken(r *router.Request) (any, error) {
	token := r.GetCookie(RefreshTokenCookie)
	if token == "" {
		var req RefreshTokenRequest
		if err := r.DecodeBody(&req); err != nil {
			return nil, err
		}
		token = req.RefreshToken
	}

	resp, err := h.uc.RefreshToken(r.Context(), usecase.RefreshTokenInput{RefreshToken: token})
	if err != nil {
		return nil, err
	}

	return h.sessionResponse("Token refreshed", resp.Tokens, resp.User), nil
}

// Logout expires the token cookies.
// @Summary Logout
// @Description Clears the access and refresh cookies. Issued tokens stay valid until they expire.
// @Tags Identity, Authentication
// @Produce json
// @Success 200 {object} router.successResponse "Logged out"
// @Router /api/v1/identity/logout [post]
func (h *HTTPEndpoint) Logout(*router.Request) (any, error) {
	return LogoutResponse{cookies: h.cookies.clearedCookies()}, nil
}

// PasswordForgot sends a password reset OTP.
// @Summary Request password reset OTP
// @Description Mails a reset OTP to an existing account, subject to the OTP throttle.
// @Tags Identity, Password
// @Accept json
// @Produce json
// @Param request body PasswordForgotRequest true "Forgot password payload"
// @Success 200 {object} router.successResponse{data=PasswordForgotResponse} "OTP sent"
// @Failure 404 {object} router.errorResponse "No account associated with this email"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 423 {object} router.errorResponse "Identity locked"
// @Failure 429 {object} router.errorResponse "Cooldown or too many OTP requests"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/password/forgot [post]
func (h *HTTPEndpoint) PasswordForgot(r *router.Request) (any, error) {
	var req PasswordForgotRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PasswordForgot(r.Context(), usecase.PasswordForgotInput{Email: req.Email}); err != nil {
		return nil, err
	}

	return PasswordForgotResponse{}, nil
}

// PasswordForgotVerify confirms the reset OTP.
// @Summary Confirm password reset OTP
// @Description Verifies the reset OTP and allows one password reset within ten minutes.
// @Tags Identity, Password
// @Accept json
// @Produce json
// @Param request body PasswordForgotVerifyRequest true "OTP confirmation payload"
// @Success 200 {object} router.successResponse{data=PasswordForgotVerifyResponse} "OTP verified"
// @Failure 400 {object} router.errorResponse "Invalid, expired or incorrect OTP"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 423 {object} router.errorResponse "Identity locked"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/password/forgot/verify [post]
func (h *HTTPEndpoint) PasswordForgotVerify(r *router.Request) (any, error) {
	var req PasswordForgotVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PasswordForgotVerify(r.Context(), usecase.PasswordForgotVerifyInput{
		Email: req.Email,
		OTP:   req.OTP,
	}); err != nil {
		return nil, err
	}

	return PasswordForgotVerifyResponse{}, nil
}

// PasswordReset sets a new password after a verified reset OTP.
// @Summary Reset password
// @Description Replaces the password of an account whose reset OTP was verified.
// @Tags Identity, Password
// @Accept json
// @Produce json
// @Param request body PasswordResetRequest true "Reset password payload"
// @Success 200 {object} router.successResponse{data=PasswordResetResponse} "Password reset"
// @Failure 400 {object} router.errorResponse "Same password as before"
// @Failure 401 {object} router.errorResponse "OTP verification required"
// @Failure 404 {object} router.errorResponse "No account associated with this email"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/password/reset [post]
func (h *HTTPEndpoint) PasswordReset(r *router.Request) (any, error) {
	var req PasswordResetRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PasswordReset(r.Context(), usecase.PasswordResetInput{
		Email:       req.Email,
		NewPassword: req.NewPassword,
	}); err != nil {
		return nil, err
	}

	return PasswordResetResponse{}, nil
}

// Profile returns the authenticated user.
// @Summary Current user
// @Tags Identity, Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse{data=ProfileResponse} "Profile"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/profile [get]
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	user, err := h.uc.Profile(r.Context())
	if err != nil {
		return nil, err
	}

	return ProfileResponse{UserResponse: newUserResponse(*user)}, nil
}

// Health pings the dependencies of the identity module.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} router.successResponse{data=HealthResponse} "Healthy"
// @Failure 500 {object} router.errorResponse "Dependency unavailable"
// @Router /health [get]
func (h *HTTPEndpoint) Health(r *router.Request) (any, error) {
	resp, err := h.uc.Health(r.Context())
	if err != nil {
		return nil, err
	}

	return HealthResponse{Database: resp.Database, Store: resp.Store}, nil
}

func (h *HTTPEndpoint) sessionResponse(msg string, t usecase.Tokens, user entity.User) LoginResponse {
	return LoginResponse{
		AccessToken:      t.AccessToken,
		AccessExpiresAt:  t.AccessExpiresAt,
		RefreshToken:     t.RefreshToken,
		RefreshExpiresAt: t.RefreshExpiresAt,
		User:             newUserResponse(user),
		message:          msg,
		cookies:          h.cookies.tokenCookies(t),
	}
}
