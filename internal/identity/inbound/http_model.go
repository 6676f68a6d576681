package inbound

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shandysiswandi/otpgate/internal/identity/entity"
)

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newUserResponse(u entity.User) UserResponse {
	return UserResponse{
		ID:        strconv.FormatInt(u.ID, 10),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct{}

func (RegisterResponse) Message() string {
	return "OTP sent to your email. Please verify your account."
}

type RegisterVerifyRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	OTP      string `json:"otp"`
}

type RegisterVerifyResponse struct {
	User UserResponse `json:"user"`
}

func (RegisterVerifyResponse) Message() string { return "User registered successfully" }
func (RegisterVerifyResponse) StatusCode() int { return http.StatusCreated }

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken      string       `json:"access_token"`
	AccessExpiresAt  time.Time    `json:"access_expires_at"`
	RefreshToken     string       `json:"refresh_token"`
	RefreshExpiresAt time.Time    `json:"refresh_expires_at"`
	User             UserResponse `json:"user"`

	message string
	cookies []*http.Cookie
}

func (l LoginResponse) Message() string         { return l.message }
func (l LoginResponse) Cookies() []*http.Cookie { return l.cookies }

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutResponse struct {
	cookies []*http.Cookie
}

func (LogoutResponse) Message() string           { return "Logged out successfully" }
func (l LogoutResponse) Cookies() []*http.Cookie { return l.cookies }

type PasswordForgotRequest struct {
	Email string `json:"email"`
}

type PasswordForgotResponse struct{}

func (PasswordForgotResponse) Message() string {
	return "OTP sent, Please verify your email"
}

type PasswordForgotVerifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type PasswordForgotVerifyResponse struct{}

func (PasswordForgotVerifyResponse) Message() string {
	return "OTP verified, you can now reset your password"
}

type PasswordResetRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"new_password"`
}

type PasswordResetResponse struct{}

func (PasswordResetResponse) Message() string { return "Password reset successfully" }

type ProfileResponse struct {
	UserResponse
}

type HealthResponse struct {
	Database string `json:"database"`
	Store    string `json:"store"`
}

func (HealthResponse) Message() string { return "Service is healthy" }
