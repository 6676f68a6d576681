package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/otpgate/internal/identity/entity"
	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
)

type PasswordForgotVerifyInput struct {
	Email string `validate:"required,email"`
	OTP   string `validate:"required,otp"`
}

// PasswordForgotVerify consumes the reset OTP and grants one password reset.
func (s *Usecase) PasswordForgotVerify(ctx context.Context, in PasswordForgotVerifyInput) error {
	ctx, span := s.startSpan(ctx, "PasswordForgotVerify")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.OTP = strings.TrimSpace(in.OTP)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if err := s.otpVerification(ctx, in.Email, in.OTP); err != nil {
		return err
	}

	if err := s.store.Set(ctx, entity.PasswordResetGrantKey(in.Email), "true", s.policy.ResetGrantTTL); err != nil {
		slog.ErrorContext(ctx, "failed to store password reset grant", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
