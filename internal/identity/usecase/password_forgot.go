package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/otpgate/internal/identity/entity"
	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
	"github.com/shandysiswandi/otpgate/internal/shared/mailtemplate"
)

const msgUserNotFound = "No account associated with this email"

type PasswordForgotInput struct {
	Email string `validate:"required,email"`
}

// PasswordForgot sends a password reset OTP to an existing account.
func (s *Usecase) PasswordForgot(ctx context.Context, in PasswordForgotInput) error {
	ctx, span := s.startSpan(ctx, "PasswordForgot")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	user, err := s.existingUser(ctx, in.Email)
	if err != nil {
		return err
	}

	if err := s.guardOtpRequest(ctx, in.Email); err != nil {
		return err
	}

	return s.sendOtp(ctx, user.Name, in.Email, mailtemplate.UserForgotPassword)
}

func (s *Usecase) existingUser(ctx context.Context, email string) (*entity.User, error) {
	user, err := s.repoDB.GetUserByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewNotFound(msgUserNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return user, nil
}
