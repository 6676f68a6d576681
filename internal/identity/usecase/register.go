package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
	"github.com/shandysiswandi/otpgate/internal/shared/mailtemplate"
)

const msgUserExists = "A user already exists with this email"

type RegisterInput struct {
	Name     string `validate:"required,max=100,personname"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
}

// Register sends a registration OTP to an email that has no account yet.
func (s *Usecase) Register(ctx context.Context, in RegisterInput) error {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Name = strings.TrimSpace(in.Name)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if err := s.ensureUserAbsent(ctx, in.Email); err != nil {
		return err
	}

	if err := s.guardOtpRequest(ctx, in.Email); err != nil {
		return err
	}

	return s.sendOtp(ctx, in.Name, in.Email, mailtemplate.UserActivation)
}

func (s *Usecase) ensureUserAbsent(ctx context.Context, email string) error {
	_, err := s.repoDB.GetUserByEmail(ctx, email)
	if err == nil {
		return goerror.NewValidation(msgUserExists)
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", email, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
