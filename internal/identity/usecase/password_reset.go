package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/otpgate/internal/identity/entity"
	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
)

type PasswordResetInput struct {
	Email       string `validate:"required,email"`
	NewPassword string `validate:"required,password"`
}

func (s *Usecase) PasswordReset(ctx context.Context, in PasswordResetInput) error {
	ctx, span := s.startSpan(ctx, "PasswordReset")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	user, err := s.existingUser(ctx, in.Email)
	if err != nil {
		return err
	}

	if s.bcrypt.Verify(user.Password, in.NewPassword) {
		return goerror.NewValidation("The password can not be the same as the old one")
	}

	grantKey := entity.PasswordResetGrantKey(in.Email)
	granted, err := s.store.Exists(ctx, grantKey)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check password reset grant", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}
	if !granted {
		return goerror.NewAuth("OTP verification required")
	}

	hashedPassword, err := s.bcrypt.Hash(in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.UpdateUserPassword(ctx, user.ID, string(hashedPassword)); err != nil {
		slog.ErrorContext(ctx, "failed to repo update user password", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.store.Del(ctx, grantKey); err != nil {
		slog.ErrorContext(ctx, "failed to delete password reset grant", "email", in.Email, "error", err)
	}

	if err := s.repoMessaging.PublishUserPasswordChanged(ctx, UserPasswordChangedEvent{
		UserID: user.ID,
		Email:  user.Email,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish user password changed", "user_id", user.ID, "error", err)
	}

	return nil
}
