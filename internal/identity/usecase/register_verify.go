package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/otpgate/internal/identity/entity"
	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
)

type RegisterVerifyInput struct {
	Name     string `validate:"required,max=100,personname"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
	OTP      string `validate:"required,otp"`
}

type RegisterVerifyOutput struct {
	User entity.User
}

// RegisterVerify consumes the registration OTP and creates the account.
func (s *Usecase) RegisterVerify(ctx context.Context, in RegisterVerifyInput) (*RegisterVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "RegisterVerify")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	in.OTP = strings.TrimSpace(in.OTP)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.ensureUserAbsent(ctx, in.Email); err != nil {
		return nil, err
	}

	if err := s.otpVerification(ctx, in.Email, in.OTP); err != nil {
		return nil, err
	}

	hashedPassword, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	newUser := entity.NewUser{
		ID:       s.uid.Generate(),
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hashedPassword),
	}

	if err := s.repoDB.CreateUser(ctx, newUser); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			slog.WarnContext(ctx, "user created concurrently", "email", in.Email)
			return nil, goerror.NewValidation(msgUserExists)
		}
		slog.ErrorContext(ctx, "failed to repo create user", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishUserRegistered(ctx, UserRegisteredEvent{
		UserID: newUser.ID,
		Email:  newUser.Email,
		Name:   newUser.Name,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish user registered", "user_id", newUser.ID, "error", err)
	}

	now := s.clock.Now()
	return &RegisterVerifyOutput{User: entity.User{
		ID:        newUser.ID,
		Name:      newUser.Name,
		Email:     newUser.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}}, nil
}
