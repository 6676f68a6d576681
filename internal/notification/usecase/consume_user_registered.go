package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/otpgate/internal/shared/mailtemplate"
)

type ConsumeUserRegisteredInput struct {
	UserID int64  `validate:"required,gt=0"`
	Email  string `validate:"required,email"`
	Name   string `validate:"required"`
}

func (s *Usecase) ConsumeUserRegistered(ctx context.Context, in ConsumeUserRegisteredInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeUserRegistered")
	defer span.End()

	// a malformed event can never succeed, so it is dropped instead of redelivered
	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	data := s.baseEmailTemplateData()
	data["name"] = in.Name
	data["email"] = in.Email

	return s.sendEmailNotification(ctx, emailNotificationInput{
		UserID:       in.UserID,
		Email:        in.Email,
		Subject:      "Welcome aboard",
		Template:     mailtemplate.UserWelcome,
		TemplateData: data,
	})
}
