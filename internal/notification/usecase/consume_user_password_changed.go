package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/otpgate/internal/shared/mailtemplate"
)

type ConsumeUserPasswordChangedInput struct {
	UserID int64  `validate:"required,gt=0"`
	Email  string `validate:"required,email"`
}

func (s *Usecase) ConsumeUserPasswordChanged(ctx context.Context, in ConsumeUserPasswordChangedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeUserPasswordChanged")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	data := s.baseEmailTemplateData()
	data["email"] = in.Email

	return s.sendEmailNotification(ctx, emailNotificationInput{
		UserID:       in.UserID,
		Email:        in.Email,
		Subject:      "Your password was changed",
		Template:     mailtemplate.UserPasswordChanged,
		TemplateData: data,
	})
}
