package email

import (
	"context"
	"fmt"

	"github.com/shandysiswandi/otpgate/internal/identity/usecase"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/mail"
	"github.com/shandysiswandi/otpgate/internal/shared/mailtemplate"
	"go.opentelemetry.io/otel/codes"
)

var subjects = map[string]string{
	mailtemplate.UserActivation:     "Verify your email",
	mailtemplate.UserForgotPassword: "Reset your password",
}

const defaultSubject = "Your verification code"

type renderer interface {
	Render(name string, data any) (mail.Content, error)
}

type Mail struct {
	client   mail.Mail
	renderer renderer
	ins      instrument.Instrumentation
}

func NewMail(client mail.Mail, renderer renderer, ins instrument.Instrumentation) *Mail {
	return &Mail{client: client, renderer: renderer, ins: ins}
}

func (m *Mail) SendOTP(ctx context.Context, msg usecase.OTPMail) (err error) {
	ctx, span := m.ins.Tracer("identity.outbound.email").Start(ctx, "SendOTP")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	content, err := m.renderer.Render(msg.Template, map[string]any{
		"name":        msg.Name,
		"email":       msg.Email,
		"otp":         msg.Code,
		"ttl_minutes": int64(msg.TTL.Minutes()),
	})
	if err != nil {
		return fmt.Errorf("render %s: %w", msg.Template, err)
	}

	subject, ok := subjects[msg.Template]
	if !ok {
		subject = defaultSubject
	}

	return m.client.Send(ctx, mail.Message{
		To:       []string{msg.Email},
		Subject:  subject,
		TextBody: content.Text,
		HTMLBody: content.HTML,
	})
}
