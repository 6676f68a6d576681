package email

import (
	"context"
	"fmt"

	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/mail"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type renderer interface {
	Render(name string, data any) (mail.Content, error)
}

// Mail renders a named template and delivers it to a single recipient.
type Mail struct {
	client   mail.Mail
	renderer renderer
	ins      instrument.Instrumentation
}

func New(client mail.Mail, r renderer, ins instrument.Instrumentation) *Mail {
	return &Mail{client: client, renderer: r, ins: ins}
}

func (m *Mail) SendTemplate(ctx context.Context, to, subject, template string, data map[string]any) (err error) {
	ctx, span := m.ins.Tracer("notification.outbound.email").Start(ctx, "SendTemplate")
	span.SetAttributes(attribute.String("mail.template", template))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	content, err := m.renderer.Render(template, data)
	if err != nil {
		return fmt.Errorf("render %s: %w", template, err)
	}

	return m.client.Send(ctx, mail.Message{
		To:       []string{to},
		Subject:  subject,
		TextBody: content.Text,
		HTMLBody: content.HTML,
	})
}
