package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/otpgate/internal/pkg/clock"
	"github.com/shandysiswandi/otpgate/internal/pkg/config"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoMail interface {
	SendTemplate(ctx context.Context, to, subject, template string, data map[string]any) error
}

type Usecase struct {
	repoMail  repoMail
	cfg       config.Config
	clock     clock.Clocker
	validator validator.Validator
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoMail   repoMail
	Config     config.Config
	Clock      clock.Clocker
	Validator  validator.Validator
	Instrument instrument.Instrumentation
}

func NewNotification(dep Dependency) *Usecase {
	return &Usecase{
		repoMail:  dep.RepoMail,
		cfg:       dep.Config,
		clock:     dep.Clock,
		validator: dep.Validator,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}

func (s *Usecase) baseEmailTemplateData() map[string]any {
	return map[string]any{
		"app_name": s.cfg.GetString("app.name"),
		"year":     s.clock.Now().Format("2006"),
	}
}

type emailNotificationInput struct {
	UserID       int64
	Email        string
	Subject      string
	Template     string
	TemplateData map[string]any
}

// sendEmailNotification sends a follow-up mail. A failure is logged and
// returned so the broker can redeliver.
func (s *Usecase) sendEmailNotification(ctx context.Context, in emailNotificationInput) error {
	if err := s.repoMail.SendTemplate(ctx, in.Email, in.Subject, in.Template, in.TemplateData); err != nil {
		slog.ErrorContext(ctx, "failed to send notification email", "user_id", in.UserID, "template", in.Template, "error", err)
		return err
	}

	return nil
}
