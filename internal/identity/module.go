package identity

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/otpgate/internal/identity/entity"
	"github.com/shandysiswandi/otpgate/internal/identity/inbound"
	"github.com/shandysiswandi/otpgate/internal/identity/outbound/db"
	"github.com/shandysiswandi/otpgate/internal/identity/outbound/email"
	"github.com/shandysiswandi/otpgate/internal/identity/outbound/mq"
	"github.com/shandysiswandi/otpgate/internal/identity/usecase"
	"github.com/shandysiswandi/otpgate/internal/pkg/clock"
	"github.com/shandysiswandi/otpgate/internal/pkg/config"
	"github.com/shandysiswandi/otpgate/internal/pkg/hash"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/jwt"
	"github.com/shandysiswandi/otpgate/internal/pkg/kvstore"
	"github.com/shandysiswandi/otpgate/internal/pkg/mail"
	"github.com/shandysiswandi/otpgate/internal/pkg/messaging"
	"github.com/shandysiswandi/otpgate/internal/pkg/router"
	"github.com/shandysiswandi/otpgate/internal/pkg/uid"
	"github.com/shandysiswandi/otpgate/internal/pkg/validator"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Store      kvstore.Store              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	Renderer   *mail.Renderer             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	Bcrypt     hash.Hash                  `validate:"required"`
	AccessJWT  jwt.JWT                    `validate:"required"`
	RefreshJWT jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:        db.NewDB(dep.DBConn, dep.Instrument),
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.Instrument),
		RepoMail:      email.NewMail(dep.Mail, dep.Renderer, dep.Instrument),
		Store:         dep.Store,
		Validator:     dep.Validator,
		Bcrypt:        dep.Bcrypt,
		UID:           dep.UID,
		Clock:         dep.Clock,
		AccessJWT:     dep.AccessJWT,
		RefreshJWT:    dep.RefreshJWT,
		Instrument:    dep.Instrument,
		Policy:        otpPolicy(dep.Config),
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, cookieConfig(dep.Config))

	return nil
}

// otpPolicy reads modules.identity.otp.*; unset keys keep the default limits.
func otpPolicy(cfg config.Config) entity.OTPPolicy {
	return entity.OTPPolicy{
		CodeTTL:       cfg.GetSecond("modules.identity.otp.ttl_seconds"),
		Cooldown:      cfg.GetSecond("modules.identity.otp.cooldown_seconds"),
		RequestWindow: cfg.GetSecond("modules.identity.otp.request_window_seconds"),
		MaxRequests:   cfg.GetInt64("modules.identity.otp.max_requests"),
		SpamLockTTL:   cfg.GetSecond("modules.identity.otp.spam_lock_seconds"),
		AttemptWindow: cfg.GetSecond("modules.identity.otp.attempt_window_seconds"),
		MaxAttempts:   cfg.GetInt64("modules.identity.otp.max_attempts"),
		LockTTL:       cfg.GetSecond("modules.identity.otp.lock_seconds"),
		ResetGrantTTL: cfg.GetSecond("modules.identity.otp.reset_grant_seconds"),
	}.WithDefaults()
}

func cookieConfig(cfg config.Config) inbound.CookieConfig {
	return inbound.CookieConfig{
		Domain:   cfg.GetString("modules.identity.cookie.domain"),
		Insecure: cfg.GetBool("modules.identity.cookie.insecure"),
		SameSite: inbound.ParseSameSite(cfg.GetString("modules.identity.cookie.same_site")),
	}
}
