package usecase

import (
	"context"
	"time"

	"github.com/shandysiswandi/otpgate/internal/identity/entity"
	"github.com/shandysiswandi/otpgate/internal/pkg/clock"
	"github.com/shandysiswandi/otpgate/internal/pkg/hash"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/jwt"
	"github.com/shandysiswandi/otpgate/internal/pkg/kvstore"
	"github.com/shandysiswandi/otpgate/internal/pkg/uid"
	"github.com/shandysiswandi/otpgate/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type UserRegisteredEvent struct {
	UserID int64
	Email  string
	Name   string
}

type UserPasswordChangedEvent struct {
	UserID int64
	Email  string
}

// OTPMail is a one-time code to deliver to a user.
type OTPMail struct {
	Name     string
	Email    string
	Code     string
	Template string
	TTL      time.Duration
}

type repoMessaging interface {
	PublishUserRegistered(ctx context.Context, msg UserRegisteredEvent) error
	PublishUserPasswordChanged(ctx context.Context, msg UserPasswordChangedEvent) error
}

type repoMail interface {
	SendOTP(ctx context.Context, msg OTPMail) error
}

type repoDB interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	CreateUser(ctx context.Context, user entity.NewUser) error
	UpdateUserPassword(ctx context.Context, id int64, hash string) error
	Ping(ctx context.Context) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	repoMail      repoMail
	store         kvstore.Store
	validator     validator.Validator
	bcrypt        hash.Hash
	uid           uid.NumberID
	clock         clock.Clocker
	accessJWT     jwt.JWT
	refreshJWT    jwt.JWT
	ins           instrument.Instrumentation
	policy        entity.OTPPolicy
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	RepoMail      repoMail
	Store         kvstore.Store
	Validator     validator.Validator
	Bcrypt        hash.Hash
	UID           uid.NumberID
	Clock         clock.Clocker
	AccessJWT     jwt.JWT
	RefreshJWT    jwt.JWT
	Instrument    instrument.Instrumentation
	// Policy zero fields fall back to entity.DefaultOTPPolicy.
	Policy entity.OTPPolicy
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		repoMail:      dep.RepoMail,
		store:         dep.Store,
		validator:     dep.Validator,
		bcrypt:        dep.Bcrypt,
		uid:           dep.UID,
		clock:         dep.Clock,
		accessJWT:     dep.AccessJWT,
		refreshJWT:    dep.RefreshJWT,
		ins:           dep.Instrument,
		policy:        dep.Policy.WithDefaults(),
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}
