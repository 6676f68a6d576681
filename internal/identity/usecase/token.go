package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/otpgate/internal/identity/entity"
	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
)

// Tokens is an access and refresh token pair for one user.
type Tokens struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	AccessTTL        time.Duration
	RefreshToken     string
	RefreshExpiresAt time.Time
	RefreshTTL       time.Duration
}

func (s *Usecase) issueTokens(ctx context.Context, user *entity.User) (*Tokens, error) {
	acToken, acExp, err := s.accessJWT.Generate(user.ID, user.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	refToken, refExp, err := s.refreshJWT.Generate(user.ID, user.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate refresh jwt token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &Tokens{
		AccessToken:      acToken,
		AccessExpiresAt:  acExp,
		AccessTTL:        s.accessJWT.TTL(),
		RefreshToken:     refToken,
		RefreshExpiresAt: refExp,
		RefreshTTL:       s.refreshJWT.TTL(),
	}, nil
}
