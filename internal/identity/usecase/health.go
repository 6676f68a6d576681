package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
)

type HealthOutput struct {
	Database string
	Store    string
}

// Health pings the user database and the OTP store.
func (s *Usecase) Health(ctx context.Context) (*HealthOutput, error) {
	ctx, span := s.startSpan(ctx, "Health")
	defer span.End()

	if err := s.repoDB.Ping(ctx); err != nil {
		slog.ErrorContext(ctx, "database ping failed", "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.store.Ping(ctx); err != nil {
		slog.ErrorContext(ctx, "store ping failed", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &HealthOutput{Database: "up", Store: "up"}, nil
}
