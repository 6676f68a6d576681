package inbound

import (
	"context"

	"github.com/shandysiswandi/otpgate/internal/notification/usecase"
)

type uc interface {
	ConsumeUserRegistered(ctx context.Context, in usecase.ConsumeUserRegisteredInput) error
	ConsumeUserPasswordChanged(ctx context.Context, in usecase.ConsumeUserPasswordChangedInput) error
}
