package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/otpgate/internal/identity/entity"
	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
)

const (
	msgOtpLocked   = "Your account is locked, please try again after 30 minutes"
	msgOtpSpamLock = "Too many OTP requests, please try again after an hour"
	msgOtpCooldown = "Please wait a minute before requesting a new OTP"
)

// checkOtpRestriction refuses an identity that is locked, spam-locked or
// still cooling down, in that order.
func (s *Usecase) checkOtpRestriction(ctx context.Context, email string) error {
	checks := []struct {
		key string
		err error
	}{
		{key: entity.OTPLockKey(email), err: goerror.NewLocked(msgOtpLocked)},
		{key: entity.OTPSpamLockKey(email), err: goerror.NewRateLimit(msgOtpSpamLock)},
		{key: entity.OTPCooldownKey(email), err: goerror.NewCooldown(msgOtpCooldown)},
	}

	for _, c := range checks {
		found, err := s.store.Exists(ctx, c.key)
		if err != nil {
			slog.ErrorContext(ctx, "failed to check otp restriction", "key", c.key, "error", err)
			return goerror.NewServer(err)
		}
		if found {
			return c.err
		}
	}

	return nil
}

// trackOtpRestriction counts an OTP request and spam-locks the identity once
// the window allowance is exceeded.
func (s *Usecase) trackOtpRestriction(ctx context.Context, email string) error {
	count, err := s.store.Incr(ctx, entity.OTPRequestCountKey(email), s.policy.RequestWindow)
	if err != nil {
		slog.ErrorContext(ctx, "failed to count otp request", "email", email, "error", err)
		return goerror.NewServer(err)
	}

	if count <= s.policy.MaxRequests {
		return nil
	}

	if err := s.store.Set(ctx, entity.OTPSpamLockKey(email), "locked", s.policy.SpamLockTTL); err != nil {
		slog.ErrorContext(ctx, "failed to set otp spam lock", "email", email, "error", err)
		return goerror.NewServer(err)
	}

	slog.WarnContext(ctx, "otp requests over limit, identity spam-locked", "email", email, "count", count)
	return goerror.NewRateLimit(msgOtpSpamLock)
}

// guardOtpRequest runs before any code is issued. Locks fail fast without
// being counted; a request refused by the cooldown still counts.
func (s *Usecase) guardOtpRequest(ctx context.Context, email string) error {
	restricted := s.checkOtpRestriction(ctx, email)
	if restricted != nil && !goerror.HasCode(restricted, goerror.CodeCooldown) {
		return restricted
	}

	if err := s.trackOtpRestriction(ctx, email); err != nil {
		return err
	}

	return restricted
}
