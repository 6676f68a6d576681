package usecase

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strconv"

	"github.com/samber/lo"
	"github.com/shandysiswandi/otpgate/internal/identity/entity"
	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
)

const (
	otpMin = 1000
	otpMax = 9999

	msgOtpInvalid = "Invalid or expired OTP"
)

func generateOtp() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(n.Int64()+otpMin, 10), nil
}

// sendOtp mails a fresh code and only then stores it with its cooldown, so a
// stored code always belongs to a delivered mail.
func (s *Usecase) sendOtp(ctx context.Context, name, email, template string) error {
	code, err := generateOtp()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp", "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoMail.SendOTP(ctx, OTPMail{
		Name:     name,
		Email:    email,
		Code:     code,
		Template: template,
		TTL:      s.policy.CodeTTL,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send otp mail", "email", email, "template", template, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.store.Set(ctx, entity.OTPKey(email), code, s.policy.CodeTTL); err != nil {
		slog.ErrorContext(ctx, "failed to store otp", "email", email, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.store.Set(ctx, entity.OTPCooldownKey(email), "true", s.policy.Cooldown); err != nil {
		slog.ErrorContext(ctx, "failed to store otp cooldown", "email", email, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

// otpVerification consumes the pending code of email. Wrong codes are
// counted and the identity is locked when the attempt allowance runs out.
func (s *Usecase) otpVerification(ctx context.Context, email, code string) error {
	stored, err := s.store.Get(ctx, entity.OTPKey(email))
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewValidation(msgOtpInvalid)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get otp", "email", email, "error", err)
		return goerror.NewServer(err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) == 1 {
		if err := s.store.Del(ctx, entity.OTPKey(email), entity.OTPAttemptsKey(email)); err != nil {
			slog.ErrorContext(ctx, "failed to clear verified otp", "email", email, "error", err)
			return goerror.NewServer(err)
		}
		return nil
	}

	attempts, err := s.store.Incr(ctx, entity.OTPAttemptsKey(email), s.policy.AttemptWindow)
	if err != nil {
		slog.ErrorContext(ctx, "failed to count otp attempt", "email", email, "error", err)
		return goerror.NewServer(err)
	}

	if attempts >= s.policy.MaxAttempts {
		if err := s.store.Set(ctx, entity.OTPLockKey(email), "locked", s.policy.LockTTL); err != nil {
			slog.ErrorContext(ctx, "failed to set otp lock", "email", email, "error", err)
			return goerror.NewServer(err)
		}
		if err := s.store.Del(ctx, entity.OTPKey(email), entity.OTPAttemptsKey(email)); err != nil {
			slog.ErrorContext(ctx, "failed to clear locked otp", "email", email, "error", err)
			return goerror.NewServer(err)
		}

		slog.WarnContext(ctx, "otp attempts exhausted, identity locked", "email", email)
		return goerror.NewLocked(msgOtpLocked)
	}

	left := s.policy.MaxAttempts - 1 - attempts
	return goerror.NewValidation(fmt.Sprintf("Incorrect OTP, %d %s left", left, lo.Ternary(left == 1, "attempt", "attempts")))
}
