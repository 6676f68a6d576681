package entity

import (
	"time"

	"github.com/samber/lo"
)

// OTPPolicy holds the limits of OTP issuance and verification.
type OTPPolicy struct {
	// CodeTTL is how long an issued code stays valid.
	CodeTTL time.Duration
	// Cooldown is the minimum gap between two issued codes.
	Cooldown time.Duration
	// RequestWindow bounds the request counter.
	RequestWindow time.Duration
	// MaxRequests is the number of requests allowed inside RequestWindow.
	MaxRequests int64
	// SpamLockTTL is how long a caller over MaxRequests is refused.
	SpamLockTTL time.Duration
	// AttemptWindow bounds the failed verification counter.
	AttemptWindow time.Duration
	// MaxAttempts failed verifications lock the identity.
	MaxAttempts int64
	// LockTTL is how long a locked identity stays locked.
	LockTTL time.Duration
	// ResetGrantTTL is how long a verified forgot-password OTP allows a reset.
	ResetGrantTTL time.Duration
}

// DefaultOTPPolicy returns the production limits.
func DefaultOTPPolicy() OTPPolicy {
	return OTPPolicy{
		CodeTTL:       5 * time.Minute,
		Cooldown:      time.Minute,
		RequestWindow: time.Minute,
		MaxRequests:   2,
		SpamLockTTL:   time.Hour,
		AttemptWindow: 5 * time.Minute,
		MaxAttempts:   3,
		LockTTL:       30 * time.Minute,
		ResetGrantTTL: 10 * time.Minute,
	}
}

// WithDefaults fills every zero field from DefaultOTPPolicy.
func (p OTPPolicy) WithDefaults() OTPPolicy {
	d := DefaultOTPPolicy()
	return OTPPolicy{
		CodeTTL:       lo.CoalesceOrEmpty(p.CodeTTL, d.CodeTTL),
		Cooldown:      lo.CoalesceOrEmpty(p.Cooldown, d.Cooldown),
		RequestWindow: lo.CoalesceOrEmpty(p.RequestWindow, d.RequestWindow),
		MaxRequests:   lo.CoalesceOrEmpty(p.MaxRequests, d.MaxRequests),
		SpamLockTTL:   lo.CoalesceOrEmpty(p.SpamLockTTL, d.SpamLockTTL),
		AttemptWindow: lo.CoalesceOrEmpty(p.AttemptWindow, d.AttemptWindow),
		MaxAttempts:   lo.CoalesceOrEmpty(p.MaxAttempts, d.MaxAttempts),
		LockTTL:       lo.CoalesceOrEmpty(p.LockTTL, d.LockTTL),
		ResetGrantTTL: lo.CoalesceOrEmpty(p.ResetGrantTTL, d.ResetGrantTTL),
	}
}

// Store keys, one set per email address.
func OTPKey(email string) string                { return "otp:" + email }
func OTPCooldownKey(email string) string        { return "otp_cooldown:" + email }
func OTPRequestCountKey(email string) string    { return "otp_request_count:" + email }
func OTPSpamLockKey(email string) string        { return "otp_spam_lock:" + email }
func OTPAttemptsKey(email string) string        { return "otp_attempts:" + email }
func OTPLockKey(email string) string            { return "otp_lock:" + email }
func PasswordResetGrantKey(email string) string { return "password_reset_grant:" + email }
