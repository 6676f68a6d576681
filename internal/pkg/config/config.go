// Package config reads typed configuration values.
//
// Values come from a YAML file and can be overridden by environment variables
// prefixed with OTPGATE_, where dots in a key become underscores
// (modules.identity.otp.ttl_seconds -> OTPGATE_MODULES_IDENTITY_OTP_TTL_SECONDS).
package config

import (
	"io"
	"time"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "OTPGATE"

// Config defines typed getters over configuration values. A missing key
// yields the zero value.
type Config interface {
	io.Closer

	// Has reports whether key is set in the file or the environment.
	Has(key string) bool

	GetBool(key string) bool
	GetString(key string) string
	GetInt(key string) int
	GetInt64(key string) int64
	GetFloat64(key string) float64

	// GetSecond reads an integer number of seconds.
	GetSecond(key string) time.Duration
	// GetMinute reads an integer number of minutes.
	GetMinute(key string) time.Duration
	// GetHour reads an integer number of hours.
	GetHour(key string) time.Duration
	// GetDay reads an integer number of 24h days.
	GetDay(key string) time.Duration

	// GetBinary reads a base64 encoded value.
	GetBinary(key string) []byte
	// GetArray reads a YAML list or a "a,b,c" string. Blank items are dropped.
	GetArray(key string) []string
	// GetMap reads a "k1:v1,k2:v2" string.
	GetMap(key string) map[string]string
}
