package kvstore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/otpgate/internal/pkg/clock"
)

const (
	// DriverRedis selects the Redis backend.
	DriverRedis = "redis"
	// DriverMemory selects the in-process backend.
	DriverMemory = "memory"
)

// ErrUnknownDriver indicates an unsupported store driver.
var ErrUnknownDriver = errors.New("kvstore: unknown driver")

// FactoryOptions groups config for supported store backends.
type FactoryOptions struct {
	// RedisURL is a redis:// or rediss:// connection URL.
	RedisURL string
	// Clock drives expiry for the memory backend.
	Clock clock.Clocker
}

// NewFromDriver constructs a Store by driver name.
func NewFromDriver(driver string, opts FactoryOptions) (Store, error) {
	switch strings.TrimSpace(driver) {
	case DriverRedis:
		opt, err := redis.ParseURL(opts.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("kvstore: parse redis url: %w", err)
		}
		return NewRedis(redis.NewClient(opt)), nil
	case DriverMemory:
		return NewMemory(opts.Clock), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
