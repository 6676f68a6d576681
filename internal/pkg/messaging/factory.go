package messaging

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DriverKafka = "kafka"
	DriverNATS  = "nats"
	DriverNSQ   = "nsq"
	DriverNoop  = "noop"
)

// ErrUnknownDriver indicates an unsupported messaging driver.
var ErrUnknownDriver = errors.New("messaging: unknown driver")

// FactoryOptions groups config for the supported brokers.
type FactoryOptions struct {
	Kafka KafkaConfig
	NATS  NATSConfig
	NSQ   NSQConfig
}

// NewFromDriver constructs a Messaging implementation by driver name.
// An empty driver selects noop.
func NewFromDriver(driver string, opts FactoryOptions) (Messaging, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverKafka:
		return NewKafka(opts.Kafka)
	case DriverNATS:
		return NewNATS(opts.NATS)
	case DriverNSQ:
		return NewNSQ(opts.NSQ)
	case DriverNoop, "":
		return NewNoop(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
