package mail

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	DriverSMTP = "smtp"
	DriverLog  = "log"
)

// ErrUnknownDriver indicates an unsupported mail driver.
var ErrUnknownDriver = errors.New("mail: unknown driver")

// Message represents an email payload.
type Message struct {
	// From falls back to the sender configured on the implementation.
	From     string
	To       []string
	Cc       []string
	Bcc      []string
	Subject  string
	TextBody string
	HTMLBody string
}

func (m Message) recipients() []string {
	out := make([]string, 0, len(m.To)+len(m.Cc)+len(m.Bcc))
	out = append(out, m.To...)
	out = append(out, m.Cc...)
	return append(out, m.Bcc...)
}

// Mail abstracts an email provider.
type Mail interface {
	io.Closer
	Send(ctx context.Context, msg Message) error
}

// NewFromDriver constructs a Mail implementation by driver name.
func NewFromDriver(driver string, cfg SMTPConfig) (Mail, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverSMTP:
		return NewSMTP(cfg)
	case DriverLog, "":
		return NewLog(cfg.From), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
