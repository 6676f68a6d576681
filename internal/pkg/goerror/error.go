package goerror

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels returned by repositories.
var (
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("resource conflict")
)

// Type is the bucket an error falls in.
type Type int

const (
	TypeServer Type = iota
	TypeBusiness
	TypeValidation
)

func (t Type) String() string {
	switch t {
	case TypeServer:
		return "ERROR_TYPE_SERVER"
	case TypeBusiness:
		return "ERROR_TYPE_BUSINESS"
	case TypeValidation:
		return "ERROR_TYPE_VALIDATION"
	}
	return "ERROR_TYPE_UNKNOWN"
}

// Code is a stable identifier mapped to an HTTP status.
type Code int

const (
	CodeInternal Code = iota
	// CodeInvalidFormat is a body that could not be decoded.
	CodeInvalidFormat
	// CodeInvalidInput is a body that failed field validation.
	CodeInvalidInput
	CodeNotFound
	CodeConflict
	// CodeTooManyRequest is a caller over its request budget.
	CodeTooManyRequest
	CodeUnauthorized
	// CodeBadRequest is a request rejected by a rule the client can fix.
	CodeBadRequest
	// CodeLocked is a subject locked out for a period of time.
	CodeLocked
	// CodeCooldown is a caller retrying before the cooldown elapsed.
	CodeCooldown
)

var codes = map[Code]struct {
	name   string
	status int
}{
	CodeInternal:       {"ERROR_CODE_INTERNAL", http.StatusInternalServerError},
	CodeInvalidFormat:  {"ERROR_CODE_INVALID_FORMAT", http.StatusBadRequest},
	CodeInvalidInput:   {"ERROR_CODE_INVALID_INPUT", http.StatusUnprocessableEntity},
	CodeNotFound:       {"ERROR_CODE_NOT_FOUND", http.StatusNotFound},
	CodeConflict:       {"ERROR_CODE_CONFLICT", http.StatusConflict},
	CodeTooManyRequest: {"ERROR_CODE_TOO_MANY_REQUESTS", http.StatusTooManyRequests},
	CodeUnauthorized:   {"ERROR_CODE_UNAUTHORIZED", http.StatusUnauthorized},
	CodeBadRequest:     {"ERROR_CODE_BAD_REQUEST", http.StatusBadRequest},
	CodeLocked:         {"ERROR_CODE_LOCKED", http.StatusLocked},
	CodeCooldown:       {"ERROR_CODE_COOLDOWN", http.StatusTooManyRequests},
}

func (c Code) String() string {
	if v, ok := codes[c]; ok {
		return v.name
	}
	return codes[CodeInternal].name
}

// Error carries a client-facing message, a type and a code, optionally
// wrapping the cause that is only meant for logs.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
	fields  map[string]string
}

func (e *Error) Error() string {
	switch {
	case e.err != nil:
		return e.err.Error()
	case e.msg != "":
		return e.msg
	}
	return e.errType.String()
}

// String is the verbose form used in logs.
func (e *Error) String() string {
	return fmt.Sprintf("type=%s code=%s msg=%q cause=%v", e.errType, e.code, e.msg, e.err)
}

func (e *Error) Msg() string               { return e.msg }
func (e *Error) Type() Type                { return e.errType }
func (e *Error) Code() Code                { return e.code }
func (e *Error) Fields() map[string]string { return e.fields }
func (e *Error) Unwrap() error             { return e.err }

func (e *Error) StatusCode() int {
	if v, ok := codes[e.code]; ok {
		return v.status
	}
	return http.StatusInternalServerError
}

// HasCode reports whether err wraps an *Error with the given code.
func HasCode(err error, code Code) bool {
	var gerr *Error
	return errors.As(err, &gerr) && gerr.code == code
}

// NewServer hides err behind a generic message.
func NewServer(err error) error {
	return &Error{err: err, msg: "Internal server error", errType: TypeServer, code: CodeInternal}
}

func NewBusiness(msg string, code Code) error {
	return &Error{msg: msg, errType: TypeBusiness, code: code}
}

// NewValidation is a 400 for a rule the client can fix, like a wrong one-time code.
func NewValidation(msg string) error {
	return &Error{msg: msg, errType: TypeValidation, code: CodeBadRequest}
}

func NewAuth(msg string) error      { return NewBusiness(msg, CodeUnauthorized) }
func NewNotFound(msg string) error  { return NewBusiness(msg, CodeNotFound) }
func NewRateLimit(msg string) error { return NewBusiness(msg, CodeTooManyRequest) }
func NewCooldown(msg string) error  { return NewBusiness(msg, CodeCooldown) }
func NewLocked(msg string) error    { return NewBusiness(msg, CodeLocked) }

// NewInvalidInput wraps a validator error, or builds field errors from
// key/value pairs when err is nil. An odd pair count yields an invalid format error.
func NewInvalidInput(err error, kv ...string) error {
	if err != nil {
		return &Error{err: err, msg: "Validation error", errType: TypeValidation, code: CodeInvalidInput}
	}
	if len(kv)%2 != 0 {
		return NewInvalidFormat()
	}

	fields := make(map[string]string, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		fields[kv[i]] = kv[i+1]
	}
	return &Error{msg: "Validation error", errType: TypeValidation, code: CodeInvalidInput, fields: fields}
}

// NewInvalidFormat reports an undecodable body, with an optional custom message.
func NewInvalidFormat(msgs ...string) error {
	msg := "Invalid request body"
	if len(msgs) > 0 {
		msg = msgs[0]
	}
	return &Error{msg: msg, errType: TypeValidation, code: CodeInvalidFormat}
}
