// Package goerror carries the structured error model shared by every layer.
//
// Outbound adapters translate driver errors into the sentinel errors below,
// usecases wrap failures into *Error values, and the HTTP router renders
// *Error into the response envelope. Plain errors that reach the router are
// treated as internal server failures.
package goerror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound reports that no row matched the query.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict reports a uniqueness violation.
	ErrConflict = errors.New("resource conflict")
)

// Type buckets an error by which side is at fault.
type Type int

const (
	// TypeServer is an infrastructure or programming failure.
	TypeServer Type = iota
	// TypeBusiness is a domain rule the request violated.
	TypeBusiness
	// TypeValidation is a malformed or incomplete request.
	TypeValidation
)

var typeNames = map[Type]string{
	TypeServer:     "ERROR_TYPE_SERVER",
	TypeBusiness:   "ERROR_TYPE_BUSINESS",
	TypeValidation: "ERROR_TYPE_VALIDATION",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "ERROR_TYPE_UNKNOWN"
}

// Code identifies the failure reason independent of transport.
type Code int

const (
	// CodeInternal is an unspecified server failure.
	CodeInternal Code = iota
	// CodeInvalidFormat is an unparsable request body.
	CodeInvalidFormat
	// CodeInvalidInput is a parsable body with invalid field values.
	CodeInvalidInput
	// CodeNotFound is a missing resource.
	CodeNotFound
	// CodeConflict is a duplicate resource.
	CodeConflict
	// CodeTooManyRequest is a throttled request.
	CodeTooManyRequest
	// CodeUnauthorized is a failed or missing authentication.
	CodeUnauthorized
	// CodeForbidden is an authenticated caller without access.
	CodeForbidden
	// CodeTimeout is an expired deadline.
	CodeTimeout
)

var codeNames = map[Code]string{
	CodeInternal:       "ERROR_CODE_INTERNAL",
	CodeInvalidFormat:  "ERROR_CODE_INVALID_FORMAT",
	CodeInvalidInput:   "ERROR_CODE_INVALID_INPUT",
	CodeNotFound:       "ERROR_CODE_NOT_FOUND",
	CodeConflict:       "ERROR_CODE_CONFLICT",
	CodeTooManyRequest: "ERROR_CODE_TOO_MANY_REQUESTS",
	CodeUnauthorized:   "ERROR_CODE_UNAUTHORIZED",
	CodeForbidden:      "ERROR_CODE_FORBIDDEN",
	CodeTimeout:        "ERROR_CODE_TIMEOUT",
}

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return "ERROR_CODE_INTERNAL"
}

var codeStatuses = map[Code]int{
	CodeInternal:       http.StatusInternalServerError,
	CodeInvalidFormat:  http.StatusBadRequest,
	CodeInvalidInput:   http.StatusUnprocessableEntity,
	CodeNotFound:       http.StatusNotFound,
	CodeConflict:       http.StatusConflict,
	CodeTooManyRequest: http.StatusTooManyRequests,
	CodeUnauthorized:   http.StatusUnauthorized,
	CodeForbidden:      http.StatusForbidden,
	CodeTimeout:        http.StatusRequestTimeout,
}

// Error is the structured error passed between layers. It wraps an optional
// underlying cause and carries a client-safe message, a Type, a Code, and
// per-field validation messages when applicable.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
	fields  map[string]string
}

// Error returns the underlying cause when present, the client-safe message
// otherwise.
func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	if e.msg != "" {
		return e.msg
	}

	switch e.errType {
	case TypeValidation:
		return "Validation violation"
	case TypeBusiness:
		return "Business rule violation"
	default:
		return "Internal error"
	}
}

// String renders every part of the error for logs.
func (e *Error) String() string {
	return fmt.Sprintf("Error Type: %s, Code: %s, Message: %s, Underlying Error: %v",
		e.errType, e.code, e.msg, e.err)
}

// Msg returns the client-safe message.
func (e *Error) Msg() string { return e.msg }

// Type returns the fault bucket.
func (e *Error) Type() Type { return e.errType }

// Code returns the failure reason.
func (e *Error) Code() Code { return e.code }

// Fields returns per-field validation messages, nil unless the error came
// from input validation.
func (e *Error) Fields() map[string]string { return e.fields }

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error { return e.err }

// StatusCode maps the Code to its HTTP status.
func (e *Error) StatusCode() int {
	if s, ok := codeStatuses[e.code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

func newError(err error, msg string, et Type, code Code) error {
	return &Error{err: err, msg: msg, errType: et, code: code}
}

// NewServer wraps an infrastructure failure. The cause is kept for logs and
// never shown to clients.
func NewServer(err error) error {
	return newError(err, "Internal server error", TypeServer, CodeInternal)
}

// NewBusiness builds a domain failure with a client-safe message.
func NewBusiness(msg string, code Code) error {
	return newError(nil, msg, TypeBusiness, code)
}

// NewInvalidInput builds a field-validation failure. With err set the
// validator's translated messages ride along via errors.As; with key/value
// pairs the fields map is populated directly.
func NewInvalidInput(err error, kv ...string) error {
	if err != nil {
		return newError(err, "Validation error", TypeValidation, CodeInvalidInput)
	}

	if len(kv)%2 != 0 {
		return newError(nil, "Invalid request body", TypeValidation, CodeInvalidFormat)
	}

	ve := &Error{msg: "Validation error", errType: TypeValidation, code: CodeInvalidInput}
	ve.fields = make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		ve.fields[kv[i]] = kv[i+1]
	}
	return ve
}

// NewInvalidFormat builds an unparsable-body failure, optionally overriding
// the default message.
func NewInvalidFormat(msgs ...string) error {
	if len(msgs) == 0 {
		return newError(nil, "Invalid request body", TypeValidation, CodeInvalidFormat)
	}
	return newError(nil, msgs[0], TypeValidation, CodeInvalidFormat)
}
