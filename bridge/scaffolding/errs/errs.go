// Package errs provides the error taxonomy the HTTP layer speaks. Every
// error leaving a handler is one of these; the Errors middleware logs it
// and the web framework encodes it.
package errs

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
)

// ErrCode classifies an error for status code mapping.
type ErrCode int

const (
	// InvalidArgument covers malformed bodies and malformed identifiers.
	InvalidArgument ErrCode = iota + 1

	// Conflict covers duplicate registration. Rendered as 400, matching
	// the service's published contract.
	Conflict

	// Unauthenticated covers failed logins.
	Unauthenticated

	// NotFound covers lookups by identifier that matched nothing.
	NotFound

	// Internal is an unexpected failure whose message is safe to return.
	Internal

	// InternalOnlyLog is an unexpected failure whose message must only be
	// logged. The Errors middleware swaps it for a generic Internal before
	// the response is encoded.
	InternalOnlyLog
)

func (c ErrCode) String() string {
	switch c {
	case InvalidArgument:
		return "invalid_argument"
	case Conflict:
		return "conflict"
	case Unauthenticated:
		return "unauthenticated"
	case NotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error is the concrete error type handlers return. It implements the web
// Encoder interface so it can be rendered directly as a response.
type Error struct {
	Code     ErrCode `json:"-"`
	Message  string  `json:"error"`
	FuncName string  `json:"-"`
	FileName string  `json:"-"`
}

// New constructs an error with the caller recorded for logging.
func New(code ErrCode, err error) *Error {
	pc, filename, _, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		Message:  err.Error(),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: filename,
	}
}

// Newf constructs a formatted error with the caller recorded for logging.
func Newf(code ErrCode, format string, v ...any) *Error {
	pc, filename, _, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		Message:  fmt.Sprintf(format, v...),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: filename,
	}
}

func (e *Error) Error() string {
	return e.Message
}

// Encode implements the web Encoder interface.
func (e *Error) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json", err
}

// HTTPStatus maps the code to a status. Conflict maps to 400 rather than
// 409: duplicate registration has always been reported as a plain bad
// request by this API and clients depend on it.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case InvalidArgument, Conflict:
		return http.StatusBadRequest
	case Unauthenticated:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
