package sitetext

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINVALID     = "invalid"     // malformed input or failed validation
	EINTERNAL    = "internal"    // unexpected internal fault
	ENOTFOUND    = "not_found"   // resource does not exist
	EUNAVAILABLE = "unavailable" // transport failure or refusing server
	EUNSUPPORTED = "unsupported" // content we do not process
)

// Error represents an application error with a machine-readable code and a
// human-readable message. The crawl loop branches on codes; messages are
// for logs and the terminal.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("sitetext error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps err and returns its code, if it is an application
// error. Returns EINTERNAL for other errors and an empty string for nil.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps err and returns its message, if it is an application
// error. Returns a generic message for other errors and an empty string
// for nil.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf returns an Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
