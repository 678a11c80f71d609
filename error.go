package brochure

import (
	"errors"
	"fmt"
	"time"
)

// Application error codes.
//
// ENETWORK, ETIMEOUT, EHTTPSTATUS (5xx only) and ERATELIMIT are transient:
// the orchestrator retries them with backoff. Everything else fails fast.
const (
	EAUTH       = "auth"        // provider rejected credentials
	ECONFIG     = "config"      // invalid or missing configuration
	EHTTPSTATUS = "http_status" // non-2xx HTTP response
	EINTERNAL   = "internal"    // unexpected internal error
	EINVALID    = "invalid"     // validation failed
	ENETWORK    = "network"     // connection or DNS failure
	ENOTFOUND   = "not_found"   // entity does not exist
	EPARSE      = "parse"       // content is not parsable HTML
	ERATELIMIT  = "rate_limit"  // provider rate limit exceeded
	ERESPONSE   = "response"    // malformed or unexpected provider payload
	ETIMEOUT    = "timeout"     // request deadline exceeded
)

// Error represents an application error with a machine-readable code and a
// human-readable message. The remaining fields carry optional context for
// logging: which URL or provider failed, the HTTP status, how many attempts
// were made, and any server-supplied retry hint.
type Error struct {
	Code    string
	Message string

	URL        string
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Attempts   int
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("brochure error: code=%s message=%s", e.Code, e.Message)
}

// Errorf returns a new Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrorCode returns the code of the error, if available.
// Non-application errors report EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of the error, if available.
// Non-application errors report a generic message.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// ErrorRetryAfter returns the server-supplied retry hint, or zero if the
// error carries none.
func ErrorRetryAfter(err error) time.Duration {
	var e *Error
	if errors.As(err, &e) {
		return e.RetryAfter
	}
	return 0
}

// Transient reports whether the error is expected to potentially succeed on
// retry. Auth failures, client-side HTTP errors and malformed content are
// permanent; timeouts, connection failures, rate limits and server errors
// are not.
func Transient(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Code {
	case ENETWORK, ETIMEOUT, ERATELIMIT:
		return true
	case EHTTPSTATUS:
		return e.StatusCode >= 500
	}
	return false
}
