package convert

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrBusy is returned by Submit while a conversion is already in flight.
var ErrBusy = errors.New("a conversion is already in progress")

// TransportError indicates the request never produced an HTTP response
// (DNS, connection, or TLS failure).
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServerError indicates the service answered with a non-2xx status.
type ServerError struct {
	StatusCode int
	// Detail is the service's error description, if it sent one.
	Detail string
}

func (e *ServerError) Error() string {
	msg := fmt.Sprintf("conversion service returned HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// MalformedResponseError indicates a success status whose body does not hold
// a parsed document envelope.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed conversion response: %s: %v", e.Reason, e.Err)
	}
	return "malformed conversion response: " + e.Reason
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

func malformed(format string, args ...any) *MalformedResponseError {
	return &MalformedResponseError{Reason: fmt.Sprintf(format, args...)}
}
