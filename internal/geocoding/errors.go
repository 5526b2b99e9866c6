package geocoding

import (
	"errors"
	"fmt"
)

// ErrNoResult is returned when the provider answered successfully but with zero candidates.
var ErrNoResult = errors.New("geocoding provider returned no results")

// ErrorKind is a coarse classification of a geocoding failure.
type ErrorKind string

const (
	KindTransport ErrorKind = "transport"
	KindService   ErrorKind = "service"
	KindNoResult  ErrorKind = "no_result"
	KindMalformed ErrorKind = "malformed"
	KindUnknown   ErrorKind = "unknown"
)

// TransportError wraps a failure to reach the provider or to read its reply:
// connection refused, DNS failure, timeout, cancelled context.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServiceError is returned when the provider replied with a non-success HTTP status,
// or with a success status carrying an error status in the body (e.g. REQUEST_DENIED).
type ServiceError struct {
	Provider   string
	StatusCode int    // HTTP status code, zero when the client library hides it
	Status     string // provider status, if any
	Message    string // provider error message or response body
}

func (e *ServiceError) Error() string {
	var msg string
	switch {
	case e.StatusCode == 0:
		msg = fmt.Sprintf("%s: service returned status %s", e.Provider, e.Status)
	case e.Status != "":
		msg = fmt.Sprintf("%s: service returned status %d (%s)", e.Provider, e.StatusCode, e.Status)
	default:
		msg = fmt.Sprintf("%s: service returned status %d", e.Provider, e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}

	return msg
}

// MalformedResponseError is returned when a success response cannot be decoded
// or lacks the coordinate fields of the first candidate.
type MalformedResponseError struct {
	Provider string
	Reason   string
	Err      error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: malformed response: %s: %v", e.Provider, e.Reason, e.Err)
	}

	return fmt.Sprintf("%s: malformed response: %s", e.Provider, e.Reason)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// Kind classifies err. A nil error has an empty kind.
func Kind(err error) ErrorKind {
	var (
		transportErr *TransportError
		serviceErr   *ServiceError
		malformedErr *MalformedResponseError
	)

	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoResult):
		return KindNoResult
	case errors.As(err, &transportErr):
		return KindTransport
	case errors.As(err, &serviceErr):
		return KindService
	case errors.As(err, &malformedErr):
		return KindMalformed
	default:
		return KindUnknown
	}
}
