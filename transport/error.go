package transport

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnknown is wrapped by [Error] values of [KindUnknown].
	ErrUnknown = errors.New("unknown transport error")
	// ErrUnexpectedStatusCode is wrapped by [Error] values of [KindStatusCode].
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	// ErrAuthFailure is joined with [ErrUnexpectedStatusCode] when the server
	// responds with 401 Unauthorized or 403 Forbidden.
	ErrAuthFailure = errors.New("auth failure")
	// ErrBodyTooLarge is returned when a response exceeds [WithMaxBodySize].
	ErrBodyTooLarge = errors.New("response body too large")
)

// Kind classifies a failed exchange.
type Kind int

const (
	// KindUnknown means no response or no status code was obtained.
	KindUnknown Kind = iota
	// KindStatusCode means the server answered outside [200,300).
	KindStatusCode
	// KindLocalized means the exchange itself failed; the underlying
	// diagnostic is kept as the error text.
	KindLocalized
)

func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "unknown"
	case KindStatusCode:
		return "status_code"
	case KindLocalized:
		return "localized"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is returned by [Transport.Perform] and delivered by
// [Transport.PerformAsync] for every failed exchange.
type Error struct {
	Kind       Kind
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatusCode:
		return fmt.Sprintf("%v: %d, body: %s", ErrUnexpectedStatusCode, e.StatusCode, e.Body)
	case KindLocalized:
		if e.Err != nil {
			return e.Err.Error()
		}
	}

	if e.Err != nil {
		return fmt.Sprintf("%v: %v", ErrUnknown, e.Err)
	}
	return ErrUnknown.Error()
}

func (e *Error) Unwrap() []error {
	var errs []error
	switch e.Kind {
	case KindStatusCode:
		errs = append(errs, ErrUnexpectedStatusCode)
		if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
			errs = append(errs, ErrAuthFailure)
		}
	case KindUnknown:
		errs = append(errs, ErrUnknown)
	}

	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return errs
}
