package api

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyConfiguration = errors.New("api configuration is empty")
	ErrFailToEncode       = errors.New("failed to encode response body as text")
	ErrFailToDecode       = errors.New("failed to decode response body")
)

// ErrorKind classifies an [Error].
type ErrorKind int

const (
	// KindEmptyConfiguration means there was no descriptor, or it could not
	// be built into a request.
	KindEmptyConfiguration ErrorKind = iota
	// KindFailToEncode means a text response was not valid UTF-8.
	KindFailToEncode
	// KindFailToDecode means a structured response did not match its shape.
	KindFailToDecode
	// KindLocalized wraps a transport failure, keeping its description.
	KindLocalized
)

func (k ErrorKind) String() string {
	switch k {
	case KindEmptyConfiguration:
		return "empty_configuration"
	case KindFailToEncode:
		return "fail_to_encode"
	case KindFailToDecode:
		return "fail_to_decode"
	case KindLocalized:
		return "localized"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is returned by [Execute] and delivered by [ExecuteAsync]. Err holds
// the underlying cause, when there is one.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Kind == KindLocalized && e.Err != nil {
		return e.Err.Error()
	}

	sentinel := e.sentinel()
	if sentinel == nil {
		sentinel = fmt.Errorf("api error: %v", e.Kind)
	}
	if e.Err == nil {
		return sentinel.Error()
	}
	return fmt.Sprintf("%v: %v", sentinel, e.Err)
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindEmptyConfiguration:
		return ErrEmptyConfiguration
	case KindFailToEncode:
		return ErrFailToEncode
	case KindFailToDecode:
		return ErrFailToDecode
	default:
		return nil
	}
}
