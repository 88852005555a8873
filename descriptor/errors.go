package descriptor

import (
	"errors"
	"fmt"
)

// ErrURLConstruction is the sentinel error wrapped by [URLConstructionError].
var ErrURLConstruction = errors.New("url construction failed")

// URLConstructionError is returned by [Descriptor.Build] when the base URL
// and path do not form a valid absolute URL.
type URLConstructionError struct {
	URL string
	Err error
}

func (e *URLConstructionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %q", ErrURLConstruction, e.URL)
	}
	return fmt.Sprintf("%v: %q: %v", ErrURLConstruction, e.URL, e.Err)
}

func (e *URLConstructionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrURLConstruction}
	}
	return []error{ErrURLConstruction, e.Err}
}
