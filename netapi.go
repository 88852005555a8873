// Package netapi exposes transport builders.
package netapi

import (
	"github.com/adamwoolhether/netapi/transport"
)

// NewTransport instantiates a new *transport.Transport with the provided
// options. If none are given, a fresh http.Client with the default
// http.Transport is used.
func NewTransport(opts ...transport.Option) (*transport.Transport, error) {
	return transport.Build(opts...)
}

// Shared returns the process-wide default transport, used by api.Execute
// when no transport is given.
func Shared() *transport.Transport {
	return transport.Shared()
}
