// Package transport performs the network exchange for a described request
// and classifies its outcome.
//
// # Building a Transport
//
// Use [Build] with functional options, or [Shared] for the process-wide
// default:
//
//	t, err := transport.Build(
//		transport.WithTimeout(10 * time.Second),
//		transport.WithUserAgent("myapp/1.0"),
//		transport.WithThrottle(20, 5),
//	)
//
// # Performing Requests
//
// [Transport.Perform] blocks until the exchange completes and returns the
// response body for any 2xx status:
//
//	body, err := t.Perform(req)
//
// [Transport.PerformAsync] returns immediately and delivers the same outcome
// to a callback, exactly once, on a goroutine of its own:
//
//	t.PerformAsync(req, func(body []byte, err error) { ... })
//
// Failures are reported as [*Error], whose [Kind] tells a missing response,
// a non-2xx status and a transport-level failure apart.
package transport
