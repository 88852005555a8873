// Package throttle provides an [http.RoundTripper] that paces outbound
// transport calls with a token bucket from [golang.org/x/time/rate].
//
// # Usage
//
//	rt, err := throttle.New(
//		throttle.Config{RPS: 10, Burst: 5},
//		func() *slog.Logger { return slog.Default() },
//		http.DefaultTransport,
//	)
//	httpClient := &http.Client{Transport: rt}
//
// Once the burst is spent, calls block until a token frees up or the
// request context ends.
package throttle
