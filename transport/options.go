package transport

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/netapi/transport/throttle"
)

// ErrSessionConflict is returned by [Build] when [WithSession] is combined
// with an option that shapes the default *http.Client.
var ErrSessionConflict = errors.New("custom session cannot be combined with http client options")

// Option is a functional option for configuring a [Transport] via [Build].
type Option func(*options) error
type options struct {
	client            *http.Client
	session           Session
	rt                http.RoundTripper
	timeout           *time.Duration
	userAgent         string
	requestIDHeader   string
	throttle          *throttle.Config
	noFollowRedirects bool
	maxBodySize       int64
	logger            *slog.Logger
	tracer            trace.Tracer
	registerer        prometheus.Registerer
}

// shapesClient reports whether any option only makes sense for an *http.Client.
func (o options) shapesClient() bool {
	return o.client != nil ||
		o.rt != nil ||
		o.timeout != nil ||
		o.userAgent != "" ||
		o.requestIDHeader != "" ||
		o.throttle != nil ||
		o.noFollowRedirects
}

// WithClient uses a copy of hc as the session. hc itself is never modified.
func WithClient(hc *http.Client) Option {
	return func(o *options) error {
		if hc == nil {
			return errors.New("client must not be nil")
		}
		o.client = hc
		return nil
	}
}

// WithSession replaces the *http.Client entirely, e.g. with a test double
// or an instrumented client.
func WithSession(s Session) Option {
	return func(o *options) error {
		if s == nil {
			return errors.New("session must not be nil")
		}
		o.session = s
		return nil
	}
}

// WithRoundTripper sets a custom [http.RoundTripper] as the base transport.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(o *options) error {
		if rt == nil {
			return errors.New("round tripper must not be nil")
		}
		o.rt = rt
		return nil
	}
}

// WithTimeout sets the overall request timeout on the underlying [http.Client].
func WithTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return errors.New("timeout must not be negative")
		}
		o.timeout = &d
		return nil
	}
}

// WithUserAgent adds a persistent User-Agent header to all outgoing requests.
func WithUserAgent(header string) Option {
	return func(o *options) error {
		o.userAgent = header
		return nil
	}
}

// WithRequestID stamps every outgoing request with a random UUID in the
// named header, unless the request already carries one.
func WithRequestID(header string) Option {
	return func(o *options) error {
		if header == "" {
			return errors.New("request id header must not be empty")
		}
		o.requestIDHeader = http.CanonicalHeaderKey(header)
		return nil
	}
}

// WithThrottle enables token-bucket rate limiting with the given requests per second and burst capacity.
func WithThrottle(rps, burst int) Option {
	return func(o *options) error {
		cfg := throttle.Config{RPS: rps, Burst: burst}
		if err := cfg.Validate(); err != nil {
			return err
		}
		o.throttle = &cfg
		return nil
	}
}

// WithNoFollowRedirects prevents the [Transport] from following HTTP redirects,
// so a 3xx response surfaces as a status code error.
func WithNoFollowRedirects() Option {
	return func(o *options) error {
		o.noFollowRedirects = true
		return nil
	}
}

// WithMaxBodySize rejects success bodies larger than n bytes with
// [ErrBodyTooLarge]. Zero means unlimited.
func WithMaxBodySize(n int64) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("max body size[%d] must not be negative", n)
		}
		o.maxBodySize = n
		return nil
	}
}

// WithLogger injects a custom [slog.Logger] into the [Transport].
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithTracer sets the tracer used for per-request client spans. The global
// otel tracer provider is used otherwise.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		if tracer == nil {
			return errors.New("tracer must not be nil")
		}
		o.tracer = tracer
		return nil
	}
}

// WithMetrics registers request counters and latency histograms with reg.
// Collectors already registered by another Transport are shared.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) error {
		if reg == nil {
			return errors.New("registerer must not be nil")
		}
		o.registerer = reg
		return nil
	}
}
