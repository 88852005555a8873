package transport

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/netapi/transport/throttle"
)

// Transport executes transport-ready requests against a single Session.
// It holds no per-call state and is safe for concurrent use.
type Transport struct {
	session     Session
	logger      *slog.Logger
	tracer      trace.Tracer
	metrics     *metrics
	maxBodySize int64
}

var shared = sync.OnceValue(func() *Transport {
	t, err := Build()
	if err != nil {
		panic(fmt.Sprintf("transport: building shared transport: %v", err))
	}
	return t
})

// Shared returns the process-wide default Transport, built on first use
// without options.
func Shared() *Transport {
	return shared()
}

// Build returns a Transport configured by optFns. Without [WithSession], a
// fresh *http.Client is assembled; [http.DefaultClient] is never modified.
func Build(optFns ...Option) (*Transport, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying transport option: %w", err)
		}
	}

	t := &Transport{
		logger:      slog.Default(),
		tracer:      otel.Tracer(tracerName),
		maxBodySize: opts.maxBodySize,
	}

	if opts.logger != nil {
		t.logger = opts.logger
	}

	if opts.tracer != nil {
		t.tracer = opts.tracer
	}

	switch {
	case opts.session != nil && opts.shapesClient():
		return nil, ErrSessionConflict
	case opts.session != nil:
		t.session = opts.session
	default:
		hc, err := buildClient(opts, func() *slog.Logger { return t.logger })
		if err != nil {
			return nil, err
		}
		t.session = hc
	}

	if opts.registerer != nil {
		m, err := newMetrics(opts.registerer)
		if err != nil {
			return nil, fmt.Errorf("registering metrics: %w", err)
		}
		t.metrics = m
	}

	return t, nil
}

func buildClient(opts options, logFn func() *slog.Logger) (*http.Client, error) {
	hc := &http.Client{}
	if opts.client != nil {
		*hc = *opts.client
	}

	if opts.timeout != nil {
		hc.Timeout = *opts.timeout
	}

	if opts.noFollowRedirects {
		hc.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var rt http.RoundTripper
	switch {
	case opts.rt != nil:
		rt = opts.rt
	case hc.Transport != nil:
		rt = hc.Transport
	default:
		rt = http.DefaultTransport
	}
	if opts.userAgent != "" {
		rt = userAgent{value: opts.userAgent, base: rt}
	}
	if opts.requestIDHeader != "" {
		rt = requestID{header: opts.requestIDHeader, base: rt}
	}
	if opts.throttle != nil {
		throttled, err := throttle.New(*opts.throttle, logFn, rt)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
		rt = throttled
	}
	hc.Transport = rt

	return hc, nil
}

// Perform issues req exactly once and returns the response body when the
// status is in [200,300). Every failure is an [*Error].
func (t *Transport) Perform(req *http.Request) ([]byte, error) {
	if req == nil {
		return nil, &Error{Kind: KindUnknown, Err: errors.New("nil request")}
	}

	ctx, span := t.tracer.Start(req.Context(), "transport.Perform",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.full", redactURL(req.URL)),
		),
	)
	defer span.End()

	req = req.Clone(ctx)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	t.metrics.start()
	start := time.Now()

	body, status, err := t.exec(req)

	elapsed := time.Since(start)
	t.metrics.observe(req.Method, err, elapsed)

	if status != 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", status))
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		t.logger.Debug("transport request failed", "method", req.Method, "url", redactURL(req.URL), "status", status, "duration", elapsed.String(), "error", err)
		return nil, err
	}

	t.logger.Debug("transport request complete", "method", req.Method, "url", redactURL(req.URL), "status", status, "duration", elapsed.String(), "bytes", len(body))

	return body, nil
}

// PerformAsync runs Perform on a new goroutine and hands its outcome to fn.
// fn is called exactly once, never on the caller's goroutine.
func (t *Transport) PerformAsync(req *http.Request, fn func([]byte, error)) {
	if fn == nil {
		fn = func([]byte, error) {}
	}

	go func() {
		fn(t.Perform(req))
	}()
}

// exec runs the request and validates the status code. The returned status
// is zero when no response was obtained.
func (t *Transport) exec(req *http.Request) ([]byte, int, error) {
	resp, err := t.session.Do(req)
	if err != nil {
		if resp != nil && resp.Body != nil {
			if cerr := resp.Body.Close(); cerr != nil {
				t.logger.Error("failed to close response body", "error", cerr)
			}
		}
		return nil, 0, &Error{Kind: KindLocalized, Err: fmt.Errorf("exec http do: %w", err)}
	}

	if resp == nil {
		return nil, 0, &Error{Kind: KindUnknown}
	}

	if resp.Body == nil {
		resp.Body = http.NoBody
	}

	defer func() {
		if _, err := io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainSize)); err != nil {
			t.logger.Error("failed to discard unused body", "error", err)
		}
		if err := resp.Body.Close(); err != nil {
			t.logger.Error("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode == 0 {
		return nil, 0, &Error{Kind: KindUnknown}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrBodySize))
		if err != nil {
			b = []byte("unable to read body")
		}

		return nil, resp.StatusCode, &Error{
			Kind:       KindStatusCode,
			StatusCode: resp.StatusCode,
			Body:       string(b),
		}
	}

	body, err := t.readBody(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &Error{Kind: KindLocalized, Err: err}
	}

	return body, resp.StatusCode, nil
}

func (t *Transport) readBody(r io.Reader) ([]byte, error) {
	if t.maxBodySize <= 0 {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading response body: %w", err)
		}
		return b, nil
	}

	b, err := io.ReadAll(io.LimitReader(r, t.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if int64(len(b)) > t.maxBodySize {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrBodyTooLarge, t.maxBodySize)
	}

	return b, nil
}
