package api

import (
	"context"
	"net/http"

	"github.com/adamwoolhether/netapi/transport"
)

// Execute builds the request described by a, performs it over t and decodes
// the body. A nil t uses [transport.Shared].
//
// Transport failures are returned as [KindLocalized] and still match the
// underlying [*transport.Error] with errors.As.
func Execute[R any](ctx context.Context, a API[R], t *transport.Transport) (R, error) {
	var zero R

	req, err := prepare(ctx, a)
	if err != nil {
		return zero, err
	}

	if t == nil {
		t = transport.Shared()
	}

	body, err := t.Perform(req)
	if err != nil {
		return zero, &Error{Kind: KindLocalized, Err: err}
	}

	return a.Decoder().Decode(body)
}

// ExecuteAsync is the callback form of Execute. It never blocks: fn is called
// exactly once, on a goroutine other than the caller's, with either the
// decoded value or an error.
func ExecuteAsync[R any](ctx context.Context, a API[R], t *transport.Transport, fn func(R, error)) {
	if fn == nil {
		fn = func(R, error) {}
	}

	var zero R

	req, err := prepare(ctx, a)
	if err != nil {
		go fn(zero, err)
		return
	}

	if t == nil {
		t = transport.Shared()
	}

	decoder := a.Decoder()
	t.PerformAsync(req, func(body []byte, err error) {
		if err != nil {
			fn(zero, &Error{Kind: KindLocalized, Err: err})
			return
		}
		fn(decoder.Decode(body))
	})
}

// prepare turns a's descriptor into a request. A build failure is reported
// as KindEmptyConfiguration with the cause attached.
func prepare[R any](ctx context.Context, a API[R]) (*http.Request, error) {
	if a == nil {
		return nil, &Error{Kind: KindEmptyConfiguration}
	}

	desc := a.Configuration()
	if desc == nil {
		return nil, &Error{Kind: KindEmptyConfiguration}
	}

	req, err := desc.Build(ctx)
	if err != nil {
		return nil, &Error{Kind: KindEmptyConfiguration, Err: err}
	}

	return req, nil
}
