package descriptor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"

	"github.com/adamwoolhether/netapi/internal/validate"
)

// Method is an HTTP method a Descriptor may use.
type Method string

const (
	MethodGet    Method = http.MethodGet
	MethodPost   Method = http.MethodPost
	MethodPatch  Method = http.MethodPatch
	MethodDelete Method = http.MethodDelete
)

// Descriptor describes one HTTP call. Treat it as immutable once built:
// [New] copies the maps it is given, and [Descriptor.Build] never modifies
// the receiver.
//
// Params are merged into any query already written on Path rather than
// replacing it. A key present in both takes its value from Params.
type Descriptor struct {
	Method  Method            `json:"method" validate:"required,oneof=GET POST PATCH DELETE"`
	BaseURL string            `json:"baseURL" validate:"required"`
	Path    string            `json:"path"`
	Params  Params            `json:"-"`
	Headers map[string]string `json:"headers" validate:"omitempty,dive,keys,required,endkeys"`

	// Body is an optional payload, JSON-encoded on Build.
	Body any `json:"-"`
}

// New returns a validated Descriptor. params and headers may be nil.
func New(method Method, baseURL, path string, params Params, headers map[string]string) (*Descriptor, error) {
	desc := Descriptor{
		Method:  method,
		BaseURL: baseURL,
		Path:    path,
		Params:  params.clone(),
		Headers: maps.Clone(headers),
	}

	if err := validate.Check(desc); err != nil {
		return nil, fmt.Errorf("validating descriptor: %w", err)
	}

	return &desc, nil
}

// WithBody returns a copy of d carrying body as its JSON payload.
func (d Descriptor) WithBody(body any) *Descriptor {
	d.Params = d.Params.clone()
	d.Headers = maps.Clone(d.Headers)
	d.Body = body
	return &d
}

// URL resolves BaseURL + Path and appends the supported Params to the query.
// Any query already present on Path is kept, not replaced.
func (d Descriptor) URL() (*url.URL, error) {
	raw := d.BaseURL + d.Path

	u, err := url.Parse(raw)
	if err != nil {
		return nil, &URLConstructionError{URL: raw, Err: err}
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, &URLConstructionError{URL: raw, Err: errors.New("scheme and host are required")}
	}

	if len(d.Params) > 0 {
		q := u.Query()
		d.Params.encode(q)
		u.RawQuery = q.Encode()
	}

	return u, nil
}

// Build turns d into a transport-ready request bound to ctx.
// Content-Type defaults to `application/json` when a Body is set; Headers are
// applied afterwards and may override it.
func (d Descriptor) Build(ctx context.Context) (*http.Request, error) {
	if err := validate.Check(d); err != nil {
		return nil, fmt.Errorf("validating descriptor: %w", err)
	}

	u, err := d.URL()
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if d.Body != nil {
		var payload bytes.Buffer
		if err := json.NewEncoder(&payload).Encode(d.Body); err != nil {
			return nil, fmt.Errorf("encoding request payload: %w", err)
		}
		body = &payload
	}

	req, err := http.NewRequestWithContext(ctx, string(d.Method), u.String(), body)
	if err != nil {
		return nil, &URLConstructionError{URL: u.String(), Err: err}
	}

	if d.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for name, value := range d.Headers {
		req.Header.Set(name, value)
	}

	return req, nil
}
