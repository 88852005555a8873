package transport

import (
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// maxErrBodySize caps the amount of response body read when
// building an error for an unexpected status code.
const maxErrBodySize = 4 << 10 // 4KB

// maxDrainSize caps how much of an unread body is discarded before close
// so the connection can be reused.
const maxDrainSize = 64 << 10 // 64KB

const tracerName = "github.com/adamwoolhether/netapi/transport"

// Session is the HTTP-capable collaborator a Transport drives. *http.Client
// satisfies it.
type Session interface {
	Do(req *http.Request) (*http.Response, error)
}

// userAgent is an http.RoundTripper, enabling the persistent User-Agent header.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}

// requestID is an http.RoundTripper that stamps each outgoing request with a
// random UUID unless the caller already set one.
type requestID struct {
	header string
	base   http.RoundTripper
}

func (rid requestID) RoundTrip(r *http.Request) (*http.Response, error) {
	if r.Header.Get(rid.header) != "" {
		return rid.base.RoundTrip(r)
	}

	cpy := r.Clone(r.Context())
	cpy.Header.Set(rid.header, uuid.NewString())
	return rid.base.RoundTrip(cpy)
}

// redactURL renders u for spans and logs, without its query, fragment or
// user info.
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	r := *u
	r.User = nil
	r.RawQuery = ""
	r.ForceQuery = false
	r.Fragment = ""
	r.RawFragment = ""

	return r.String()
}
