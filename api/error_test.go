package api_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/adamwoolhether/netapi/api"
	"github.com/adamwoolhether/netapi/transport"
)

func TestError_Message(t *testing.T) {
	cause := errors.New("boom")

	testCases := map[string]struct {
		err *api.Error
		exp string
	}{
		"empty":          {err: &api.Error{Kind: api.KindEmptyConfiguration}, exp: "api configuration is empty"},
		"emptyWithCause": {err: &api.Error{Kind: api.KindEmptyConfiguration, Err: cause}, exp: "api configuration is empty: boom"},
		"encode":         {err: &api.Error{Kind: api.KindFailToEncode, Err: cause}, exp: "failed to encode response body as text: boom"},
		"decode":         {err: &api.Error{Kind: api.KindFailToDecode, Err: cause}, exp: "failed to decode response body: boom"},
		"localized":      {err: &api.Error{Kind: api.KindLocalized, Err: cause}, exp: "boom"},
		"localizedBare":  {err: &api.Error{Kind: api.KindLocalized}, exp: "api error: localized"},
		"statusCode": {
			err: &api.Error{Kind: api.KindLocalized, Err: &transport.Error{Kind: transport.KindStatusCode, StatusCode: http.StatusTeapot, Body: "short and stout"}},
			exp: "unexpected status code: 418, body: short and stout",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.exp {
				t.Errorf("Error() = %q, want %q", got, tc.exp)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	te := &transport.Error{Kind: transport.KindStatusCode, StatusCode: http.StatusForbidden}
	err := error(&api.Error{Kind: api.KindLocalized, Err: te})

	if !errors.Is(err, transport.ErrAuthFailure) {
		t.Errorf("expected ErrAuthFailure through the chain")
	}
	if errors.Is(err, api.ErrEmptyConfiguration) || errors.Is(err, api.ErrFailToDecode) {
		t.Errorf("localized error should not match api sentinels")
	}

	var got *transport.Error
	if !errors.As(err, &got) || got != te {
		t.Errorf("expected errors.As to find the transport error")
	}
}

func TestErrorKind_String(t *testing.T) {
	exp := map[api.ErrorKind]string{
		api.KindEmptyConfiguration: "empty_configuration",
		api.KindFailToEncode:       "fail_to_encode",
		api.KindFailToDecode:       "fail_to_decode",
		api.KindLocalized:          "localized",
		api.ErrorKind(99):          "ErrorKind(99)",
	}

	for k, want := range exp {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(k), got, want)
		}
	}
}
