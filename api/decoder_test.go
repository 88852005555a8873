package api_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/adamwoolhether/netapi/api"
	"github.com/adamwoolhether/netapi/internal/validate"
)

type joke struct {
	ID       int      `json:"id" yaml:"id" validate:"required"`
	Category string   `json:"category" yaml:"category" validate:"required,oneof=programming misc"`
	Setup    string   `json:"setup" yaml:"setup"`
	Delivery string   `json:"delivery" yaml:"delivery"`
	Flags    []string `json:"flags,omitempty" yaml:"flags,omitempty"`
}

func TestDecoder_Kind(t *testing.T) {
	testCases := map[string]struct {
		kind   api.ResponseKind
		format string
		got    func() (api.ResponseKind, string)
	}{
		"zero": {
			kind:   api.ResponseStructured,
			format: "json",
			got: func() (api.ResponseKind, string) {
				var d api.Decoder[joke]
				return d.Kind(), d.Format()
			},
		},
		"json": {
			kind:   api.ResponseStructured,
			format: "json",
			got: func() (api.ResponseKind, string) {
				d := api.JSON[joke]()
				return d.Kind(), d.Format()
			},
		},
		"yaml": {
			kind:   api.ResponseStructured,
			format: "yaml",
			got: func() (api.ResponseKind, string) {
				d := api.YAML[joke]()
				return d.Kind(), d.Format()
			},
		},
		"text": {
			kind:   api.ResponseText,
			format: "text",
			got: func() (api.ResponseKind, string) {
				d := api.Text()
				return d.Kind(), d.Format()
			},
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			kind, format := tc.got()
			if kind != tc.kind {
				t.Errorf("kind = %v, want %v", kind, tc.kind)
			}
			if format != tc.format {
				t.Errorf("format = %q, want %q", format, tc.format)
			}
		})
	}
}

func TestDecoder_JSONRoundTrip(t *testing.T) {
	values := []joke{
		{ID: 1, Category: "programming", Setup: "Why?", Delivery: "Because."},
		{ID: 42, Category: "misc", Flags: []string{"nsfw", "religious"}},
		{ID: 7, Category: "misc", Setup: "unicode ✓ \"quoted\" \n newline"},
	}

	for _, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}

		got, err := api.JSON[joke]().Decode(b)
		if err != nil {
			t.Fatalf("decode %s: %v", b, err)
		}

		if diff := cmp.Diff(v, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestDecoder_JSONOptions(t *testing.T) {
	t.Run("strictRejectsUnknown", func(t *testing.T) {
		body := []byte(`{"id":1,"category":"misc","lang":"en"}`)

		if _, err := api.JSON[joke]().Decode(body); err != nil {
			t.Fatalf("lenient decoder should ignore unknown fields, got: %v", err)
		}

		_, err := api.JSON[joke](api.WithStrictFields()).Decode(body)
		if !errors.Is(err, api.ErrFailToDecode) {
			t.Fatalf("expected ErrFailToDecode, got: %v", err)
		}
	})

	t.Run("numberKeepsPrecision", func(t *testing.T) {
		body := []byte(`{"id":9007199254740993}`)

		got, err := api.JSON[map[string]any](api.WithJSONNumber()).Decode(body)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}

		n, ok := got["id"].(json.Number)
		if !ok {
			t.Fatalf("expected json.Number, got %T", got["id"])
		}
		if n.String() != "9007199254740993" {
			t.Errorf("number = %s, want 9007199254740993", n)
		}
	})

	t.Run("validationPasses", func(t *testing.T) {
		body := []byte(`{"id":3,"category":"programming"}`)

		got, err := api.JSON[joke](api.WithValidation()).Decode(body)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if got.ID != 3 {
			t.Errorf("id = %d, want 3", got.ID)
		}
	})

	t.Run("validationFails", func(t *testing.T) {
		body := []byte(`{"id":3,"category":"dark"}`)

		_, err := api.JSON[joke](api.WithValidation()).Decode(body)
		if !errors.Is(err, api.ErrFailToDecode) {
			t.Fatalf("expected ErrFailToDecode, got: %v", err)
		}

		var fields validate.FieldErrors
		if !errors.As(err, &fields) {
			t.Fatalf("expected FieldErrors in chain, got: %v", err)
		}
		if _, ok := fields.Fields()["category"]; !ok {
			t.Errorf("expected a category failure, got: %v", fields.Fields())
		}
	})

	t.Run("validationPointer", func(t *testing.T) {
		got, err := api.JSON[*joke](api.WithValidation()).Decode([]byte(`{"id":3,"category":"misc"}`))
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if got == nil || got.ID != 3 {
			t.Errorf("got %+v, want id 3", got)
		}

		_, err = api.JSON[*joke](api.WithValidation()).Decode([]byte(`{"id":3}`))
		if fields := validate.GetFieldErrors(err); fields == nil {
			t.Errorf("expected FieldErrors, got: %v", err)
		}
	})

	t.Run("validationNullPointer", func(t *testing.T) {
		got, err := api.JSON[*joke](api.WithValidation()).Decode([]byte(`null`))
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if got != nil {
			t.Errorf("got %+v, want nil", got)
		}
	})

	t.Run("validationSlice", func(t *testing.T) {
		body := []byte(`[{"id":1,"category":"misc"},{"id":2,"category":"programming"}]`)
		if _, err := api.JSON[[]joke](api.WithValidation()).Decode(body); err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}

		_, err := api.JSON[[]joke](api.WithValidation()).Decode([]byte(`[{"id":1,"category":"misc"},{"id":2}]`))
		if !errors.Is(err, api.ErrFailToDecode) {
			t.Fatalf("expected ErrFailToDecode, got: %v", err)
		}
		if _, ok := validate.GetFieldErrors(err).Fields()["[1].category"]; !ok {
			t.Errorf("expected a [1].category failure, got: %v", err)
		}
	})

	t.Run("validationMap", func(t *testing.T) {
		_, err := api.JSON[map[string]joke](api.WithValidation()).Decode([]byte(`{"a":{"id":1,"category":"dark"}}`))
		if _, ok := validate.GetFieldErrors(err).Fields()["[a].category"]; !ok {
			t.Errorf("expected an [a].category failure, got: %v", err)
		}
	})

	t.Run("validationIgnoresNonStruct", func(t *testing.T) {
		got, err := api.JSON[[]int](api.WithValidation()).Decode([]byte(`[1,2,3]`))
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if diff := cmp.Diff([]int{1, 2, 3}, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestDecoder_YAML(t *testing.T) {
	body := []byte("id: 5\ncategory: misc\nsetup: knock knock\nflags:\n  - explicit\n")

	t.Run("decode", func(t *testing.T) {
		got, err := api.YAML[joke]().Decode(body)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}

		exp := joke{ID: 5, Category: "misc", Setup: "knock knock", Flags: []string{"explicit"}}
		if diff := cmp.Diff(exp, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("validatedPointer", func(t *testing.T) {
		got, err := api.YAML[*joke](api.WithValidation()).Decode(body)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if got == nil || got.ID != 5 {
			t.Errorf("got %+v, want id 5", got)
		}
	})

	t.Run("strict", func(t *testing.T) {
		_, err := api.YAML[joke](api.WithStrictFields()).Decode(append(body, []byte("lang: en\n")...))
		if !errors.Is(err, api.ErrFailToDecode) {
			t.Fatalf("expected ErrFailToDecode, got: %v", err)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := api.YAML[joke]().Decode([]byte("id: [unclosed"))

		var ae *api.Error
		if !errors.As(err, &ae) || ae.Kind != api.KindFailToDecode {
			t.Fatalf("expected KindFailToDecode, got: %v", err)
		}
	})
}

func TestDecoder_Text(t *testing.T) {
	got, err := api.Text().Decode([]byte("résumé"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if got != "résumé" {
		t.Errorf("got %q", got)
	}

	_, err = api.Text().Decode([]byte{'o', 'k', 0xc3})

	var ae *api.Error
	if !errors.As(err, &ae) || ae.Kind != api.KindFailToEncode {
		t.Fatalf("expected KindFailToEncode, got: %v", err)
	}
}
