package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/adamwoolhether/netapi/internal/validate"
)

// ResponseKind tells how a response body becomes a value.
type ResponseKind int

const (
	// ResponseStructured decodes the body against a schema (JSON, YAML).
	ResponseStructured ResponseKind = iota
	// ResponseText converts the body to a string.
	ResponseText
)

func (k ResponseKind) String() string {
	switch k {
	case ResponseStructured:
		return "structured"
	case ResponseText:
		return "text"
	default:
		return fmt.Sprintf("ResponseKind(%d)", int(k))
	}
}

var (
	errInvalidUTF8  = errors.New("body is not valid UTF-8")
	errTrailingData = errors.New("unexpected data after top-level value")
)

// Decoder turns response bytes into R. The zero Decoder decodes JSON.
type Decoder[R any] struct {
	kind   ResponseKind
	format string
	decode func([]byte) (R, error)
}

// Text returns a Decoder yielding the body as a string.
func Text() Decoder[string] {
	return Decoder[string]{
		kind:   ResponseText,
		format: "text",
		decode: func(b []byte) (string, error) {
			if !utf8.Valid(b) {
				return "", errInvalidUTF8
			}
			return string(b), nil
		},
	}
}

// DecodeOption tunes structured decoding.
type DecodeOption func(*decodeOpts)

type decodeOpts struct {
	useNumber bool
	strict    bool
	validate  bool
}

// WithJSONNumber tells the JSON decoder to use [json.Decoder.UseNumber],
// preserving number precision as [json.Number] instead of float64.
func WithJSONNumber() DecodeOption {
	return func(o *decodeOpts) {
		o.useNumber = true
	}
}

// WithStrictFields rejects bodies carrying fields R does not declare.
func WithStrictFields() DecodeOption {
	return func(o *decodeOpts) {
		o.strict = true
	}
}

// WithValidation checks the decoded value against its `validate` struct tags.
// Pointers are followed and slice, array and map elements are checked one by
// one; a nil pointer passes.
func WithValidation() DecodeOption {
	return func(o *decodeOpts) {
		o.validate = true
	}
}

func applyDecodeOpts(optFns []DecodeOption) decodeOpts {
	var opts decodeOpts
	for _, opt := range optFns {
		opt(&opts)
	}
	return opts
}

// JSON returns a structured Decoder for JSON bodies.
func JSON[R any](optFns ...DecodeOption) Decoder[R] {
	opts := applyDecodeOpts(optFns)

	return Decoder[R]{
		kind:   ResponseStructured,
		format: "json",
		decode: func(b []byte) (R, error) {
			var out R

			d := json.NewDecoder(bytes.NewReader(b))
			if opts.useNumber {
				d.UseNumber()
			}
			if opts.strict {
				d.DisallowUnknownFields()
			}

			if err := d.Decode(&out); err != nil {
				return out, err
			}
			if _, err := d.Token(); !errors.Is(err, io.EOF) {
				return out, errTrailingData
			}

			return out, check(opts, &out)
		},
	}
}

// YAML returns a structured Decoder for YAML bodies. WithJSONNumber has no
// effect on it.
func YAML[R any](optFns ...DecodeOption) Decoder[R] {
	opts := applyDecodeOpts(optFns)

	return Decoder[R]{
		kind:   ResponseStructured,
		format: "yaml",
		decode: func(b []byte) (R, error) {
			var out R

			d := yaml.NewDecoder(bytes.NewReader(b))
			d.KnownFields(opts.strict)

			if err := d.Decode(&out); err != nil {
				return out, err
			}

			return out, check(opts, &out)
		},
	}
}

func check(opts decodeOpts, val any) error {
	if !opts.validate {
		return nil
	}
	return validate.Check(val)
}

// Kind reports the response kind the Decoder was declared with.
func (d Decoder[R]) Kind() ResponseKind {
	return d.kind
}

// Format names the wire format: "text", "json" or "yaml".
func (d Decoder[R]) Format() string {
	if d.decode == nil {
		return "json"
	}
	return d.format
}

// Decode converts b into R. Text failures are reported as
// [KindFailToEncode], structured failures as [KindFailToDecode]; both wrap
// the underlying diagnostic.
func (d Decoder[R]) Decode(b []byte) (R, error) {
	if d.decode == nil {
		d = JSON[R]()
	}

	out, err := d.decode(b)
	if err == nil {
		return out, nil
	}

	var zero R
	if d.kind == ResponseText {
		return zero, &Error{Kind: KindFailToEncode, Err: err}
	}

	return zero, &Error{Kind: KindFailToDecode, Err: fmt.Errorf("decoding %s: %w", d.format, err)}
}
