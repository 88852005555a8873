package api

import (
	"github.com/adamwoolhether/netapi/descriptor"
)

// API is implemented per endpoint. Configuration may return nil, in which
// case execution fails with [KindEmptyConfiguration] before any network call.
type API[R any] interface {
	Configuration() *descriptor.Descriptor
	Decoder() Decoder[R]
}

// Request is a ready-made API built from a descriptor and a decoder.
type Request[R any] struct {
	desc    *descriptor.Descriptor
	decoder Decoder[R]
}

var _ API[string] = Request[string]{}

// New pairs desc with decoder.
func New[R any](desc *descriptor.Descriptor, decoder Decoder[R]) Request[R] {
	return Request[R]{desc: desc, decoder: decoder}
}

// NewJSON declares an endpoint whose body decodes from JSON into R.
func NewJSON[R any](desc *descriptor.Descriptor, opts ...DecodeOption) Request[R] {
	return New(desc, JSON[R](opts...))
}

// NewYAML declares an endpoint whose body decodes from YAML into R.
func NewYAML[R any](desc *descriptor.Descriptor, opts ...DecodeOption) Request[R] {
	return New(desc, YAML[R](opts...))
}

// NewText declares an endpoint whose body is returned as a string.
func NewText(desc *descriptor.Descriptor) Request[string] {
	return New(desc, Text())
}

func (r Request[R]) Configuration() *descriptor.Descriptor {
	return r.desc
}

func (r Request[R]) Decoder() Decoder[R] {
	return r.decoder
}
