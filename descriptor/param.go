package descriptor

import (
	"net/url"
	"reflect"
	"strconv"
)

type valueKind uint8

const (
	kindUnsupported valueKind = iota
	kindText
	kindInt
	kindFloat
)

// Value is a single query parameter value. The zero Value is unsupported
// and never reaches the query string.
type Value struct {
	kind valueKind
	text string
	i    int64
	f    float64
}

// Text returns a string query value.
func Text(s string) Value {
	return Value{kind: kindText, text: s}
}

// Int returns an integer query value.
func Int(i int64) Value {
	return Value{kind: kindInt, i: i}
}

// Float returns a floating-point query value.
func Float(f float64) Value {
	return Value{kind: kindFloat, f: f}
}

// Supported reports whether v was built by Text, Int or Float.
func (v Value) Supported() bool {
	return v.kind != kindUnsupported
}

// String formats v as it appears in the query string.
func (v Value) String() string {
	switch v.kind {
	case kindText:
		return v.text
	case kindInt:
		return strconv.FormatInt(v.i, 10)
	case kindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	default:
		return ""
	}
}

// Params maps query keys to their values.
type Params map[string]Value

// ParamsFrom converts a dynamically typed map into Params. Strings, integers
// and floats are kept; every other kind is dropped.
func ParamsFrom(m map[string]any) Params {
	if m == nil {
		return nil
	}

	params := make(Params, len(m))
	for k, v := range m {
		if val, ok := valueOf(v); ok {
			params[k] = val
		}
	}

	return params
}

func valueOf(v any) (Value, bool) {
	switch t := v.(type) {
	case Value:
		return t, t.Supported()
	case string:
		return Text(t), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return Text(rv.String()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > 1<<63-1 {
			return Text(strconv.FormatUint(u, 10)), true
		}
		return Int(int64(u)), true
	case reflect.Float32:
		// Round-trip through the 32-bit text form so 0.1 stays 0.1.
		f, _ := strconv.ParseFloat(strconv.FormatFloat(rv.Float(), 'f', -1, 32), 64)
		return Float(f), true
	case reflect.Float64:
		return Float(rv.Float()), true
	default:
		return Value{}, false
	}
}

// encode adds the supported params to q.
func (p Params) encode(q url.Values) {
	for k, v := range p {
		if !v.Supported() {
			continue
		}
		q.Set(k, v.String())
	}
}

// clone returns a copy of p, leaving out unsupported values.
func (p Params) clone() Params {
	if p == nil {
		return nil
	}

	out := make(Params, len(p))
	for k, v := range p {
		if v.Supported() {
			out[k] = v
		}
	}

	return out
}
