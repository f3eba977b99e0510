// Package kestreljson implements a JSON value model and a single-pass,
// allocation-conscious parser, plus a reflect-based Marshal/Unmarshal
// surface layered on top of the same Value tree the parser produces.
package kestreljson

import (
	"errors"
	"io"
	"math/big"

	"github.com/kestrelcode/kestreljson/internal/parser"
	"github.com/kestrelcode/kestreljson/value"
)

var (
	ErrInvalidJSON     = errors.New("kestreljson: invalid JSON")
	ErrUnsupportedType = errors.New("kestreljson: unsupported type")
)

// Parse parses data as a single JSON value under the given options.
func Parse(data []byte, opts Options) (value.Value, error) {
	if enc := DetectEncoding(data); enc != EncodingUTF8 {
		return value.Value{}, &ParseError{
			Kind:    UnsupportedEncoding,
			Line:    1,
			Message: "input is " + enc.String() + "; only UTF-8 is supported",
		}
	}

	p := parser.Get(data, opts.Lenient)
	defer parser.Put(p)

	v, err := p.ParseOne()
	if err != nil {
		return value.Value{}, err
	}
	return v, nil
}

// ParseMany parses data as one or more whitespace-separated JSON values.
func ParseMany(data []byte, opts Options) ([]value.Value, error) {
	if enc := DetectEncoding(data); enc != EncodingUTF8 {
		return nil, &ParseError{
			Kind:    UnsupportedEncoding,
			Line:    1,
			Message: "input is " + enc.String() + "; only UTF-8 is supported",
		}
	}

	p := parser.Get(data, opts.Lenient)
	defer parser.Put(p)

	roots, err := p.ParseMany()
	if err != nil {
		return nil, err
	}
	return roots, nil
}

// Valid reports whether data is a single well-formed strict JSON value.
func Valid(data []byte) bool {
	_, err := Parse(data, Options{})
	return err == nil
}

// Marshal reflects v into a Value tree and serializes it with the
// package's compact serializer.
func Marshal(v interface{}) ([]byte, error) {
	e := newEncoder()
	defer e.release()

	return e.marshal(v)
}

// Unmarshal parses data with the core parser and reflect-decodes the
// resulting Value tree into v, which must be a non-nil pointer.
//
// Because the Go types Unmarshal decodes into (maps, slices, plain
// strings) have no way to represent Value's null/empty distinction, a
// "null" array or object in data collapses to a nil slice/map on the Go
// side indistinguishably from how a genuinely absent field would decode.
// Round-tripping through Parse/Serialize directly, without an
// intervening Unmarshal into a native Go type, preserves the
// distinction exactly.
func Unmarshal(data []byte, v interface{}) error {
	d := newDecoder(data)
	defer d.release()

	return d.unmarshal(v)
}

// Decoder reads a stream of bytes and decodes it as JSON.
type Decoder struct {
	r   io.Reader
	buf []byte
}

// NewDecoder returns a Decoder that reads its input from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Decode reads all of the Decoder's remaining input and unmarshals it
// into v.
func (dec *Decoder) Decode(v interface{}) error {
	if dec.buf == nil {
		data, err := io.ReadAll(dec.r)
		if err != nil {
			return err
		}
		dec.buf = data
	}

	d := newDecoder(dec.buf)
	defer d.release()

	return d.unmarshal(v)
}

// Encoder writes JSON-encoded values to a stream.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns an Encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode marshals v and writes the result to the Encoder's writer.
func (enc *Encoder) Encode(v interface{}) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}
	_, err = enc.w.Write(data)
	return err
}

// toNative converts a Value tree into the same shape encoding/json's
// Unmarshal-into-interface{} would produce, except numbers preserve
// their parsed representation (int64, float64, or *big.Int) instead of
// always widening to float64, and HugeLiteral numbers surface as their
// original source string since no native numeric type can hold them
// exactly.
func toNative(v value.Value) (interface{}, error) {
	switch v.Kind() {
	case value.KindBool:
		return v.BoolValue(), nil
	case value.KindNumber:
		switch v.NumberRepr() {
		case value.ReprInt64:
			return v.Int64Value(), nil
		case value.ReprDouble:
			return v.DoubleValue(), nil
		case value.ReprBigInt:
			return new(big.Int).Set(v.BigIntValue()), nil
		case value.ReprHugeLiteral:
			return v.HugeLiteralValue(), nil
		}
		return nil, ErrUnsupportedType
	case value.KindString:
		if v.IsNull() {
			return nil, nil
		}
		return v.StringValue(), nil
	case value.KindArray:
		if v.IsNullArray() {
			return nil, nil
		}
		items := v.ArrayValue()
		out := make([]interface{}, len(items))
		for i, item := range items {
			native, err := toNative(item)
			if err != nil {
				return nil, err
			}
			out[i] = native
		}
		return out, nil
	case value.KindObject:
		if v.IsNullObject() {
			return nil, nil
		}
		out := make(map[string]interface{}, v.Len())
		for _, k := range v.ObjectKeys() {
			val, _ := v.ObjectGet(k)
			native, err := toNative(val)
			if err != nil {
				return nil, err
			}
			out[k] = native
		}
		return out, nil
	default:
		return nil, ErrUnsupportedType
	}
}
