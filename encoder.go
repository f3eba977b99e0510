package kestreljson

import (
	"encoding/base64"
	"errors"
	"math"
	"reflect"
	"sync"

	"github.com/kestrelcode/kestreljson/value"
)

type encoder struct {
	buf []byte
}

var encoderPool = sync.Pool{
	New: func() interface{} {
		return &encoder{buf: make([]byte, 0, 4096)}
	},
}

func newEncoder() *encoder {
	e := encoderPool.Get().(*encoder)
	e.buf = e.buf[:0]
	return e
}

func (e *encoder) release() {
	if cap(e.buf) > 64*1024 {
		e.buf = make([]byte, 0, 4096)
	}
	encoderPool.Put(e)
}

// marshal reflects v into a value.Value tree and serializes it through
// the same compact serializer Parse's output goes through, so a
// hand-built struct and a parsed document serialize identically.
func (e *encoder) marshal(v interface{}) ([]byte, error) {
	built, err := e.build(reflect.ValueOf(v))
	if err != nil {
		return nil, err
	}
	e.buf = value.Serialize(e.buf[:0], built)

	result := make([]byte, len(e.buf))
	copy(result, e.buf)
	return result, nil
}

func (e *encoder) build(v reflect.Value) (value.Value, error) {
	if !v.IsValid() {
		return value.Null(), nil
	}

	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return value.Null(), nil
		}
		return e.build(v.Elem())
	}

	switch v.Kind() {
	case reflect.Bool:
		return value.Bool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.Int64(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u > math.MaxInt64 {
			return value.Double(float64(u)), nil
		}
		return value.Int64(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return value.Value{}, errors.New("kestreljson: unsupported float value (NaN or Inf)")
		}
		return value.Double(f), nil
	case reflect.String:
		return value.String(v.String()), nil
	case reflect.Slice:
		if v.IsNil() {
			return value.NullArray(), nil
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return value.String(base64.StdEncoding.EncodeToString(v.Bytes())), nil
		}
		return e.buildArray(v)
	case reflect.Array:
		return e.buildArray(v)
	case reflect.Map:
		return e.buildMap(v)
	case reflect.Struct:
		return e.buildStruct(v)
	case reflect.Interface:
		if v.IsNil() {
			return value.Null(), nil
		}
		return e.build(v.Elem())
	default:
		return value.Value{}, errors.New("kestreljson: unsupported type: " + v.Type().String())
	}
}

func (e *encoder) buildArray(v reflect.Value) (value.Value, error) {
	n := v.Len()
	items := make([]value.Value, n)
	for i := 0; i < n; i++ {
		elem, err := e.build(v.Index(i))
		if err != nil {
			return value.Value{}, err
		}
		items[i] = elem
	}
	return value.Array(items), nil
}

func (e *encoder) buildMap(v reflect.Value) (value.Value, error) {
	if v.Type().Key().Kind() != reflect.String {
		return value.Value{}, errors.New("kestreljson: map key must be a string type")
	}
	if v.IsNil() {
		return value.NullObject(), nil
	}

	keys := v.MapKeys()
	keyStrs := make([]string, len(keys))
	values := make(map[string]value.Value, len(keys))
	for i, key := range keys {
		elem, err := e.build(v.MapIndex(key))
		if err != nil {
			return value.Value{}, err
		}
		keyStrs[i] = key.String()
		values[key.String()] = elem
	}
	return value.Object(keyStrs, values), nil
}

func (e *encoder) buildStruct(v reflect.Value) (value.Value, error) {
	typ := v.Type()

	keys := make([]string, 0, v.NumField())
	values := make(map[string]value.Value, v.NumField())

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		structField := typ.Field(i)

		if structField.PkgPath != "" {
			continue
		}

		tag := structField.Tag.Get("json")
		if tag == "-" {
			continue
		}

		name := structField.Name
		omitempty := false
		if tag != "" {
			if idx := findComma(tag); idx != -1 {
				name = tag[:idx]
				if tag[idx+1:] == "omitempty" {
					omitempty = true
				}
			} else {
				name = tag
			}
			if name == "" {
				name = structField.Name
			}
		}

		if omitempty && isEmptyValue(field) {
			continue
		}

		built, err := e.build(field)
		if err != nil {
			return value.Value{}, err
		}
		if _, exists := values[name]; !exists {
			keys = append(keys, name)
		}
		values[name] = built
	}

	return value.Object(keys, values), nil
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}
