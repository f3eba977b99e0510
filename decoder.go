package kestreljson

import (
	"errors"
	"math"
	"math/big"
	"reflect"
	"sync"

	"github.com/kestrelcode/kestreljson/internal/parser"
	"github.com/kestrelcode/kestreljson/value"
)

type decoder struct {
	p    *parser.Parser
	data []byte
}

var decoderPool = sync.Pool{
	New: func() interface{} {
		return &decoder{}
	},
}

func newDecoder(data []byte) *decoder {
	d := decoderPool.Get().(*decoder)
	d.data = data
	return d
}

func (d *decoder) release() {
	d.data = nil
	d.p = nil
	decoderPool.Put(d)
}

func (d *decoder) unmarshal(v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("kestreljson: Unmarshal requires a non-nil pointer")
	}

	p := parser.Get(d.data, false)
	defer parser.Put(p)

	parsed, perr := p.ParseOne()
	if perr != nil {
		return perr
	}

	return d.decode(parsed, rv.Elem())
}

func (d *decoder) decode(src value.Value, dst reflect.Value) error {
	if dst.Kind() == reflect.Ptr {
		if src.IsNull() {
			dst.Set(reflect.Zero(dst.Type()))
			return nil
		}
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return d.decode(src, dst.Elem())
	}

	if dst.Kind() == reflect.Interface && dst.Type().NumMethod() == 0 {
		native, err := toNative(src)
		if err != nil {
			return err
		}
		if native == nil {
			dst.Set(reflect.Zero(dst.Type()))
			return nil
		}
		dst.Set(reflect.ValueOf(native))
		return nil
	}

	switch src.Kind() {
	case value.KindBool:
		return d.decodeBool(src.BoolValue(), dst)
	case value.KindNumber:
		return d.decodeNumber(src, dst)
	case value.KindString:
		if src.IsNull() {
			dst.Set(reflect.Zero(dst.Type()))
			return nil
		}
		return d.decodeString(src.StringValue(), dst)
	case value.KindArray:
		if src.IsNullArray() {
			dst.Set(reflect.Zero(dst.Type()))
			return nil
		}
		return d.decodeArray(src.ArrayValue(), dst)
	case value.KindObject:
		if src.IsNullObject() {
			dst.Set(reflect.Zero(dst.Type()))
			return nil
		}
		return d.decodeObject(src, dst)
	default:
		return errors.New("kestreljson: unexpected value kind")
	}
}

func (d *decoder) decodeBool(src bool, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.Bool:
		dst.SetBool(src)
		return nil
	case reflect.Interface:
		if dst.Type().NumMethod() == 0 {
			dst.Set(reflect.ValueOf(src))
			return nil
		}
	}
	return errors.New("kestreljson: cannot unmarshal bool into " + dst.Type().String())
}

func (d *decoder) decodeNumber(src value.Value, dst reflect.Value) error {
	f, ok := numberAsFloat64(src)

	switch dst.Kind() {
	case reflect.Float32, reflect.Float64:
		if !ok {
			return errors.New("kestreljson: number does not fit in a float64")
		}
		dst.SetFloat(f)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if src.NumberRepr() == value.ReprInt64 {
			dst.SetInt(src.Int64Value())
			return nil
		}
		if !ok {
			return errors.New("kestreljson: number does not fit in an int64")
		}
		dst.SetInt(int64(f))
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if src.NumberRepr() == value.ReprInt64 && src.Int64Value() >= 0 {
			dst.SetUint(uint64(src.Int64Value()))
			return nil
		}
		if !ok {
			return errors.New("kestreljson: number does not fit in a uint64")
		}
		dst.SetUint(uint64(f))
		return nil
	case reflect.Interface:
		if dst.Type().NumMethod() == 0 {
			native, err := toNative(src)
			if err != nil {
				return err
			}
			dst.Set(reflect.ValueOf(native))
			return nil
		}
	}
	return errors.New("kestreljson: cannot unmarshal number into " + dst.Type().String())
}

func (d *decoder) decodeString(src string, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.String:
		dst.SetString(src)
		return nil
	case reflect.Interface:
		if dst.Type().NumMethod() == 0 {
			dst.Set(reflect.ValueOf(src))
			return nil
		}
	}
	return errors.New("kestreljson: cannot unmarshal string into " + dst.Type().String())
}

func (d *decoder) decodeArray(src []value.Value, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.Slice:
		if dst.IsNil() || dst.Len() < len(src) {
			dst.Set(reflect.MakeSlice(dst.Type(), len(src), len(src)))
		}
		for i, v := range src {
			if err := d.decode(v, dst.Index(i)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Array:
		if dst.Len() < len(src) {
			return errors.New("kestreljson: array too small to hold JSON array")
		}
		for i, v := range src {
			if err := d.decode(v, dst.Index(i)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Interface:
		if dst.Type().NumMethod() == 0 {
			native, err := toNative(value.Array(src))
			if err != nil {
				return err
			}
			dst.Set(reflect.ValueOf(native))
			return nil
		}
	}

	return errors.New("kestreljson: cannot unmarshal array into " + dst.Type().String())
}

func (d *decoder) decodeObject(src value.Value, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.Map:
		if dst.IsNil() {
			dst.Set(reflect.MakeMap(dst.Type()))
		}
		keyType := dst.Type().Key()
		elemType := dst.Type().Elem()
		if keyType.Kind() != reflect.String {
			return errors.New("kestreljson: map key must be a string type")
		}

		for _, k := range src.ObjectKeys() {
			v, _ := src.ObjectGet(k)
			keyVal := reflect.New(keyType).Elem()
			keyVal.SetString(k)

			elemVal := reflect.New(elemType).Elem()
			if err := d.decode(v, elemVal); err != nil {
				return err
			}
			dst.SetMapIndex(keyVal, elemVal)
		}
		return nil

	case reflect.Struct:
		return d.decodeStruct(src, dst)

	case reflect.Interface:
		if dst.Type().NumMethod() == 0 {
			native, err := toNative(src)
			if err != nil {
				return err
			}
			dst.Set(reflect.ValueOf(native))
			return nil
		}
	}

	return errors.New("kestreljson: cannot unmarshal object into " + dst.Type().String())
}

func (d *decoder) decodeStruct(src value.Value, dst reflect.Value) error {
	typ := dst.Type()

	fields := make(map[string]int, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}

		name := field.Name
		if tag != "" {
			if idx := findComma(tag); idx != -1 {
				name = tag[:idx]
			} else {
				name = tag
			}
		}

		fields[name] = i
	}

	for _, k := range src.ObjectKeys() {
		idx, ok := fields[k]
		if !ok {
			continue
		}
		v, _ := src.ObjectGet(k)
		field := dst.Field(idx)
		if field.CanSet() {
			if err := d.decode(v, field); err != nil {
				return err
			}
		}
	}

	return nil
}

func findComma(s string) int {
	for i, c := range s {
		if c == ',' {
			return i
		}
	}
	return -1
}

// numberAsFloat64 reports whether src converts to a float64 without
// changing its exponent range, and the converted value if so. BigInt and
// HugeLiteral numbers outside float64's range report ok=false.
func numberAsFloat64(src value.Value) (float64, bool) {
	switch src.NumberRepr() {
	case value.ReprInt64:
		return float64(src.Int64Value()), true
	case value.ReprDouble:
		return src.DoubleValue(), true
	case value.ReprBigInt:
		f := new(big.Float).SetInt(src.BigIntValue())
		v, _ := f.Float64()
		return v, !math.IsInf(v, 0)
	default:
		return 0, false
	}
}
