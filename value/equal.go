package value

// Equal reports whether v and other represent the same JSON value:
// same kind, same null/empty status for strings/arrays/objects, and
// same payload. The null sentinel, a null array and a null object all
// denote JSON null, so they are Equal to one another whatever their kind;
// a null container therefore Equals the Null() its serialized `null`
// parses back to. Numbers compare equal only within the same
// representation (an Int64(1) is not Equal to a Double(1.0)); this
// matches the round-trip property that a value produced by Parse always
// re-parses to a value that Equal reports as identical, which requires
// the representation itself to be part of the comparison.
func (v Value) Equal(other Value) bool {
	vNull, otherNull := v.isNullVariant(), other.isNullVariant()
	if vNull || otherNull {
		return vNull && otherNull
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return numberEqual(v, other)
	case KindString:
		if v.strNull != other.strNull {
			return false
		}
		return v.strNull || v.str == other.str
	case KindArray:
		if v.arrNull != other.arrNull {
			return false
		}
		if v.arrNull {
			return true
		}
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if v.objNull != other.objNull {
			return false
		}
		if v.objNull {
			return true
		}
		if len(v.objKeys) != len(other.objKeys) {
			return false
		}
		for k, val := range v.obj {
			otherVal, ok := other.obj[k]
			if !ok || !val.Equal(otherVal) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// isNullVariant reports whether v is the null sentinel, a null array or a
// null object.
func (v Value) isNullVariant() bool {
	return v.IsNull() || v.IsNullArray() || v.IsNullObject()
}

func numberEqual(a, b Value) bool {
	if a.numRepr != b.numRepr {
		return false
	}
	switch a.numRepr {
	case ReprInt64:
		return a.i64 == b.i64
	case ReprDouble:
		return a.f64 == b.f64
	case ReprBigInt:
		return a.big.Cmp(b.big) == 0
	case ReprHugeLiteral:
		return a.huge == b.huge
	default:
		return false
	}
}
