package value

import (
	"math/big"
	"testing"
)

func TestScalarConstructorsAndAccessors(t *testing.T) {
	if !Bool(true).BoolValue() {
		t.Error("Bool(true).BoolValue() == false")
	}
	if String("hi").StringValue() != "hi" {
		t.Error("String round trip failed")
	}
	if !Null().IsNull() {
		t.Error("Null() is not IsNull()")
	}
	if Null().Kind() != KindString {
		t.Error("Null() should share KindString with regular strings")
	}
}

func TestNumberRepresentations(t *testing.T) {
	if Int64(7).Int64Value() != 7 {
		t.Error("Int64 round trip failed")
	}
	if Double(1.5).DoubleValue() != 1.5 {
		t.Error("Double round trip failed")
	}
	n := big.NewInt(1)
	n.Lsh(n, 100)
	if BigInt(n).BigIntValue().Cmp(n) != 0 {
		t.Error("BigInt round trip failed")
	}
	if HugeLiteral("1e999999").HugeLiteralValue() != "1e999999" {
		t.Error("HugeLiteral round trip failed")
	}
}

func TestNullVersusEmptyCollections(t *testing.T) {
	if !NullArray().IsNullArray() {
		t.Error("NullArray() is not IsNullArray()")
	}
	empty := Array(nil)
	if empty.IsNullArray() {
		t.Error("Array(nil) should not be null")
	}
	if empty.Len() != 0 {
		t.Error("Array(nil) should have length 0")
	}

	if !NullObject().IsNullObject() {
		t.Error("NullObject() is not IsNullObject()")
	}
	emptyObj := Object(nil, nil)
	if emptyObj.IsNullObject() {
		t.Error("Object(nil, nil) should not be null")
	}
}

func TestLenPanicsOnNullCollections(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic calling Len on a null array")
		}
	}()
	NullArray().Len()
}

func TestObjectGetAndKeys(t *testing.T) {
	obj := Object([]string{"a", "b"}, map[string]Value{
		"a": Int64(1),
		"b": Int64(2),
	})
	v, ok := obj.ObjectGet("a")
	if !ok || v.Int64Value() != 1 {
		t.Errorf("ObjectGet(a) = %v, %v", v, ok)
	}
	if _, ok := obj.ObjectGet("missing"); ok {
		t.Error("ObjectGet(missing) should report false")
	}
	if len(obj.ObjectKeys()) != 2 {
		t.Errorf("expected 2 keys, got %v", obj.ObjectKeys())
	}
}
