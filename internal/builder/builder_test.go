package builder

import (
	"testing"

	"github.com/kestrelcode/kestreljson/value"
)

func TestArrayBuilderAppendAndFinalize(t *testing.T) {
	b := NewArray()
	if !b.IsEmpty() {
		t.Fatal("fresh array builder should be empty")
	}
	b.Append(value.Int64(1))
	b.Append(value.Int64(2))
	if b.IsEmpty() {
		t.Fatal("array builder with entries should not be empty")
	}
	if len(b.Items()) != 2 {
		t.Fatalf("expected 2 items, got %d", len(b.Items()))
	}

	got := b.Finalize()
	want := value.Array([]value.Value{value.Int64(1), value.Int64(2)})
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestArrayBuilderAppendOnObjectPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic appending to an object builder")
		}
	}()
	NewObject().Append(value.Int64(1))
}

func TestObjectBuilderInsertLastWriteWins(t *testing.T) {
	b := NewObject()
	b.Insert("a", value.Int64(1))
	b.Insert("b", value.Int64(2))
	b.Insert("a", value.Int64(3))

	keys, values := b.Entries()
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys after re-insertion, got %v", keys)
	}
	if values["a"].Int64Value() != 3 {
		t.Errorf("expected last-write-wins value 3, got %v", values["a"])
	}

	got := b.Finalize()
	if !got.IsObject() || got.Len() != 2 {
		t.Fatalf("unexpected finalized shape: %v", got)
	}
}

func TestObjectBuilderInsertOnArrayPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic inserting into an array builder")
		}
	}()
	NewArray().Insert("a", value.Int64(1))
}

func TestEmptyBuildersFinalizeToEmptyNonNull(t *testing.T) {
	arr := NewArray().Finalize()
	if arr.IsNullArray() || arr.Len() != 0 {
		t.Errorf("expected empty non-null array, got %v", arr)
	}
	obj := NewObject().Finalize()
	if obj.IsNullObject() || obj.Len() != 0 {
		t.Errorf("expected empty non-null object, got %v", obj)
	}
}

func TestPoolRoundTripDoesNotAliasFinalizedValues(t *testing.T) {
	b := GetArray()
	b.Append(value.Int64(1))
	b.Append(value.Int64(2))
	first := b.Finalize()
	Put(b)

	b2 := GetArray()
	b2.Append(value.Int64(99))
	_ = b2.Finalize()
	Put(b2)

	want := value.Array([]value.Value{value.Int64(1), value.Int64(2)})
	if !first.Equal(want) {
		t.Errorf("pooled builder reuse mutated an already-finalized value: got %v, want %v", first, want)
	}
}

func TestPoolRoundTripDoesNotAliasFinalizedObjects(t *testing.T) {
	b := GetObject()
	b.Insert("a", value.Int64(1))
	first := b.Finalize()
	Put(b)

	b2 := GetObject()
	b2.Insert("z", value.Int64(99))
	_ = b2.Finalize()
	Put(b2)

	v, ok := first.ObjectGet("a")
	if !ok || v.Int64Value() != 1 {
		t.Errorf("pooled object reuse mutated an already-finalized value: got %v (present=%v)", v, ok)
	}
	if len(first.ObjectKeys()) != 1 {
		t.Errorf("expected exactly one key, got %v", first.ObjectKeys())
	}
}

func TestLargeArrayBuilderIsDroppedNotPooled(t *testing.T) {
	b := GetArray()
	for i := 0; i < 2000; i++ {
		b.Append(value.Int64(int64(i)))
	}
	Put(b)
}
