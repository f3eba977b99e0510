// Package builder implements the transient container builders the parser
// accumulates values into while walking a container's contents: an
// append-only array builder and an object builder with unique-key
// (last-write-wins) semantics. Rather than a vtable-dispatched interface
// per container kind, a single struct carries a Kind tag and switches on
// it — dispatch stays O(1) without an interface indirection.
package builder

import "github.com/kestrelcode/kestreljson/value"

// Kind names which container a Builder is accumulating.
type Kind uint8

const (
	Array Kind = iota
	Object
)

// Builder accumulates the contents of one open array or object. The zero
// value is not usable; construct with NewArray or NewObject.
type Builder struct {
	kind Kind
	arr  []value.Value
	obj  map[string]value.Value
	keys []string // insertion order, for deterministic re-serialization of small objects
}

// NewArray returns a builder for a JSON array.
func NewArray() *Builder {
	return &Builder{kind: Array, arr: make([]value.Value, 0, 8)}
}

// NewObject returns a builder for a JSON object.
func NewObject() *Builder {
	return &Builder{kind: Object, obj: make(map[string]value.Value, 8)}
}

// Kind reports which container this builder is accumulating.
func (b *Builder) Kind() Kind { return b.kind }

// Append adds a value to an array builder. It panics if called on an
// object builder — that is a caller bug, not a runtime condition.
func (b *Builder) Append(v value.Value) {
	if b.kind != Array {
		panic("builder: Append called on an object builder")
	}
	b.arr = append(b.arr, v)
}

// Insert sets key to v in an object builder. Re-inserting an existing key
// silently overwrites the previous value (last-write-wins), matching the
// object model's documented duplicate-key policy.
func (b *Builder) Insert(key string, v value.Value) {
	if b.kind != Object {
		panic("builder: Insert called on an array builder")
	}
	if _, exists := b.obj[key]; !exists {
		b.keys = append(b.keys, key)
	}
	b.obj[key] = v
}

// IsEmpty reports whether the builder has accumulated no entries.
func (b *Builder) IsEmpty() bool {
	if b.kind == Array {
		return len(b.arr) == 0
	}
	return len(b.obj) == 0
}

// Items returns the accumulated array elements. Valid only for Array
// builders.
func (b *Builder) Items() []value.Value { return b.arr }

// Entries returns the accumulated object entries in insertion order.
// Valid only for Object builders.
func (b *Builder) Entries() (keys []string, values map[string]value.Value) {
	return b.keys, b.obj
}

// Finalize converts the accumulated contents into a value.Value of the
// matching kind.
func (b *Builder) Finalize() value.Value {
	if b.kind == Array {
		return value.Array(b.arr)
	}
	return value.Object(b.keys, b.obj)
}
