package builder

import (
	"sync"

	"github.com/kestrelcode/kestreljson/value"
)

var arrayPool = sync.Pool{
	New: func() interface{} {
		return &Builder{kind: Array, arr: make([]value.Value, 0, 8)}
	},
}

var objectPool = sync.Pool{
	New: func() interface{} {
		return &Builder{kind: Object, obj: make(map[string]value.Value, 8)}
	},
}

// GetArray returns a reset array builder from the pool.
func GetArray() *Builder {
	b := arrayPool.Get().(*Builder)
	if b.arr == nil {
		b.arr = make([]value.Value, 0, 8)
	}
	return b
}

// GetObject returns a reset object builder from the pool.
func GetObject() *Builder {
	b := objectPool.Get().(*Builder)
	if b.obj == nil {
		b.obj = make(map[string]value.Value, 8)
	}
	if b.keys == nil {
		b.keys = make([]string, 0, 8)
	}
	return b
}

// Put returns b to its kind's pool. Finalize hands its backing array or
// map to the caller by reference, so b must drop its own references
// before pooling — reusing them here would let a later Get silently
// mutate a value.Value the parser already emitted. Very large builders
// are dropped entirely instead of pooled, matching the token-slice
// pool's cap on growth.
func Put(b *Builder) {
	if b.kind == Array {
		if cap(b.arr) > 1024 {
			b.arr = nil
			return
		}
		b.arr = nil
		arrayPool.Put(b)
		return
	}
	if len(b.keys) > 1024 {
		b.obj, b.keys = nil, nil
		return
	}
	b.obj, b.keys = nil, nil
	objectPool.Put(b)
}
