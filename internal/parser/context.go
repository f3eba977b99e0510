package parser

import "github.com/kestrelcode/kestreljson/internal/builder"

// Context names where the state machine currently sits inside the
// grammar: at the root, inside an object expecting a key or a colon or
// a value or a comma, inside an array expecting a value or a comma, or
// wedged in the terminal error state.
type Context uint8

const (
	Root Context = iota
	ObjectKey
	ObjectColon
	ObjectValue
	ObjectComma
	ArrayValue
	ArrayComma
	Exception
)

func (c Context) String() string {
	switch c {
	case Root:
		return "Root"
	case ObjectKey:
		return "ObjectKey"
	case ObjectColon:
		return "ObjectColon"
	case ObjectValue:
		return "ObjectValue"
	case ObjectComma:
		return "ObjectComma"
	case ArrayValue:
		return "ArrayValue"
	case ArrayComma:
		return "ArrayComma"
	case Exception:
		return "Exception"
	default:
		return "Unknown"
	}
}

// frame captures the state a container's parent needs restored once the
// container closes: which builder (nil at the root) the finished value
// gets attached to, under what key (only meaningful for an object
// parent), and which context to resume once it is attached.
type frame struct {
	parent        *builder.Builder
	parentKey     string
	resumeContext Context
}
