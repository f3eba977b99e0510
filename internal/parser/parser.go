// Package parser implements the character-classification-driven,
// single-pass state machine at the core of the module: it walks the
// input once, dispatching on (current context, byte class), and builds
// a tree of value.Value without a separate tokenization pass.
package parser

import (
	"github.com/kestrelcode/kestreljson/internal/builder"
	"github.com/kestrelcode/kestreljson/internal/classify"
	"github.com/kestrelcode/kestreljson/internal/cpuaccel"
	"github.com/kestrelcode/kestreljson/internal/numscan"
	"github.com/kestrelcode/kestreljson/internal/strscan"
	"github.com/kestrelcode/kestreljson/value"
)

// Parser holds all mutable state for one parse. It borrows its input
// byte slice for the call's duration. String, literal and number values
// are copied out of the input when they are constructed, so the values
// it returns do not alias the input. The zero value is made ready by
// reset, which Get calls.
type Parser struct {
	data []byte
	pos  int

	line      int
	lineStart int

	lenient bool
	context Context

	stack []frame
	cur   *builder.Builder // nil while at Root
	key   string           // pending object key, meaningful only mid-ObjectValue

	roots []value.Value

	pendingErr *Error
}

func (p *Parser) reset(data []byte, lenient bool) {
	p.data = data
	p.pos = 0
	p.line = 1
	p.lineStart = 0
	p.lenient = lenient
	p.context = Root
	p.stack = p.stack[:0]
	p.cur = nil
	p.key = ""
	p.roots = p.roots[:0]
	p.pendingErr = nil
}

// ParseOne runs the state machine and requires the input to contain
// exactly one root value.
func (p *Parser) ParseOne() (value.Value, *Error) {
	roots, err := p.ParseMany()
	if err != nil {
		return value.Value{}, err
	}
	if len(roots) != 1 {
		return value.Value{}, newError(MultipleRoots, "input contained more than one root value", p.line, p.pos)
	}
	return roots[0], nil
}

// ParseMany runs the state machine and accepts any non-empty sequence
// of whitespace-separated root values.
func (p *Parser) ParseMany() ([]value.Value, *Error) {
	p.run()

	if p.pendingErr != nil {
		return nil, p.pendingErr
	}
	if p.cur != nil || len(p.stack) != 0 {
		return nil, p.errorAt(EndedInsideStructure, "input ended with an unclosed structure", p.pos)
	}
	if len(p.roots) == 0 {
		return nil, p.errorAt(NoJson, "input contained no JSON value", p.pos)
	}
	return p.roots, nil
}

func (p *Parser) run() {
	for p.pos < len(p.data) && p.pendingErr == nil {
		c := p.data[p.pos]
		cls := classify.Byte(c)

		switch p.context {
		case Root:
			p.dispatchRoot(cls)
		case ObjectKey:
			p.dispatchObjectKey(cls)
		case ObjectColon:
			p.dispatchObjectColon(cls)
		case ObjectValue:
			p.dispatchObjectValue(cls)
		case ObjectComma:
			p.dispatchObjectComma(cls)
		case ArrayValue:
			p.dispatchArrayValue(cls)
		case ArrayComma:
			p.dispatchArrayComma(cls)
		case Exception:
			return
		}
	}
}

// --- whitespace helpers shared by every context ---

// skipSpace advances past a run of plain spaces, tabs, and carriage
// returns starting at the current position. It only ever gets called
// with a SpaceTabCR-classified byte at pos, so the run is at least one
// byte; the wide accelerator handles the common case of long
// indentation runs, falling back to a single byte at end-of-input.
func (p *Parser) skipSpace() {
	p.pos = cpuaccel.SkipSpaceTabCR(p.data, p.pos)
}

func (p *Parser) skipNewline() {
	p.pos++
	p.line++
	p.lineStart = p.pos
}

// --- Root ---

func (p *Parser) dispatchRoot(cls classify.Class) {
	switch cls {
	case classify.SpaceTabCR:
		p.skipSpace()
	case classify.Newline:
		p.skipNewline()
	case classify.StartObject:
		p.pushContainer(builder.GetObject(), nil, "", ObjectKey, Root)
	case classify.StartArray:
		p.pushContainer(builder.GetArray(), nil, "", ArrayValue, Root)
	case classify.Quote:
		v, err := p.scanQuotedString()
		if err != nil {
			p.fail(err)
			return
		}
		p.roots = append(p.roots, v)
	case classify.Other:
		v, err := p.scanOther()
		if err != nil {
			p.fail(err)
			return
		}
		p.roots = append(p.roots, v)
	case classify.AsciiControl:
		p.failAt(ControlChar, "control character outside string", p.pos)
	default:
		p.failAt(UnexpectedChar, "unexpected character at top level", p.pos)
	}
}

// --- ObjectKey ---

func (p *Parser) dispatchObjectKey(cls classify.Class) {
	switch cls {
	case classify.SpaceTabCR:
		p.skipSpace()
	case classify.Newline:
		p.skipNewline()
	case classify.Quote:
		key, err := p.scanQuotedString()
		if err != nil {
			p.fail(err)
			return
		}
		p.key = key.StringValue()
		p.context = ObjectColon
	case classify.EndObject:
		if !p.cur.IsEmpty() && !p.lenient {
			p.failAt(UnexpectedChar, "trailing comma before closing brace", p.pos)
			return
		}
		p.popContainer()
	case classify.Other:
		if !p.lenient {
			p.failAt(UnexpectedChar, "unquoted object key outside lenient mode", p.pos)
			return
		}
		start := p.pos
		v, err := p.scanOther()
		if err != nil {
			p.fail(err)
			return
		}
		if v.Kind() != value.KindString || v.IsNull() {
			p.failAt(InvalidKey, "unquoted object key must be a string", start)
			return
		}
		p.key = v.StringValue()
		p.context = ObjectColon
	case classify.AsciiControl:
		p.failAt(ControlChar, "control character outside string", p.pos)
	default:
		p.failAt(UnexpectedChar, "unexpected character where an object key was expected", p.pos)
	}
}

// --- ObjectColon ---

func (p *Parser) dispatchObjectColon(cls classify.Class) {
	switch cls {
	case classify.SpaceTabCR:
		p.skipSpace()
	case classify.Newline:
		p.skipNewline()
	case classify.NameSeparator:
		p.pos++
		p.context = ObjectValue
	case classify.AsciiControl:
		p.failAt(ControlChar, "control character outside string", p.pos)
	default:
		p.failAt(UnexpectedChar, "expected ':' after object key", p.pos)
	}
}

// --- ObjectValue ---

func (p *Parser) dispatchObjectValue(cls classify.Class) {
	switch cls {
	case classify.SpaceTabCR:
		p.skipSpace()
	case classify.Newline:
		p.skipNewline()
	case classify.StartObject:
		p.pushContainer(builder.GetObject(), p.cur, p.key, ObjectKey, ObjectComma)
	case classify.StartArray:
		p.pushContainer(builder.GetArray(), p.cur, p.key, ArrayValue, ObjectComma)
	case classify.Quote:
		v, err := p.scanQuotedString()
		if err != nil {
			p.fail(err)
			return
		}
		p.cur.Insert(p.key, v)
		p.key = ""
		p.context = ObjectComma
	case classify.Other:
		v, err := p.scanOther()
		if err != nil {
			p.fail(err)
			return
		}
		p.cur.Insert(p.key, v)
		p.key = ""
		p.context = ObjectComma
	case classify.AsciiControl:
		p.failAt(ControlChar, "control character outside string", p.pos)
	default:
		p.failAt(UnexpectedChar, "unexpected character where an object value was expected", p.pos)
	}
}

// --- ObjectComma ---

func (p *Parser) dispatchObjectComma(cls classify.Class) {
	switch cls {
	case classify.SpaceTabCR:
		p.skipSpace()
	case classify.Newline:
		p.skipNewline()
	case classify.ValueSeparator:
		p.pos++
		p.context = ObjectKey
	case classify.EndObject:
		p.popContainer()
	case classify.AsciiControl:
		p.failAt(ControlChar, "control character outside string", p.pos)
	default:
		p.failAt(UnexpectedChar, "expected ',' or '}' after object value", p.pos)
	}
}

// --- ArrayValue ---

func (p *Parser) dispatchArrayValue(cls classify.Class) {
	switch cls {
	case classify.SpaceTabCR:
		p.skipSpace()
	case classify.Newline:
		p.skipNewline()
	case classify.StartObject:
		p.pushContainer(builder.GetObject(), p.cur, "", ObjectKey, ArrayComma)
	case classify.StartArray:
		p.pushContainer(builder.GetArray(), p.cur, "", ArrayValue, ArrayComma)
	case classify.Quote:
		v, err := p.scanQuotedString()
		if err != nil {
			p.fail(err)
			return
		}
		p.cur.Append(v)
		p.context = ArrayComma
	case classify.EndArray:
		if !p.cur.IsEmpty() && !p.lenient {
			p.failAt(UnexpectedChar, "trailing comma before closing bracket", p.pos)
			return
		}
		p.popContainer()
	case classify.Other:
		v, err := p.scanOther()
		if err != nil {
			p.fail(err)
			return
		}
		p.cur.Append(v)
		p.context = ArrayComma
	case classify.AsciiControl:
		p.failAt(ControlChar, "control character outside string", p.pos)
	default:
		p.failAt(UnexpectedChar, "unexpected character where an array value was expected", p.pos)
	}
}

// --- ArrayComma ---

func (p *Parser) dispatchArrayComma(cls classify.Class) {
	switch cls {
	case classify.SpaceTabCR:
		p.skipSpace()
	case classify.Newline:
		p.skipNewline()
	case classify.ValueSeparator:
		p.pos++
		p.context = ArrayValue
	case classify.EndArray:
		p.popContainer()
	case classify.AsciiControl:
		p.failAt(ControlChar, "control character outside string", p.pos)
	default:
		p.failAt(UnexpectedChar, "expected ',' or ']' after array value", p.pos)
	}
}

// --- container push/pop ---

// pushContainer opens a new container builder, saving enough of the
// current frame that popContainer can restore it and attach the
// finished value to the right place.
func (p *Parser) pushContainer(next *builder.Builder, parent *builder.Builder, parentKey string, enter, resume Context) {
	p.stack = append(p.stack, frame{parent: parent, parentKey: parentKey, resumeContext: resume})
	p.cur = next
	p.key = ""
	p.pos++
	p.context = enter
}

func (p *Parser) popContainer() {
	finished := p.cur.Finalize()
	builder.Put(p.cur)

	f := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	p.pos++

	if f.parent == nil {
		p.roots = append(p.roots, finished)
	} else if f.parent.Kind() == builder.Array {
		f.parent.Append(finished)
	} else {
		f.parent.Insert(f.parentKey, finished)
	}

	p.cur = f.parent
	p.key = ""
	p.context = f.resumeContext
}

// --- scanning helpers ---

func (p *Parser) scanQuotedString() (value.Value, *Error) {
	end, hasEscape, serr := strscan.Scan(p.data, p.pos+1)
	if serr != nil {
		return value.Value{}, p.mapStrscanError(serr)
	}
	body := p.data[p.pos+1 : end]
	p.pos = end + 1

	if !hasEscape {
		return value.String(string(body)), nil
	}
	s, err := strscan.Unescape(body)
	if err != nil {
		return value.Value{}, p.errorAt(InvalidEscapeChar, err.Error(), end)
	}
	return value.String(s), nil
}

func (p *Parser) mapStrscanError(serr *strscan.Error) *Error {
	switch serr.Kind {
	case strscan.ErrEndedInsideQuote:
		return p.errorAt(EndedInsideQuote, "unexpected end of input inside quoted string", serr.Pos)
	case strscan.ErrTabNewlineCRInsideQuotes:
		return p.errorAt(TabNewlineCRInsideQuotes, "raw tab, newline, or carriage return inside quoted string", serr.Pos)
	case strscan.ErrControlCharInsideQuotes:
		return p.errorAt(ControlCharInsideQuotes, "control character inside quoted string", serr.Pos)
	case strscan.ErrInvalidEscapeChar:
		return p.errorAt(InvalidEscapeChar, "invalid escape sequence", serr.Pos)
	case strscan.ErrInvalidUTF8:
		return p.errorAt(InvalidUTF8, "invalid UTF-8 sequence inside quoted string", serr.Pos)
	default:
		return p.errorAt(UnexpectedChar, "invalid string", serr.Pos)
	}
}

// scanOther handles the Other character class in any value position: it
// tries a number first, then falls back to a keyword or (lenient only)
// an arbitrary unquoted literal.
func (p *Parser) scanOther() (value.Value, *Error) {
	start := p.pos
	data := p.data

	length, intPartLen := numscan.Scan(data[start:])
	if length > 0 {
		end := start + length
		if end < len(data) && classify.Byte(data[end]) == classify.Other {
			if !p.lenient {
				return value.Value{}, p.errorAt(NotAKeywordOrNumber, "trailing characters after number", start)
			}
			return p.scanUnquotedLiteral(start)
		}
		p.pos = end
		return value.FromNumberLiteral(string(data[start:end]), intPartLen), nil
	}

	return p.scanUnquotedLiteral(start)
}

// scanUnquotedLiteral extends the cursor over a full run of Other-class
// bytes starting at start and classifies it as a keyword or, in lenient
// mode, an arbitrary string.
func (p *Parser) scanUnquotedLiteral(start int) (value.Value, *Error) {
	p.pos = start
	lit := p.scanUnquotedRun()
	if v, ok := literalToValue(lit); ok {
		return v, nil
	}
	if !p.lenient {
		return value.Value{}, p.errorAt(NotAKeywordOrNumber, "unquoted token is not a keyword or number", start)
	}
	return value.String(lit), nil
}

// scanUnquotedRun advances the cursor over the maximal run of
// Other-class bytes starting at the current position and returns it.
func (p *Parser) scanUnquotedRun() string {
	start := p.pos
	data := p.data
	end := start
	for end < len(data) && classify.Byte(data[end]) == classify.Other {
		end++
	}
	p.pos = end
	return string(data[start:end])
}

func literalToValue(lit string) (value.Value, bool) {
	switch lit {
	case "null":
		return value.Null(), true
	case "true":
		return value.Bool(true), true
	case "false":
		return value.Bool(false), true
	default:
		return value.Value{}, false
	}
}

// --- error plumbing ---

func (p *Parser) fail(err *Error) {
	p.pendingErr = err
	p.context = Exception
}

func (p *Parser) failAt(kind ErrorKind, msg string, pos int) {
	p.fail(p.errorAt(kind, msg, pos))
}

func (p *Parser) errorAt(kind ErrorKind, msg string, pos int) *Error {
	return newError(kind, msg, p.line, pos)
}
