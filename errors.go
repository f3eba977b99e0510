package kestreljson

import "github.com/kestrelcode/kestreljson/internal/parser"

// ErrorKind discriminates the reason a parse failed. See the ErrorKind
// constants for the full taxonomy.
type ErrorKind = parser.ErrorKind

// The full set of ways a parse can fail.
const (
	NoJson                   = parser.NoJson
	MultipleRoots            = parser.MultipleRoots
	InvalidChar              = parser.InvalidChar
	ControlChar              = parser.ControlChar
	EndedInsideStructure     = parser.EndedInsideStructure
	EndedInsideQuote         = parser.EndedInsideQuote
	UnexpectedChar           = parser.UnexpectedChar
	TabNewlineCRInsideQuotes = parser.TabNewlineCRInsideQuotes
	ControlCharInsideQuotes  = parser.ControlCharInsideQuotes
	InvalidEscapeChar        = parser.InvalidEscapeChar
	InvalidKey               = parser.InvalidKey
	NotAKeywordOrNumber      = parser.NotAKeywordOrNumber
	InvalidUTF8              = parser.InvalidUTF8
	UnsupportedEncoding      = parser.UnsupportedEncoding
)

// ParseError reports why a parse failed, with positional context.
type ParseError = parser.Error
