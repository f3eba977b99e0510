// Package numscan implements the byte-level finite scanner that
// recognizes the JSON number production:
//
//	[-]? (0 | [1-9][0-9]*) ( '.' [0-9]+ )? ( [eE][+-]?[0-9]+ )?
package numscan

type state uint8

const (
	stStart state = iota
	stInt1        // just saw '-'
	stInt2        // in the integer part, at least one digit seen
	stFracExpOrDone
	stFrac
	stExp1 // just saw 'e'/'E'
	stExp2 // at least one exponent digit seen
)

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Scan matches the longest number production prefix of data starting at
// data[0]. It returns the length of the accepted literal and the length
// of its integer part (the portion before any '.' or exponent). It never
// reads past len(data). A zero length return means the scanner could not
// reach an accepting state — the caller decides whether that means "not
// a number" or "malformed number" based on context.
func Scan(data []byte) (length int, intPartLen int) {
	st := stStart
	i := 0
	n := len(data)

	// accepting marks the last position at which the DFA was in an
	// accepting state, and the intPartLen at that point.
	accepting := -1
	acceptIntLen := 0

	for i < n {
		c := data[i]
		switch st {
		case stStart:
			switch {
			case c == '-':
				st = stInt1
			case c == '0':
				st = stFracExpOrDone
				accepting = i + 1
				acceptIntLen = i + 1
			case c >= '1' && c <= '9':
				st = stInt2
				accepting = i + 1
				acceptIntLen = i + 1
			default:
				return 0, 0
			}
		case stInt1:
			switch {
			case c == '0':
				st = stFracExpOrDone
				accepting = i + 1
				acceptIntLen = i + 1
			case c >= '1' && c <= '9':
				st = stInt2
				accepting = i + 1
				acceptIntLen = i + 1
			default:
				return 0, 0
			}
		case stInt2:
			switch {
			case isDigit(c):
				st = stInt2
				accepting = i + 1
				acceptIntLen = i + 1
			case c == '.':
				st = stFrac
			case c == 'e' || c == 'E':
				st = stExp1
			default:
				return accepting, acceptIntLen
			}
		case stFracExpOrDone:
			switch {
			case c == '.':
				st = stFrac
			case c == 'e' || c == 'E':
				st = stExp1
			default:
				return accepting, acceptIntLen
			}
		case stFrac:
			switch {
			case isDigit(c):
				st = stFrac
				accepting = i + 1
			case c == 'e' || c == 'E':
				st = stExp1
			default:
				return accepting, acceptIntLen
			}
		case stExp1:
			switch {
			case c == '+' || c == '-':
				st = stExp2
			case isDigit(c):
				st = stExp2
				accepting = i + 1
			default:
				return accepting, acceptIntLen
			}
		case stExp2:
			if isDigit(c) {
				accepting = i + 1
			} else {
				return accepting, acceptIntLen
			}
		}
		i++
	}

	if accepting < 0 {
		return 0, 0
	}
	return accepting, acceptIntLen
}
