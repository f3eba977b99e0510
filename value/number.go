package value

import (
	"math/big"
	"strconv"
)

// FromNumberLiteral applies the number representation policy to a
// grammar-valid JSON number literal (as produced by the number scanner):
// given the literal's source bytes and the length of its integer part,
// it picks the narrowest exact representation.
//
//   - No fraction, no exponent (intPartLen == len(literal)):
//     Int64 if it fits in a signed 64-bit integer, else BigInt.
//   - Otherwise: Double if the literal converts to a finite float64,
//     else HugeLiteral preserving the exact source bytes.
func FromNumberLiteral(literal string, intPartLen int) Value {
	if intPartLen == len(literal) {
		if i, err := strconv.ParseInt(literal, 10, 64); err == nil {
			return Int64(i)
		}
		n := new(big.Int)
		if _, ok := n.SetString(literal, 10); ok {
			return BigInt(n)
		}
		// Grammar-valid integer literals always parse into big.Int;
		// this branch is unreachable for well-formed input.
		return HugeLiteral(literal)
	}

	f, err := strconv.ParseFloat(literal, 64)
	if err == nil {
		return Double(f)
	}
	return HugeLiteral(literal)
}
