// Package cpuaccel provides a CPU-feature-gated fast path for the one
// operation the classifier's byte-at-a-time loop spends the most time
// on outside of string/number bodies: skipping runs of insignificant
// whitespace between structural tokens. It picks a wider processing
// stride when the host has a modern vector unit, matching the grain
// the AVX2/SSE4.2 detection served in the source this package is
// grounded on, but does the actual work in portable Go using an
// eight-bytes-at-a-time SWAR trick rather than assembly.
package cpuaccel

import (
	"encoding/binary"
	"math/bits"

	"golang.org/x/sys/cpu"
)

// WideStride reports how many bytes the skip functions process per word
// on this host. AVX2/ASIMD-capable hosts get a two-word (16-byte)
// stride; everything else gets a single 8-byte word. Nothing here
// issues actual vector instructions — the feature check only sizes the
// portable word-at-a-time loop.
func WideStride() int {
	if cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD {
		return 16
	}
	return 8
}

const (
	spaceWord = 0x2020202020202020
	tabWord   = 0x0909090909090909
	crWord    = 0x0d0d0d0d0d0d0d0d
	nlWord    = 0x0a0a0a0a0a0a0a0a
	hiBits    = 0x8080808080808080
	loBits    = 0x0101010101010101
	lo7Bits   = 0x7f7f7f7f7f7f7f7f
)

// hasByteMask returns, for each byte lane of w, 0x80 if that lane
// equals target and 0x00 otherwise. Each lane is tested on its own low
// seven bits plus its high bit, so no carry crosses a lane boundary and
// a lane next to a match is never flagged by mistake.
func hasByteMask(w, target uint64) uint64 {
	x := w ^ target
	return ^(((x & lo7Bits) + lo7Bits) | x | lo7Bits)
}

// firstNonMatchLane returns the byte offset, within an 8-byte word, of
// the first lane whose mask bit is clear.
func firstNonMatchLane(mask uint64) int {
	nonMatch := (^mask) & hiBits
	return bits.TrailingZeros64(nonMatch) / 8
}

// skipRun advances over the longest run starting at pos whose bytes all
// satisfy wordMask (a per-byte match test) and byteMatch (the
// byte-at-a-time equivalent for the tail shorter than one word).
func skipRun(data []byte, pos int, wordMask func(uint64) uint64, byteMatch func(byte) bool) int {
	stride := WideStride()
	i := pos
	n := len(data)

	for i+stride <= n {
		if stride == 16 {
			w1 := binary.LittleEndian.Uint64(data[i:])
			m1 := wordMask(w1)
			if m1 != hiBits {
				return i + firstNonMatchLane(m1)
			}
			w2 := binary.LittleEndian.Uint64(data[i+8:])
			m2 := wordMask(w2)
			if m2 != hiBits {
				return i + 8 + firstNonMatchLane(m2)
			}
			i += 16
			continue
		}

		w := binary.LittleEndian.Uint64(data[i:])
		m := wordMask(w)
		if m != hiBits {
			return i + firstNonMatchLane(m)
		}
		i += 8
	}

	for i < n && byteMatch(data[i]) {
		i++
	}
	return i
}

// SkipSpaceTabCR returns the index of the first byte at or after pos
// that is not a plain space, tab, or carriage return. Newlines are
// deliberately excluded so callers can still count lines one at a time;
// this only accelerates the common case of horizontal indentation runs.
func SkipSpaceTabCR(data []byte, pos int) int {
	return skipRun(data, pos,
		func(w uint64) uint64 {
			return hasByteMask(w, spaceWord) | hasByteMask(w, tabWord) | hasByteMask(w, crWord)
		},
		func(c byte) bool { return c == ' ' || c == '\t' || c == '\r' },
	)
}

// SkipWhitespace returns the index of the first byte at or after pos
// that is not one of ' ', '\t', '\n', '\r'. Unlike SkipSpaceTabCR it
// does not distinguish newlines, so it is suited to contexts, like
// leading-whitespace trims, that don't need a line count.
func SkipWhitespace(data []byte, pos int) int {
	return skipRun(data, pos,
		func(w uint64) uint64 {
			return hasByteMask(w, spaceWord) | hasByteMask(w, tabWord) | hasByteMask(w, crWord) | hasByteMask(w, nlWord)
		},
		func(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' },
	)
}
