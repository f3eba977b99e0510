package kestreljson

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectEncodingShortInput(t *testing.T) {
	assert.Equal(t, EncodingUTF8, DetectEncoding(nil))
	assert.Equal(t, EncodingUTF8, DetectEncoding([]byte{}))
	assert.Equal(t, EncodingUTF8, DetectEncoding([]byte{0, 0, 0}))
}

func TestDetectEncodingUTF8(t *testing.T) {
	assert.Equal(t, EncodingUTF8, DetectEncoding([]byte(`{"a":1}`)))
}

func TestDetectEncodingUTF32BE(t *testing.T) {
	assert.Equal(t, EncodingUTF32BE, DetectEncoding([]byte{0x00, 0x00, 0x00, '{'}))
}

func TestDetectEncodingUTF16BE(t *testing.T) {
	assert.Equal(t, EncodingUTF16BE, DetectEncoding([]byte{0x00, '{', 0x00, '"'}))
}

func TestDetectEncodingUTF32LE(t *testing.T) {
	assert.Equal(t, EncodingUTF32LE, DetectEncoding([]byte{'{', 0x00, 0x00, 0x00}))
}

func TestDetectEncodingUTF16LE(t *testing.T) {
	assert.Equal(t, EncodingUTF16LE, DetectEncoding([]byte{'{', 0x00, '"', 0x00}))
}

func TestEncodingString(t *testing.T) {
	assert.Equal(t, "UTF-8", EncodingUTF8.String())
	assert.Equal(t, "UTF-16LE", EncodingUTF16LE.String())
	assert.Equal(t, "UTF-16BE", EncodingUTF16BE.String())
	assert.Equal(t, "UTF-32LE", EncodingUTF32LE.String())
	assert.Equal(t, "UTF-32BE", EncodingUTF32BE.String())
	assert.Equal(t, "unknown", Encoding(99).String())
}

func TestParseRejectsNonUTF8(t *testing.T) {
	_, err := Parse([]byte{0x00, '{', 0x00, '"'}, Options{})
	assert.Error(t, err)

	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
	assert.Equal(t, UnsupportedEncoding, perr.Kind)
}
