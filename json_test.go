package kestreljson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelcode/kestreljson/value"
)

func TestParseScalarsAndContainers(t *testing.T) {
	v, err := Parse([]byte(`{"a":[1,2,3],"b":null,"c":"x"}`), Options{})
	require.NoError(t, err)
	require.True(t, v.IsObject())

	a, ok := v.ObjectGet("a")
	require.True(t, ok)
	assert.True(t, a.Equal(value.Array([]value.Value{value.Int64(1), value.Int64(2), value.Int64(3)})))

	b, ok := v.ObjectGet("b")
	require.True(t, ok)
	assert.True(t, b.IsNull())
}

func TestParseStrictRejectsTrailingComma(t *testing.T) {
	_, err := Parse([]byte(`[1,2,]`), Options{})
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, UnexpectedChar, perr.Kind)
}

func TestParseLenientAllowsTrailingComma(t *testing.T) {
	v, err := Parse([]byte(`[1,2,]`), Options{Lenient: true})
	require.NoError(t, err)
	assert.True(t, v.Equal(value.Array([]value.Value{value.Int64(1), value.Int64(2)})))
}

func TestParseManyRejectsAsSingleValue(t *testing.T) {
	_, err := Parse([]byte(`1 2`), Options{})
	require.Error(t, err)

	roots, err := ParseMany([]byte(`1 2`), Options{})
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.True(t, roots[0].Equal(value.Int64(1)))
	assert.True(t, roots[1].Equal(value.Int64(2)))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid([]byte(`{"ok":true}`)))
	assert.False(t, Valid([]byte(`{`)))
	assert.False(t, Valid([]byte(``)))
}

func TestParseEmptyInputReportsNoJson(t *testing.T) {
	_, err := Parse([]byte(``), Options{})
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, NoJson, perr.Kind)
}

func TestParseDuplicateKeysLastWriteWins(t *testing.T) {
	v, err := Parse([]byte(`{"a":1,"a":2}`), Options{})
	require.NoError(t, err)
	got, ok := v.ObjectGet("a")
	require.True(t, ok)
	assert.True(t, got.Equal(value.Int64(2)))
	assert.Len(t, v.ObjectKeys(), 1)
}

func TestParseNestedStructures(t *testing.T) {
	v, err := Parse([]byte(`{"users":[{"name":"a"},{"name":"b"}]}`), Options{})
	require.NoError(t, err)
	users, ok := v.ObjectGet("users")
	require.True(t, ok)
	require.True(t, users.IsArray())
	require.Equal(t, 2, users.Len())
}

func TestParseBigIntAndHugeLiteralRoundTripThroughSerialize(t *testing.T) {
	v, err := Parse([]byte(`123456789012345678901234567890`), Options{})
	require.NoError(t, err)
	assert.Equal(t, "123456789012345678901234567890", v.String())

	v2, err := Parse([]byte(`1e400`), Options{})
	require.NoError(t, err)
	assert.Equal(t, "1e400", v2.String())
}
