package codec

import (
	"errors"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func roundTrip[T any](t *testing.T, f Formatter[T], v T) T {
	t.Helper()

	e := NewEmitter()
	f.Serialize(e, v, &SerializationContext{})

	data, err := e.Bytes()
	require.NoError(t, err)

	p, err := ParseBytes(data)
	require.NoError(t, err)

	got, err := f.Deserialize(p, &DeserializationContext{})
	require.NoError(t, err)
	assert.True(t, p.End(), "parser must advance past the value")

	return got
}

func TestBool(t *testing.T) {
	assert.True(t, roundTrip[bool](t, Bool{}, true))
	assert.False(t, roundTrip[bool](t, Bool{}, false))

	e := NewEmitter()
	Bool{}.Serialize(e, true, nil)

	data, err := e.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "true\n", string(data))
}

func TestBool_NotABool(t *testing.T) {
	p, err := ParseBytes([]byte("maybe"))
	require.NoError(t, err)

	_, err = Bool{}.Deserialize(p, nil)
	require.Error(t, err)
	assert.False(t, p.End())
}

func TestBool_RejectsNull(t *testing.T) {
	for _, in := range []string{"null", "~", "1", `"true"`} {
		t.Run(in, func(t *testing.T) {
			p, err := ParseBytes([]byte(in))
			require.NoError(t, err)

			_, err = Bool{}.Deserialize(p, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrWrongTag))
			assert.False(t, p.End(), "a rejected value must not be consumed")
		})
	}
}

func TestRune(t *testing.T) {
	for _, r := range []rune{'a', 'é', '世', unicode.MaxRune, 0} {
		assert.Equal(t, r, roundTrip[rune](t, Rune{}, r))
	}

	e := NewEmitter()
	Rune{}.Serialize(e, 'A', nil)

	data, err := e.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "65\n", string(data))
}

func TestRune_Overflow(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"above max rune", "1114112"},
		{"above uint32", "4294967296"},
		{"negative", "-1"},
		{"above int64", "18446744073709551615"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseBytes([]byte(tt.in))
			require.NoError(t, err)

			_, err = Rune{}.Deserialize(p, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrOverflow))
		})
	}
}

func TestRune_Negative(t *testing.T) {
	e := NewEmitter()
	Rune{}.Serialize(e, -1, nil)

	data, err := e.Bytes()
	require.NoError(t, err)

	p, err := ParseBytes(data)
	require.NoError(t, err)

	_, err = Rune{}.Deserialize(p, nil)
	assert.True(t, errors.Is(err, ErrOverflow))
	assert.False(t, p.End())
}

func TestRune_NotAnInt(t *testing.T) {
	p, err := ParseBytes([]byte("abc"))
	require.NoError(t, err)

	_, err = Rune{}.Deserialize(p, nil)
	assert.True(t, errors.Is(err, ErrWrongTag))
}

func TestNullable(t *testing.T) {
	f := NewNullable[bool](Bool{})

	v := true
	got := roundTrip[*bool](t, f, &v)
	require.NotNil(t, got)
	assert.True(t, *got)

	assert.Nil(t, roundTrip[*bool](t, f, nil))

	e := NewEmitter()
	f.Serialize(e, nil, nil)

	data, err := e.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "null\n", string(data))
}

func TestNullable_Sequence(t *testing.T) {
	f := NewNullable[rune](Rune{})

	p, err := ParseBytes([]byte("[~, 97, null]"))
	require.NoError(t, err)

	first, err := f.Deserialize(p, nil)
	require.NoError(t, err)
	assert.Nil(t, first)

	second, err := f.Deserialize(p, nil)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, 'a', *second)

	third, err := f.Deserialize(p, nil)
	require.NoError(t, err)
	assert.Nil(t, third)
	assert.True(t, p.End())
}

func TestParser_Errors(t *testing.T) {
	p := NewParser()

	_, err := p.ScalarAsBool()
	assert.True(t, errors.Is(err, ErrUnexpectedEnd))
	assert.False(t, p.IsNullScalar())
	assert.False(t, p.Read())

	p, err = ParseBytes([]byte("[[1, 2]]"))
	require.NoError(t, err)

	_, err = p.ScalarAsInt64()
	assert.True(t, errors.Is(err, ErrNotScalar))

	_, err = ParseBytes([]byte("[unterminated"))
	require.Error(t, err)
}

func TestEmitter_Sequence(t *testing.T) {
	e := NewEmitter()
	e.WriteString("true")
	e.WriteInt(-3)
	e.WriteNull()

	require.Len(t, e.Nodes(), 3)
	assert.Equal(t, yaml.ScalarNode, e.Nodes()[0].Kind)

	data, err := e.Bytes()
	require.NoError(t, err)

	p, err := ParseBytes(data)
	require.NoError(t, err)

	n, ok := p.Current()
	require.True(t, ok)
	assert.Equal(t, "true", n.Value)
	assert.Equal(t, "!!str", n.ShortTag())

	require.True(t, p.Read())
	require.True(t, p.Read())
	assert.True(t, p.IsNullScalar())
	assert.False(t, p.Read())
}
