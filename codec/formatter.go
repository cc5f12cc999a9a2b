package codec

import (
	"fmt"
	"unicode"
)

// SerializationContext is passed through a serialization run.
type SerializationContext struct {
	// Depth is the current nesting depth, maintained by generated code.
	Depth int
}

// DeserializationContext is passed through a deserialization run.
type DeserializationContext struct {
	Depth int
}

// Formatter writes and reads values of type T.
// Deserialize must leave the parser positioned after the consumed value.
type Formatter[T any] interface {
	Serialize(e *Emitter, v T, ctx *SerializationContext)
	Deserialize(p *Parser, ctx *DeserializationContext) (T, error)
}

// Bool formats bool values as YAML booleans.
type Bool struct{}

var _ Formatter[bool] = Bool{}

// Serialize writes v.
func (Bool) Serialize(e *Emitter, v bool, _ *SerializationContext) {
	e.WriteBool(v)
}

// Deserialize reads a boolean scalar.
func (Bool) Deserialize(p *Parser, _ *DeserializationContext) (bool, error) {
	v, err := p.ScalarAsBool()
	if err != nil {
		return false, err
	}

	p.Read()

	return v, nil
}

// Rune formats rune values as their integer code point.
type Rune struct{}

var _ Formatter[rune] = Rune{}

// Serialize writes the code point of v. Out-of-range runes are written
// as-is and rejected on the way back.
func (Rune) Serialize(e *Emitter, v rune, _ *SerializationContext) {
	e.WriteInt(int64(v))
}

// Deserialize reads a code point. Negative values and values above
// unicode.MaxRune fail with ErrOverflow.
func (Rune) Deserialize(p *Parser, _ *DeserializationContext) (rune, error) {
	v, err := p.ScalarAsInt64()
	if err != nil {
		return 0, err
	}

	if v < 0 || v > unicode.MaxRune {
		return 0, fmt.Errorf("%w: %d is not a rune", ErrOverflow, v)
	}

	p.Read()

	return rune(v), nil
}

// Nullable lifts a Formatter[T] to pointers; nil is written as null.
type Nullable[T any] struct {
	Inner Formatter[T]
}

// NewNullable wraps inner.
func NewNullable[T any](inner Formatter[T]) Nullable[T] {
	return Nullable[T]{Inner: inner}
}

// Serialize writes null for nil, otherwise delegates to the inner formatter.
func (n Nullable[T]) Serialize(e *Emitter, v *T, ctx *SerializationContext) {
	if v == nil {
		e.WriteNull()
		return
	}

	n.Inner.Serialize(e, *v, ctx)
}

// Deserialize consumes a null marker and returns nil, otherwise delegates.
func (n Nullable[T]) Deserialize(p *Parser, ctx *DeserializationContext) (*T, error) {
	if p.IsNullScalar() {
		p.Read()
		return nil, nil
	}

	v, err := n.Inner.Deserialize(p, ctx)
	if err != nil {
		return nil, err
	}

	return &v, nil
}
