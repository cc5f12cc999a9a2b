package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ResolveByErasedIdentity(t *testing.T) {
	f := newGenericFixture()
	g := f.g

	r := NewRegistry[string](g)
	r.Register(f.wrapperInt, "wrapper")

	h, ok := r.Resolve(f.wrapperS)
	require.True(t, ok)
	assert.Equal(t, "wrapper", h)

	h, ok = r.Resolve(f.wrapper)
	require.True(t, ok)
	assert.Equal(t, "wrapper", h)

	_, ok = r.Resolve(f.otherInt)
	assert.False(t, ok)

	_, ok = r.Resolve(None)
	assert.False(t, ok)
}

func TestRegistry_ResolveThroughBase(t *testing.T) {
	f := newGenericFixture()
	g := f.g

	derived := g.Add(Symbol{Kind: KindType, PkgPath: "lib", Name: "Derived", Base: f.wrapperInt})

	r := NewRegistry[int](g)

	// Resolved before registration, the miss is memoized and then cleared.
	_, ok := r.Resolve(derived)
	assert.False(t, ok)

	r.Register(f.wrapper, 7)

	h, ok := r.Resolve(derived)
	require.True(t, ok)
	assert.Equal(t, 7, h)
}

func TestRegistry_Find(t *testing.T) {
	f := newGenericFixture()
	g := f.g

	typ := g.Add(Symbol{Kind: KindType, Name: "T"})
	field := g.Add(Symbol{Kind: KindField, Name: "F", Owner: typ})
	g.Annotate(field, Annotation{Class: f.otherInt})
	g.Annotate(field, Annotation{Class: f.wrapperS, Args: []Arg{IntArg(3)}})

	r := NewRegistry[string](g)
	r.Register(f.wrapper, "wrapper")

	ann, h, ok := r.Find(field)
	require.True(t, ok)
	assert.Equal(t, "wrapper", h)
	assert.Equal(t, f.wrapperS, ann.Class)
	assert.Equal(t, 3, ann.Args[0].Int)

	_, _, ok = r.Find(typ)
	assert.False(t, ok)
}
