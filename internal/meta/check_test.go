package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yamlmeta/internal/diagnostic"
	"yamlmeta/internal/symbol"
)

func TestCheck(t *testing.T) {
	f := newFixture()

	ok := f.typ("Order", symbol.None)
	f.field(ok, "ID", true)
	nested := f.typ("point", symbol.None)
	f.field(nested, "X", true)
	external := f.typ("External", symbol.None)
	f.field(external, "Y", true)
	empty := f.typ("Empty", symbol.None)

	b := NewBuilder(f.g, f.refs)
	metas := []*TypeMeta{
		b.Build(symbol.Declaration{Name: "Order", Partial: true}, ok, nil),
		b.Build(symbol.Declaration{Name: "point", Nested: true}, nested, nil),
		b.Build(symbol.Declaration{Name: "External"}, external, nil),
		b.Build(symbol.Declaration{Name: "Empty", Partial: true}, empty, nil),
	}

	d := Check(metas)
	require.Len(t, d.Errors, 2)
	assert.Equal(t, diagnostic.CodeNested, d.Errors[0].Code)
	assert.Equal(t, "example.com/shapes.point", d.Errors[0].Type)
	assert.Equal(t, diagnostic.CodeNotPartial, d.Errors[1].Code)

	require.Len(t, d.Infos, 1)
	assert.Equal(t, "example.com/shapes.Empty", d.Infos[0].Type)
	assert.False(t, d.IsValid())
}

func TestCheck_Valid(t *testing.T) {
	d := Check(nil)
	assert.True(t, d.IsValid())
	assert.Empty(t, d.All())
}
