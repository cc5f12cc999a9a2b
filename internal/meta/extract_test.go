package meta

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"yamlmeta/internal/symbol"
)

func TestExtractor_Extract(t *testing.T) {
	f := newFixture()

	order := f.typ("Order", symbol.None)
	f.object(order)
	f.field(order, "ID", true)

	undeclared := f.typ("External", symbol.None)
	f.object(undeclared)

	plain := f.typ("NotAnnotated", symbol.None)
	f.field(plain, "X", true)

	item := f.typ("Item", symbol.None)
	f.object(item, snake())

	decls := map[symbol.ID]symbol.Declaration{
		item:  {Name: "Item", Partial: true},
		order: {Name: "Order", Partial: true},
		plain: {Name: "NotAnnotated", Partial: true},
	}

	metas := NewExtractor(f.g, f.refs, WithLogger(zap.NewExample())).Extract(decls)
	require.Len(t, metas, 2)

	// symbol ID order, not map order
	assert.Equal(t, "Order", metas[0].TypeName)
	assert.Equal(t, "Item", metas[1].TypeName)
	assert.True(t, metas[1].IsPartialDeclaration())
}

func TestExtractor_Filter(t *testing.T) {
	f := newFixture()

	order := f.typ("Order", symbol.None)
	f.object(order)
	internal := f.typ("internalOrder", symbol.None)
	f.object(internal)

	decls := map[symbol.ID]symbol.Declaration{
		order:    {Name: "Order"},
		internal: {Name: "internalOrder"},
	}

	e := NewExtractor(f.g, f.refs, WithFilter(func(name string) bool {
		return !strings.Contains(name, ".internal")
	}))

	metas := e.Extract(decls)
	require.Len(t, metas, 1)
	assert.Equal(t, "Order", metas[0].TypeName)
	assert.NotNil(t, e.Builder())
}

func TestExtractor_Empty(t *testing.T) {
	f := newFixture()

	assert.Empty(t, NewExtractor(f.g, f.refs).Extract(nil))
}
