package dump

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yamlmeta/internal/meta"
	"yamlmeta/internal/naming"
	"yamlmeta/internal/symbol"
)

const pkg = "example.com/shapes"

// shapeModel builds Shape{Label, Area} with a union entry and an Upper[string]
// formatter on Label.
func shapeModel(t *testing.T) (*symbol.Graph, *meta.TypeMeta) {
	t.Helper()

	g := symbol.NewGraph()
	class := func(name string, params ...string) symbol.ID {
		return g.Add(symbol.Symbol{Kind: symbol.KindType, PkgPath: "yamlmeta/annotation", Name: name, TypeParams: params})
	}

	refs := meta.References{
		Object:    class("Object"),
		Union:     class("Union"),
		Ignore:    class("Ignore"),
		Member:    class("Member"),
		Formatter: class("Formatter", "T"),
	}

	str := g.Add(symbol.Symbol{Kind: symbol.KindType, Name: "string"})
	fmtOfString := g.Add(symbol.Symbol{Kind: symbol.KindType, PkgPath: "yamlmeta/annotation", Name: "Formatter", Origin: refs.Formatter, TypeArgs: []symbol.ID{str}})
	upperDef := g.Add(symbol.Symbol{Kind: symbol.KindType, PkgPath: pkg, Name: "Upper", TypeParams: []string{"T"}})
	upper := g.Add(symbol.Symbol{Kind: symbol.KindType, PkgPath: pkg, Name: "Upper", Origin: upperDef, TypeArgs: []symbol.ID{str}, Base: fmtOfString})

	shape := g.Add(symbol.Symbol{Kind: symbol.KindType, PkgPath: pkg, Name: "Shape", Accessibility: symbol.AccessibilityPublic})
	circle := g.Add(symbol.Symbol{Kind: symbol.KindType, PkgPath: pkg, Name: "Circle", Base: shape})

	g.Add(symbol.Symbol{Kind: symbol.KindConstructor, Name: "Shape", Owner: shape, Implicit: true})
	g.Add(symbol.Symbol{
		Kind: symbol.KindConstructor, Name: "NewShape", Owner: shape, Accessibility: symbol.AccessibilityPublic,
		Params: []symbol.Param{{Name: "label", Type: "string"}},
	})

	label := g.Add(symbol.Symbol{Kind: symbol.KindField, Name: "Label", Owner: shape, Accessibility: symbol.AccessibilityPublic, ValueType: "string"})
	g.Annotate(label, symbol.Annotation{Class: upper})

	area := g.Add(symbol.Symbol{
		Kind: symbol.KindProperty, Name: "Area", Owner: shape, Accessibility: symbol.AccessibilityPublic,
		HasGetter: true, ValueType: "float64",
	})
	g.Annotate(area, symbol.Annotation{Class: refs.Member, Named: map[string]symbol.Arg{meta.ArgOrder: symbol.IntArg(10)}})

	g.Annotate(shape, symbol.Annotation{Class: refs.Object, Args: []symbol.Arg{symbol.EnumArg(int(naming.SnakeCase))}})
	g.Annotate(shape, symbol.Annotation{Class: refs.Union, Args: []symbol.Arg{symbol.StringArg("circle"), symbol.TypeArg(circle)}})

	object, _ := symbol.AnnotationOf(g, shape, refs.Object)
	tm := meta.NewBuilder(g, refs).Build(symbol.Declaration{Name: "Shape", Partial: true}, shape, object)
	require.NotNil(t, tm)

	return g, tm
}

func TestNew(t *testing.T) {
	g, tm := shapeModel(t)

	d, err := New(g, tm)
	require.NoError(t, err)

	want := &Document{
		Package:                 pkg,
		TypeName:                "Shape",
		FullTypeName:            pkg + ".Shape",
		TypeNameWithoutGenerics: "Shape",
		NamingConvention:        "snake_case",
		IsUnion:                 true,
		Partial:                 true,
		Constructors:            []Constructor{{Name: "NewShape", Params: []Param{{Name: "label", Type: "string"}}}},
		Unions:                  []Union{{Tag: "circle", TypeName: "Circle", FullTypeName: pkg + ".Circle"}},
		Members: []Member{
			{Name: "Label", Key: "label", Kind: "field", Type: "string", Order: 0, Access: "field", Formatter: pkg + ".Upper[string]"},
			{Name: "Area", Key: "area", Kind: "property", Type: "float64", Order: 10, Explicit: true, Access: "getter"},
		},
	}

	if diff := cmp.Diff(want, d, cmp.FilterPath(func(p cmp.Path) bool {
		return p.Last().String() == ".Fingerprint"
	}, cmp.Ignore())); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s\n%s", diff, spew.Sdump(d))
	}

	assert.Len(t, d.Fingerprint, 16)
}

func TestNew_Idempotent(t *testing.T) {
	g1, tm1 := shapeModel(t)
	g2, tm2 := shapeModel(t)

	d1, err := New(g1, tm1)
	require.NoError(t, err)

	d2, err := New(g2, tm2)
	require.NoError(t, err)

	assert.Equal(t, d1.Fingerprint, d2.Fingerprint)

	b1, err := d1.Marshal()
	require.NoError(t, err)

	b2, err := d2.Marshal()
	require.NoError(t, err)

	assert.Equal(t, string(b1), string(b2))
}

func TestDocument_RoundTrip(t *testing.T) {
	g, tm := shapeModel(t)

	d, err := New(g, tm)
	require.NoError(t, err)

	data, err := d.Marshal()
	require.NoError(t, err)

	parsed, err := Unmarshal(data)
	require.NoError(t, err)

	ok, err := parsed.Verify()
	require.NoError(t, err)
	assert.True(t, ok)

	parsed.Members[0].Key = "title"

	ok, err = parsed.Verify()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUnmarshal_Invalid(t *testing.T) {
	_, err := Unmarshal([]byte("{"))
	require.Error(t, err)
}

func TestRenderAndWrite(t *testing.T) {
	g, tm := shapeModel(t)

	d, err := New(g, tm)
	require.NoError(t, err)

	files, err := Render([]*Document{d})
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "example_com_shapes_Shape.json", files[0].Filename)
	assert.Equal(t, IndexFilename, files[1].Filename)
	assert.Contains(t, string(files[1].Content), d.Fingerprint)

	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, WriteFiles(files, dir))

	content, err := os.ReadFile(filepath.Join(dir, files[0].Filename))
	require.NoError(t, err)
	assert.Equal(t, files[0].Content, content)
}

func TestFilename_Generic(t *testing.T) {
	d := &Document{Package: "yamlmeta/examples/shapes", TypeNameWithoutGenerics: "Pair_K__V_"}
	assert.Equal(t, "yamlmeta_examples_shapes_Pair_K__V_.json", Filename(d))
}
