package meta

import (
	"yamlmeta/internal/naming"
	"yamlmeta/internal/symbol"
)

// fixture is a small hand-built graph with the annotation classes declared.
type fixture struct {
	g    *symbol.Graph
	refs References
	str  symbol.ID
}

func newFixture() *fixture {
	g := symbol.NewGraph()
	f := &fixture{g: g}

	f.refs = References{
		Object: g.Add(symbol.Symbol{Kind: symbol.KindType, PkgPath: "yamlmeta/annotation", Name: "Object"}),
		Union:  g.Add(symbol.Symbol{Kind: symbol.KindType, PkgPath: "yamlmeta/annotation", Name: "Union"}),
		Ignore: g.Add(symbol.Symbol{Kind: symbol.KindType, PkgPath: "yamlmeta/annotation", Name: "Ignore"}),
		Member: g.Add(symbol.Symbol{Kind: symbol.KindType, PkgPath: "yamlmeta/annotation", Name: "Member"}),
		Formatter: g.Add(symbol.Symbol{
			Kind: symbol.KindType, PkgPath: "yamlmeta/annotation", Name: "Formatter", TypeParams: []string{"T"},
		}),
	}
	f.str = g.Add(symbol.Symbol{Kind: symbol.KindType, Name: "string"})

	return f
}

func (f *fixture) typ(name string, base symbol.ID) symbol.ID {
	return f.g.Add(symbol.Symbol{Kind: symbol.KindType, PkgPath: "example.com/shapes", Name: name, Base: base})
}

func (f *fixture) object(typ symbol.ID, args ...symbol.Arg) *symbol.Annotation {
	f.g.Annotate(typ, symbol.Annotation{Class: f.refs.Object, Args: args})
	ann, _ := symbol.AnnotationOf(f.g, typ, f.refs.Object)

	return ann
}

func (f *fixture) field(owner symbol.ID, name string, public bool) symbol.ID {
	access := symbol.AccessibilityPrivate
	if public {
		access = symbol.AccessibilityPublic
	}

	return f.g.Add(symbol.Symbol{
		Kind: symbol.KindField, Name: name, Owner: owner, Accessibility: access, ValueType: "string",
	})
}

func (f *fixture) property(owner symbol.ID, name string, getter, setter bool) symbol.ID {
	return f.g.Add(symbol.Symbol{
		Kind: symbol.KindProperty, Name: name, Owner: owner, Accessibility: symbol.AccessibilityPublic,
		HasGetter: getter, HasSetter: setter, ValueType: "string",
	})
}

func (f *fixture) member(sym symbol.ID, named map[string]symbol.Arg, args ...symbol.Arg) {
	f.g.Annotate(sym, symbol.Annotation{Class: f.refs.Member, Args: args, Named: named})
}

func (f *fixture) build(typ symbol.ID) *TypeMeta {
	object, _ := symbol.AnnotationOf(f.g, typ, f.refs.Object)
	decl := symbol.Declaration{Name: f.g.Get(typ).Name, Partial: true}

	return NewTypeMeta(f.g, f.refs, decl, typ, object)
}

func keyNames(t *TypeMeta) []string {
	names := make([]string, 0, len(t.MemberMetas))
	for _, m := range t.MemberMetas {
		names = append(names, m.KeyName)
	}

	return names
}

func snake() symbol.Arg {
	return symbol.EnumArg(int(naming.SnakeCase))
}
