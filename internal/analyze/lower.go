package analyze

import (
	"cmp"
	"go/token"
	"go/types"
	"reflect"
	"slices"

	"yamlmeta/annotation"
	"yamlmeta/internal/symbol"
)

// typeSymbol returns the symbol for t, lowering it on first use.
func (a *Analyzer) typeSymbol(t types.Type) symbol.ID {
	t = types.Unalias(t)

	if id, ok := a.typeCache.At(t).(symbol.ID); ok {
		return id
	}

	if named, ok := t.(*types.Named); ok {
		return a.namedSymbol(named)
	}

	s := symbol.Symbol{Kind: symbol.KindType, Accessibility: symbol.AccessibilityPublic}

	if tp, ok := t.(*types.TypeParam); ok {
		s.Name = tp.Obj().Name()
	} else {
		s.Name = types.TypeString(t, (*types.Package).Name)
	}

	id := a.program.Graph.Add(s)
	a.typeCache.Set(t, id)

	return id
}

// namedSymbol lowers a named type. Struct and interface members are lowered
// right after the type itself is cached, so recursive references resolve to
// the same ID.
func (a *Analyzer) namedSymbol(named *types.Named) symbol.ID {
	obj := named.Obj()

	var pkgPath string
	if obj.Pkg() != nil {
		pkgPath = obj.Pkg().Path()
	}

	args := named.TypeArgs()

	if args.Len() == 0 && pkgPath == annotation.PkgPath && obj.Name() == annotation.FormatterClass {
		a.typeCache.Set(named, a.program.References.Formatter)
		return a.program.References.Formatter
	}

	s := symbol.Symbol{
		Kind:          symbol.KindType,
		Name:          obj.Name(),
		PkgPath:       pkgPath,
		Accessibility: accessibility(obj.Exported()),
	}

	if args.Len() > 0 {
		s.Origin = a.typeSymbol(named.Origin())
		for i := range args.Len() {
			s.TypeArgs = append(s.TypeArgs, a.typeSymbol(args.At(i)))
		}
	} else if params := named.TypeParams(); params.Len() > 0 {
		for i := range params.Len() {
			s.TypeParams = append(s.TypeParams, params.At(i).Obj().Name())
		}
	}

	// another lowering may have reached this type through the origin or args
	if id, ok := a.typeCache.At(named).(symbol.ID); ok {
		return id
	}

	id := a.program.Graph.Add(s)
	a.typeCache.Set(named, id)

	switch u := named.Underlying().(type) {
	case *types.Struct:
		a.lowerStruct(id, named, u)
	case *types.Interface:
		a.abstractMethods(id, u)
	}

	return id
}

// lowerStruct adds the members of a struct type: the zero-value constructor,
// fields, abstract methods of embedded interfaces, methods and properties.
func (a *Analyzer) lowerStruct(id symbol.ID, named *types.Named, st *types.Struct) {
	g := a.program.Graph
	obj := named.Obj()

	g.Add(symbol.Symbol{
		Kind:          symbol.KindConstructor,
		Name:          obj.Name(),
		PkgPath:       g.Get(id).PkgPath,
		Owner:         id,
		Implicit:      true,
		Accessibility: symbol.AccessibilityPublic,
	})

	for i := range st.NumFields() {
		f := st.Field(i)
		if f.Embedded() && a.lowerEmbedded(id, named, f) {
			continue
		}

		fid := g.Add(symbol.Symbol{
			Kind:          symbol.KindField,
			Name:          f.Name(),
			PkgPath:       g.Get(id).PkgPath,
			Owner:         id,
			Accessibility: accessibility(f.Exported()),
			ValueType:     typeString(f.Type(), obj.Pkg()),
		})

		a.annotateField(fid, named, f, reflect.StructTag(st.Tag(i)))
	}

	a.lowerMethods(id, named)
	a.linkOverrides(id)
}

// lowerEmbedded handles an embedded field. The first embedded named struct
// becomes the base type; embedded interfaces contribute abstract methods.
// It returns false when the field should be lowered as a regular field.
func (a *Analyzer) lowerEmbedded(owner symbol.ID, named *types.Named, f *types.Var) bool {
	g := a.program.Graph
	t := deref(f.Type())

	implicitField := func() {
		g.Add(symbol.Symbol{
			Kind:          symbol.KindField,
			Name:          f.Name(),
			PkgPath:       g.Get(owner).PkgPath,
			Owner:         owner,
			Implicit:      true,
			Accessibility: accessibility(f.Exported()),
			ValueType:     typeString(f.Type(), named.Obj().Pkg()),
		})
	}

	switch u := t.Underlying().(type) {
	case *types.Interface:
		implicitField()
		a.abstractMethods(owner, u)

		return true

	case *types.Struct:
		baseNamed, ok := t.(*types.Named)
		if !ok || g.Get(owner).Base != symbol.None {
			return false
		}

		base := a.typeSymbol(baseNamed)
		if base == owner {
			return false
		}

		g.Get(owner).Base = base
		implicitField()

		return true
	}

	return false
}

// abstractMethods adds the method set of iface to owner. Abstract members
// are never serialized.
func (a *Analyzer) abstractMethods(owner symbol.ID, iface *types.Interface) {
	g := a.program.Graph

	for i := range iface.NumMethods() {
		m := iface.Method(i)
		g.Add(symbol.Symbol{
			Kind:          symbol.KindMethod,
			Name:          m.Name(),
			PkgPath:       g.Get(owner).PkgPath,
			Owner:         owner,
			Abstract:      true,
			Accessibility: accessibility(m.Exported()),
		})
	}
}

// linkOverrides points each member at the nearest member with the same
// name up the base chain, mirroring Go's promotion shadowing. Plain methods
// only shadow plain methods: a lone getter on the derived type leaves the
// base property, and its still promoted setter, in place.
func (a *Analyzer) linkOverrides(owner symbol.ID) {
	g := a.program.Graph

	o := g.Get(owner)
	if o.Base == symbol.None {
		return
	}

	for _, mid := range o.Members {
		m := g.Get(mid)
		if !overridable(m) {
			continue
		}

		if target := a.shadowed(owner, m); target != symbol.None {
			m.Overridden = target
		}
	}
}

func (a *Analyzer) shadowed(owner symbol.ID, m *symbol.Symbol) symbol.ID {
	g := a.program.Graph

	for b := range symbol.BaseTypes(g, owner) {
		for _, id := range b.Members {
			s := g.Get(id)
			if !overridable(s) || s.Name != m.Name {
				continue
			}

			if (s.Kind == symbol.KindMethod) != (m.Kind == symbol.KindMethod) {
				return symbol.None
			}

			return id
		}
	}

	return symbol.None
}

func overridable(s *symbol.Symbol) bool {
	return s != nil && s.Kind != symbol.KindConstructor && !s.Implicit
}

// scopePos returns the position types.Eval resolves expressions from:
// package scope for package-level types, the enclosing function otherwise.
func scopePos(named *types.Named) token.Pos {
	obj := named.Obj()
	if obj.Pkg() != nil && obj.Parent() != nil && obj.Parent() != obj.Pkg().Scope() {
		return obj.Pos()
	}

	return token.NoPos
}

// evalType resolves a type expression written in a tag or directive.
func (a *Analyzer) evalType(named *types.Named, expr string) (symbol.ID, error) {
	pkg := named.Obj().Pkg()
	if pkg == nil {
		return symbol.None, errNoPackage
	}

	tv, err := types.Eval(a.fset, pkg, scopePos(named), expr)
	if err != nil {
		return symbol.None, err
	}

	if !tv.IsType() {
		return symbol.None, errNotAType
	}

	return a.typeSymbol(tv.Type), nil
}

func deref(t types.Type) types.Type {
	t = types.Unalias(t)
	if p, ok := t.(*types.Pointer); ok {
		return types.Unalias(p.Elem())
	}

	return t
}

func accessibility(exported bool) symbol.Accessibility {
	if exported {
		return symbol.AccessibilityPublic
	}

	return symbol.AccessibilityPrivate
}

func typeString(t types.Type, pkg *types.Package) string {
	return types.TypeString(t, types.RelativeTo(pkg))
}

func paramsOf(sig *types.Signature, pkg *types.Package) []symbol.Param {
	params := make([]symbol.Param, 0, sig.Params().Len())
	for i := range sig.Params().Len() {
		p := sig.Params().At(i)
		params = append(params, symbol.Param{Name: p.Name(), Type: typeString(p.Type(), pkg)})
	}

	return params
}

func sortByPos[T types.Object](objs []T) {
	slices.SortStableFunc(objs, func(x, y T) int {
		return cmp.Compare(x.Pos(), y.Pos())
	})
}
