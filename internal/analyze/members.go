package analyze

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"strings"

	"yamlmeta/annotation"
	"yamlmeta/internal/diagnostic"
	"yamlmeta/internal/meta"
	"yamlmeta/internal/naming"
	"yamlmeta/internal/symbol"
)

var (
	errNoPackage = errors.New("type has no package")
	errNotAType  = errors.New("expression is not a type")
)

const setterPrefix = "Set"

// applyTypeDirectives turns the directives of a type declaration into
// annotations on id.
func (a *Analyzer) applyTypeDirectives(id symbol.ID, named *types.Named, doc *ast.CommentGroup) {
	refs := a.program.References
	typeName := named.Obj().Name()

	dirs, err := parseDirectives(doc)
	if err != nil {
		a.report(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityWarning,
			Code:     diagnostic.CodeMalformedDirective,
			Message:  err.Error(),
			Type:     typeName,
		}, doc.Pos())
	}

	for _, d := range dirs {
		switch d.name {
		case annotation.DirectiveObject:
			ann := symbol.Annotation{Class: refs.Object}

			if len(d.args) > 0 {
				c, err := naming.ParseConvention(d.args[0])
				if err != nil {
					a.report(diagnostic.Diagnostic{
						Severity: diagnostic.SeverityWarning,
						Code:     diagnostic.CodeUnknownConvention,
						Message:  fmt.Sprintf("%v, using %s", err, naming.Default),
						Type:     typeName,
					}, d.pos)
				} else {
					ann.Args = append(ann.Args, symbol.EnumArg(int(c)))
				}
			}

			a.program.Graph.Annotate(id, ann)

		case annotation.DirectiveUnion:
			if len(d.args) != 2 {
				a.report(diagnostic.Diagnostic{
					Severity: diagnostic.SeverityWarning,
					Code:     diagnostic.CodeMalformedDirective,
					Message:  fmt.Sprintf("union takes a tag and a type, got %d arguments", len(d.args)),
					Type:     typeName,
				}, d.pos)
			}

			a.program.Graph.Annotate(id, symbol.Annotation{Class: refs.Union, Args: a.unionArgs(named, d)})

		default:
			a.report(diagnostic.Diagnostic{
				Severity: diagnostic.SeverityWarning,
				Code:     diagnostic.CodeUnknownDirective,
				Message:  fmt.Sprintf("directive %q is not valid on a type", d.name),
				Type:     typeName,
			}, d.pos)
		}
	}
}

// unionArgs converts union directive arguments. The first is the tag, the
// second the variant type. An unresolved type is kept as a string so the
// argument count is preserved.
func (a *Analyzer) unionArgs(named *types.Named, d directive) []symbol.Arg {
	args := make([]symbol.Arg, 0, len(d.args))

	for i, raw := range d.args {
		if i != 1 {
			args = append(args, symbol.StringArg(raw))
			continue
		}

		variant, err := a.evalType(named, raw)
		if err != nil {
			a.report(diagnostic.Diagnostic{
				Severity: diagnostic.SeverityWarning,
				Code:     diagnostic.CodeUnresolvedType,
				Message:  fmt.Sprintf("union variant %s: %v", raw, err),
				Type:     named.Obj().Name(),
			}, d.pos)

			args = append(args, symbol.StringArg(raw))

			continue
		}

		args = append(args, symbol.TypeArg(variant))
	}

	return args
}

// annotateField converts the struct tags of a field into annotations.
func (a *Analyzer) annotateField(fid symbol.ID, named *types.Named, f *types.Var, tag reflect.StructTag) {
	refs := a.program.References

	opts, err := parseMemberTag(tag)
	if err != nil {
		a.report(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityWarning,
			Code:     diagnostic.CodeMalformedTag,
			Message:  err.Error(),
			Type:     named.Obj().Name(),
			Member:   f.Name(),
		}, f.Pos())
	}

	switch {
	case opts.ignore:
		a.program.Graph.Annotate(fid, symbol.Annotation{Class: refs.Ignore})
	case opts.present:
		a.program.Graph.Annotate(fid, memberAnnotation(refs.Member, opts))
	}

	if expr, ok := tag.Lookup(annotation.FormatterTagKey); ok {
		a.annotateFormatter(fid, named, f.Name(), expr, f.Pos())
	}
}

// annotateFormatter attaches the formatter type named by expr to a member.
func (a *Analyzer) annotateFormatter(mid symbol.ID, named *types.Named, member, expr string, pos token.Pos) {
	class, err := a.evalType(named, expr)
	if err != nil {
		a.report(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityWarning,
			Code:     diagnostic.CodeUnresolvedType,
			Message:  fmt.Sprintf("formatter %s: %v", expr, err),
			Type:     named.Obj().Name(),
			Member:   member,
		}, pos)

		return
	}

	a.program.Graph.Annotate(mid, symbol.Annotation{Class: class})
}

func memberAnnotation(class symbol.ID, opts memberOptions) symbol.Annotation {
	ann := symbol.Annotation{Class: class, Named: make(map[string]symbol.Arg)}

	if opts.name != "" {
		ann.Named[meta.ArgName] = symbol.StringArg(opts.name)
	}

	if opts.hasOrder {
		ann.Named[meta.ArgOrder] = symbol.IntArg(opts.order)
	}

	return ann
}

// accessor is one half of a property: a getter or a setter method.
type accessor struct {
	fn      *types.Func
	indexed bool
	value   types.Type
}

// property pairs the X and SetX methods of a type.
type property struct {
	name   string
	getter *accessor
	setter *accessor
}

// lowerMethods adds the methods of named. X/SetX pairs become properties;
// a getter without a setter only becomes a property when it carries the
// member directive.
func (a *Analyzer) lowerMethods(owner symbol.ID, named *types.Named) {
	g := a.program.Graph
	pkg := named.Obj().Pkg()

	fns := make([]*types.Func, 0, named.NumMethods())
	for i := range named.NumMethods() {
		fns = append(fns, named.Method(i))
	}

	sortByPos(fns)

	var (
		props   []*property
		byName  = make(map[string]*property)
		methods []*types.Func
	)

	prop := func(name string) *property {
		p, ok := byName[name]
		if !ok {
			p = &property{name: name}
			byName[name] = p
			props = append(props, p)
		}

		return p
	}

	for _, fn := range fns {
		if acc, ok := getterOf(fn); ok {
			if p := byName[fn.Name()]; p == nil || p.getter == nil {
				prop(fn.Name()).getter = acc
				continue
			}
		}

		if name, acc, ok := setterOf(fn); ok {
			if p := byName[name]; p == nil || p.setter == nil {
				prop(name).setter = acc
				continue
			}
		}

		methods = append(methods, fn)
	}

	for _, p := range props {
		if p.setter == nil && !hasDirective(a.docOf(p.getter.fn), annotation.DirectiveMember) {
			methods = append(methods, p.getter.fn)
			continue
		}

		if p.getter != nil && p.setter != nil &&
			(p.getter.indexed != p.setter.indexed || !types.Identical(p.getter.value, p.setter.value)) {
			methods = append(methods, p.getter.fn, p.setter.fn)
			continue
		}

		a.lowerProperty(owner, named, p, pkg)
	}

	sortByPos(methods)

	for _, fn := range methods {
		g.Add(symbol.Symbol{
			Kind:          symbol.KindMethod,
			Name:          fn.Name(),
			PkgPath:       g.Get(owner).PkgPath,
			Owner:         owner,
			Accessibility: accessibility(fn.Exported()),
		})
	}
}

func (a *Analyzer) lowerProperty(owner symbol.ID, named *types.Named, p *property, pkg *types.Package) {
	g := a.program.Graph

	first := p.getter
	if first == nil {
		first = p.setter
	}

	pid := g.Add(symbol.Symbol{
		Kind:          symbol.KindProperty,
		Name:          p.name,
		PkgPath:       g.Get(owner).PkgPath,
		Owner:         owner,
		Accessibility: accessibility(token.IsExported(p.name)),
		HasGetter:     p.getter != nil,
		HasSetter:     p.setter != nil,
		Indexer:       first.indexed,
		ValueType:     typeString(first.value, pkg),
	})

	for _, acc := range []*accessor{p.getter, p.setter} {
		if acc != nil {
			a.applyMemberDirectives(pid, named, p.name, a.docOf(acc.fn))
		}
	}
}

// applyMemberDirectives turns the directives on a method into annotations
// of the member it was lowered to.
func (a *Analyzer) applyMemberDirectives(mid symbol.ID, named *types.Named, member string, doc *ast.CommentGroup) {
	refs := a.program.References
	typeName := named.Obj().Name()

	malformed := func(msg string, pos token.Pos) {
		a.report(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityWarning,
			Code:     diagnostic.CodeMalformedDirective,
			Message:  msg,
			Type:     typeName,
			Member:   member,
		}, pos)
	}

	dirs, err := parseDirectives(doc)
	if err != nil {
		malformed(err.Error(), doc.Pos())
	}

	for _, d := range dirs {
		switch d.name {
		case annotation.DirectiveMember:
			opts, err := parseMemberDirective(d.args)
			if err != nil {
				malformed(err.Error(), d.pos)
			}

			a.program.Graph.Annotate(mid, memberAnnotation(refs.Member, opts))

		case annotation.DirectiveIgnore:
			a.program.Graph.Annotate(mid, symbol.Annotation{Class: refs.Ignore})

		case annotation.DirectiveFormatter:
			if len(d.args) != 1 {
				malformed(fmt.Sprintf("formatter takes one type, got %d arguments", len(d.args)), d.pos)
				continue
			}

			a.annotateFormatter(mid, named, member, d.args[0], d.pos)

		default:
			a.report(diagnostic.Diagnostic{
				Severity: diagnostic.SeverityWarning,
				Code:     diagnostic.CodeUnknownDirective,
				Message:  fmt.Sprintf("directive %q is not valid on a member", d.name),
				Type:     typeName,
				Member:   member,
			}, d.pos)
		}
	}
}

// getterOf reports whether fn has the shape X() V or X(int) V.
func getterOf(fn *types.Func) (*accessor, bool) {
	sig := fn.Signature()
	if sig.TypeParams().Len() > 0 || sig.Results().Len() != 1 || sig.Variadic() {
		return nil, false
	}

	value := sig.Results().At(0).Type()

	switch sig.Params().Len() {
	case 0:
		return &accessor{fn: fn, value: value}, true
	case 1:
		if isInt(sig.Params().At(0).Type()) {
			return &accessor{fn: fn, indexed: true, value: value}, true
		}
	}

	return nil, false
}

// setterOf reports whether fn has the shape SetX(V) or SetX(int, V).
func setterOf(fn *types.Func) (string, *accessor, bool) {
	name, ok := strings.CutPrefix(fn.Name(), setterPrefix)
	if !ok || name == "" {
		return "", nil, false
	}

	sig := fn.Signature()
	if sig.TypeParams().Len() > 0 || sig.Results().Len() != 0 || sig.Variadic() {
		return "", nil, false
	}

	params := sig.Params()

	switch params.Len() {
	case 1:
		return name, &accessor{fn: fn, value: params.At(0).Type()}, true
	case 2:
		if isInt(params.At(0).Type()) {
			return name, &accessor{fn: fn, indexed: true, value: params.At(1).Type()}, true
		}
	}

	return "", nil, false
}

func isInt(t types.Type) bool {
	b, ok := types.Unalias(t).(*types.Basic)
	return ok && b.Kind() == types.Int
}
