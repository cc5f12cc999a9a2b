package analyze

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/types/typeutil"

	"yamlmeta/annotation"
	"yamlmeta/internal/diagnostic"
	"yamlmeta/internal/meta"
	"yamlmeta/internal/symbol"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Program is the symbol graph built from a set of Go packages.
type Program struct {
	Graph      *symbol.Graph
	References meta.References
	// Declarations holds every struct and interface type declared in the
	// loaded packages.
	Declarations map[symbol.ID]symbol.Declaration
	Diagnostics  diagnostic.Diagnostics
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithDir sets the directory package patterns are resolved from.
func WithDir(dir string) Option {
	return func(a *Analyzer) {
		a.dir = dir
	}
}

// typeSpec is a type declaration found in a loaded file.
type typeSpec struct {
	pkg  *packages.Package
	spec *ast.TypeSpec
	doc  *ast.CommentGroup
}

// Analyzer loads Go packages and lowers them into a symbol graph.
type Analyzer struct {
	program   *Program
	typeCache typeutil.Map // types.Type -> symbol.ID, keyed by type identity
	funcDecls map[*types.Func]*ast.FuncDecl
	typeSpecs []typeSpec
	seenDiags map[string]struct{}
	fset      *token.FileSet
	dir       string
	logger    *zap.Logger
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		program: &Program{
			Graph:        symbol.NewGraph(),
			Declarations: make(map[symbol.ID]symbol.Declaration),
		},
		funcDecls: make(map[*types.Func]*ast.FuncDecl),
		seenDiags: make(map[string]struct{}),
		fset:      token.NewFileSet(),
		logger:    zap.NewNop(),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.declareReferences()

	return a
}

// Program returns the program built so far.
func (a *Analyzer) Program() *Program {
	return a.program
}

// LoadPackages loads the specified packages and lowers them into the graph.
// Patterns are standard Go package patterns (e.g., "./shapes", "yamlmeta/examples/shapes").
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) (*Program, error) {
	cfg := &packages.Config{
		Mode:    LoadMode,
		Context: ctx,
		Dir:     a.dir,
		Fset:    a.fset,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	for _, pkg := range pkgs {
		a.indexPackage(pkg)
	}

	for _, spec := range a.typeSpecs {
		a.declareType(spec)
	}

	for _, pkg := range pkgs {
		a.declareConstructors(pkg)
	}

	a.logger.Info("loaded packages",
		zap.Strings("patterns", patterns),
		zap.Int("packages", len(pkgs)),
		zap.Int("symbols", a.program.Graph.Len()),
		zap.Int("declarations", len(a.program.Declarations)),
	)

	return a.program, nil
}

// declareReferences adds the annotation classes to the graph.
func (a *Analyzer) declareReferences() {
	g := a.program.Graph

	class := func(name string, params ...string) symbol.ID {
		return g.Add(symbol.Symbol{
			Kind:          symbol.KindType,
			PkgPath:       annotation.PkgPath,
			Name:          name,
			TypeParams:    params,
			Accessibility: symbol.AccessibilityPublic,
		})
	}

	a.program.References = meta.References{
		Object:    class(annotation.ObjectClass),
		Union:     class(annotation.UnionClass),
		Ignore:    class(annotation.IgnoreClass),
		Member:    class(annotation.MemberClass),
		Formatter: class(annotation.FormatterClass, "T"),
	}
}

// indexPackage records function declarations and type specs of a package.
func (a *Analyzer) indexPackage(pkg *packages.Package) {
	for _, file := range pkg.Syntax {
		ast.Inspect(file, func(n ast.Node) bool {
			switch decl := n.(type) {
			case *ast.FuncDecl:
				if fn, ok := pkg.TypesInfo.Defs[decl.Name].(*types.Func); ok {
					a.funcDecls[fn] = decl
				}

			case *ast.GenDecl:
				if decl.Tok != token.TYPE {
					return true
				}

				for _, s := range decl.Specs {
					ts, ok := s.(*ast.TypeSpec)
					if !ok {
						continue
					}

					doc := ts.Doc
					if doc == nil && len(decl.Specs) == 1 {
						doc = decl.Doc
					}

					a.typeSpecs = append(a.typeSpecs, typeSpec{pkg: pkg, spec: ts, doc: doc})
				}
			}

			return true
		})
	}
}

// declareType lowers a struct or interface type declaration and applies its
// directives. Directives on any other type are reported and dropped.
func (a *Analyzer) declareType(ts typeSpec) {
	obj, ok := ts.pkg.TypesInfo.Defs[ts.spec.Name].(*types.TypeName)
	if !ok || obj.IsAlias() {
		return
	}

	named, ok := obj.Type().(*types.Named)
	if !ok {
		return
	}

	switch named.Underlying().(type) {
	case *types.Struct, *types.Interface:
	default:
		a.rejectDirectives(obj, ts.doc)
		return
	}

	id := a.typeSymbol(named)
	nested := obj.Parent() != ts.pkg.Types.Scope()

	a.program.Declarations[id] = symbol.Declaration{
		Name:    obj.Name(),
		Arity:   named.TypeParams().Len(),
		Partial: !nested,
		Nested:  nested,
	}

	a.applyTypeDirectives(id, named, ts.doc)
}

func (a *Analyzer) rejectDirectives(obj *types.TypeName, doc *ast.CommentGroup) {
	dirs, _ := parseDirectives(doc)
	if len(dirs) == 0 {
		return
	}

	a.report(diagnostic.Diagnostic{
		Severity: diagnostic.SeverityWarning,
		Code:     diagnostic.CodeMalformedDirective,
		Message:  fmt.Sprintf("%s is not a struct or interface type, its directives are ignored", obj.Name()),
		Type:     obj.Name(),
	}, dirs[0].pos)
}

// declareConstructors adds explicit constructors of the package's declared types.
// A constructor is a package function named New<Type>, or one carrying the
// constructor directive, whose first result is the type or a pointer to it.
func (a *Analyzer) declareConstructors(pkg *packages.Package) {
	scope := pkg.Types.Scope()

	var fns []*types.Func

	for _, name := range scope.Names() {
		if fn, ok := scope.Lookup(name).(*types.Func); ok {
			fns = append(fns, fn)
		}
	}

	sortByPos(fns)

	for _, fn := range fns {
		sig := fn.Signature()
		if sig.Results().Len() == 0 {
			continue
		}

		named, ok := deref(sig.Results().At(0).Type()).(*types.Named)
		if !ok || named.Obj().Pkg() != pkg.Types {
			continue
		}

		named = named.Origin()

		owner, ok := a.typeCache.At(named).(symbol.ID)
		if !ok {
			continue
		}

		if _, declared := a.program.Declarations[owner]; !declared {
			continue
		}

		if fn.Name() != "New"+named.Obj().Name() && !hasDirective(a.docOf(fn), annotation.DirectiveConstructor) {
			continue
		}

		a.program.Graph.Add(symbol.Symbol{
			Kind:          symbol.KindConstructor,
			Name:          fn.Name(),
			PkgPath:       pkg.PkgPath,
			Owner:         owner,
			Accessibility: accessibility(fn.Exported()),
			Params:        paramsOf(sig, pkg.Types),
		})
	}
}

func (a *Analyzer) docOf(fn *types.Func) *ast.CommentGroup {
	if decl := a.funcDecls[fn.Origin()]; decl != nil {
		return decl.Doc
	}

	return nil
}

func (a *Analyzer) position(pos token.Pos) string {
	if !pos.IsValid() {
		return ""
	}

	return a.fset.Position(pos).String()
}

// report records a diagnostic once per position and code. Instantiations
// lower the same declaration repeatedly.
func (a *Analyzer) report(d diagnostic.Diagnostic, pos token.Pos) {
	d.Position = a.position(pos)

	key := d.Position + "|" + d.Code + "|" + d.Message
	if _, ok := a.seenDiags[key]; ok {
		return
	}

	a.seenDiags[key] = struct{}{}
	a.program.Diagnostics.Add(d)

	a.logger.Debug("diagnostic",
		zap.Stringer("severity", d.Severity),
		zap.String("code", d.Code),
		zap.String("message", d.Message),
		zap.String("position", d.Position),
	)
}
