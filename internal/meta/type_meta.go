package meta

import (
	"strings"

	"go.uber.org/zap"

	"yamlmeta/internal/naming"
	"yamlmeta/internal/symbol"
)

// genericNameReplacer makes a display name usable inside identifiers.
var genericNameReplacer = strings.NewReplacer(
	"<", "_", ">", "_",
	"[", "_", "]", "_",
	",", "_", " ", "_",
)

// UnionMeta is one (tag, variant) entry of a union type.
type UnionMeta struct {
	Tag          string
	Variant      symbol.ID
	TypeName     string
	FullTypeName string
}

// TypeMeta is the canonical serialization model of one type.
type TypeMeta struct {
	Declaration      symbol.Declaration
	Symbol           *symbol.Symbol
	ObjectAnnotation *symbol.Annotation

	TypeName                string // minimally qualified, e.g. Pair[K, V]
	FullTypeName            string // package qualified
	TypeNameWithoutGenerics string // e.g. Pair_K__V_

	Constructors     []*symbol.Symbol
	UnionMetas       []UnionMeta
	NamingConvention naming.Convention
	MemberMetas      []*MemberMeta
}

// IsUnion returns true if the type declares at least one union variant.
func (t *TypeMeta) IsUnion() bool {
	return len(t.UnionMetas) > 0
}

// IsPartialDeclaration returns true if code can be added alongside the declaration.
func (t *TypeMeta) IsPartialDeclaration() bool {
	return t.Declaration.Partial
}

// IsNestedDeclaration returns true if the type is declared inside another declaration.
func (t *TypeMeta) IsNestedDeclaration() bool {
	return t.Declaration.Nested
}

// Option configures a Builder or an Extractor.
type Option func(*options)

type options struct {
	logger *zap.Logger
	filter func(fullName string) bool
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithFilter restricts extraction to types whose full name passes filter.
func WithFilter(filter func(fullName string) bool) Option {
	return func(o *options) {
		o.filter = filter
	}
}

func newOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Builder builds TypeMeta values from a symbol graph.
type Builder struct {
	graph  *symbol.Graph
	refs   References
	roles  *symbol.Registry[Role]
	logger *zap.Logger
}

// NewBuilder creates a Builder for g using the annotation classes in refs.
func NewBuilder(g *symbol.Graph, refs References, opts ...Option) *Builder {
	o := newOptions(opts)

	b := &Builder{
		graph:  g,
		refs:   refs,
		roles:  symbol.NewRegistry[Role](g),
		logger: o.logger,
	}

	if refs.Formatter != symbol.None {
		b.roles.Register(refs.Formatter, RoleFormatter)
	}

	return b
}

// NewTypeMeta builds the TypeMeta of typ with a one-off Builder.
func NewTypeMeta(
	g *symbol.Graph, refs References, decl symbol.Declaration, typ symbol.ID, object *symbol.Annotation, opts ...Option,
) *TypeMeta {
	return NewBuilder(g, refs, opts...).Build(decl, typ, object)
}

// Register associates an additional generic annotation class with a role.
func (b *Builder) Register(class symbol.ID, role Role) {
	b.roles.Register(class, role)
}

// Build creates the TypeMeta for typ. object is the annotation that marked
// typ as serializable; it may be nil, in which case defaults apply.
func (b *Builder) Build(decl symbol.Declaration, typ symbol.ID, object *symbol.Annotation) *TypeMeta {
	sym := b.graph.Get(typ)
	if sym == nil {
		return nil
	}

	typeName := symbol.MinimalName(b.graph, typ)

	t := &TypeMeta{
		Declaration:             decl,
		Symbol:                  sym,
		ObjectAnnotation:        object,
		TypeName:                typeName,
		FullTypeName:            symbol.FullName(b.graph, typ),
		TypeNameWithoutGenerics: genericNameReplacer.Replace(typeName),
		NamingConvention:        namingConventionOf(object),
	}

	t.Constructors = b.constructors(sym)
	t.UnionMetas = b.unionMetas(sym)
	t.MemberMetas = b.buildMembers(typ, t.NamingConvention)

	b.logger.Debug("built type meta",
		zap.String("type", t.FullTypeName),
		zap.Stringer("naming", t.NamingConvention),
		zap.Int("members", len(t.MemberMetas)),
		zap.Int("constructors", len(t.Constructors)),
		zap.Int("unions", len(t.UnionMetas)),
	)

	return t
}

// namingConventionOf returns the convention selected by the first enum
// argument of the object annotation.
func namingConventionOf(object *symbol.Annotation) naming.Convention {
	if object == nil {
		return naming.Default
	}

	for _, arg := range object.Args {
		if arg.Kind != symbol.ArgEnum {
			continue
		}

		if c := naming.Convention(arg.Int); c.IsValid() {
			return c
		}

		break
	}

	return naming.Default
}

// constructors returns the explicitly declared instance constructors.
func (b *Builder) constructors(sym *symbol.Symbol) []*symbol.Symbol {
	var ctors []*symbol.Symbol

	for _, id := range sym.Members {
		m := b.graph.Get(id)
		if m == nil || m.Kind != symbol.KindConstructor || m.Static {
			continue
		}

		// the zero value is always available and is not an entry point
		if m.Implicit {
			continue
		}

		ctors = append(ctors, m)
	}

	return ctors
}

// unionMetas collects the union annotations declared on sym itself.
// Annotations without exactly two arguments are skipped.
func (b *Builder) unionMetas(sym *symbol.Symbol) []UnionMeta {
	var unions []UnionMeta

	for _, ann := range sym.Annotations {
		if ann.Class != b.refs.Union {
			continue
		}

		if len(ann.Args) != 2 {
			b.logger.Debug("skipping union annotation",
				zap.String("type", sym.Name), zap.Int("args", len(ann.Args)))

			continue
		}

		tag, variant := ann.Args[0], ann.Args[1]
		if tag.Kind != symbol.ArgString || variant.Kind != symbol.ArgType || b.graph.Get(variant.Type) == nil {
			continue
		}

		unions = append(unions, UnionMeta{
			Tag:          tag.Str,
			Variant:      variant.Type,
			TypeName:     symbol.MinimalName(b.graph, variant.Type),
			FullTypeName: symbol.FullName(b.graph, variant.Type),
		})
	}

	return unions
}
