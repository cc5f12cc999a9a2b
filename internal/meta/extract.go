package meta

import (
	"maps"
	"slices"

	"go.uber.org/zap"

	"yamlmeta/internal/symbol"
)

// Extractor finds every type carrying the object annotation and builds its TypeMeta.
type Extractor struct {
	graph   *symbol.Graph
	refs    References
	builder *Builder
	filter  func(fullName string) bool
	logger  *zap.Logger
}

// NewExtractor creates an Extractor over g.
func NewExtractor(g *symbol.Graph, refs References, opts ...Option) *Extractor {
	o := newOptions(opts)

	return &Extractor{
		graph:   g,
		refs:    refs,
		builder: NewBuilder(g, refs, opts...),
		filter:  o.filter,
		logger:  o.logger,
	}
}

// Builder returns the underlying Builder.
func (e *Extractor) Builder() *Builder {
	return e.builder
}

// Extract builds a TypeMeta for every declared type carrying the object
// annotation, in symbol ID order. Types without a declaration are not
// declared in loaded source and are skipped.
func (e *Extractor) Extract(decls map[symbol.ID]symbol.Declaration) []*TypeMeta {
	var metas []*TypeMeta

	for _, id := range slices.Sorted(maps.Keys(decls)) {
		object, ok := symbol.AnnotationOf(e.graph, id, e.refs.Object)
		if !ok {
			continue
		}

		fullName := symbol.FullName(e.graph, id)
		if e.filter != nil && !e.filter(fullName) {
			e.logger.Debug("type filtered out", zap.String("type", fullName))
			continue
		}

		if t := e.builder.Build(decls[id], id, object); t != nil {
			metas = append(metas, t)
		}
	}

	e.logger.Info("extracted type metas", zap.Int("types", len(metas)))

	return metas
}
