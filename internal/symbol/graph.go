package symbol

import (
	"strings"
)

// Graph is an arena of symbols addressed by ID.
type Graph struct {
	symbols []*Symbol
	// byName indexes non-instantiated types by their full name.
	byName map[string]ID
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		symbols: []*Symbol{nil}, // slot 0 is None
		byName:  make(map[string]ID),
	}
}

// Add stores a copy of s in the arena and returns its ID.
// Members are appended to their owner's member list in insertion order.
func (g *Graph) Add(s Symbol) ID {
	id := ID(len(g.symbols))
	s.ID = id
	sym := &s
	g.symbols = append(g.symbols, sym)

	if owner := g.Get(s.Owner); owner != nil {
		owner.Members = append(owner.Members, id)
	}

	if s.Kind == KindType && s.Origin == None {
		g.byName[FullName(g, id)] = id
	}

	return id
}

// Get returns the symbol for id, or nil for None and unknown IDs.
func (g *Graph) Get(id ID) *Symbol {
	if id <= None || int(id) >= len(g.symbols) {
		return nil
	}

	return g.symbols[id]
}

// Len returns the number of symbols in the graph.
func (g *Graph) Len() int {
	return len(g.symbols) - 1
}

// Lookup returns the non-instantiated type with the given full name.
func (g *Graph) Lookup(fullName string) ID {
	return g.byName[fullName]
}

// Annotate attaches an annotation to a symbol. Unknown IDs are ignored.
func (g *Graph) Annotate(id ID, ann Annotation) {
	if s := g.Get(id); s != nil {
		s.Annotations = append(s.Annotations, ann)
	}
}

// MinimalName returns the display name without package qualification,
// e.g. "Pair[K, V]" or "Pair[int, string]".
func MinimalName(g *Graph, id ID) string {
	return displayName(g, id, false, 0)
}

// FullName returns the package-qualified display name,
// e.g. "example.com/shapes.Pair[int, string]".
func FullName(g *Graph, id ID) string {
	return displayName(g, id, true, 0)
}

// maxDisplayDepth bounds recursion through type arguments.
const maxDisplayDepth = 16

func displayName(g *Graph, id ID, qualified bool, depth int) string {
	s := g.Get(id)
	if s == nil {
		return ""
	}

	var b strings.Builder
	if qualified && s.PkgPath != "" {
		b.WriteString(s.PkgPath)
		b.WriteByte('.')
	}

	b.WriteString(s.Name)

	switch {
	case len(s.TypeArgs) > 0 && depth < maxDisplayDepth:
		b.WriteByte('[')

		for i, arg := range s.TypeArgs {
			if i > 0 {
				b.WriteString(", ")
			}

			b.WriteString(displayName(g, arg, qualified, depth+1))
		}

		b.WriteByte(']')

	case len(s.TypeParams) > 0:
		b.WriteString("[" + strings.Join(s.TypeParams, ", ") + "]")
	}

	return b.String()
}
