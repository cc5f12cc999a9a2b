package symbol

// Registry maps erased annotation class identities to handlers.
//
// A concrete annotation class is resolved once by walking its base chain;
// the matched identity is memoized so later lookups for the same class are
// a map hit.
type Registry[H any] struct {
	g        *Graph
	handlers map[ID]H
	resolved map[ID]ID // concrete class -> erased identity with a handler, or None
}

// NewRegistry creates an empty Registry over g.
func NewRegistry[H any](g *Graph) *Registry[H] {
	return &Registry[H]{
		g:        g,
		handlers: make(map[ID]H),
		resolved: make(map[ID]ID),
	}
}

// Register associates handler with the erased identity of class.
func (r *Registry[H]) Register(class ID, handler H) {
	if e := Erase(r.g, class); e != None {
		r.handlers[e] = handler
		clear(r.resolved)
	}
}

// Resolve returns the handler registered for class or for one of its bases.
func (r *Registry[H]) Resolve(class ID) (H, bool) {
	key, ok := r.resolved[class]
	if !ok {
		key = r.match(class)
		r.resolved[class] = key
	}

	h, found := r.handlers[key]

	return h, found
}

// Find returns the first annotation on sym whose class resolves to a handler.
func (r *Registry[H]) Find(sym ID) (*Annotation, H, bool) {
	var zero H

	s := r.g.Get(sym)
	if s == nil {
		return nil, zero, false
	}

	for i := range s.Annotations {
		if h, ok := r.Resolve(s.Annotations[i].Class); ok {
			return &s.Annotations[i], h, true
		}
	}

	return nil, zero, false
}

func (r *Registry[H]) match(class ID) ID {
	for c := range chain(r.g, class) {
		e := Erase(r.g, c.ID)
		if _, ok := r.handlers[e]; ok {
			return e
		}
	}

	return None
}
