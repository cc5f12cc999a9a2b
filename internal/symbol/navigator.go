package symbol

import (
	"iter"
)

// AllMembers yields the members declared on typ and on every type up its
// base chain, stopping at the root type.
//
// Abstract members are skipped. Once a member is yielded, every member on
// its override chain is excluded, so an overridden ancestor never shows up
// after the member that shadows it.
func AllMembers(g *Graph, typ ID) iter.Seq[*Symbol] {
	return func(yield func(*Symbol) bool) {
		excluded := make(map[ID]struct{})

		for t := range chain(g, typ) {
			if t.Root {
				return
			}

			for _, id := range t.Members {
				m := g.Get(id)
				if m == nil || m.Abstract {
					continue
				}

				if _, ok := excluded[id]; ok {
					continue
				}

				if !yield(m) {
					return
				}

				for o := g.Get(m.Overridden); o != nil; o = g.Get(o.Overridden) {
					if _, ok := excluded[o.ID]; ok {
						break
					}

					excluded[o.ID] = struct{}{}
				}
			}
		}
	}
}

// BaseTypes yields the base chain of typ, excluding typ itself.
func BaseTypes(g *Graph, typ ID) iter.Seq[*Symbol] {
	return func(yield func(*Symbol) bool) {
		s := g.Get(typ)
		if s == nil {
			return
		}

		for b := range chain(g, s.Base) {
			if !yield(b) {
				return
			}
		}
	}
}

// chain yields typ and its bases, guarding against malformed cycles.
func chain(g *Graph, typ ID) iter.Seq[*Symbol] {
	return func(yield func(*Symbol) bool) {
		seen := make(map[ID]struct{})

		for t := g.Get(typ); t != nil; t = g.Get(t.Base) {
			if _, ok := seen[t.ID]; ok {
				return
			}

			seen[t.ID] = struct{}{}

			if !yield(t) {
				return
			}
		}
	}
}

// AnnotationOf returns the first annotation on sym whose class is exactly class.
func AnnotationOf(g *Graph, sym, class ID) (*Annotation, bool) {
	s := g.Get(sym)
	if s == nil {
		return nil, false
	}

	for i := range s.Annotations {
		if s.Annotations[i].Class == class {
			return &s.Annotations[i], true
		}
	}

	return nil, false
}

// HasAnnotation returns true if sym carries an annotation of exactly class.
func HasAnnotation(g *Graph, sym, class ID) bool {
	_, ok := AnnotationOf(g, sym, class)
	return ok
}

// ImplementationAnnotationOf returns the first annotation on sym whose class,
// or any base of that class, is genericClass once generic arguments are erased.
func ImplementationAnnotationOf(g *Graph, sym, genericClass ID) (*Annotation, bool) {
	s := g.Get(sym)
	if s == nil {
		return nil, false
	}

	for i := range s.Annotations {
		for c := range chain(g, s.Annotations[i].Class) {
			if TypesEqualIgnoringGenericArgs(g, c.ID, genericClass) {
				return &s.Annotations[i], true
			}
		}
	}

	return nil, false
}

// Erase returns the generic definition of an instantiation, or id itself.
func Erase(g *Graph, id ID) ID {
	s := g.Get(id)
	if s == nil {
		return None
	}

	if s.Origin != None {
		return s.Origin
	}

	return id
}

// TypesEqualIgnoringGenericArgs reports whether a and b are the same type
// once concrete generic arguments are erased.
func TypesEqualIgnoringGenericArgs(g *Graph, a, b ID) bool {
	ea, eb := Erase(g, a), Erase(g, b)
	return ea != None && ea == eb
}

// InheritsFrom reports whether sym or one of its bases has the same full
// display name as base. Generic arguments take part in the comparison only
// through the display name.
func InheritsFrom(g *Graph, sym, base ID) bool {
	baseName := FullName(g, base)
	if baseName == "" {
		return false
	}

	for t := range chain(g, sym) {
		if FullName(g, t.ID) == baseName {
			return true
		}
	}

	return false
}
