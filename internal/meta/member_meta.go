package meta

import (
	"cmp"
	"slices"

	"yamlmeta/internal/common"
	"yamlmeta/internal/naming"
	"yamlmeta/internal/symbol"
)

// AccessMode describes how generated code reaches a member.
type AccessMode int

const (
	AccessField        AccessMode = iota // direct field access
	AccessGetter                         // property with a getter only
	AccessGetterSetter                   // property with a getter and a setter
)

// String returns a human-readable representation of the AccessMode.
func (a AccessMode) String() string {
	switch a {
	case AccessField:
		return "field"
	case AccessGetter:
		return "getter"
	case AccessGetterSetter:
		return "getter-setter"
	default:
		return common.UnknownStr
	}
}

// MemberMeta describes one serializable member.
type MemberMeta struct {
	Symbol *symbol.Symbol
	// Name is the Go identifier.
	Name string
	// KeyName is the external YAML key.
	KeyName string
	// Order is the explicit order, or Index when none was given.
	Order            int
	HasExplicitOrder bool
	// Index is the zero-based discovery index.
	Index  int
	Access AccessMode
	// Formatter is the custom formatter annotation, nil for the default codec.
	Formatter *symbol.Annotation
}

// CanWrite returns true if deserialization can assign the member.
func (m *MemberMeta) CanWrite() bool {
	return m.Access != AccessGetter
}

func (b *Builder) newMemberMeta(sym *symbol.Symbol, index int, convention naming.Convention) *MemberMeta {
	m := &MemberMeta{
		Symbol:  sym,
		Name:    sym.Name,
		KeyName: convention.Apply(sym.Name),
		Order:   index,
		Index:   index,
		Access:  accessOf(sym),
	}

	if ann, ok := symbol.AnnotationOf(b.graph, sym.ID, b.refs.Member); ok {
		if name := memberKeyName(ann); name != "" {
			m.KeyName = name
		}

		if order, ok := ann.NamedArg(ArgOrder); ok && order.Kind == symbol.ArgInt {
			m.Order = order.Int
			m.HasExplicitOrder = true
		}
	}

	if ann, role, ok := b.roles.Find(sym.ID); ok && role == RoleFormatter {
		m.Formatter = ann
	}

	return m
}

func memberKeyName(ann *symbol.Annotation) string {
	if name, ok := ann.NamedArg(ArgName); ok && name.Kind == symbol.ArgString {
		return name.Str
	}

	if first, ok := common.First(ann.Args); ok && first.Kind == symbol.ArgString {
		return first.Str
	}

	return ""
}

func accessOf(sym *symbol.Symbol) AccessMode {
	if sym.Kind != symbol.KindProperty {
		return AccessField
	}

	if sym.HasSetter {
		return AccessGetterSetter
	}

	return AccessGetter
}

// isSerializable applies the member filters to a single candidate.
func (b *Builder) isSerializable(sym *symbol.Symbol) bool {
	if sym.Kind != symbol.KindField && sym.Kind != symbol.KindProperty {
		return false
	}

	if sym.Static || sym.Implicit {
		return false
	}

	if symbol.HasAnnotation(b.graph, sym.ID, b.refs.Ignore) {
		return false
	}

	if !sym.IsPublic() && !symbol.HasAnnotation(b.graph, sym.ID, b.refs.Member) {
		return false
	}

	if sym.Kind == symbol.KindProperty {
		// set-only can't be read back
		if !sym.HasGetter && sym.HasSetter {
			return false
		}

		if sym.Indexer {
			return false
		}
	}

	return true
}

// buildMembers runs the member pipeline for typ.
func (b *Builder) buildMembers(typ symbol.ID, convention naming.Convention) []*MemberMeta {
	var members []*MemberMeta

	for sym := range symbol.AllMembers(b.graph, typ) {
		if !b.isSerializable(sym) {
			continue
		}

		members = append(members, b.newMemberMeta(sym, len(members), convention))
	}

	slices.SortStableFunc(members, func(x, y *MemberMeta) int {
		return cmp.Compare(x.Order, y.Order)
	})

	return members
}
