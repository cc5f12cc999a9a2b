package symbol

import (
	"yamlmeta/internal/common"
)

// ID addresses a symbol inside a Graph.
type ID int

// None is the zero ID; it never refers to a symbol.
const None ID = 0

// Kind represents the kind of a symbol.
type Kind int

const (
	KindUnknown     Kind = iota
	KindType             // named type
	KindField            // struct field
	KindProperty         // getter/setter pair
	KindMethod           // method
	KindEvent            // event-like member (kept for completeness)
	KindConstructor      // instance constructor
)

// String returns a human-readable representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindField:
		return "field"
	case KindProperty:
		return "property"
	case KindMethod:
		return "method"
	case KindEvent:
		return "event"
	case KindConstructor:
		return "constructor"
	default:
		return common.UnknownStr
	}
}

// Accessibility is the declared visibility of a symbol.
type Accessibility int

const (
	AccessibilityPrivate Accessibility = iota
	AccessibilityPublic
)

// String returns a human-readable representation of the Accessibility.
func (a Accessibility) String() string {
	if a == AccessibilityPublic {
		return "public"
	}

	return "private"
}

// Param describes a constructor parameter.
type Param struct {
	Name string
	Type string
}

// Symbol is a single record of the graph.
type Symbol struct {
	ID      ID
	Kind    Kind
	Name    string
	PkgPath string // empty for predeclared types

	TypeParams []string // generic definitions: parameter names
	TypeArgs   []ID     // generic instantiations: argument types
	Origin     ID       // generic instantiations: the definition

	Base       ID   // types: embedded base type
	Owner      ID   // members: declaring type
	Overridden ID   // members: shadowed member further up the chain
	Members    []ID // types: members in declaration order

	Annotations []Annotation

	Accessibility Accessibility
	Abstract      bool
	Static        bool
	Implicit      bool // synthesized by the frontend, not written by the user
	Root          bool // the root object type; traversal stops here

	HasGetter bool // properties
	HasSetter bool // properties
	Indexer   bool // properties taking an index

	ValueType string  // fields and properties: display name of the value type
	Params    []Param // constructors
}

// IsPublic returns true if the symbol is declared public.
func (s *Symbol) IsPublic() bool {
	return s.Accessibility == AccessibilityPublic
}

// Declaration is the source-level description of a type declaration.
type Declaration struct {
	Name    string
	Arity   int  // number of type parameters
	Partial bool // code can be added alongside the declaration
	Nested  bool // declared inside another declaration
}

// ArgKind is the kind of an annotation argument.
type ArgKind int

const (
	ArgString ArgKind = iota
	ArgEnum
	ArgType
	ArgInt
)

// String returns a human-readable representation of the ArgKind.
func (k ArgKind) String() string {
	switch k {
	case ArgString:
		return "string"
	case ArgEnum:
		return "enum"
	case ArgType:
		return "type"
	case ArgInt:
		return "int"
	default:
		return common.UnknownStr
	}
}

// Arg is a single annotation argument.
type Arg struct {
	Kind ArgKind
	Str  string
	Int  int // ArgEnum and ArgInt
	Type ID  // ArgType
}

// StringArg creates a string argument.
func StringArg(s string) Arg { return Arg{Kind: ArgString, Str: s} }

// EnumArg creates an enum argument.
func EnumArg(v int) Arg { return Arg{Kind: ArgEnum, Int: v} }

// TypeArg creates a type argument.
func TypeArg(id ID) Arg { return Arg{Kind: ArgType, Type: id} }

// IntArg creates an integer argument.
func IntArg(v int) Arg { return Arg{Kind: ArgInt, Int: v} }

// Annotation is declarative metadata attached to a symbol.
type Annotation struct {
	Class ID
	Args  []Arg          // positional (constructor) arguments
	Named map[string]Arg // named arguments
}

// NamedArg returns the named argument with the given key.
func (a *Annotation) NamedArg(key string) (Arg, bool) {
	arg, ok := a.Named[key]
	return arg, ok
}
