// Package annotation declares the markers read by the yamlmeta extractor.
//
// Types and methods are annotated with line directives in their doc
// comments; fields use struct tags:
//
//	//yaml:object snake_case
//	//yaml:union circle Circle
//	//yaml:union square Square
//	type Shape struct {
//		Name     string `yaml:"title,order=1"`
//		internal int    `yaml:"internal"`
//		Scratch  string `yaml:"-"`
//		Label    string `yamlfmt:"Upper[string]"`
//	}
//
//	//yaml:member order=2
//	func (s *Shape) Area() float64 { ... }
//
//	//yaml:constructor
//	func MakeShape(name string) *Shape { ... }
//
// Custom formatters are declared by embedding Formatter:
//
//	type Upper[T ~string] struct{ annotation.Formatter[T] }
package annotation

// PkgPath is the import path of this package.
const PkgPath = "yamlmeta/annotation"

// Directive names, written as //yaml:<name>.
const (
	DirectivePrefix      = "//yaml:"
	DirectiveObject      = "object"
	DirectiveUnion       = "union"
	DirectiveMember      = "member"
	DirectiveIgnore      = "ignore"
	DirectiveFormatter   = "formatter"
	DirectiveConstructor = "constructor"
)

// Struct tag keys.
const (
	TagKey          = "yaml"
	FormatterTagKey = "yamlfmt"
)

// Annotation class names. Object, Union, Ignore and Member exist only as
// directive spellings; Formatter is a real type so user types can embed it.
const (
	ObjectClass    = "Object"
	UnionClass     = "Union"
	IgnoreClass    = "Ignore"
	MemberClass    = "Member"
	FormatterClass = "Formatter"
)

// Formatter is the generic base of custom formatter annotations. A type
// that embeds Formatter[T] can be named by a yamlfmt tag or a
// //yaml:formatter directive to replace the default codec of a T member.
type Formatter[T any] struct{}
