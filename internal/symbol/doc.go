// Package symbol provides the arena-backed symbol graph and the
// navigation utilities the metadata builders are written against.
//
// Symbols are addressed by stable integer IDs. Edges between them are
// plain IDs as well:
//   - Base: type -> base type (embedding chain)
//   - Overridden: member -> the member it shadows
//   - Origin: generic instantiation -> generic definition
//   - Owner / Members: declaring type <-> its members
//
// Key functions:
//   - AllMembers: deduplicated members along the base chain
//   - AnnotationOf / HasAnnotation: exact annotation class lookup
//   - ImplementationAnnotationOf: erased generic annotation class lookup
//   - TypesEqualIgnoringGenericArgs: erased generic identity comparison
//   - InheritsFrom: display-name based base chain match
package symbol
