// Package meta builds the canonical serialization model of annotated types.
//
// A TypeMeta is built once per type carrying the object annotation. It
// holds the type's display names, its explicit constructors, the resolved
// naming convention, the union variant table, and the ordered list of
// serializable members (MemberMeta).
//
// The member pipeline, applied to symbol.AllMembers:
//  1. fields and properties only; no static or synthesized members
//  2. no ignore annotation
//  3. public, or carrying the member annotation
//  4. no set-only properties, no indexers
//  5. stable sort by explicit order, falling back to discovery index
package meta
