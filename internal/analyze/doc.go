// Package analyze is the Go frontend of the extractor.
//
// It loads packages with golang.org/x/tools/go/packages and lowers their
// struct types into a symbol.Graph:
//   - embedded named structs become base types, embedded interfaces
//     contribute abstract methods
//   - X/SetX method pairs become properties
//   - //yaml: directives and yaml/yamlfmt struct tags become annotations
//   - New<Type> functions become constructors
//
// Problems found in directives and tags are collected as diagnostics
// rather than failing the load.
package analyze
