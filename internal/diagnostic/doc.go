// Package diagnostic provides structured warnings and errors for the
// yamlmeta frontend and for the generator-side legality checks.
//
// Key capabilities:
//   - Malformed directive and struct tag warnings
//   - Unresolvable type expression warnings
//   - Declarations the generator cannot extend
package diagnostic
