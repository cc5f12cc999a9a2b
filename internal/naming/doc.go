// Package naming provides identifier tokenization and the naming
// conventions used to derive YAML key names from Go identifiers.
//
// Key functions:
//   - Convention.Apply: rewrites an identifier in a convention
//   - ParseConvention: parses a convention name from a directive
//   - Tokenize: splits an identifier into CamelCase / separator tokens
package naming
