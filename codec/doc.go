// Package codec is the runtime contract generated serializers are written
// against: a Formatter reads and writes one value through a YAML node
// stream. It also provides the scalar formatters for bool and rune and the
// Nullable wrapper.
package codec
