// Package common holds small helpers shared by the internal packages.
package common

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"
