package meta

import (
	"yamlmeta/internal/symbol"
)

// Named argument keys read from the member annotation.
const (
	ArgName  = "name"
	ArgOrder = "order"
)

// References holds the annotation classes the builders look for.
type References struct {
	Object    symbol.ID // marks a serializable type; optional enum arg selects the convention
	Union     symbol.ID // (tag, variant type) pairs on a union base type
	Ignore    symbol.ID // excludes a member
	Member    symbol.ID // includes a non-public member; carries name/order overrides
	Formatter symbol.ID // generic base class of custom formatter annotations
}

// Role tells what a registered annotation class is used for.
type Role int

const (
	RoleNone Role = iota
	RoleFormatter
)

// String returns a human-readable representation of the Role.
func (r Role) String() string {
	switch r {
	case RoleFormatter:
		return "formatter"
	default:
		return "none"
	}
}
