package meta

import (
	"yamlmeta/internal/diagnostic"
)

// Check reports the types a generator cannot emit code for: the generated
// code is added alongside the declaration, so the declaration must be at
// package level.
//
// The Go loader marks every package-level declaration partial, so from Go
// source only the nested error fires. CodeNotPartial is reported for
// declarations built by other frontends.
func Check(metas []*TypeMeta) diagnostic.Diagnostics {
	var d diagnostic.Diagnostics

	for _, t := range metas {
		switch {
		case t.IsNestedDeclaration():
			d.AddError(diagnostic.CodeNested,
				"type is declared inside a function; move it to package level", t.FullTypeName, "")
		case !t.IsPartialDeclaration():
			d.AddError(diagnostic.CodeNotPartial,
				"methods cannot be declared on this type from its package", t.FullTypeName, "")
		}

		if len(t.MemberMetas) == 0 && !t.IsUnion() {
			d.AddInfo(diagnostic.CodeEmptyType, "type has no serializable members", t.FullTypeName, "")
		}
	}

	return d
}
