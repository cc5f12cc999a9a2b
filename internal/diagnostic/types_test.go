package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_Add(t *testing.T) {
	var d Diagnostics

	d.AddWarning(CodeUnknownConvention, "unknown naming convention \"screaming\"", "shapes.Shape", "")
	d.AddInfo(CodeUnknownDirective, "ignored", "", "")
	assert.True(t, d.IsValid())
	assert.True(t, d.HasWarnings())
	require.NoError(t, d.Error())

	d.AddError(CodeNested, "declared inside a function", "shapes.local", "")
	assert.True(t, d.HasErrors())
	require.EqualError(t, d.Error(), "[shapes.local] [nested-declaration] declared inside a function")

	all := d.All()
	require.Len(t, all, 3)
	assert.Equal(t, SeverityError, all[0].Severity)
	assert.Equal(t, SeverityInfo, all[2].Severity)
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics
	a.AddWarning(CodeMalformedTag, "bad order", "T", "F")
	b.AddError(CodeNotPartial, "not partial", "T", "")
	b.AddInfo(CodeUnknownDirective, "x", "", "")

	a.Merge(b)
	assert.Len(t, a.Errors, 1)
	assert.Len(t, a.Warnings, 1)
	assert.Len(t, a.Infos, 1)
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{
		Code:     CodeMalformedTag,
		Message:  "invalid order \"x\"",
		Type:     "shapes.Shape",
		Member:   "Name",
		Position: "shapes.go:12:2",
	}
	assert.Equal(t, "shapes.go:12:2: [shapes.Shape.Name] [malformed-tag] invalid order \"x\"", d.String())

	assert.Equal(t, "plain", Diagnostic{Message: "plain"}.String())
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(9).String())
}
