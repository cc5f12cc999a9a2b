// Package main provides the CLI entrypoint for yamlmeta.
//
// yamlmeta reads annotated Go types and extracts the serialization model a
// YAML code generator needs:
//   - which members are serialized, under which key and in which order
//   - which constructors exist
//   - which variants a union type has
package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "Error: ")
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
