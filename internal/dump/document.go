// Package dump renders extracted type models as JSON documents.
package dump

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"yamlmeta/internal/meta"
	"yamlmeta/internal/symbol"
)

// Document is the serialized form of one TypeMeta.
type Document struct {
	Package                 string        `json:"package"`
	TypeName                string        `json:"typeName"`
	FullTypeName            string        `json:"fullTypeName"`
	TypeNameWithoutGenerics string        `json:"typeNameWithoutGenerics"`
	NamingConvention        string        `json:"namingConvention"`
	IsUnion                 bool          `json:"isUnion"`
	Partial                 bool          `json:"partial"`
	Nested                  bool          `json:"nested"`
	Constructors            []Constructor `json:"constructors"`
	Unions                  []Union       `json:"unions"`
	Members                 []Member      `json:"members"`
	// Fingerprint is the xxhash of the document rendered without it.
	Fingerprint string `json:"fingerprint,omitzero"`
}

// Constructor is an explicit constructor of the type.
type Constructor struct {
	Name   string  `json:"name"`
	Params []Param `json:"params"`
}

// Param is a constructor parameter.
type Param struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Union is one (tag, variant) entry.
type Union struct {
	Tag          string `json:"tag"`
	TypeName     string `json:"typeName"`
	FullTypeName string `json:"fullTypeName"`
}

// Member is one serializable member, in serialization order.
type Member struct {
	Name      string `json:"name"`
	Key       string `json:"key"`
	Kind      string `json:"kind"`
	Type      string `json:"type,omitzero"`
	Order     int    `json:"order"`
	Explicit  bool   `json:"explicitOrder"`
	Access    string `json:"access"`
	Formatter string `json:"formatter,omitzero"`
}

// New converts a TypeMeta into a Document and computes its fingerprint.
func New(g *symbol.Graph, t *meta.TypeMeta) (*Document, error) {
	d := &Document{
		Package:                 t.Symbol.PkgPath,
		TypeName:                t.TypeName,
		FullTypeName:            t.FullTypeName,
		TypeNameWithoutGenerics: t.TypeNameWithoutGenerics,
		NamingConvention:        t.NamingConvention.String(),
		IsUnion:                 t.IsUnion(),
		Partial:                 t.IsPartialDeclaration(),
		Nested:                  t.IsNestedDeclaration(),
		Constructors:            make([]Constructor, 0, len(t.Constructors)),
		Unions:                  make([]Union, 0, len(t.UnionMetas)),
		Members:                 make([]Member, 0, len(t.MemberMetas)),
	}

	for _, c := range t.Constructors {
		ctor := Constructor{Name: c.Name, Params: make([]Param, 0, len(c.Params))}
		for _, p := range c.Params {
			ctor.Params = append(ctor.Params, Param{Name: p.Name, Type: p.Type})
		}

		d.Constructors = append(d.Constructors, ctor)
	}

	for _, u := range t.UnionMetas {
		d.Unions = append(d.Unions, Union{Tag: u.Tag, TypeName: u.TypeName, FullTypeName: u.FullTypeName})
	}

	for _, m := range t.MemberMetas {
		member := Member{
			Name:     m.Name,
			Key:      m.KeyName,
			Kind:     m.Symbol.Kind.String(),
			Type:     m.Symbol.ValueType,
			Order:    m.Order,
			Explicit: m.HasExplicitOrder,
			Access:   m.Access.String(),
		}

		if m.Formatter != nil {
			member.Formatter = symbol.FullName(g, m.Formatter.Class)
		}

		d.Members = append(d.Members, member)
	}

	sum, err := d.fingerprint()
	if err != nil {
		return nil, err
	}

	d.Fingerprint = sum

	return d, nil
}

// Marshal renders the document as indented, deterministic JSON.
func (d *Document) Marshal() ([]byte, error) {
	out, err := json.Marshal(d, json.Deterministic(true), jsontext.WithIndent("  "))
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", d.FullTypeName, err)
	}

	return append(out, '\n'), nil
}

// fingerprint hashes the compact rendering of d without its fingerprint.
func (d *Document) fingerprint() (string, error) {
	c := *d
	c.Fingerprint = ""

	canonical, err := json.Marshal(&c, json.Deterministic(true))
	if err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", d.FullTypeName, err)
	}

	return fmt.Sprintf("%016x", xxhash.Sum64(canonical)), nil
}

// Unmarshal parses a document written by Marshal.
func Unmarshal(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}

	return &d, nil
}

// Verify recomputes the fingerprint of a parsed document and reports
// whether it still matches.
func (d *Document) Verify() (bool, error) {
	sum, err := d.fingerprint()
	if err != nil {
		return false, err
	}

	return sum == d.Fingerprint, nil
}
