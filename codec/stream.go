package codec

import (
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnexpectedEnd = errors.New("unexpected end of stream")
	ErrNotScalar     = errors.New("current node is not a scalar")
	ErrWrongTag      = errors.New("scalar has an unexpected tag")
	ErrOverflow      = errors.New("value out of range")
)

// YAML core schema tags.
const (
	tagBool  = "!!bool"
	tagInt   = "!!int"
	tagNull  = "!!null"
	tagStr   = "!!str"
	nullText = "null"
)

// Emitter collects the nodes written by formatters.
type Emitter struct {
	nodes []*yaml.Node
}

// NewEmitter creates an empty Emitter.
func NewEmitter() *Emitter {
	return &Emitter{}
}

func (e *Emitter) scalar(tag, value string) {
	e.nodes = append(e.nodes, &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value})
}

// WriteBool writes a boolean scalar.
func (e *Emitter) WriteBool(v bool) {
	e.scalar(tagBool, strconv.FormatBool(v))
}

// WriteInt writes an integer scalar.
func (e *Emitter) WriteInt(v int64) {
	e.scalar(tagInt, strconv.FormatInt(v, 10))
}

// WriteNull writes the null marker.
func (e *Emitter) WriteNull() {
	e.scalar(tagNull, nullText)
}

// WriteString writes a string scalar.
func (e *Emitter) WriteString(v string) {
	e.scalar(tagStr, v)
}

// Nodes returns the written nodes in order.
func (e *Emitter) Nodes() []*yaml.Node {
	return e.nodes
}

// Bytes encodes the written nodes. A single node is encoded as a scalar
// document, several nodes as a sequence.
func (e *Emitter) Bytes() ([]byte, error) {
	var root *yaml.Node

	if len(e.nodes) == 1 {
		root = e.nodes[0]
	} else {
		root = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: e.nodes}
	}

	out, err := yaml.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}

	return out, nil
}

// Parser walks a sequence of nodes. Formatters read the current node and
// call Read to advance past it.
type Parser struct {
	nodes []*yaml.Node
	pos   int
}

// NewParser creates a Parser positioned on the first node.
func NewParser(nodes ...*yaml.Node) *Parser {
	return &Parser{nodes: nodes}
}

// ParseBytes decodes a YAML document. A top-level sequence is walked
// element by element; any other document is a single node.
func ParseBytes(data []byte) (*Parser, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return NewParser(), nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.SequenceNode {
		return NewParser(root.Content...), nil
	}

	return NewParser(root), nil
}

// Current returns the node under the cursor.
func (p *Parser) Current() (*yaml.Node, bool) {
	if p.pos >= len(p.nodes) {
		return nil, false
	}

	return p.nodes[p.pos], true
}

// Read advances the cursor. It returns false when the stream is exhausted.
func (p *Parser) Read() bool {
	if p.pos < len(p.nodes) {
		p.pos++
	}

	return p.pos < len(p.nodes)
}

// End returns true once every node has been consumed.
func (p *Parser) End() bool {
	return p.pos >= len(p.nodes)
}

// IsNullScalar returns true if the current node is a null scalar.
func (p *Parser) IsNullScalar() bool {
	n, ok := p.Current()
	return ok && n.Kind == yaml.ScalarNode && n.ShortTag() == tagNull
}

func (p *Parser) currentScalar() (*yaml.Node, error) {
	n, ok := p.Current()
	if !ok {
		return nil, ErrUnexpectedEnd
	}

	if n.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("%w: line %d", ErrNotScalar, n.Line)
	}

	return n, nil
}

// ScalarAsBool decodes the current scalar as a bool without advancing.
// Only scalars resolving to !!bool are accepted; null is not false.
func (p *Parser) ScalarAsBool() (bool, error) {
	n, err := p.currentScalar()
	if err != nil {
		return false, err
	}

	if tag := n.ShortTag(); tag != tagBool {
		return false, fmt.Errorf("%w: want %s, got %s at line %d", ErrWrongTag, tagBool, tag, n.Line)
	}

	var v bool
	if err := n.Decode(&v); err != nil {
		return false, fmt.Errorf("decode bool: %w", err)
	}

	return v, nil
}

// ScalarAsInt64 decodes the current scalar as an int64 without advancing.
func (p *Parser) ScalarAsInt64() (int64, error) {
	n, err := p.currentScalar()
	if err != nil {
		return 0, err
	}

	if tag := n.ShortTag(); tag != tagInt {
		return 0, fmt.Errorf("%w: want %s, got %s at line %d", ErrWrongTag, tagInt, tag, n.Line)
	}

	v, err := strconv.ParseInt(n.Value, 0, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %s does not fit int64", ErrOverflow, n.Value)
	}

	if err != nil {
		return 0, fmt.Errorf("decode int %q: %w", n.Value, err)
	}

	return v, nil
}
