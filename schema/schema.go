package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// The following records mirror the on-disk shape of an ontology schema.
// They carry no derived state; see compiler/gen for the assembled graph.
type (
	// Ontology is the root record of a schema.
	Ontology struct {
		Name    string `json:"name" yaml:"name" msgpack:"name"`
		Version string `json:"version" yaml:"version" msgpack:"version"`
		Doc     string `json:"doc,omitempty" yaml:"doc,omitempty" msgpack:"doc,omitempty"`
		// IsLatest flags the version selected by the "latest" alias
		// in the registry.
		IsLatest bool       `json:"is_latest,omitempty" yaml:"is_latest,omitempty" msgpack:"is_latest,omitempty"`
		Packages []*Package `json:"packages" yaml:"packages" msgpack:"packages"`
	}

	// Package groups classes and enums under a name.
	Package struct {
		Name    string   `json:"name" yaml:"name" msgpack:"name"`
		Doc     string   `json:"doc,omitempty" yaml:"doc,omitempty" msgpack:"doc,omitempty"`
		Classes []*Class `json:"classes,omitempty" yaml:"classes,omitempty" msgpack:"classes,omitempty"`
		Enums   []*Enum  `json:"enums,omitempty" yaml:"enums,omitempty" msgpack:"enums,omitempty"`
	}

	// Class describes a class. Base is a "package.name" reference or empty.
	Class struct {
		Name       string     `json:"name" yaml:"name" msgpack:"name"`
		Base       string     `json:"base,omitempty" yaml:"base,omitempty" msgpack:"base,omitempty"`
		Abstract   bool       `json:"abstract,omitempty" yaml:"abstract,omitempty" msgpack:"abstract,omitempty"`
		Doc        string     `json:"doc,omitempty" yaml:"doc,omitempty" msgpack:"doc,omitempty"`
		Properties []Property `json:"properties,omitempty" yaml:"properties,omitempty" msgpack:"properties,omitempty"`
		Decodings  []Decoding `json:"decodings,omitempty" yaml:"decodings,omitempty" msgpack:"decodings,omitempty"`
		Constants  []Constant `json:"constants,omitempty" yaml:"constants,omitempty" msgpack:"constants,omitempty"`
	}

	// Property is the (name, type, cardinality, doc) tuple.
	Property struct {
		_msgpack    struct{} `msgpack:",as_array"`
		Name        string
		Type        string
		Cardinality string
		Doc         string
	}

	// Decoding is the (property, expression[, sub-type]) tuple.
	Decoding struct {
		_msgpack   struct{} `msgpack:",as_array"`
		Property   string
		Expression string
		Type       string
	}

	// Constant is the (property, value) tuple.
	Constant struct {
		_msgpack struct{} `msgpack:",as_array"`
		Property string
		Value    string
	}

	// Enum describes an enumeration.
	Enum struct {
		Name string `json:"name" yaml:"name" msgpack:"name"`
		// IsOpen reports whether consumers may extend the member set.
		IsOpen  bool         `json:"is_open,omitempty" yaml:"is_open,omitempty" msgpack:"is_open,omitempty"`
		Doc     string       `json:"doc,omitempty" yaml:"doc,omitempty" msgpack:"doc,omitempty"`
		Members []EnumMember `json:"members,omitempty" yaml:"members,omitempty" msgpack:"members,omitempty"`
	}

	// EnumMember is the (name, doc) tuple.
	EnumMember struct {
		_msgpack struct{} `msgpack:",as_array"`
		Name     string
		Doc      string
	}
)

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Property) UnmarshalYAML(node *yaml.Node) error {
	v, err := yamlTuple(node, "property", 4, 4)
	if err != nil {
		return err
	}
	p.Name, p.Type, p.Cardinality, p.Doc = v[0], v[1], v[2], v[3]
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (p Property) MarshalYAML() (any, error) {
	return flowTuple(p.Name, p.Type, p.Cardinality, p.Doc), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Property) UnmarshalJSON(data []byte) error {
	v, err := jsonTuple(data, "property", 4, 4)
	if err != nil {
		return err
	}
	p.Name, p.Type, p.Cardinality, p.Doc = v[0], v[1], v[2], v[3]
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p Property) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{p.Name, p.Type, p.Cardinality, p.Doc})
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Decoding) UnmarshalYAML(node *yaml.Node) error {
	v, err := yamlTuple(node, "decoding", 2, 3)
	if err != nil {
		return err
	}
	d.Property, d.Expression, d.Type = v[0], v[1], v[2]
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Decoding) MarshalYAML() (any, error) {
	if d.Type == "" {
		return flowTuple(d.Property, d.Expression), nil
	}
	return flowTuple(d.Property, d.Expression, d.Type), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Decoding) UnmarshalJSON(data []byte) error {
	v, err := jsonTuple(data, "decoding", 2, 3)
	if err != nil {
		return err
	}
	d.Property, d.Expression, d.Type = v[0], v[1], v[2]
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Decoding) MarshalJSON() ([]byte, error) {
	if d.Type == "" {
		return json.Marshal([]string{d.Property, d.Expression})
	}
	return json.Marshal([]string{d.Property, d.Expression, d.Type})
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Constant) UnmarshalYAML(node *yaml.Node) error {
	v, err := yamlTuple(node, "constant", 2, 2)
	if err != nil {
		return err
	}
	c.Property, c.Value = v[0], v[1]
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Constant) MarshalYAML() (any, error) {
	return flowTuple(c.Property, c.Value), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Constant) UnmarshalJSON(data []byte) error {
	v, err := jsonTuple(data, "constant", 2, 2)
	if err != nil {
		return err
	}
	c.Property, c.Value = v[0], v[1]
	return nil
}

// MarshalJSON implements json.Marshaler.
func (c Constant) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{c.Property, c.Value})
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *EnumMember) UnmarshalYAML(node *yaml.Node) error {
	v, err := yamlTuple(node, "enum member", 2, 2)
	if err != nil {
		return err
	}
	m.Name, m.Doc = v[0], v[1]
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (m EnumMember) MarshalYAML() (any, error) {
	return flowTuple(m.Name, m.Doc), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *EnumMember) UnmarshalJSON(data []byte) error {
	v, err := jsonTuple(data, "enum member", 2, 2)
	if err != nil {
		return err
	}
	m.Name, m.Doc = v[0], v[1]
	return nil
}

// MarshalJSON implements json.Marshaler.
func (m EnumMember) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{m.Name, m.Doc})
}

// yamlTuple reads a flow or block sequence of scalars. Scalars are taken
// verbatim, so a cardinality such as 0.1 keeps its textual form. Null
// entries become empty strings. The result always holds maxLen items.
func yamlTuple(node *yaml.Node, kind string, minLen, maxLen int) ([]string, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: %s must be a sequence", node.Line, kind)
	}
	if n := len(node.Content); n < minLen || n > maxLen {
		return nil, fmt.Errorf("line %d: %s must have %s items, got %d", node.Line, kind, arity(minLen, maxLen), n)
	}
	v := make([]string, maxLen)
	for i, item := range node.Content {
		if item.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: %s item %d must be a scalar", item.Line, kind, i)
		}
		if item.Tag != "!!null" {
			v[i] = item.Value
		}
	}
	return v, nil
}

// jsonTuple is the JSON counterpart of yamlTuple. Non-string literals
// (numbers, booleans) keep their raw text.
func jsonTuple(data []byte, kind string, minLen, maxLen int) ([]string, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s must be an array: %w", kind, err)
	}
	if n := len(raw); n < minLen || n > maxLen {
		return nil, fmt.Errorf("%s must have %s items, got %d", kind, arity(minLen, maxLen), n)
	}
	v := make([]string, maxLen)
	for i, item := range raw {
		item = bytes.TrimSpace(item)
		switch {
		case bytes.Equal(item, []byte("null")):
		case len(item) > 0 && item[0] == '"':
			if err := json.Unmarshal(item, &v[i]); err != nil {
				return nil, fmt.Errorf("%s item %d: %w", kind, i, err)
			}
		case len(item) > 0 && (item[0] == '[' || item[0] == '{'):
			return nil, fmt.Errorf("%s item %d must be a scalar", kind, i)
		default:
			v[i] = string(item)
		}
	}
	return v, nil
}

func flowTuple(items ...string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, item := range items {
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: item})
	}
	return n
}

func arity(minLen, maxLen int) string {
	if minLen == maxLen {
		return fmt.Sprint(minLen)
	}
	return fmt.Sprintf("%d to %d", minLen, maxLen)
}
