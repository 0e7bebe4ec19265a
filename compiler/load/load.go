// Package load reads ontology schema files into schema records and checks
// their shape before assembly.
package load

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/syssam/metagen/schema"
)

// Format identifies a schema file encoding.
type Format string

// Supported formats.
const (
	FormatYAML    Format = "yaml"
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// Formats lists the supported formats.
var Formats = []Format{FormatYAML, FormatJSON, FormatMsgpack}

// ParseFormat returns the Format named s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatYAML, FormatJSON, FormatMsgpack:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "mpk", "msgp":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("load: unknown format %q", s)
	}
}

// FormatOf derives the format from the extension of path.
func FormatOf(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("load: %s has no file extension", path)
	}
	return ParseFormat(ext)
}

// Load reads the schema file at path. The format is taken from the file
// extension.
func Load(path string) (*schema.Ontology, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: read schema: %w", err)
	}
	o, err := Parse(data, f)
	if err != nil {
		return nil, fmt.Errorf("load: %s: %w", path, err)
	}
	return o, nil
}

// Parse decodes data in format f. Unknown record fields are rejected.
func Parse(data []byte, f Format) (*schema.Ontology, error) {
	o := &schema.Ontology{}
	switch f {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(o); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(o); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatMsgpack:
		dec := msgpack.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields(true)
		if err := dec.Decode(o); err != nil {
			return nil, fmt.Errorf("decode msgpack: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown format %q", f)
	}
	return o, nil
}

// MustParse is like Parse but panics on error. It is meant for schemas
// embedded in the binary.
func MustParse(data []byte, f Format) *schema.Ontology {
	o, err := Parse(data, f)
	if err != nil {
		panic(err)
	}
	return o
}

// Marshal encodes o in format f.
func Marshal(o *schema.Ontology, f Format) ([]byte, error) {
	switch f {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(o); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		return json.MarshalIndent(o, "", "  ")
	case FormatMsgpack:
		return msgpack.Marshal(o)
	default:
		return nil, fmt.Errorf("load: unknown format %q", f)
	}
}
