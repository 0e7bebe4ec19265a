// Package python generates a Python type system for an ontology: one
// module per class and enum, plus decoders and validators grouped per
// package. Output is driven by the templates embedded in the package.
package python

import (
	"embed"
	"io/fs"

	"github.com/syssam/metagen/compiler/gen"
)

// Language is the name of the target language.
const Language = "python"

// Emitter keys, in run order.
const (
	KeyRoot       = "root"
	KeyTypes      = "types"
	KeyDecoding   = "decoding"
	KeyValidation = "validation"
)

//go:embed templates
var templates embed.FS

// Templates returns the embedded templates, rooted so that paths read
// "python/<emitter>/<name>".
func Templates() fs.FS {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Emitters returns a new set of the Python emitters, in run order.
func Emitters() []gen.NamedEmitter {
	return []gen.NamedEmitter{
		{Key: KeyRoot, Emitter: &RootEmitter{}},
		{Key: KeyTypes, Emitter: &TypesEmitter{}},
		{Key: KeyDecoding, Emitter: &DecodingEmitter{}},
		{Key: KeyValidation, Emitter: &ValidationEmitter{}},
	}
}
