// Package golang generates Go source for an ontology. Every ontology
// package becomes a Go package holding a struct per class and a string
// type per enum. Decoding tables live in a separate decoding package and
// validation methods next to the types.
//
// Go forbids import cycles between packages, so a reference to a class of
// a package that already depends on the referencing one is emitted as an
// "any" field.
package golang

import (
	"embed"
	"io/fs"

	"github.com/syssam/metagen/compiler/gen"
)

// Language is the name of the target language.
const Language = "go"

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
// "go/<emitter>/<name>".
func Templates() fs.FS {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Emitters returns a new set of the Go emitters, in run order.
func Emitters() []gen.NamedEmitter {
	return []gen.NamedEmitter{
		{Key: KeyRoot, Emitter: &RootEmitter{}},
		{Key: KeyTypes, Emitter: &TypesEmitter{}},
		{Key: KeyDecoding, Emitter: &DecodingEmitter{}},
		{Key: KeyValidation, Emitter: &ValidationEmitter{}},
	}
}
