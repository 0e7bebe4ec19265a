// Package graphql generates a GraphQL schema (SDL) for an ontology.
// Abstract classes become interfaces, concrete classes object types and
// closed enums enum types. Entities are exposed as Query fields. The
// schema is parsed and validated before it is written.
package graphql

import (
	"embed"
	"io/fs"

	"github.com/syssam/metagen/compiler/gen"
)

// Language is the name of the target language.
const Language = "graphql"

// KeyTypes is the key of the schema emitter.
const KeyTypes = "types"

//go:embed templates
var templates embed.FS

// Templates returns the embedded templates, rooted so that paths read
// "graphql/<emitter>/<name>".
func Templates() fs.FS {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Emitters returns a new set of the GraphQL emitters.
func Emitters() []gen.NamedEmitter {
	return []gen.NamedEmitter{
		{Key: KeyTypes, Emitter: &SchemaEmitter{}},
	}
}
