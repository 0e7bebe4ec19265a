// Package cim registers the Metafor Common Information Model ontology.
//
// Importing the package for its side effects makes the schema available
// through schema.Lookup:
//
//	import _ "github.com/syssam/metagen/schema/cim"
//
//	o, err := schema.Lookup("cim", "1.5")
package cim

import (
	_ "embed"

	"github.com/syssam/metagen/compiler/load"
	"github.com/syssam/metagen/schema"
)

//go:embed v1_5.yaml
var v1_5 []byte

// V1_5 is the CIM v1.5 schema.
var V1_5 = load.MustParse(v1_5, load.FormatYAML)

func init() {
	schema.Register(V1_5)
}
