package python

import (
	"path/filepath"

	"github.com/syssam/metagen/compiler/gen"
)

// RootEmitter writes the initialization files of the ontology package
// and of its versioned sub package.
type RootEmitter struct {
	gen.BaseEmitter
}

// OnOntology implements gen.Emitter.
func (*RootEmitter) OnOntology(ctx *gen.Context) ([]gen.Output, error) {
	top, err := ctx.Template("package_1.txt")
	if err != nil {
		return nil, err
	}
	versioned, err := ctx.Template("package_2.txt")
	if err != nil {
		return nil, err
	}
	return []gen.Output{
		{Content: top, Dir: filepath.Join(ctx.Target, ontologyName(ctx.Ontology)), File: initFile},
		{Content: versioned, Dir: ontologyDir(ctx), File: initFile},
	}, nil
}
