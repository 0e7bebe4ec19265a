package golang

import (
	"bytes"
	"fmt"
	"go/token"
	"path"
	"path/filepath"
	"strings"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"

	"github.com/syssam/metagen/compiler/gen"
)

// paramOntologyPackage is the lower-cased ontology name, available in
// module.txt.
const paramOntologyPackage = "{ontology-package}"

// ontologyDir returns the output directory of the versioned ontology.
func ontologyDir(ctx *gen.Context, sub ...string) string {
	parts := append([]string{ctx.Target, ontologyPackage(ctx.Ontology), versionPackage(ctx.Ontology)}, sub...)
	return filepath.Join(parts...)
}

// ontologyPackage returns the lower-cased ontology name.
func ontologyPackage(o *gen.Ontology) string {
	return strings.ToLower(o.Name)
}

// versionPackage returns the name of the root Go package, e.g. "v1_5".
func versionPackage(o *gen.Ontology) string {
	return "v" + gen.VersionName(o.Version)
}

// packageName returns the Go package name of an ontology package.
func packageName(name string) string {
	if token.IsKeyword(name) {
		return name + "_"
	}
	return name
}

// modulePath reads the import path of the generated root package from
// the module.txt template of the running emitter.
func modulePath(ctx *gen.Context) (string, error) {
	text, err := ctx.Template("module.txt")
	if err != nil {
		return "", err
	}
	text = gen.Replacements{}.Add(paramOntologyPackage, ontologyPackage(ctx.Ontology)).Apply(text)
	return strings.TrimSpace(text), nil
}

// importPath returns the import path of the Go package generated for an
// ontology package.
func importPath(module, pkg string) string {
	return path.Join(module, packageName(pkg))
}

// newFile returns a file of the given package carrying the header.txt
// template of the running emitter as header comment.
func newFile(ctx *gen.Context, importPath, name string) (*jen.File, error) {
	header, err := ctx.Template("header.txt")
	if err != nil {
		return nil, err
	}
	f := jen.NewFilePathName(importPath, name)
	f.HeaderComment(lineComment(header))
	return f, nil
}

// render formats f with goimports and returns it as an output.
func render(f *jen.File, dir, file string) ([]gen.Output, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", file, err)
	}
	out, err := imports.Process(filepath.Join(dir, file), buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", file, err)
	}
	return gen.Emit(string(out), dir, file), nil
}
