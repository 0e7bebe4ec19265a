package golang

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/metagen/compiler/gen"
)

// RootEmitter writes the root package of the ontology, with a factory of
// its entities.
type RootEmitter struct {
	gen.BaseEmitter
}

// OnOntology implements gen.Emitter.
func (*RootEmitter) OnOntology(ctx *gen.Context) ([]gen.Output, error) {
	o := ctx.Ontology
	module, err := modulePath(ctx)
	if err != nil {
		return nil, err
	}
	f, err := newFile(ctx, module, versionPackage(o))
	if err != nil {
		return nil, err
	}
	f.PackageComment(docComment("Package "+versionPackage(o), o.Doc,
		fmt.Sprintf("is the root of the %s v%s ontology.", o.Name, o.Version)))

	f.Comment("Version is the ontology version.")
	f.Const().Id("Version").Op("=").Lit(o.Version)

	f.Var().Id("entities").Op("=").Map(jen.String()).Func().Params().Any().Values(jen.DictFunc(func(d jen.Dict) {
		for _, e := range o.Entities {
			d[jen.Lit(e.QualifiedName())] = jen.Func().Params().Any().Block(
				jen.Return(jen.Qual(importPath(module, e.Package.Name), "New"+goName(e.Name)).Call()),
			)
		}
	}))

	f.Comment(`New returns a new instance of the entity named "package.class".`)
	f.Func().Id("New").Params(jen.Id("name").String()).Params(jen.Any(), jen.Bool()).Block(
		jen.List(jen.Id("fn"), jen.Id("ok")).Op(":=").Id("entities").Index(jen.Id("name")),
		jen.If(jen.Op("!").Id("ok")).Block(jen.Return(jen.Nil(), jen.False())),
		jen.Return(jen.Id("fn").Call(), jen.True()),
	)

	f.Comment("Entities returns the entity names in ascending order.")
	f.Func().Id("Entities").Params().Index().String().Block(
		jen.Return(jen.Qual("slices", "Sorted").Call(jen.Qual("maps", "Keys").Call(jen.Id("entities")))),
	)
	return render(f, ontologyDir(ctx), "ontology.go")
}
