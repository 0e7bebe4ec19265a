package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/metagen/compiler/gen"
)

// decodingPackage is the package holding the decoding tables.
const decodingPackage = "decoding"

// DecodingEmitter writes the decoding package: a table per class telling
// how its properties, own and inherited, are read from a document.
type DecodingEmitter struct {
	gen.BaseEmitter
}

// OnOntology implements gen.Emitter.
func (*DecodingEmitter) OnOntology(ctx *gen.Context) ([]gen.Output, error) {
	f, err := newFile(ctx, decodingPackage, decodingPackage)
	if err != nil {
		return nil, err
	}
	f.PackageComment("Package decoding tells how the classes of the " + ctx.Ontology.Name + " ontology are read from documents.")

	f.Comment("Decoding reads a property from the nodes selected by an expression.")
	f.Type().Id("Decoding").Struct(
		jen.Id("Property").String(),
		jen.Id("Iterative").Bool(),
		jen.Comment(`Type is a simple type name, or the "package.class" decoded.`),
		jen.Id("Type").String(),
		jen.Id("Expression").String(),
	)
	f.Var().Id("tables").Op("=").Make(jen.Map(jen.String()).Index().Id("Decoding"))

	f.Comment(`For returns the decodings of the class "package.class".`)
	f.Func().Id("For").Params(jen.Id("class").String()).Index().Id("Decoding").Block(
		jen.Return(jen.Id("tables").Index(jen.Id("class"))),
	)
	f.Comment("Classes returns the names of the classes having decodings, in ascending order.")
	f.Func().Id("Classes").Params().Index().String().Block(
		jen.Return(jen.Qual("slices", "Sorted").Call(jen.Qual("maps", "Keys").Call(jen.Id("tables")))),
	)
	return render(f, ontologyDir(ctx, decodingPackage), "decoding.go")
}

// OnPackage implements gen.Emitter.
func (*DecodingEmitter) OnPackage(ctx *gen.Context) ([]gen.Output, error) {
	tables := jen.Dict{}
	for _, cls := range ctx.Package.Classes {
		var rows []jen.Code
		for _, p := range cls.AllProperties {
			for _, d := range cls.PropertyDecodings(p) {
				if d.Expression == "" {
					continue
				}
				rows = append(rows, jen.Values(jen.Dict{
					jen.Id("Property"):   jen.Lit(p.Name),
					jen.Id("Iterative"):  jen.Lit(p.IsIterative()),
					jen.Id("Type"):       jen.Lit(decodedType(p, d)),
					jen.Id("Expression"): jen.Lit(d.Expression),
				}))
			}
		}
		if len(rows) > 0 {
			tables[jen.Lit(cls.QualifiedName())] = jen.Values(rows...)
		}
	}
	if len(tables) == 0 {
		return nil, nil
	}
	f, err := newFile(ctx, decodingPackage, decodingPackage)
	if err != nil {
		return nil, err
	}
	f.Func().Id("init").Params().Block(
		jen.For(jen.List(jen.Id("class"), jen.Id("table")).Op(":=").Range().Map(jen.String()).Index().Id("Decoding").Values(tables)).Block(
			jen.Id("tables").Index(jen.Id("class")).Op("=").Id("table"),
		),
	)
	return render(f, ontologyDir(ctx, decodingPackage), "tables_"+ctx.Package.Name+".go")
}

// decodedType returns the type read by a decoding: the decoding sub type
// when set, the property type otherwise. Enums read strings.
func decodedType(p *gen.Property, d *gen.Decoding) string {
	t := p.Type
	switch {
	case t.IsSimple():
		return t.Type()
	case !t.IsClass:
		return "str"
	case d.SubType != nil:
		return d.SubType.Name
	default:
		return t.Name
	}
}
