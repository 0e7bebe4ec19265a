package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/metagen/compiler/gen"
)

// ValidationEmitter writes a Validate method per class, next to the
// types of each package.
type ValidationEmitter struct {
	gen.BaseEmitter
	typer *typer
}

// OnStart implements gen.Emitter.
func (e *ValidationEmitter) OnStart(ctx *gen.Context) ([]gen.Output, error) {
	e.typer = newTyper(ctx.Ontology, "")
	return nil, nil
}

// OnPackage implements gen.Emitter.
func (e *ValidationEmitter) OnPackage(ctx *gen.Context) ([]gen.Output, error) {
	p := ctx.Package
	if len(p.Classes) == 0 {
		return nil, nil
	}
	f, err := newFile(ctx, packageName(p.Name), packageName(p.Name))
	if err != nil {
		return nil, err
	}
	for _, cls := range p.Classes {
		e.validate(f, cls)
	}
	return render(f, ontologyDir(ctx, packageName(p.Name)), "validate.go")
}

// validate adds the Validate method of cls: required properties must be
// set and nested instances must be valid.
func (e *ValidationEmitter) validate(f *jen.File, cls *gen.Class) {
	name := goName(cls.Name)
	x := func() *jen.Statement { return jen.Id("x") }
	appendErr := func(err jen.Code) jen.Code {
		return jen.Id("errs").Op("=").Append(jen.Id("errs"), err)
	}
	nested := func(value jen.Code) jen.Code {
		return jen.If(jen.Err().Op(":=").Add(value).Dot("Validate").Call(), jen.Err().Op("!=").Nil()).Block(
			appendErr(jen.Err()),
		)
	}

	f.Commentf("Validate checks that the required properties of %s are set and its nested instances are valid.", name)
	f.Func().Params(jen.Id("x").Op("*").Id(name)).Id("Validate").Params().Error().BlockFunc(func(group *jen.Group) {
		group.If(x().Op("==").Nil()).Block(jen.Return(jen.Nil()))
		group.Var().Id("errs").Index().Error()
		if e.typer.embedsBase(cls) {
			group.Add(nested(x().Dot(goName(cls.Base.Name))))
		}
		for _, p := range cls.Properties {
			_, kind := e.typer.field(cls, p)
			value := x().Dot(goName(p.Name))
			if p.IsRequired() {
				if missing := isMissing(value, p, kind); missing != nil {
					group.If(missing).Block(
						appendErr(jen.Qual("errors", "New").Call(jen.Lit(cls.QualifiedName() + ": " + p.Name + " is required"))),
					)
				}
			}
			switch {
			case kind == kindClass && p.IsIterative():
				group.For(jen.List(jen.Id("_"), jen.Id("item")).Op(":=").Range().Add(value)).Block(nested(jen.Id("item")))
			case kind == kindClass:
				group.Add(nested(value))
			case kind == kindEnum && p.IsIterative():
				group.For(jen.List(jen.Id("_"), jen.Id("item")).Op(":=").Range().Add(value)).Block(
					jen.If(jen.Op("!").Id("item").Dot("IsValid").Call()).Block(invalid(cls, p, jen.Id("item"), appendErr)),
				)
			case kind == kindEnum:
				group.If(value.Clone().Op("!=").Lit("").Op("&&").Op("!").Add(value.Clone()).Dot("IsValid").Call()).Block(
					invalid(cls, p, value, appendErr),
				)
			}
		}
		group.Return(jen.Qual("errors", "Join").Call(jen.Id("errs").Op("...")))
	})
}

// isMissing returns the condition of an unset required property, or nil
// when the zero value cannot be told apart from a set one.
func isMissing(value *jen.Statement, p *gen.Property, kind fieldKind) jen.Code {
	switch {
	case p.IsIterative():
		return jen.Len(value.Clone()).Op("==").Lit(0)
	case kind == kindClass || kind == kindAny:
		return value.Clone().Op("==").Nil()
	case kind == kindString || kind == kindEnum:
		return value.Clone().Op("==").Lit("")
	case kind == kindTime:
		return value.Clone().Dot("IsZero").Call()
	case kind == kindUUID:
		return value.Clone().Op("==").Qual(uuidPkg, "Nil")
	default:
		return nil
	}
}

func invalid(cls *gen.Class, p *gen.Property, value jen.Code, appendErr func(jen.Code) jen.Code) jen.Code {
	return appendErr(jen.Qual("fmt", "Errorf").Call(
		jen.Lit(cls.QualifiedName()+": "+p.Name+": invalid value %q"), value,
	))
}
