package golang

import (
	"fmt"
	"strconv"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/metagen/compiler/gen"
	"github.com/syssam/metagen/schema/field"
)

// TypesEmitter writes a Go package per ontology package, with a file per
// class and enum.
type TypesEmitter struct {
	gen.BaseEmitter
	typer *typer
}

// OnStart implements gen.Emitter.
func (e *TypesEmitter) OnStart(ctx *gen.Context) ([]gen.Output, error) {
	module, err := modulePath(ctx)
	if err != nil {
		return nil, err
	}
	e.typer = newTyper(ctx.Ontology, module)
	return nil, nil
}

// OnPackage implements gen.Emitter.
func (e *TypesEmitter) OnPackage(ctx *gen.Context) ([]gen.Output, error) {
	p := ctx.Package
	f, err := e.newFile(ctx, p)
	if err != nil {
		return nil, err
	}
	f.PackageComment(docComment("Package "+packageName(p.Name), p.Doc,
		fmt.Sprintf("holds the %s types of the %s v%s ontology.", p.Name, ctx.Ontology.Name, ctx.Ontology.Version)))
	return render(f, ontologyDir(ctx, packageName(p.Name)), "doc.go")
}

// OnClass implements gen.Emitter.
func (e *TypesEmitter) OnClass(ctx *gen.Context) ([]gen.Output, error) {
	cls := ctx.Class
	f, err := e.newFile(ctx, cls.Package)
	if err != nil {
		return nil, err
	}
	name := goName(cls.Name)
	kind := "class"
	if cls.Abstract {
		kind = "abstract class"
	}
	f.Comment(docComment(name, cls.Doc, fmt.Sprintf("is the %s %s.", gen.DocName(cls.Name), kind)))
	f.Type().Id(name).StructFunc(func(group *jen.Group) {
		switch {
		case e.typer.embedsBase(cls):
			group.Add(e.typer.qual(cls.Base))
		case cls.BaseName != "":
			group.Comment(fmt.Sprintf("Base holds the %s base, which cannot be embedded without an import cycle.", cls.BaseName))
			group.Id("Base").Any().Tag(map[string]string{"json": "base,omitempty"})
		}
		for _, p := range cls.Properties {
			typ, kind := e.typer.field(cls, p)
			if kind == kindAny {
				group.Comment(fmt.Sprintf("%s holds a %s.", goName(p.Name), p.Type))
			}
			group.Id(goName(p.Name)).Add(typ).Tag(map[string]string{"json": p.Name + ",omitempty"})
		}
	})
	if !cls.Abstract {
		e.constructor(ctx, f, cls)
	}
	return render(f, ontologyDir(ctx, packageName(cls.Package.Name)), cls.Name+".go")
}

// constructor adds New<Class>, assigning the class constants.
func (e *TypesEmitter) constructor(ctx *gen.Context, f *jen.File, cls *gen.Class) {
	name := goName(cls.Name)
	f.Commentf("New%s returns a new %s with its constant properties set.", name, name)
	f.Func().Id("New" + name).Params().Op("*").Id(name).BlockFunc(func(group *jen.Group) {
		group.Id("x").Op(":=").Op("&").Id(name).Values()
		for _, k := range cls.AllConstants {
			p := cls.ConstantProperty(k)
			if p == nil || p.IsIterative() || !e.typer.accessible(cls, p) {
				continue
			}
			value, ok := e.constant(p, k.Value)
			if !ok {
				ctx.Logger.Warn().
					Str("class", cls.QualifiedName()).
					Str("property", p.Name).
					Str("value", k.Value).
					Msg("constant ignored")
				continue
			}
			group.Id("x").Dot(goName(p.Name)).Op("=").Add(value)
		}
		group.Return(jen.Id("x"))
	})
}

// constant returns the untyped literal of a constant value of p.
func (e *TypesEmitter) constant(p *gen.Property, value string) (jen.Code, bool) {
	_, kind := e.typer.field(p.Class, p)
	switch kind {
	case kindString, kindEnum:
		return jen.Lit(value), true
	case kindScalar:
		switch p.Type.Type() {
		case field.TypeBool:
			b, err := strconv.ParseBool(value)
			return jen.Lit(b), err == nil
		case field.TypeInt:
			n, err := strconv.Atoi(value)
			return jen.Lit(n), err == nil
		default:
			n, err := strconv.ParseFloat(value, 64)
			return jen.Lit(n), err == nil
		}
	default:
		return nil, false
	}
}

// OnEnum implements gen.Emitter.
func (e *TypesEmitter) OnEnum(ctx *gen.Context) ([]gen.Output, error) {
	en := ctx.Enum
	f, err := e.newFile(ctx, en.Package)
	if err != nil {
		return nil, err
	}
	name := goName(en.Name)
	f.Comment(docComment(name, en.Doc, fmt.Sprintf("enumerates the %s values.", gen.DocName(en.Name))))
	f.Type().Id(name).String()

	members := make([]jen.Code, 0, len(en.Members))
	f.Commentf("%s values.", name)
	f.Const().DefsFunc(func(group *jen.Group) {
		for _, m := range en.Members {
			id := name + identifier(m.Name)
			if m.Doc != "" {
				group.Comment(lineComment(m.Doc))
			}
			group.Id(id).Id(name).Op("=").Lit(m.Name)
			members = append(members, jen.Id(id))
		}
	})

	f.Commentf("%sValues returns the members of %s.", name, name)
	f.Func().Id(name + "Values").Params().Index().Id(name).Block(
		jen.Return(jen.Index().Id(name).Values(members...)),
	)

	if en.IsOpen {
		f.Commentf("IsValid reports whether v is valid. %s is open: every non-empty value is.", name)
		f.Func().Params(jen.Id("v").Id(name)).Id("IsValid").Params().Bool().Block(
			jen.Return(jen.Id("v").Op("!=").Lit("")),
		)
	} else {
		f.Comment("IsValid reports whether v is a member of " + name + ".")
		f.Func().Params(jen.Id("v").Id(name)).Id("IsValid").Params().Bool().BlockFunc(func(group *jen.Group) {
			if len(members) > 0 {
				group.Switch(jen.Id("v")).Block(
					jen.Case(members...).Block(jen.Return(jen.True())),
				)
			}
			group.Return(jen.False())
		})
	}

	f.Comment("String implements fmt.Stringer.")
	f.Func().Params(jen.Id("v").Id(name)).Id("String").Params().String().Block(
		jen.Return(jen.String().Call(jen.Id("v"))),
	)
	return render(f, ontologyDir(ctx, packageName(en.Package.Name)), en.Name+".go")
}

func (e *TypesEmitter) newFile(ctx *gen.Context, p *gen.Package) (*jen.File, error) {
	return newFile(ctx, importPath(e.typer.module, p.Name), packageName(p.Name))
}
