package golang

import (
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/metagen/compiler/gen"
	"github.com/syssam/metagen/schema/field"
)

const uuidPkg = "github.com/google/uuid"

// goName returns the exported Go name of an ontology name.
func goName(name string) string {
	return gen.PascalCase(name)
}

// identifier returns an exported Go identifier for an arbitrary name,
// such as an enum member. Runs of characters other than letters and
// digits separate words.
func identifier(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for _, w := range words {
		b.WriteString(strings.ToUpper(w[:1]) + w[1:])
	}
	id := b.String()
	if id == "" || unicode.IsDigit(rune(id[0])) {
		id = "V" + id
	}
	return id
}

// fieldKind classifies the Go type of a property.
type fieldKind int

const (
	kindScalar fieldKind = iota
	kindString
	kindTime
	kindUUID
	kindEnum
	kindClass
	kindAny
)

// typer maps property types to Go types.
type typer struct {
	module string
	graph  *importGraph
}

func newTyper(o *gen.Ontology, module string) *typer {
	return &typer{module: module, graph: newImportGraph(o)}
}

// qual returns the possibly qualified Go name of a class or enum.
func (t *typer) qual(d gen.Decl) *jen.Statement {
	return jen.Qual(importPath(t.module, d.DeclPackage().Name), goName(d.DeclName()))
}

// embedsBase reports whether the struct of cls embeds its base.
func (t *typer) embedsBase(cls *gen.Class) bool {
	return cls.Base != nil && t.graph.allows(cls.Package.Name, cls.Base.Package.Name)
}

// accessible reports whether p is a field of the struct of cls, declared
// or promoted from an embedded base.
func (t *typer) accessible(cls *gen.Class, p *gen.Property) bool {
	for c := cls; c != nil; c = c.Base {
		if p.Class == c {
			return true
		}
		if !t.embedsBase(c) {
			return false
		}
	}
	return false
}

// field returns the Go type of p as a field of cls.
func (t *typer) field(cls *gen.Class, p *gen.Property) (jen.Code, fieldKind) {
	elem, kind := t.elem(cls, p.Type)
	if p.IsIterative() {
		return jen.Index().Add(elem), kind
	}
	return elem, kind
}

func (t *typer) elem(cls *gen.Class, ref *gen.TypeRef) (*jen.Statement, fieldKind) {
	switch {
	case ref.IsSimple():
		switch ref.Type() {
		case field.TypeBool:
			return jen.Bool(), kindScalar
		case field.TypeInt:
			return jen.Int(), kindScalar
		case field.TypeFloat:
			return jen.Float64(), kindScalar
		case field.TypeDate, field.TypeDatetime:
			return jen.Qual("time", "Time"), kindTime
		case field.TypeUUID:
			return jen.Qual(uuidPkg, "UUID"), kindUUID
		default:
			return jen.String(), kindString
		}
	case ref.Enum != nil:
		if t.graph.allows(cls.Package.Name, ref.Enum.Package.Name) {
			return t.qual(ref.Enum), kindEnum
		}
		return jen.String(), kindString
	case ref.Class != nil:
		if t.graph.allows(cls.Package.Name, ref.Class.Package.Name) {
			return jen.Op("*").Add(t.qual(ref.Class)), kindClass
		}
		return jen.Any(), kindAny
	default:
		return jen.Any(), kindAny
	}
}

// docComment returns the comment of a declaration, starting with its Go
// name.
func docComment(name, doc, fallback string) string {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return lineComment(name + " " + fallback)
	}
	return lineComment(name + " " + fallback + "\n\n" + doc)
}

// lineComment returns text as "//" comment lines. jen renders comments
// starting with "//" verbatim, and others spanning lines as blocks.
func lineComment(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			lines[i] = "// " + line
		} else {
			lines[i] = "//"
		}
	}
	return strings.Join(lines, "\n")
}
