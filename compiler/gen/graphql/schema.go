package graphql

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/metagen/compiler/gen"
	"github.com/syssam/metagen/compiler/gen/internal/writer"
	"github.com/syssam/metagen/schema/field"
)

// paramSchemaTypes is replaced by the generated definitions in schema.txt.
const paramSchemaTypes = "{schema-types}"

// scalars maps simple types to GraphQL types. The custom ones are
// declared in every schema.
var scalars = map[string]string{
	field.TypeBool:     "Boolean",
	field.TypeDate:     "Date",
	field.TypeDatetime: "DateTime",
	field.TypeFloat:    "Float",
	field.TypeInt:      "Int",
	field.TypeStr:      "String",
	field.TypeURI:      "URI",
	field.TypeUUID:     "UUID",
}

var customScalars = []string{"Date", "DateTime", "URI", "UUID"}

// SchemaEmitter writes the schema.graphql file of the ontology.
type SchemaEmitter struct {
	gen.BaseEmitter
}

// OnOntology implements gen.Emitter.
func (*SchemaEmitter) OnOntology(ctx *gen.Context) ([]gen.Output, error) {
	o := ctx.Ontology
	code, err := ctx.Template("schema.txt")
	if err != nil {
		return nil, err
	}
	sdl := build(o)
	dir := filepath.Join(ctx.Target, strings.ToLower(o.Name), "v"+gen.VersionName(o.Version))
	if _, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: sdl}); err != nil {
		return nil, fmt.Errorf("graphql: invalid schema: %w", err)
	}
	code = gen.Replacements{}.Add(paramSchemaTypes, sdl).Apply(code)
	return gen.Emit(code, dir, "schema.graphql"), nil
}

// build returns the definitions of the ontology.
func build(o *gen.Ontology) string {
	w := writer.New("  ")
	for _, s := range customScalars {
		w.WriteLinef("scalar %s", s)
	}
	for _, e := range o.Enums {
		w.BlankLine()
		writeEnum(w, e)
	}
	for _, cls := range o.Classes {
		if cls.Abstract && len(cls.AllProperties) == 0 {
			continue
		}
		w.BlankLine()
		writeClass(w, cls)
	}
	w.BlankLine()
	writeQuery(w, o)
	return w.String()
}

// typeName returns the schema name of a class or enum, qualified by its
// package.
func typeName(d gen.Decl) string {
	return gen.PascalCase(d.DeclPackage().Name) + gen.PascalCase(d.DeclName())
}

func description(w *writer.Writer, title, doc string) {
	text := title
	if doc = strings.TrimSpace(doc); doc != "" {
		text += "\n\n" + doc
	}
	w.WriteDocString(`"""`, strings.ReplaceAll(text, `"""`, `\"""`))
}

func writeEnum(w *writer.Writer, e *gen.Enum) {
	description(w, gen.TitleName(e.Name), e.Doc)
	if e.IsOpen || len(e.Members) == 0 {
		w.WriteLinef("scalar %s", typeName(e))
		return
	}
	w.WriteBlock(fmt.Sprintf("enum %s {", typeName(e)), "}", func() {
		for _, m := range e.Members {
			if m.Doc != "" {
				description(w, m.Doc, "")
			}
			w.WriteLine(enumValue(m.Name))
		}
	})
}

// enumValue returns the upper snake case value of an enum member.
func enumValue(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	v := strings.ToUpper(strings.Join(words, "_"))
	if v == "" || unicode.IsDigit(rune(v[0])) {
		v = "_" + v
	}
	return v
}

func writeClass(w *writer.Writer, cls *gen.Class) {
	description(w, gen.TitleName(cls.Name), cls.Doc)
	kind := "type"
	if cls.Abstract {
		kind = "interface"
	}
	var implements []string
	for _, a := range cls.Ancestors() {
		if a.Abstract && len(a.AllProperties) > 0 {
			implements = append(implements, typeName(a))
		}
	}
	head := kind + " " + typeName(cls)
	if len(implements) > 0 {
		head += " implements " + strings.Join(implements, " & ")
	}
	w.WriteBlock(head+" {", "}", func() {
		if len(cls.AllProperties) == 0 {
			description(w, "The class has no properties.", "")
			w.WriteLine("_empty: Boolean")
		}
		for _, p := range cls.AllProperties {
			if p.Doc != "" {
				description(w, p.Doc, "")
			}
			w.WriteLinef("%s: %s", gen.CamelCase(p.Name), fieldType(p))
		}
	})
}

// fieldType returns the type of a property field. Unresolved references
// read as strings.
func fieldType(p *gen.Property) string {
	var typ string
	switch t := p.Type; {
	case t.IsSimple():
		typ = scalars[t.Type()]
	case t.Decl() != nil:
		typ = typeName(t.Decl())
		if c := t.Class; c != nil && c.Abstract && len(c.AllProperties) == 0 {
			typ = "String"
		}
	default:
		typ = "String"
	}
	if p.IsIterative() {
		typ = "[" + typ + "!]"
	}
	if p.IsRequired() {
		typ += "!"
	}
	return typ
}

// writeQuery exposes the ontology version and a list field per entity.
func writeQuery(w *writer.Writer, o *gen.Ontology) {
	names := make([]string, 0, len(o.Entities))
	for _, e := range o.Entities {
		names = append(names, gen.Plural(gen.CamelCase(e.Name)))
	}
	w.WriteBlock("type Query {", "}", func() {
		description(w, "Version of the "+o.Name+" ontology.", "")
		w.WriteLine("version: String!")
		for i, e := range o.Entities {
			name := names[i]
			if countOf(names, name) > 1 {
				name = gen.CamelCase(e.Package.Name + "_" + gen.Plural(e.Name))
			}
			description(w, gen.Plural(gen.TitleName(e.Name))+".", "")
			w.WriteLinef("%s: [%s!]!", name, typeName(e))
		}
	})
}

func countOf(names []string, name string) int {
	n := 0
	for _, s := range names {
		if s == name {
			n++
		}
	}
	return n
}
