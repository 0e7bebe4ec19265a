package python

import (
	"path/filepath"
	"strings"

	"github.com/syssam/metagen/compiler/gen"
	"github.com/syssam/metagen/schema/field"
)

const (
	fileExt  = ".py"
	initFile = "__init__.py"
	// propertyColumn is the column at which the type comment of a
	// property starts.
	propertyColumn = 45
)

// simpleTypes maps simple types to Python types.
var simpleTypes = map[string]string{
	field.TypeBool:     "bool",
	field.TypeDate:     "datetime.date",
	field.TypeDatetime: "datetime.datetime",
	field.TypeFloat:    "float",
	field.TypeInt:      "int",
	field.TypeStr:      "str",
	field.TypeURI:      "str",
	field.TypeUUID:     "uuid.UUID",
}

// simpleDefaults maps Python types to their default value.
var simpleDefaults = map[string]string{
	"bool":              "bool()",
	"datetime.date":     "datetime.date(1900, 1, 1)",
	"datetime.datetime": "datetime.datetime.now()",
	"float":             "float()",
	"int":               "int()",
	"str":               "str()",
	"uuid.UUID":         "uuid.uuid4()",
}

// ontologyName returns the lower-cased ontology name.
func ontologyName(o *gen.Ontology) string {
	return strings.ToLower(o.Name)
}

// modulePath returns the dotted module path "onto.vX_Y.sub.names...".
func modulePath(o *gen.Ontology, names ...string) string {
	parts := append([]string{ontologyName(o), "v" + gen.VersionName(o.Version)}, names...)
	return strings.Join(parts, ".")
}

// ontologyDir returns the directory of the versioned ontology, or of one
// of its sub packages.
func ontologyDir(ctx *gen.Context, sub ...string) string {
	parts := append([]string{ctx.Target, ontologyName(ctx.Ontology), "v" + gen.VersionName(ctx.Ontology.Version)}, sub...)
	return filepath.Join(parts...)
}

// className returns the Python name of a class or enum.
func className(name string) string {
	return gen.PascalCase(name)
}

// moduleName returns the name of a per package module, such as
// "decoder_for_shared_package".
func moduleName(pkg, prefix string) string {
	return prefix + "_for_" + pkg + "_package"
}

// typeName returns the Python type of a property type.
func typeName(t *gen.TypeRef) string {
	switch {
	case t.IsSimple():
		return simpleTypes[t.Type()]
	case t.IsEnum():
		return "str"
	default:
		return className(t.Type())
	}
}

// typeDocName returns the type name written in property comments.
func typeDocName(t *gen.TypeRef) string {
	if t.IsSimple() {
		return simpleTypes[t.Type()]
	}
	return t.Package() + "." + className(t.Type())
}

// defaultValue returns the value a property is initialized with.
func defaultValue(p *gen.Property) string {
	switch {
	case p.IsIterative():
		return "[]"
	case p.Type.IsSimple():
		return simpleDefaults[simpleTypes[p.Type.Type()]]
	case p.Type.IsEnum():
		return "''"
	default:
		return "None"
	}
}

// pyBool returns the Python literal of b.
func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// quote returns s as a single quoted Python string.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

// docString returns the doc of a declaration, or a default naming it.
func docString(doc, name string) string {
	if doc = strings.TrimSpace(doc); doc != "" {
		return doc
	}
	return gen.DocName(name) + "."
}
