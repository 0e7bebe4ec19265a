package python

import (
	"fmt"
	"strings"

	"github.com/syssam/metagen/compiler/gen"
	"github.com/syssam/metagen/compiler/gen/internal/writer"
)

// Placeholders of the types templates.
const (
	paramModuleImports        = "{module-imports}"
	paramPackageName          = "{package-name}"
	paramClassName            = "{class-name}"
	paramBaseClassName        = "{base-class-name}"
	paramClassDocString       = "{class-doc-string}"
	paramClassConstants       = "{class-constants}"
	paramClassImports         = "{class-imports}"
	paramClassCircularImports = "{class-circular-imports}"
	paramClassProperties      = "{class-properties}"
	paramClassRepresentations = "{class-representations}"
	paramDictCtor             = "{dict-ctor}"
	paramDictItems            = "{dict-items}"
	paramEnumName             = "{enum-name}"
	paramEnumDocString        = "{enum-doc-string}"
	paramEnumIsOpen           = "{enum-is-open}"
	paramEnumMembers          = "{enum-members}"
)

// TypesEmitter writes a module per class and enum, and the package
// initialization files importing them.
type TypesEmitter struct {
	gen.BaseEmitter
}

// OnOntology implements gen.Emitter.
func (*TypesEmitter) OnOntology(ctx *gen.Context) ([]gen.Output, error) {
	code, err := ctx.Template("package.txt")
	if err != nil {
		return nil, err
	}
	var imports strings.Builder
	for _, d := range ctx.Ontology.Types {
		fmt.Fprintf(&imports, "from %s import %s\n",
			modulePath(ctx.Ontology, KeyTypes, d.DeclPackage().Name, d.DeclName()), className(d.DeclName()))
	}
	code = gen.Replacements{}.Add(paramModuleImports, imports.String()).Apply(code)
	return gen.Emit(code, ontologyDir(ctx, KeyTypes), initFile), nil
}

// OnPackage implements gen.Emitter.
func (*TypesEmitter) OnPackage(ctx *gen.Context) ([]gen.Output, error) {
	code, err := ctx.Template("package_sub.txt")
	if err != nil {
		return nil, err
	}
	var imports strings.Builder
	for _, d := range ctx.Package.Types {
		fmt.Fprintf(&imports, "from .%s import %s\n", d.DeclName(), className(d.DeclName()))
	}
	code = gen.Replacements{}.
		Add(paramPackageName, ctx.Package.Name).
		Add(paramModuleImports, imports.String()).
		Apply(code)
	return gen.Emit(code, ontologyDir(ctx, KeyTypes, ctx.Package.Name), initFile), nil
}

// OnClass implements gen.Emitter.
func (*TypesEmitter) OnClass(ctx *gen.Context) ([]gen.Output, error) {
	cls := ctx.Class
	name := "class_concrete.txt"
	if cls.Abstract {
		name = "class_abstract.txt"
	}
	code, err := ctx.Template(name)
	if err != nil {
		return nil, err
	}
	repr, err := classRepresentations(ctx)
	if err != nil {
		return nil, err
	}
	base := "object"
	if cls.BaseName != "" {
		base = className(gen.NewTypeRef(cls.BaseName).Type())
	}
	code = gen.Replacements{}.
		Add(paramPackageName, cls.Package.Name).
		Add(paramClassName, className(cls.Name)).
		Add(paramBaseClassName, base).
		Add(paramClassDocString, docString(cls.Doc, cls.Name)).
		Add(paramClassConstants, classConstants(cls)).
		Add(paramClassImports, classImports(ctx, cls, cls.Imports)).
		Add(paramClassCircularImports, classImports(ctx, cls, cls.CircularImports)).
		Add(paramClassProperties, classProperties(cls)).
		Add(paramClassRepresentations, repr).
		Apply(code)
	return gen.Emit(code, ontologyDir(ctx, KeyTypes, cls.Package.Name), cls.Name+fileExt), nil
}

// OnEnum implements gen.Emitter.
func (*TypesEmitter) OnEnum(ctx *gen.Context) ([]gen.Output, error) {
	e := ctx.Enum
	code, err := ctx.Template("enum.txt")
	if err != nil {
		return nil, err
	}
	w := writer.New("    ")
	w.Indent(2)
	for _, m := range e.Members {
		w.WriteLinef("%s,", quote(m.Name))
	}
	code = gen.Replacements{}.
		Add(paramEnumName, className(e.Name)).
		Add(paramEnumDocString, docString(e.Doc, e.Name)).
		Add(paramEnumIsOpen, pyBool(e.IsOpen)).
		Add(paramEnumMembers, w.String()).
		Apply(code)
	return gen.Emit(code, ontologyDir(ctx, KeyTypes, e.Package.Name), e.Name+fileExt), nil
}

// classImports renders imports of the class module. Types of the same
// package are imported relatively.
func classImports(ctx *gen.Context, cls *gen.Class, imports []gen.Import) string {
	var b strings.Builder
	for _, imp := range imports {
		if imp.Package == cls.Package.Name {
			fmt.Fprintf(&b, "from .%s import %s\n", imp.Type, className(imp.Type))
			continue
		}
		fmt.Fprintf(&b, "from %s import %s\n",
			modulePath(ctx.Ontology, KeyTypes, imp.Package, imp.Type), className(imp.Type))
	}
	return b.String()
}

// classProperties renders the initialization of the own properties,
// each followed by a comment naming its type.
func classProperties(cls *gen.Class) string {
	if len(cls.Properties) == 0 {
		return ""
	}
	w := writer.New("    ")
	w.Newline()
	w.Indent(2)
	for _, p := range cls.Properties {
		ctor := fmt.Sprintf("self.%s = %s", p.Name, defaultValue(p))
		w.WriteLinef("%s%s# type = %s", ctor, strings.Repeat(" ", max(propertyColumn-len(ctor), 1)), typeDocName(p.Type))
	}
	return w.String()
}

// classConstants renders the constant assignments whose property exists.
func classConstants(cls *gen.Class) string {
	w := writer.New("    ")
	w.Indent(2)
	for _, k := range cls.Constants {
		p := cls.ConstantProperty(k)
		if p == nil {
			continue
		}
		if w.Len() == 0 {
			w.Newline()
		}
		w.WriteLinef("self.%s = %s(%s)", k.PropertyName, typeName(p.Type), quote(k.Value))
	}
	return w.String()
}

// classRepresentations renders the dictionary representation of the
// class.
func classRepresentations(ctx *gen.Context) (string, error) {
	cls := ctx.Class
	code, err := ctx.Template("class_representations.txt")
	if err != nil {
		return "", err
	}
	ctor := "dict()"
	if cls.BaseName != "" {
		ctor = fmt.Sprintf("super(%s, self).as_dict()", className(cls.Name))
	}
	w := writer.New("    ")
	w.Indent(2)
	for _, p := range cls.Properties {
		w.WriteLinef("append(d, %s, self.%s, %s, %s, %s)",
			quote(p.Name), p.Name, pyBool(p.IsIterative()), pyBool(p.Type.IsSimple()), pyBool(p.Type.IsEnum()))
	}
	return gen.Replacements{}.
		Add(paramDictCtor, ctor).
		Add(paramDictItems, w.String()).
		Add(paramClassName, className(cls.Name)).
		Apply(code), nil
}
