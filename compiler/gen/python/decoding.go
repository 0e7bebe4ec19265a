package python

import (
	"fmt"
	"slices"
	"strings"

	"github.com/syssam/metagen/compiler/gen"
	"github.com/syssam/metagen/compiler/gen/internal/writer"
)

// Placeholders of the decoding and validation templates.
const (
	paramClassFunctionName  = "{class-function-name}"
	paramClassDocName       = "{class-doc-name}"
	paramClassDecodings     = "{class-decodings}"
	paramDecodingFunctions  = "{decoding-functions}"
	paramClassValidations   = "{class-validations}"
	paramValidatorFunctions = "{validation-functions}"
)

// serializationDir is the sub package holding the decoders.
const serializationDir = "serialization"

// DecodingEmitter writes a decoder module per package. Every class gets a
// decode function listing how its properties are read from an XML
// document.
type DecodingEmitter struct {
	gen.BaseEmitter
}

// OnOntology implements gen.Emitter.
func (*DecodingEmitter) OnOntology(ctx *gen.Context) ([]gen.Output, error) {
	code, err := ctx.Template("package.txt")
	if err != nil {
		return nil, err
	}
	imports := make([]string, 0, len(ctx.Ontology.Entities))
	for _, e := range ctx.Ontology.Entities {
		imports = append(imports, fmt.Sprintf("from %s import %s",
			modulePath(ctx.Ontology, serializationDir, moduleName(e.Package.Name, "decoder")), decoderName(e.Name)))
	}
	code = gen.Replacements{}.Add(paramModuleImports, strings.Join(imports, "\n")).Apply(code)
	return gen.Emit(code, ontologyDir(ctx, serializationDir), initFile), nil
}

// OnPackage implements gen.Emitter.
func (*DecodingEmitter) OnPackage(ctx *gen.Context) ([]gen.Output, error) {
	p := ctx.Package
	code, err := ctx.Template("decoder_module.txt")
	if err != nil {
		return nil, err
	}
	fn, err := ctx.Template("decoder_function.txt")
	if err != nil {
		return nil, err
	}
	var fns strings.Builder
	for _, cls := range p.Classes {
		fns.WriteString(gen.Replacements{}.
			Add(paramClassName, className(cls.Name)).
			Add(paramClassFunctionName, cls.Name).
			Add(paramClassDocName, gen.DocName(cls.Name)).
			Add(paramClassDecodings, classDecodings(cls)).
			Apply(fn))
		fns.WriteString("\n\n\n")
	}
	code = gen.Replacements{}.
		Add(paramModuleImports, packageImports(ctx, serializationDir, "decoder")).
		Add(paramDecodingFunctions, fns.String()).
		Add(paramPackageName, p.Name).
		Apply(code)
	return gen.Emit(code, ontologyDir(ctx, serializationDir), moduleName(p.Name, "decoder")+fileExt), nil
}

// OnEnd implements gen.Emitter.
func (*DecodingEmitter) OnEnd(ctx *gen.Context) ([]gen.Output, error) {
	code, err := ctx.Template("utils.txt")
	if err != nil {
		return nil, err
	}
	return gen.Emit(code, ontologyDir(ctx, serializationDir), "utils"+fileExt), nil
}

// decoderName returns the name of the decode function of a class.
func decoderName(class string) string {
	return "decode_" + class
}

// packageImports returns the sorted imports of a per package module:
// the package types, and the modules of the same kind of every package
// owning an external class type.
func packageImports(ctx *gen.Context, sub, prefix string) string {
	o, p := ctx.Ontology, ctx.Package
	imports := []string{fmt.Sprintf("from %s import *", modulePath(o, KeyTypes, p.Name))}
	for _, t := range p.ExternalTypes {
		if !t.IsClass {
			continue
		}
		imp := fmt.Sprintf("from %s import *", modulePath(o, sub, moduleName(t.Package(), prefix)))
		if !slices.Contains(imports, imp) {
			imports = append(imports, imp)
		}
	}
	slices.Sort(imports)
	return strings.Join(imports, "\n") + "\n"
}

// classDecodings renders a tuple per decoding of the class properties,
// own and inherited. Decodings without an expression are skipped.
func classDecodings(cls *gen.Class) string {
	w := writer.New("    ")
	w.Newline()
	w.Indent(2)
	for _, p := range cls.AllProperties {
		for _, d := range cls.PropertyDecodings(p) {
			if d.Expression == "" {
				continue
			}
			w.WriteLinef("(%s, %s, %s, %s),",
				quote(p.Name), pyBool(p.IsIterative()), decodingFunction(p, d), quote(d.Expression))
		}
	}
	return w.String()
}

// decodingFunction returns the converter of a decoded value: a quoted
// type name for simple types and enums, the decode function otherwise.
// The decoding sub type, when set, overrides the property class.
func decodingFunction(p *gen.Property, d *gen.Decoding) string {
	t := p.Type
	switch {
	case t.IsSimple():
		return quote(t.Type())
	case !t.IsClass:
		return quote("str")
	case d.SubType != nil:
		return decoderName(d.SubType.Type())
	default:
		return decoderName(t.Type())
	}
}
