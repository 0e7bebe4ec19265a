package python

import (
	"fmt"
	"strings"

	"github.com/syssam/metagen/compiler/gen"
	"github.com/syssam/metagen/compiler/gen/internal/writer"
)

// validationDir is the sub package holding the validators.
const validationDir = "validation"

// ValidationEmitter writes a validator module per package with a
// validate function per class.
type ValidationEmitter struct {
	gen.BaseEmitter
}

// OnOntology implements gen.Emitter.
func (*ValidationEmitter) OnOntology(ctx *gen.Context) ([]gen.Output, error) {
	code, err := ctx.Template("package.txt")
	if err != nil {
		return nil, err
	}
	imports := make([]string, 0, len(ctx.Ontology.Classes))
	for _, cls := range ctx.Ontology.Classes {
		imports = append(imports, fmt.Sprintf("from %s import %s",
			modulePath(ctx.Ontology, validationDir, moduleName(cls.Package.Name, "validator")), validatorName(cls.Name)))
	}
	code = gen.Replacements{}.Add(paramModuleImports, strings.Join(imports, "\n")).Apply(code)
	return gen.Emit(code, ontologyDir(ctx, validationDir), initFile), nil
}

// OnPackage implements gen.Emitter.
func (*ValidationEmitter) OnPackage(ctx *gen.Context) ([]gen.Output, error) {
	p := ctx.Package
	code, err := ctx.Template("validator_module.txt")
	if err != nil {
		return nil, err
	}
	fn, err := ctx.Template("validator_function.txt")
	if err != nil {
		return nil, err
	}
	var fns strings.Builder
	for _, cls := range p.Classes {
		fns.WriteString(gen.Replacements{}.
			Add(paramClassName, className(cls.Name)).
			Add(paramClassFunctionName, cls.Name).
			Add(paramClassDocName, gen.DocName(cls.Name)).
			Add(paramClassValidations, classValidations(cls)).
			Apply(fn))
		fns.WriteString("\n\n\n")
	}
	code = gen.Replacements{}.
		Add(paramModuleImports, packageImports(ctx, validationDir, "validator")).
		Add(paramValidatorFunctions, fns.String()).
		Add(paramPackageName, p.Name).
		Apply(code)
	return gen.Emit(code, ontologyDir(ctx, validationDir), moduleName(p.Name, "validator")+fileExt), nil
}

// validatorName returns the name of the validate function of a class.
func validatorName(class string) string {
	return "validate_" + class
}

// classValidations renders the checks of every property, own and
// inherited: presence of required values and validation of nested
// class instances.
func classValidations(cls *gen.Class) string {
	w := writer.New("    ")
	w.Indent()
	for _, p := range cls.AllProperties {
		attr := "instance." + p.Name
		switch {
		case p.IsIterative() && p.IsRequired():
			w.WriteBlock(fmt.Sprintf("if not %s:", attr), "", func() {
				w.WriteLinef("errors.append(%s)", quote(p.Name+" requires at least one item."))
			})
		case p.IsRequired():
			w.WriteBlock(fmt.Sprintf("if %s is None:", attr), "", func() {
				w.WriteLinef("errors.append(%s)", quote(p.Name+" is required."))
			})
		}
		if !p.Type.IsClass {
			continue
		}
		validate := validatorName(p.Type.Class.Name)
		if p.IsIterative() {
			w.WriteBlock(fmt.Sprintf("for item in %s:", attr), "", func() {
				w.WriteLinef("%s(item, errors, True)", validate)
			})
		} else {
			w.WriteBlock(fmt.Sprintf("if %s is not None:", attr), "", func() {
				w.WriteLinef("%s(%s, errors, True)", validate, attr)
			})
		}
	}
	return w.String()
}
