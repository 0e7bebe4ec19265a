package load

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/syssam/metagen/schema"
	"github.com/syssam/metagen/schema/field"
)

var (
	reOntologyName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	reVersion      = regexp.MustCompile(`^[0-9][0-9.]*$`)
	rePackageName  = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	reName         = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	reTypeRef      = regexp.MustCompile(`^[a-z][a-z0-9_]*\.[A-Za-z_][A-Za-z0-9_]*$`)
	cardinalities  = []string{"0.1", "0.N", "1.1", "1.N"}
)

// ShapeError reports a malformed schema element.
type ShapeError struct {
	// Path locates the element, e.g. packages[p].classes[child].properties[0].
	Path    string
	Message string
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Check walks o and returns every shape violation found. It checks names,
// type reference syntax and cardinality literals; references between
// types are resolved later, during assembly.
func Check(o *schema.Ontology) []error {
	c := &checker{}
	if o == nil {
		c.fail("ontology", "missing")
		return c.errs
	}
	c.match("name", o.Name, reOntologyName)
	c.match("version", o.Version, reVersion)
	if len(o.Packages) == 0 {
		c.fail("packages", "at least one package is required")
	}
	for i, p := range o.Packages {
		if p == nil {
			c.fail(fmt.Sprintf("packages[%d]", i), "missing")
			continue
		}
		c.pkg(fmt.Sprintf("packages[%s]", label(p.Name, i)), p)
	}
	return c.errs
}

type checker struct {
	errs []error
}

func (c *checker) fail(path, format string, args ...any) {
	c.errs = append(c.errs, &ShapeError{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (c *checker) match(path, v string, re *regexp.Regexp) {
	switch {
	case v == "":
		c.fail(path, "required")
	case !re.MatchString(v):
		c.fail(path, "%q does not match %s", v, re)
	}
}

func (c *checker) pkg(path string, p *schema.Package) {
	c.match(path+".name", p.Name, rePackageName)
	for i, cls := range p.Classes {
		if cls == nil {
			c.fail(fmt.Sprintf("%s.classes[%d]", path, i), "missing")
			continue
		}
		c.class(fmt.Sprintf("%s.classes[%s]", path, label(cls.Name, i)), cls)
	}
	for i, e := range p.Enums {
		if e == nil {
			c.fail(fmt.Sprintf("%s.enums[%d]", path, i), "missing")
			continue
		}
		c.enum(fmt.Sprintf("%s.enums[%s]", path, label(e.Name, i)), e)
	}
}

func (c *checker) class(path string, cls *schema.Class) {
	c.match(path+".name", cls.Name, reName)
	if cls.Base != "" {
		c.match(path+".base", cls.Base, reTypeRef)
	}
	for i, p := range cls.Properties {
		pp := fmt.Sprintf("%s.properties[%d]", path, i)
		c.match(pp+".name", p.Name, reName)
		c.typeRef(pp+".type", p.Type)
		if !slices.Contains(cardinalities, p.Cardinality) {
			c.fail(pp+".cardinality", "%q is not one of %s", p.Cardinality, strings.Join(cardinalities, ", "))
		}
	}
	for i, d := range cls.Decodings {
		dp := fmt.Sprintf("%s.decodings[%d]", path, i)
		c.match(dp+".property", d.Property, reName)
		if strings.TrimSpace(d.Expression) == "" {
			c.fail(dp+".expression", "required")
		}
		if d.Type != "" {
			c.match(dp+".type", d.Type, reTypeRef)
		}
	}
	for i, k := range cls.Constants {
		c.match(fmt.Sprintf("%s.constants[%d].property", path, i), k.Property, reName)
	}
}

func (c *checker) typeRef(path, v string) {
	if field.IsSimpleType(v) {
		return
	}
	c.match(path, v, reTypeRef)
}

func (c *checker) enum(path string, e *schema.Enum) {
	c.match(path+".name", e.Name, reName)
	for i, m := range e.Members {
		if strings.TrimSpace(m.Name) == "" {
			c.fail(fmt.Sprintf("%s.members[%d].name", path, i), "required")
		}
	}
}

func label(name string, i int) string {
	if name == "" {
		return fmt.Sprint(i)
	}
	return name
}
