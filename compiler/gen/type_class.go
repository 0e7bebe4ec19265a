package gen

import "slices"

// HasProperty reports whether the class itself declares the property.
func (c *Class) HasProperty(name string) bool {
	return slices.ContainsFunc(c.Properties, func(p *Property) bool {
		return p.Name == name
	})
}

// Property returns the named property, declared by the class or
// inherited through its base chain, or nil.
func (c *Class) Property(name string) *Property {
	for cls := c; cls != nil; cls = cls.Base {
		for _, p := range cls.Properties {
			if p.Name == name {
				return p
			}
		}
	}
	return nil
}

// PropertyDecodings returns the decodings, own and inherited, that
// target the property.
func (c *Class) PropertyDecodings(p *Property) []*Decoding {
	var decodings []*Decoding
	for _, d := range c.AllDecodings {
		if d.PropertyName == p.Name {
			decodings = append(decodings, d)
		}
	}
	return decodings
}

// ConstantProperty returns the property the constant is assigned to,
// or nil if the class and its bases have no such property.
func (c *Class) ConstantProperty(k *Constant) *Property {
	return c.Property(k.PropertyName)
}

// HasImport reports whether d is in Imports.
func (c *Class) HasImport(d Decl) bool {
	return indexImport(c.Imports, d) >= 0
}

// HasCircularImport reports whether d is in CircularImports.
func (c *Class) HasCircularImport(d Decl) bool {
	return indexImport(c.CircularImports, d) >= 0
}

// Ancestors returns the resolved base chain, nearest first.
func (c *Class) Ancestors() []*Class {
	var chain []*Class
	for b := c.Base; b != nil; b = b.Base {
		chain = append(chain, b)
	}
	return chain
}

// addImport appends d unless it is the class itself or already imported.
func (c *Class) addImport(d Decl) {
	if d == Decl(c) || c.HasImport(d) {
		return
	}
	c.Imports = append(c.Imports, Import{
		Package: d.DeclPackage().Name,
		Type:    d.DeclName(),
		Decl:    d,
	})
}

// deferImport moves d from Imports to CircularImports.
func (c *Class) deferImport(d Decl) {
	i := indexImport(c.Imports, d)
	if i < 0 {
		return
	}
	c.CircularImports = append(c.CircularImports, c.Imports[i])
	c.Imports = slices.Delete(c.Imports, i, i+1)
}

func indexImport(imports []Import, d Decl) int {
	return slices.IndexFunc(imports, func(i Import) bool {
		return i.Is(d)
	})
}
