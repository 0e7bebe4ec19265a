package gen

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/syssam/metagen/schema"
	"github.com/syssam/metagen/schema/field"
)

// NewOntology assembles the schema records into a resolved graph.
//
// Assembly runs in passes: entities are instantiated and sorted, the
// flattened collections and the type table are built, base classes and
// property types are resolved, inherited members are computed, and the
// imports of every class are derived and checked for direct cycles.
//
// Dangling base or type references are logged and recorded in
// Ontology.Unresolved, or fail assembly with a ResolutionError when the
// config is strict.
func NewOntology(cfg *Config, rec *schema.Ontology) (*Ontology, error) {
	if cfg == nil {
		cfg = defaultConfig()
	}
	if rec == nil {
		return nil, NewSchemaError("", "", "nil ontology", nil)
	}
	o := &Ontology{
		Name:     rec.Name,
		Version:  rec.Version,
		Doc:      rec.Doc,
		cfg:      cfg,
		types:    make(map[typeKey]Decl),
		packages: make(map[string]*Package),
	}
	for _, step := range []func(*schema.Ontology) error{
		o.instantiate,
		o.flatten,
		o.resolveBases,
		o.resolveTypes,
		o.inherit,
		o.computeImports,
		o.detectCircularImports,
	} {
		if err := step(rec); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// instantiate creates the entities, wires the back references and sorts
// every owned collection.
func (o *Ontology) instantiate(rec *schema.Ontology) error {
	for _, pr := range rec.Packages {
		if pr == nil {
			continue
		}
		if _, ok := o.packages[pr.Name]; ok {
			return NewSchemaError(pr.Name, "", "duplicate package name", nil)
		}
		p := &Package{Ontology: o, Name: pr.Name, Doc: pr.Doc}
		o.packages[p.Name] = p
		o.Packages = append(o.Packages, p)
		names := make(map[string]struct{}, len(pr.Classes)+len(pr.Enums))
		declare := func(name string) error {
			if _, ok := names[name]; ok {
				return NewSchemaError(p.Name+"."+name, "", "duplicate class or enum name", nil)
			}
			names[name] = struct{}{}
			return nil
		}
		for _, cr := range pr.Classes {
			if cr == nil {
				continue
			}
			if err := declare(cr.Name); err != nil {
				return err
			}
			c, err := o.newClass(p, cr)
			if err != nil {
				return err
			}
			p.Classes = append(p.Classes, c)
		}
		for _, er := range pr.Enums {
			if er == nil {
				continue
			}
			if err := declare(er.Name); err != nil {
				return err
			}
			p.Enums = append(p.Enums, newEnum(p, er))
		}
		slices.SortStableFunc(p.Classes, func(a, b *Class) int { return cmp.Compare(a.Name, b.Name) })
		slices.SortStableFunc(p.Enums, func(a, b *Enum) int { return cmp.Compare(a.Name, b.Name) })
	}
	slices.SortStableFunc(o.Packages, func(a, b *Package) int { return cmp.Compare(a.Name, b.Name) })
	return nil
}

func (o *Ontology) newClass(p *Package, rec *schema.Class) (*Class, error) {
	c := &Class{
		Package:  p,
		Name:     rec.Name,
		BaseName: rec.Base,
		Abstract: rec.Abstract,
		Doc:      rec.Doc,
	}
	if c.BaseName != "" && !field.IsComplexType(c.BaseName) {
		return nil, NewSchemaError(c.QualifiedName(), "", fmt.Sprintf("malformed base reference %q", c.BaseName), nil)
	}
	seen := make(map[string]struct{}, len(rec.Properties))
	for _, pr := range rec.Properties {
		if _, ok := seen[pr.Name]; ok {
			return nil, NewSchemaError(c.QualifiedName(), pr.Name, "duplicate property name", nil)
		}
		seen[pr.Name] = struct{}{}
		card, err := field.ParseCardinality(pr.Cardinality)
		if err != nil {
			return nil, NewSchemaError(c.QualifiedName(), pr.Name, "malformed cardinality", err)
		}
		typ, err := newTypeRef(pr.Type)
		if err != nil {
			return nil, NewSchemaError(c.QualifiedName(), pr.Name, "", err)
		}
		c.Properties = append(c.Properties, &Property{
			Class:       c,
			Name:        pr.Name,
			Doc:         pr.Doc,
			Type:        typ,
			Cardinality: card,
		})
	}
	for _, dr := range rec.Decodings {
		d := &Decoding{Class: c, PropertyName: dr.Property, Expression: dr.Expression}
		if dr.Type != "" {
			if !field.IsComplexType(dr.Type) {
				return nil, NewSchemaError(c.QualifiedName(), dr.Property, fmt.Sprintf("malformed decoding type %q", dr.Type), nil)
			}
			d.SubType = NewTypeRef(dr.Type)
		}
		c.Decodings = append(c.Decodings, d)
	}
	for _, kr := range rec.Constants {
		c.Constants = append(c.Constants, &Constant{Class: c, PropertyName: kr.Property, Value: kr.Value})
	}
	slices.SortStableFunc(c.Properties, func(a, b *Property) int { return cmp.Compare(a.Name, b.Name) })
	slices.SortStableFunc(c.Decodings, func(a, b *Decoding) int { return cmp.Compare(a.PropertyName, b.PropertyName) })
	c.IsEntity = !c.Abstract && c.HasProperty(o.cfg.EntityMarker)
	return c, nil
}

func newTypeRef(name string) (*TypeRef, error) {
	switch {
	case field.IsSimpleType(name):
		return NewTypeRef(name), nil
	case field.IsComplexType(name):
		return NewTypeRef(name), nil
	case strings.Contains(name, "."):
		return nil, fmt.Errorf("malformed type reference %q", name)
	default:
		return nil, fmt.Errorf("unknown simple type %q", name)
	}
}

func newEnum(p *Package, rec *schema.Enum) *Enum {
	e := &Enum{Package: p, Name: rec.Name, IsOpen: rec.IsOpen, Doc: rec.Doc}
	for _, mr := range rec.Members {
		e.Members = append(e.Members, &EnumMember{Enum: e, Name: mr.Name, Doc: mr.Doc})
	}
	slices.SortStableFunc(e.Members, func(a, b *EnumMember) int { return cmp.Compare(a.Name, b.Name) })
	return e
}

// flatten builds the per-package and ontology-wide collections and the
// type table.
func (o *Ontology) flatten(*schema.Ontology) error {
	for _, p := range o.Packages {
		for _, c := range p.Classes {
			o.types[typeKey{pkg: p.Name, name: c.Name}] = c
			p.Types = append(p.Types, c)
			p.Properties = append(p.Properties, c.Properties...)
			if c.IsEntity {
				p.Entities = append(p.Entities, c)
			}
		}
		for _, e := range p.Enums {
			o.types[typeKey{pkg: p.Name, name: e.Name}] = e
			p.Types = append(p.Types, e)
			o.EnumMembers = append(o.EnumMembers, e.Members...)
		}
		slices.SortStableFunc(p.Types, func(a, b Decl) int { return cmp.Compare(a.DeclName(), b.DeclName()) })
		o.Classes = append(o.Classes, p.Classes...)
		o.Enums = append(o.Enums, p.Enums...)
		o.Entities = append(o.Entities, p.Entities...)
		o.Properties = append(o.Properties, p.Properties...)
		o.Types = append(o.Types, p.Types...)

		seen := make(map[string]struct{})
		for _, prop := range p.Properties {
			t := prop.Type
			if !t.IsComplex() || t.Package() == p.Name {
				continue
			}
			if _, ok := seen[t.Name]; ok {
				continue
			}
			seen[t.Name] = struct{}{}
			p.ExternalTypes = append(p.ExternalTypes, t)
		}
	}
	return nil
}

// resolveBases replaces base references by the classes they name.
func (o *Ontology) resolveBases(*schema.Ontology) error {
	for _, c := range o.Classes {
		if c.BaseName == "" {
			continue
		}
		switch d := o.Lookup(c.BaseName).(type) {
		case *Class:
			c.Base = d
		case *Enum:
			return NewSchemaError(c.QualifiedName(), "", fmt.Sprintf("base %q is an enum", c.BaseName), nil)
		default:
			if err := o.dangling(NewResolutionError(c.QualifiedName(), "", c.BaseName)); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveTypes classifies the complex property and decoding types.
func (o *Ontology) resolveTypes(*schema.Ontology) error {
	for _, c := range o.Classes {
		for _, p := range c.Properties {
			if !p.Type.IsComplex() {
				continue
			}
			d := o.Lookup(p.Type.Name)
			if d == nil {
				if err := o.dangling(NewResolutionError(c.QualifiedName(), p.Name, p.Type.Name)); err != nil {
					return err
				}
				continue
			}
			p.Type.resolve(d)
		}
		for _, dc := range c.Decodings {
			if dc.SubType == nil {
				continue
			}
			d := o.Lookup(dc.SubType.Name)
			if d == nil {
				if err := o.dangling(NewResolutionError(c.QualifiedName(), dc.PropertyName, dc.SubType.Name)); err != nil {
					return err
				}
				continue
			}
			dc.SubType.resolve(d)
		}
	}
	return nil
}

// dangling applies the resolution policy to err.
func (o *Ontology) dangling(err *ResolutionError) error {
	if o.cfg.Strict {
		return err
	}
	o.cfg.Logger.Warn().
		Str("class", err.Class).
		Str("property", err.Property).
		Str("target", err.Target).
		Msg("dangling type reference left unresolved")
	o.Unresolved = append(o.Unresolved, err)
	return nil
}

// inherit computes the members inherited through the base chain.
func (o *Ontology) inherit(*schema.Ontology) error {
	const (
		visiting = iota + 1
		done
	)
	state := make(map[*Class]int, len(o.Classes))
	var visit func(c *Class) error
	visit = func(c *Class) error {
		switch state[c] {
		case done:
			return nil
		case visiting:
			return NewSchemaError(c.QualifiedName(), "", "inheritance cycle", nil)
		}
		state[c] = visiting
		c.AllProperties = slices.Clone(c.Properties)
		c.AllDecodings = slices.Clone(c.Decodings)
		c.AllConstants = slices.Clone(c.Constants)
		if b := c.Base; b != nil {
			if err := visit(b); err != nil {
				return err
			}
			c.AllProperties = append(c.AllProperties, b.AllProperties...)
			c.AllDecodings = append(c.AllDecodings, b.AllDecodings...)
			c.AllConstants = append(c.AllConstants, b.AllConstants...)
			slices.SortStableFunc(c.AllProperties, func(a, b *Property) int { return cmp.Compare(a.Name, b.Name) })
		}
		state[c] = done
		return nil
	}
	for _, c := range o.Classes {
		if err := visit(c); err != nil {
			return err
		}
	}
	return nil
}

// computeImports derives the imports of every class from its base and
// its complex typed properties.
func (o *Ontology) computeImports(*schema.Ontology) error {
	for _, c := range o.Classes {
		if c.Base != nil {
			c.addImport(c.Base)
		}
		for _, p := range c.Properties {
			if d := p.Type.Decl(); d != nil {
				c.addImport(d)
			}
		}
	}
	return nil
}

// detectCircularImports defers one edge of every direct import cycle
// between two classes. The edge of the class that inherits from the
// other is kept, since a base must be importable at load time.
func (o *Ontology) detectCircularImports(*schema.Ontology) error {
	for _, c := range o.Classes {
		for _, p := range c.Properties {
			t := p.Type.Class
			if t == nil || t == c {
				continue
			}
			if !t.HasImport(c) || !c.HasImport(t) {
				continue
			}
			if t.Base == c {
				c.deferImport(t)
			} else {
				t.deferImport(c)
			}
		}
	}
	return nil
}
