package gen

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/syssam/metagen/schema/field"
)

// The following types and their exported methods are the assembled
// ontology graph handed to emitters. All of them are read-only once
// NewOntology returns.
type (
	// Ontology is the root of the graph.
	Ontology struct {
		Name    string
		Version string
		Doc     string
		// Packages holds the packages sorted by name.
		Packages []*Package
		// Classes, Enums, EnumMembers, Entities and Properties are
		// flattened from the packages, in package order.
		Classes     []*Class
		Enums       []*Enum
		EnumMembers []*EnumMember
		Entities    []*Class
		Properties  []*Property
		// Types holds the classes and enums sorted by package, then name.
		Types []Decl
		// Unresolved collects the dangling references tolerated in
		// lenient mode.
		Unresolved []*ResolutionError

		cfg      *Config
		types    map[typeKey]Decl
		packages map[string]*Package
	}

	// Package groups classes and enums.
	Package struct {
		Ontology *Ontology
		Name     string
		Doc      string
		// Classes and Enums are sorted by name.
		Classes []*Class
		Enums   []*Enum
		// Entities holds the non-abstract classes carrying the entity
		// marker property.
		Entities []*Class
		// Types holds Classes and Enums merged and sorted by name.
		Types []Decl
		// Properties is flattened from Classes.
		Properties []*Property
		// ExternalTypes holds the complex property types declared in
		// another package, de-duplicated by name, in property order.
		ExternalTypes []*TypeRef
	}

	// Class is a class of the ontology.
	Class struct {
		Package *Package
		Name    string
		// BaseName holds the declared "package.name" base reference.
		BaseName string
		// Base is the resolved base class, or nil.
		Base     *Class
		Abstract bool
		Doc      string
		// Properties is sorted by name.
		Properties []*Property
		// Decodings is sorted by property name. Decodings of the same
		// property keep their declared order.
		Decodings []*Decoding
		Constants []*Constant
		// Imports lists the types the class module depends on.
		// CircularImports lists the ones that must be deferred since the
		// target imports this class back.
		Imports         []Import
		CircularImports []Import
		// IsEntity reports whether the class is a top-level document.
		IsEntity bool
		// AllProperties, AllDecodings and AllConstants include the
		// members inherited through the base chain.
		AllProperties []*Property
		AllDecodings  []*Decoding
		AllConstants  []*Constant
	}

	// Enum is an enumeration.
	Enum struct {
		Package *Package
		Name    string
		IsOpen  bool
		Doc     string
		// Members is sorted by name.
		Members []*EnumMember
	}

	// EnumMember is a member of an enumeration.
	EnumMember struct {
		Enum *Enum
		Name string
		Doc  string
	}

	// Property is a class property.
	Property struct {
		Class       *Class
		Name        string
		Doc         string
		Type        *TypeRef
		Cardinality field.Cardinality
	}

	// Decoding tells how a property is read from an external
	// representation. SubType, when set, overrides the property type.
	Decoding struct {
		Class        *Class
		PropertyName string
		Expression   string
		SubType      *TypeRef
	}

	// Constant assigns a fixed value to a property.
	Constant struct {
		Class        *Class
		PropertyName string
		Value        string
	}

	// Import is a dependency of a class module on a type of the ontology.
	Import struct {
		Package string
		Type    string
		// Decl is the imported class or enum.
		Decl Decl
	}

	typeKey struct {
		pkg  string
		name string
	}
)

// Decl is implemented by Class and Enum.
type Decl interface {
	// DeclName returns the unqualified name.
	DeclName() string
	// DeclPackage returns the owning package.
	DeclPackage() *Package
	// QualifiedName returns "package.name".
	QualifiedName() string
	decl()
}

var (
	_ Decl = (*Class)(nil)
	_ Decl = (*Enum)(nil)
)

// Package returns the package with the given name, or nil.
func (o *Ontology) Package(name string) *Package {
	return o.packages[name]
}

// Lookup returns the class or enum named "package.name", or nil.
func (o *Ontology) Lookup(name string) Decl {
	pkg, typ, ok := strings.Cut(name, ".")
	if !ok {
		return nil
	}
	return o.types[typeKey{pkg: pkg, name: typ}]
}

// Class returns the class named "package.name", or nil.
func (o *Ontology) Class(name string) *Class {
	c, _ := o.Lookup(name).(*Class)
	return c
}

// Enum returns the enum named "package.name", or nil.
func (o *Ontology) Enum(name string) *Enum {
	e, _ := o.Lookup(name).(*Enum)
	return e
}

// Logger returns the logger the ontology was assembled with.
func (o *Ontology) Logger() zerolog.Logger {
	if o.cfg == nil {
		return zerolog.Nop()
	}
	return o.cfg.Logger
}

// Class returns the class of the package with the given name, or nil.
func (p *Package) Class(name string) *Class {
	for _, c := range p.Classes {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Enum returns the enum of the package with the given name, or nil.
func (p *Package) Enum(name string) *Enum {
	for _, e := range p.Enums {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// DeclName implements Decl.
func (c *Class) DeclName() string { return c.Name }

// DeclPackage implements Decl.
func (c *Class) DeclPackage() *Package { return c.Package }

// QualifiedName implements Decl.
func (c *Class) QualifiedName() string { return c.Package.Name + "." + c.Name }

func (*Class) decl() {}

// DeclName implements Decl.
func (e *Enum) DeclName() string { return e.Name }

// DeclPackage implements Decl.
func (e *Enum) DeclPackage() *Package { return e.Package }

// QualifiedName implements Decl.
func (e *Enum) QualifiedName() string { return e.Package.Name + "." + e.Name }

func (*Enum) decl() {}

// IsRequired reports whether the property must be set.
func (p *Property) IsRequired() bool {
	return p.Cardinality.IsRequired()
}

// IsIterative reports whether the property holds a collection.
func (p *Property) IsIterative() bool {
	return p.Cardinality.IsIterative()
}

// String returns "package.type".
func (i Import) String() string {
	return i.Package + "." + i.Type
}

// Is reports whether the import targets the given decl.
func (i Import) Is(d Decl) bool {
	return i.Package == d.DeclPackage().Name && i.Type == d.DeclName()
}
