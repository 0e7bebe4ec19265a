package gen

import (
	"strings"

	"github.com/syssam/metagen/schema/field"
)

// TypeRef is a property type: a simple type name such as "int", or a
// "package.name" reference to a class or an enum. Whether a complex
// reference names a class or an enum is only known after assembly.
type TypeRef struct {
	// Name holds the declared name.
	Name string
	// IsClass is set during assembly when the reference resolves to a
	// class.
	IsClass bool
	// Class or Enum is set during assembly when the reference resolves.
	Class *Class
	Enum  *Enum

	pkg string
	typ string
}

// NewTypeRef returns a reference for the declared type name.
func NewTypeRef(name string) *TypeRef {
	t := &TypeRef{Name: name, typ: name}
	if pkg, typ, ok := strings.Cut(name, "."); ok {
		t.pkg, t.typ = pkg, typ
	}
	return t
}

// IsSimple reports whether the reference names a simple type.
func (t *TypeRef) IsSimple() bool {
	return t.pkg == "" && field.IsSimpleType(t.typ)
}

// IsComplex reports whether the reference names a class or an enum.
func (t *TypeRef) IsComplex() bool {
	return t.pkg != ""
}

// IsEnum reports whether the reference resolved to an enum.
func (t *TypeRef) IsEnum() bool {
	return t.Enum != nil
}

// IsResolved reports whether the reference is simple or was resolved.
func (t *TypeRef) IsResolved() bool {
	return t.IsSimple() || t.Class != nil || t.Enum != nil
}

// Package returns the package part of a complex reference.
func (t *TypeRef) Package() string {
	return t.pkg
}

// Type returns the type part of a complex reference, or the simple
// type name.
func (t *TypeRef) Type() string {
	return t.typ
}

// Decl returns the resolved class or enum, or nil.
func (t *TypeRef) Decl() Decl {
	switch {
	case t.Class != nil:
		return t.Class
	case t.Enum != nil:
		return t.Enum
	default:
		return nil
	}
}

// String implements fmt.Stringer.
func (t *TypeRef) String() string {
	return t.Name
}

func (t *TypeRef) resolve(d Decl) {
	switch d := d.(type) {
	case *Class:
		t.Class, t.IsClass = d, true
	case *Enum:
		t.Enum = d
	}
}
