// Package field holds the property-level vocabulary of an ontology schema:
// the simple (primitive) type names a property may declare, and the
// cardinality constraint that bounds how often a property occurs.
//
// A property type is either one of the simple types below or a dotted
// "package.name" reference to a class or an enum:
//
//	field.IsSimpleType("int")        // true
//	field.IsSimpleType("shared.cim") // false
//
// Cardinality is written as "min.max" where min is 0 or 1 and max is 1 or N:
//
//	c, err := field.ParseCardinality("1.N")
//	c.IsRequired()  // true
//	c.IsIterative() // true
package field
