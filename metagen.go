// Package metagen generates source code from declarative ontology schemas.
//
// An ontology is a set of packages holding classes and enumerations. The
// compiler assembles the schema records into a cross-referenced graph and
// runs a set of language specific emitters over it:
//
//	schema records (schema, schema/cim, compiler/load)
//	        ↓
//	   gen.Ontology (compiler/gen)
//	        ↓
//	   gen.Generator + emitters (compiler/gen/python, golang, graphql)
//	        ↓
//	   gen.Sink (files)
//
// See the compiler package for the entry point and cmd/metagen for the CLI.
package metagen

// Version of the generator, reported by the CLI.
const Version = "0.3.0"
