// Package schema holds the input records of an ontology description and a
// process-wide registry of named schemas.
//
// A schema is a tree of records:
//
//	ontology{name, version, doc, packages[]}
//	package{name, doc, classes[], enums[]}
//	class{name, base, abstract, doc, properties[], decodings[], constants[]}
//	enum{name, is_open, doc, members[]}
//
// Properties, decodings, constants and enum members are written as
// positional tuples in YAML, JSON and msgpack alike:
//
//	properties:
//	  - [name, str, "1.1", "The name of the thing."]
//	  - [parent, shared.cim_info, "0.1", null]
//	decodings:
//	  - [name, "child::cim:name/text()"]
//	  - [range, "child::cim:range/cim:closedDateRange", shared.closed_date_range]
//
// The records carry no derived state. compiler/gen assembles them into a
// cross-referenced graph.
//
// Static schemas register themselves from an init function:
//
//	func init() { schema.Register(o) }
//
// and are retrieved by name and version, where "latest" selects the
// version flagged IsLatest:
//
//	o, err := schema.Lookup("cim", schema.Latest)
package schema
