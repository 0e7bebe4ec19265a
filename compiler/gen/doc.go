// Package gen assembles ontology schemas into a resolved graph and runs
// emitters over it to produce source files.
//
// # Architecture
//
// The generation pipeline follows this flow:
//
//	schema.Ontology (records)
//	        ↓
//	   NewOntology (multi-pass assembly)
//	        ↓
//	   Ontology (read-only graph)
//	        ↓
//	   Generator (one traversal per emitter)
//	        ↓
//	   Templates + Sink (placeholder substitution, files)
//
// # Key Types
//
//   - Ontology, Package, Class, Enum: the graph nodes
//   - Property, TypeRef, Decoding, Constant: class members
//   - Emitter: visitor with OnStart, OnOntology, OnPackage, OnClass,
//     OnEnum and OnEnd hooks
//   - Context: the node being visited and the generation options
//   - Templates: cached template loading with standard placeholders
//   - Sink: receives the generated outputs
//
// # Assembly
//
// NewOntology resolves base classes and complex property types against a
// table keyed by package and type name, computes inherited properties,
// decodings and constants, and derives the imports of each class. When
// two classes import each other directly, one of the two edges is moved
// to CircularImports so that the generated module can defer it.
//
// Dangling references are logged and collected into Ontology.Unresolved
// unless the config is strict:
//
//	cfg, err := gen.NewConfig(gen.WithStrict(true))
//	o, err := gen.NewOntology(cfg, rec)
//	if gen.IsResolutionError(err) {
//	    // unknown base or property type
//	}
//
// # Error Handling
//
// The package uses structured error types:
//
//   - SchemaError: malformed schema (cardinality, types, duplicates, cycles)
//   - ConfigError: invalid option or configuration
//   - ResolutionError: dangling reference in strict mode
//   - TemplateError: missing template
//   - GenerationError: emitter or sink failure
//
// Each matches its sentinel with errors.Is, e.g. ErrTemplateNotFound.
//
// # Templates
//
// Templates are plain text with {hyphenated-placeholders}. Templates.Load
// resolves <language>/<emitter>/<name>, caches the raw text and fills the
// standard placeholders; emitters fill their own with Replacements. Any
// placeholder left in an output, other than {file-name} which the sink
// fills, fails the run.
package gen
