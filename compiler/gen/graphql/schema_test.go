package graphql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/metagen/compiler/gen"
	"github.com/syssam/metagen/schema"
)

func prop(name, typ, card string) schema.Property {
	return schema.Property{Name: name, Type: typ, Cardinality: card}
}

func run(t *testing.T, rec *schema.Ontology) (*gen.MemorySink, error) {
	t.Helper()
	sink := gen.NewMemorySink()
	cfg, err := gen.NewConfig(
		gen.WithLanguage(Language),
		gen.WithTarget("out"),
		gen.WithTemplates(Templates()),
		gen.WithSink(sink),
		gen.WithUser("tester"),
	)
	require.NoError(t, err)
	o, err := gen.NewOntology(cfg, rec)
	require.NoError(t, err)
	return sink, gen.NewGenerator(cfg, Emitters()...).Generate(context.Background(), o)
}

func document() *schema.Ontology {
	return &schema.Ontology{
		Name:    "demo",
		Version: "1.0",
		Packages: []*schema.Package{
			{
				Name: "data",
				Classes: []*schema.Class{
					{Name: "marker", Abstract: true},
					{
						Name:       "record",
						Base:       "data.marker",
						Abstract:   true,
						Properties: []schema.Property{prop("status", "shared.kind", "0.1")},
					},
					{
						Name: "dataset",
						Base: "data.record",
						Doc:  "A collection of records.",
						Properties: []schema.Property{
							prop("cim_info", "shared.doc_meta", "1.1"),
							prop("tags", "str", "1.N"),
							{Name: "size", Type: "int", Cardinality: "0.1", Doc: "Number of records."},
							prop("kinds", "shared.label", "0.N"),
							prop("owner", "data.marker", "0.1"),
						},
					},
				},
			},
			{
				Name: "shared",
				Classes: []*schema.Class{
					{Name: "doc_meta", Properties: []schema.Property{prop("id", "uuid", "1.1"), prop("created", "datetime", "0.1")}},
					{Name: "empty"},
				},
				Enums: []*schema.Enum{
					{Name: "kind", Members: []schema.EnumMember{{Name: "raw"}, {Name: "re-processed", Doc: "Processed again."}}},
					{Name: "label", IsOpen: true},
				},
			},
		},
	}
}

func TestSchemaEmitter(t *testing.T) {
	sink, err := run(t, document())
	require.NoError(t, err)
	sdl, ok := sink.File("out/demo/v1_0/schema.graphql")
	require.True(t, ok, sink.Paths())
	assert.Equal(t, 1, sink.Len())

	assert.Contains(t, sdl, "# Code generated by metagen from demo v1.0 on ")
	assert.Contains(t, sdl, "scalar Date\nscalar DateTime\nscalar URI\nscalar UUID\n")
	assert.Contains(t, sdl, "enum SharedKind {\n  RAW\n  \"\"\"\n  Processed again.\n  \"\"\"\n  RE_PROCESSED\n}")
	assert.Contains(t, sdl, "\"\"\"\nLabel\n\"\"\"\nscalar SharedLabel\n")
	assert.Contains(t, sdl, "interface DataRecord {\n  status: SharedKind\n}")
	assert.NotContains(t, sdl, "DataMarker")
	assert.Contains(t, sdl, "\"\"\"\nDataset\n\nA collection of records.\n\"\"\"\ntype DataDataset implements DataRecord {\n")
	assert.Contains(t, sdl, "  cimInfo: SharedDocMeta!\n")
	assert.Contains(t, sdl, "  kinds: [SharedLabel!]\n")
	assert.Contains(t, sdl, "  owner: String\n")
	assert.Contains(t, sdl, "  \"\"\"\n  Number of records.\n  \"\"\"\n  size: Int\n")
	assert.Contains(t, sdl, "  status: SharedKind\n")
	assert.Contains(t, sdl, "  tags: [String!]!\n")
	assert.Contains(t, sdl, "type SharedDocMeta {\n  created: DateTime\n  id: UUID!\n}")
	assert.Contains(t, sdl, "type SharedEmpty {\n")
	assert.Contains(t, sdl, "  _empty: Boolean\n")
	assert.Contains(t, sdl, "  version: String!\n")
	assert.Contains(t, sdl, "  datasets: [DataDataset!]!\n")

	s, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: sdl})
	require.NoError(t, err)
	require.NotNil(t, s.Types["DataDataset"])
	assert.Equal(t, []string{"DataRecord"}, s.Types["DataDataset"].Interfaces)
	assert.NotNil(t, s.Query.Fields.ForName("datasets"))
}

func TestSchemaEmitter_DuplicateEntityNames(t *testing.T) {
	entity := func() *schema.Class {
		return &schema.Class{Name: "report", Properties: []schema.Property{prop("cim_info", "str", "1.1")}}
	}
	sink, err := run(t, &schema.Ontology{
		Name:    "demo",
		Version: "1",
		Packages: []*schema.Package{
			{Name: "a", Classes: []*schema.Class{entity()}},
			{Name: "b", Classes: []*schema.Class{entity()}},
		},
	})
	require.NoError(t, err)
	sdl, _ := sink.File("out/demo/v1/schema.graphql")
	assert.Contains(t, sdl, "  aReports: [AReport!]!\n")
	assert.Contains(t, sdl, "  bReports: [BReport!]!\n")
}

func TestSchemaEmitter_Invalid(t *testing.T) {
	// Package a_b class c and package a class b_c share the name ABC.
	_, err := run(t, &schema.Ontology{
		Name:    "demo",
		Version: "1",
		Packages: []*schema.Package{
			{Name: "a", Classes: []*schema.Class{{Name: "b_c", Properties: []schema.Property{prop("x", "int", "0.1")}}}},
			{Name: "a_b", Classes: []*schema.Class{{Name: "c", Properties: []schema.Property{prop("x", "int", "0.1")}}}},
		},
	})
	require.Error(t, err)
	assert.True(t, gen.IsGenerationError(err))
	assert.Contains(t, err.Error(), "graphql: invalid schema")
}

func TestEnumValue(t *testing.T) {
	assert.Equal(t, "RE_PROCESSED", enumValue("re-processed"))
	assert.Equal(t, "NOT_APPLICABLE", enumValue("not applicable"))
	assert.Equal(t, "_360_DAY", enumValue("360_day"))
}
