package load

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/metagen/schema"
)

func TestLoad(t *testing.T) {
	for _, file := range []string{"valid.yaml", "valid.json"} {
		t.Run(file, func(t *testing.T) {
			o, err := Load(filepath.Join("testdata", file))
			require.NoError(t, err)
			assert.Equal(t, "demo", o.Name)
			assert.Equal(t, "1.0", o.Version)
			require.Len(t, o.Packages, 1)
			p := o.Packages[0]
			require.Len(t, p.Classes, 2)
			child := p.Classes[1]
			assert.Equal(t, "p.base", child.Base)
			assert.Equal(t, []schema.Property{{Name: "x", Type: "int", Cardinality: "0.1"}}, child.Properties)
			require.Len(t, p.Enums, 1)
			assert.Equal(t, "", p.Enums[0].Members[1].Doc)
			assert.Empty(t, Check(o))
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(filepath.Join("testdata", "valid"))
	assert.ErrorContains(t, err, "no file extension")

	_, err = Load("schema.toml")
	assert.ErrorContains(t, err, "unknown format")

	_, err = Load(filepath.Join("testdata", "unknown_field.yaml"))
	assert.ErrorContains(t, err, "fields")
}

func TestMarshal(t *testing.T) {
	o, err := Load(filepath.Join("testdata", "valid.yaml"))
	require.NoError(t, err)
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			data, err := Marshal(o, f)
			require.NoError(t, err)
			got, err := Parse(data, f)
			require.NoError(t, err)
			assert.Equal(t, o, got)
		})
	}
	_, err = Marshal(o, "toml")
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"yaml":    FormatYAML,
		"YML":     FormatYAML,
		"json":    FormatJSON,
		"msgpack": FormatMsgpack,
		"mpk":     FormatMsgpack,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	assert.Panics(t, func() { MustParse([]byte("name: [unclosed"), FormatYAML) })
}

func TestCheck(t *testing.T) {
	o, err := Load(filepath.Join("testdata", "invalid.yaml"))
	require.NoError(t, err)
	errs := Check(o)

	paths := make([]string, 0, len(errs))
	for _, err := range errs {
		var se *ShapeError
		require.True(t, errors.As(err, &se), err.Error())
		paths = append(paths, se.Path)
	}
	assert.ElementsMatch(t, []string{
		"name",
		"version",
		"packages[P].name",
		"packages[P].classes[child].base",
		"packages[P].classes[child].properties[0].type",
		"packages[P].classes[child].properties[1].cardinality",
		"packages[P].classes[child].decodings[0].expression",
		"packages[P].classes[child].constants[0].property",
		"packages[P].enums[0].name",
		"packages[P].enums[0].members[0].name",
	}, paths)
}

func TestCheck_Empty(t *testing.T) {
	errs := Check(nil)
	require.Len(t, errs, 1)

	errs = Check(&schema.Ontology{Name: "demo", Version: "1"})
	require.Len(t, errs, 1)
	assert.EqualError(t, errs[0], "packages: at least one package is required")
}
