package compiler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/metagen"
	"github.com/syssam/metagen/compiler/gen"
	"github.com/syssam/metagen/schema"
)

func demo() *schema.Ontology {
	return &schema.Ontology{
		Name:    "demo",
		Version: "1.0",
		Packages: []*schema.Package{{
			Name: "p",
			Classes: []*schema.Class{
				{Name: "child", Base: "p.base", Properties: []schema.Property{{Name: "x", Type: "int", Cardinality: "0.1"}}},
				{Name: "base", Abstract: true},
			},
		}},
	}
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"go", "graphql", "python"}, DefaultRegistry.Languages())

	for name, want := range map[string]string{"python": "python", "py": "python", "Go": "go", "golang": "go", "gql": "graphql"} {
		l, err := DefaultRegistry.Get(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, l.Name)
		assert.NotEmpty(t, l.Emitters())
	}

	_, err := DefaultRegistry.Get("cobol")
	require.Error(t, err)
	assert.True(t, gen.IsConfigError(err))
	assert.Contains(t, err.Error(), "expected one of go, graphql, python")

	r := NewRegistry()
	assert.Empty(t, r.Languages())
	r.Register("text", func() []gen.NamedEmitter { return nil }, os.DirFS(t.TempDir()))
	assert.Equal(t, []string{"text"}, r.Languages())
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	cfg := gen.MustNewConfig(gen.WithLanguage("python"), gen.WithTarget(dir))
	require.NoError(t, Validate(demo(), cfg))

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	bad := demo()
	bad.Name = "Demo"
	bad.Packages[0].Classes[0].Properties[0].Cardinality = "2"

	err := Validate(bad, gen.MustNewConfig(gen.WithLanguage("cobol"), gen.WithTarget(file)))
	require.Error(t, err)
	assert.ErrorIs(t, err, gen.ErrInvalidConfig)
	var joined interface{ Unwrap() []error }
	require.ErrorAs(t, err, &joined)
	assert.Len(t, joined.Unwrap(), 3)
	assert.Contains(t, err.Error(), `"Language"`)
	assert.Contains(t, err.Error(), "target is not a directory")
	assert.Contains(t, err.Error(), "name: ")
	assert.Contains(t, err.Error(), "packages[p].classes[child].properties[0].cardinality")

	err = Validate(nil, gen.MustNewConfig())
	require.Error(t, err)
	require.ErrorAs(t, err, &joined)
	assert.Len(t, joined.Unwrap(), 3)

	err = Validate(demo(), gen.MustNewConfig(gen.WithLanguage("python"), gen.WithTarget(filepath.Join(dir, "missing"))))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestAssemble(t *testing.T) {
	o, err := Assemble(demo())
	require.NoError(t, err)
	require.NotNil(t, o.Class("p.child"))
	assert.Same(t, o.Class("p.base"), o.Class("p.child").Base)

	bad := demo()
	bad.Version = "one"
	_, err = Assemble(bad)
	assert.True(t, gen.IsConfigError(err))

	_, err = Assemble(demo(), gen.WithWorkers(0))
	assert.True(t, gen.IsConfigError(err))
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		lang  string
		files []string
	}{
		{"python", []string{"demo/__init__.py", "demo/v1_0/types/p/child.py", "demo/v1_0/serialization/utils.py"}},
		{"go", []string{"demo/v1_0/ontology.go", "demo/v1_0/p/child.go", "demo/v1_0/p/validate.go"}},
		{"graphql", []string{"demo/v1_0/schema.graphql"}},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			dir := t.TempDir()
			err := Generate(context.Background(), demo(), gen.WithLanguage(tt.lang), gen.WithTarget(dir))
			require.NoError(t, err)
			for _, f := range tt.files {
				assert.FileExists(t, filepath.Join(dir, f))
			}
		})
	}
}

func TestGenerate_ConfigErrorsJoined(t *testing.T) {
	rec := &schema.Ontology{Name: "BAD NAME", Version: "x.y", Packages: []*schema.Package{{Name: "P!"}}}

	err := Generate(context.Background(), rec, gen.WithLanguage(""), gen.WithTarget(""), gen.WithWorkers(0))
	require.Error(t, err)
	var joined interface{ Unwrap() []error }
	require.ErrorAs(t, err, &joined)
	assert.Len(t, joined.Unwrap(), 4)
	assert.Contains(t, err.Error(), `"Language"`)
	assert.Contains(t, err.Error(), `"Target"`)
	assert.Contains(t, err.Error(), `"Workers"`)
	assert.Contains(t, err.Error(), "schema BAD NAME vx.y")
	assert.Contains(t, err.Error(), "packages[P!].name")
	assert.Equal(t, 1, strings.Count(err.Error(), `"Language"`))

	err = Generate(context.Background(), demo(), gen.WithLanguage("cobol"), gen.WithTarget(filepath.Join(t.TempDir(), "missing")))
	require.ErrorAs(t, err, &joined)
	assert.Len(t, joined.Unwrap(), 2)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestGenerate_Workers(t *testing.T) {
	sink := gen.NewMemorySink()
	err := Generate(context.Background(), demo(),
		gen.WithLanguage("py"),
		gen.WithTarget(t.TempDir()),
		gen.WithSink(sink),
		gen.WithWorkers(4),
	)
	require.NoError(t, err)
	assert.Equal(t, 11, sink.Len())
}

func TestGenerate_Strict(t *testing.T) {
	rec := demo()
	rec.Packages[0].Classes[0].Properties[0].Type = "p.missing"
	dir := t.TempDir()

	err := Generate(context.Background(), rec, gen.WithLanguage("python"), gen.WithTarget(dir), gen.WithStrict(true))
	require.Error(t, err)
	assert.True(t, gen.IsResolutionError(err))
	assert.NoDirExists(t, filepath.Join(dir, "demo"))

	require.NoError(t, Generate(context.Background(), rec, gen.WithLanguage("python"), gen.WithTarget(dir)))
	assert.FileExists(t, filepath.Join(dir, "demo", "v1_0", "types", "p", "child.py"))
}

func TestGenerateNamed(t *testing.T) {
	rec := demo()
	rec.Name = "compilertest"
	rec.IsLatest = true
	schema.Register(rec)

	dir := t.TempDir()
	require.NoError(t, GenerateNamed(context.Background(), "compilertest", schema.Latest, gen.WithLanguage("graphql"), gen.WithTarget(dir)))
	assert.FileExists(t, filepath.Join(dir, "compilertest", "v1_0", "schema.graphql"))

	err := GenerateNamed(context.Background(), "compilertest", "9.9", gen.WithLanguage("graphql"), gen.WithTarget(dir))
	assert.True(t, metagen.IsNotFound(err))
}
