package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/metagen/compiler/gen"
	"github.com/syssam/metagen/schema"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, schema.Latest, c.Schema.Version)
	assert.Equal(t, "python", c.Output.Language)
	assert.Equal(t, 1, c.Generate.Workers)
	assert.Equal(t, gen.DefaultEntityMarker, c.Generate.EntityMarker)
	assert.Equal(t, zerolog.InfoLevel, c.Level())

	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema.name or schema.file is required")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "named schema",
			modify: func(c *Config) { c.Schema.Name = "cim" },
		},
		{
			name:   "schema file",
			modify: func(c *Config) { c.Schema.File = "cim.json" },
		},
		{
			name: "both sources",
			modify: func(c *Config) {
				c.Schema.Name = "cim"
				c.Schema.File = "cim.yaml"
			},
			wantErr: "mutually exclusive",
		},
		{
			name:    "unknown file format",
			modify:  func(c *Config) { c.Schema.File = "cim.xml" },
			wantErr: `unknown format "xml"`,
		},
		{
			name: "workers",
			modify: func(c *Config) {
				c.Schema.Name = "cim"
				c.Generate.Workers = 0
			},
			wantErr: "generate.workers must be at least 1",
		},
		{
			name: "log level",
			modify: func(c *Config) {
				c.Schema.Name = "cim"
				c.Log.Level = "loud"
			},
			wantErr: "log.level",
		},
		{
			name: "output",
			modify: func(c *Config) {
				c.Schema.Name = "cim"
				c.Output.Language = ""
				c.Output.Dir = ""
			},
			wantErr: "output.language is required\noutput.dir is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(c)
			err := c.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := `
schema:
  name: cim
output:
  language: go
  dir: gen
generate:
  strict: true
  workers: 4
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, c.Validate())
	assert.Equal(t, "cim", c.Schema.Name)
	assert.Equal(t, schema.Latest, c.Schema.Version, "defaults are kept")
	assert.Equal(t, "go", c.Output.Language)
	assert.Equal(t, "gen", c.Output.Dir)
	assert.True(t, c.Generate.Strict)
	assert.Equal(t, 4, c.Generate.Workers)
	assert.Equal(t, gen.DefaultEntityMarker, c.Generate.EntityMarker)
	assert.Equal(t, zerolog.DebugLevel, c.Level())

	cfg, err := gen.NewConfig(c.Options()...)
	require.NoError(t, err)
	assert.Equal(t, "go", cfg.Language)
	assert.Equal(t, "gen", cfg.Target)
	assert.True(t, cfg.Strict)
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	c, err := LoadOrDefault(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)

	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("output:\n  langauge: go\n"), 0o644))
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "langauge")
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	c := DefaultConfig()
	c.Schema.Name = "cim"
	c.Output.Templates = "templates"
	require.NoError(t, c.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, got)
	assert.Len(t, got.Options(), 6)
}

func TestLoadSchema(t *testing.T) {
	rec := &schema.Ontology{Name: "configtest", Version: "1.0", Packages: []*schema.Package{{Name: "p"}}}
	schema.Register(rec)

	c := DefaultConfig()
	c.Schema.Name = "configtest"
	got, err := c.LoadSchema()
	require.NoError(t, err)
	assert.Same(t, rec, got)

	path := filepath.Join(t.TempDir(), "demo.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"demo","version":"2","packages":[{"name":"p"}]}`), 0o644))
	c = DefaultConfig()
	c.Schema.File = path
	got, err = c.LoadSchema()
	require.NoError(t, err)
	assert.Equal(t, "demo", got.Name)
}
