// Package config loads metagen.yaml, the project file holding the default
// generate settings. Command-line flags override the values read here.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/syssam/metagen/compiler/gen"
	"github.com/syssam/metagen/compiler/load"
	"github.com/syssam/metagen/schema"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "metagen.yaml"

// Config is the content of metagen.yaml.
type Config struct {
	Schema   SchemaConfig   `yaml:"schema"`
	Output   OutputConfig   `yaml:"output"`
	Generate GenerateConfig `yaml:"generate"`
	Log      LogConfig      `yaml:"log"`
}

// SchemaConfig selects the ontology to generate from.
type SchemaConfig struct {
	// Name of a registered schema, e.g. "cim".
	Name string `yaml:"name"`
	// Version of the registered schema. "latest" selects the flagged one.
	Version string `yaml:"version"`
	// File is a schema file read instead of a registered schema.
	File string `yaml:"file,omitempty"`
}

// OutputConfig configures the generated artifacts.
type OutputConfig struct {
	Language string `yaml:"language"`
	Dir      string `yaml:"dir"`
	// Templates is a directory overriding the embedded templates.
	Templates string `yaml:"templates,omitempty"`
}

// GenerateConfig tunes assembly and the emitter pipeline.
type GenerateConfig struct {
	Strict       bool   `yaml:"strict"`
	Workers      int    `yaml:"workers"`
	EntityMarker string `yaml:"entity_marker"`
	User         string `yaml:"user,omitempty"`
}

// LogConfig configures the console logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Schema: SchemaConfig{
			Version: schema.Latest,
		},
		Output: OutputConfig{
			Language: "python",
			Dir:      ".",
		},
		Generate: GenerateConfig{
			Workers:      1,
			EntityMarker: gen.DefaultEntityMarker,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Schema.Name == "" && c.Schema.File == "" {
		errs = append(errs, errors.New("schema.name or schema.file is required"))
	}
	if c.Schema.Name != "" && c.Schema.File != "" {
		errs = append(errs, errors.New("schema.name and schema.file are mutually exclusive"))
	}
	if c.Schema.File != "" {
		if _, err := load.FormatOf(c.Schema.File); err != nil {
			errs = append(errs, fmt.Errorf("schema.file: %w", err))
		}
	}
	if c.Output.Language == "" {
		errs = append(errs, errors.New("output.language is required"))
	}
	if c.Output.Dir == "" {
		errs = append(errs, errors.New("output.dir is required"))
	}
	if c.Generate.Workers < 1 {
		errs = append(errs, fmt.Errorf("generate.workers must be at least 1, got %d", c.Generate.Workers))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// Load reads the file at path over the defaults. Unknown keys are
// rejected.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	c := DefaultConfig()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return c, nil
}

// LoadOrDefault is like Load but returns the defaults when path does not
// exist.
func LoadOrDefault(path string) (*Config, error) {
	c, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return c, err
}

// Save writes c to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Level returns the parsed log level, or info when it does not parse.
func (c *Config) Level() zerolog.Level {
	l, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}

// Options converts c to generator options.
func (c *Config) Options() []gen.Option {
	opts := []gen.Option{
		gen.WithLanguage(c.Output.Language),
		gen.WithTarget(c.Output.Dir),
		gen.WithStrict(c.Generate.Strict),
		gen.WithWorkers(c.Generate.Workers),
	}
	if c.Generate.EntityMarker != "" {
		opts = append(opts, gen.WithEntityMarker(c.Generate.EntityMarker))
	}
	if c.Generate.User != "" {
		opts = append(opts, gen.WithUser(c.Generate.User))
	}
	if c.Output.Templates != "" {
		opts = append(opts, gen.WithTemplates(os.DirFS(c.Output.Templates)))
	}
	return opts
}

// LoadSchema returns the schema record c points at: the file when set,
// otherwise the registered schema.
func (c *Config) LoadSchema() (*schema.Ontology, error) {
	if c.Schema.File != "" {
		return load.Load(c.Schema.File)
	}
	return schema.Lookup(c.Schema.Name, c.Schema.Version)
}
