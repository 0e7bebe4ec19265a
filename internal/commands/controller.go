// Package commands contains the CLI commands of metagen.
package commands

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/syssam/metagen/compiler"
	"github.com/syssam/metagen/config"
)

// Flags holds the command-line values. Zero values leave the settings of
// the configuration file untouched.
type Flags struct {
	Config   string
	Schema   string
	Version  string
	Language string
	Output   string
	File     string
	Strict   bool
	Workers  int
	Watch    bool
	Format   string
	Stats    bool
}

// Controller runs the commands.
type Controller struct {
	Flags *Flags
	// Out receives command output. Defaults to os.Stdout.
	Out io.Writer
	// Logger is passed on to the generator.
	Logger zerolog.Logger
	// Registry defaults to compiler.DefaultRegistry.
	Registry *compiler.Registry
}

func (c *Controller) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Controller) registry() *compiler.Registry {
	if c.Registry == nil {
		return compiler.DefaultRegistry
	}
	return c.Registry
}

// Config loads the configuration file, when present, and applies the
// flags over it.
func (c *Controller) Config() (*config.Config, error) {
	path := c.Flags.Config
	if path == "" {
		path = config.FileName
	}
	var (
		cfg *config.Config
		err error
	)
	if c.Flags.Config != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadOrDefault(path)
	}
	if err != nil {
		return nil, err
	}
	c.merge(cfg)
	return cfg, nil
}

func (c *Controller) merge(cfg *config.Config) {
	f := c.Flags
	switch {
	case f.File != "":
		cfg.Schema.File, cfg.Schema.Name = f.File, ""
	case f.Schema != "":
		cfg.Schema.Name, cfg.Schema.File = f.Schema, ""
	}
	if f.Version != "" {
		cfg.Schema.Version = f.Version
	}
	if f.Language != "" {
		cfg.Output.Language = f.Language
	}
	if f.Output != "" {
		cfg.Output.Dir = f.Output
	}
	if f.Strict {
		cfg.Generate.Strict = true
	}
	if f.Workers != 0 {
		cfg.Generate.Workers = f.Workers
	}
}
