package commands

import (
	"context"
	"fmt"

	"github.com/syssam/metagen/compiler"
	"github.com/syssam/metagen/compiler/gen"
	"github.com/syssam/metagen/compiler/load"
)

// Inspect prints the configured schema record in the requested format,
// or a summary of the assembled ontology when the stats flag is set.
func (c *Controller) Inspect(context.Context) error {
	cfg, err := c.Config()
	if err != nil {
		return err
	}
	rec, err := cfg.LoadSchema()
	if err != nil {
		return err
	}
	if c.Flags.Stats {
		o, err := compiler.Assemble(rec, gen.WithLogger(c.Logger), gen.WithEntityMarker(cfg.Generate.EntityMarker))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(c.out(),
			"%s v%s\npackages: %d\nclasses: %d\nenums: %d\nentities: %d\nproperties: %d\nunresolved: %d\n",
			o.Name, o.Version, len(o.Packages), len(o.Classes), len(o.Enums), len(o.Entities), len(o.Properties), len(o.Unresolved))
		return err
	}
	format := load.FormatYAML
	if c.Flags.Format != "" {
		if format, err = load.ParseFormat(c.Flags.Format); err != nil {
			return err
		}
	}
	data, err := load.Marshal(rec, format)
	if err != nil {
		return err
	}
	_, err = c.out().Write(data)
	return err
}
