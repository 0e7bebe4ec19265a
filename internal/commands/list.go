package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/syssam/metagen/schema"
)

// Schemas prints the registered schemas, one "name version" per line.
// The latest version of each schema is marked.
func (c *Controller) Schemas(context.Context) error {
	for _, o := range schema.Registered() {
		line := o.Name + " " + o.Version
		if o.IsLatest {
			line += " (latest)"
		}
		if _, err := fmt.Fprintln(c.out(), line); err != nil {
			return err
		}
	}
	return nil
}

// Languages prints the supported target languages.
func (c *Controller) Languages(context.Context) error {
	_, err := fmt.Fprintln(c.out(), strings.Join(c.registry().Languages(), "\n"))
	return err
}
