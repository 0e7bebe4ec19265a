package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/syssam/metagen/compiler/gen"
	"github.com/syssam/metagen/config"
	"github.com/syssam/metagen/internal/watch"
)

// Generate generates the configured schema, then keeps regenerating it on
// change when the watch flag is set.
func (c *Controller) Generate(ctx context.Context) error {
	cfg, err := c.Config()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	// The CLI owns the output root. Library callers must create it themselves.
	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := c.generate(ctx, cfg); err != nil {
		return err
	}
	if !c.Flags.Watch {
		return nil
	}
	return c.watch(ctx, cfg)
}

func (c *Controller) generate(ctx context.Context, cfg *config.Config) error {
	rec, err := cfg.LoadSchema()
	if err != nil {
		return err
	}
	opts := append(cfg.Options(), gen.WithLogger(c.Logger))
	if err := c.registry().Generate(ctx, rec, opts...); err != nil {
		return err
	}
	c.Logger.Info().
		Str("schema", rec.Name).
		Str("version", rec.Version).
		Str("language", cfg.Output.Language).
		Str("dir", cfg.Output.Dir).
		Msg("generated")
	return nil
}

// watch regenerates whenever the schema file or the template overrides
// change. Failed runs are logged and watching goes on.
func (c *Controller) watch(ctx context.Context, cfg *config.Config) error {
	if cfg.Schema.File == "" {
		return errors.New("watch requires a schema file")
	}
	file, err := filepath.Abs(cfg.Schema.File)
	if err != nil {
		return err
	}
	dirs := []string{filepath.Dir(file)}
	patterns := []string{filepath.Base(file)}
	if cfg.Output.Templates != "" {
		templates, err := filepath.Abs(cfg.Output.Templates)
		if err != nil {
			return err
		}
		dirs = append(dirs, templates)
		patterns = append(patterns, "**/*.txt")
	}
	w, err := watch.New(patterns, func(paths []string) {
		c.Logger.Info().Strs("paths", paths).Msg("change detected")
		if err := c.generate(ctx, cfg); err != nil {
			c.Logger.Error().Err(err).Msg("generate")
		}
	}, watch.WithExclude(".*", "*~"), watch.WithLogger(c.Logger))
	if err != nil {
		return err
	}
	defer w.Close()

	for _, dir := range dirs {
		if err := w.AddDirectory(dir); err != nil {
			return err
		}
	}
	c.Logger.Info().Str("file", file).Msg("watching for changes")
	if err := w.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
