// Package compiler ties schema loading, ontology assembly and code
// generation together, and keeps the registry of target languages.
//
// A run is configured with the gen options:
//
//	err := compiler.Generate(ctx, rec,
//		gen.WithLanguage("python"),
//		gen.WithTarget("./out"),
//	)
//
// The configuration is validated before any work and every problem is
// reported at once. The emitters of the language then run in their fixed
// order: root, types, decoding, validation.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/syssam/metagen/compiler/gen"
	"github.com/syssam/metagen/compiler/load"
	"github.com/syssam/metagen/schema"
)

// Validate checks the configuration of a run against the default
// registry.
func Validate(rec *schema.Ontology, cfg *gen.Config) error {
	return DefaultRegistry.Validate(rec, cfg)
}

// Assemble checks the shape of rec and builds its ontology graph.
func Assemble(rec *schema.Ontology, opts ...gen.Option) (*gen.Ontology, error) {
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	if err := checkSchema(rec); err != nil {
		return nil, err
	}
	return gen.NewOntology(cfg, rec)
}

// Generate runs the emitters of the configured language of the default
// registry over rec.
func Generate(ctx context.Context, rec *schema.Ontology, opts ...gen.Option) error {
	return DefaultRegistry.Generate(ctx, rec, opts...)
}

// GenerateNamed generates the registered schema name at version, where
// an empty version or "latest" selects the latest one.
func GenerateNamed(ctx context.Context, name, version string, opts ...gen.Option) error {
	rec, err := schema.Lookup(name, version)
	if err != nil {
		return err
	}
	return Generate(ctx, rec, opts...)
}

// Validate checks the configuration of a run: the language must be
// registered, the target directory must exist and the schema must be
// well formed. The errors found are joined.
func (r *Registry) Validate(rec *schema.Ontology, cfg *gen.Config) error {
	return errors.Join(r.configErrors(rec, cfg)...)
}

func (r *Registry) configErrors(rec *schema.Ontology, cfg *gen.Config) []error {
	var errs []error
	if cfg.Language == "" {
		errs = append(errs, gen.NewConfigError("Language", nil, "language is required"))
	} else if _, err := r.Get(cfg.Language); err != nil {
		errs = append(errs, err)
	}
	switch info, err := os.Stat(cfg.Target); {
	case cfg.Target == "":
		errs = append(errs, gen.NewConfigError("Target", nil, "target directory is required"))
	case err != nil:
		ce := gen.NewConfigError("Target", cfg.Target, "target directory is not accessible")
		ce.Cause = err
		errs = append(errs, ce)
	case !info.IsDir():
		errs = append(errs, gen.NewConfigError("Target", cfg.Target, "target is not a directory"))
	}
	if err := checkSchema(rec); err != nil {
		errs = append(errs, err)
	}
	return errs
}

// Generate validates the run, assembles rec and runs the emitters of the
// configured language. The language templates are used unless the
// options set others.
func (r *Registry) Generate(ctx context.Context, rec *schema.Ontology, opts ...gen.Option) error {
	cfg, optErr := gen.NewConfigAll(opts...)
	if err := errors.Join(mergeConfigErrors(optErr, r.configErrors(rec, cfg))...); err != nil {
		return err
	}
	lang, err := r.Get(cfg.Language)
	if err != nil {
		return err
	}
	cfg.Language = lang.Name
	if cfg.Templates == nil {
		cfg.Templates = lang.Templates
	}
	o, err := gen.NewOntology(cfg, rec)
	if err != nil {
		return err
	}
	if n := len(o.Unresolved); n > 0 {
		cfg.Logger.Warn().Int("count", n).Msg("generating with unresolved references")
	}
	return gen.NewGenerator(cfg, lang.Emitters()...).Generate(ctx, o)
}

// mergeConfigErrors flattens the option errors and appends the validation
// errors of the options that did not already fail.
func mergeConfigErrors(optErr error, errs []error) []error {
	var merged []error
	switch e := optErr.(type) {
	case nil:
	case interface{ Unwrap() []error }:
		merged = append(merged, e.Unwrap()...)
	default:
		merged = append(merged, e)
	}
	failed := make(map[string]bool, len(merged))
	for _, err := range merged {
		var ce *gen.ConfigError
		if errors.As(err, &ce) {
			failed[ce.Option] = true
		}
	}
	for _, err := range errs {
		if ce, ok := err.(*gen.ConfigError); ok && failed[ce.Option] {
			continue
		}
		merged = append(merged, err)
	}
	return merged
}

// checkSchema reports the shape errors of rec as configuration errors.
func checkSchema(rec *schema.Ontology) error {
	if rec == nil {
		return gen.NewConfigError("Schema", nil, "schema is required")
	}
	var errs []error
	for _, err := range load.Check(rec) {
		ce := gen.NewConfigError("Schema", rec.Name, "malformed schema")
		ce.Cause = err
		errs = append(errs, ce)
	}
	if len(errs) > 0 {
		return fmt.Errorf("schema %s v%s: %w", rec.Name, rec.Version, errors.Join(errs...))
	}
	return nil
}
