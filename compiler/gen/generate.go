package gen

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"
)

// placeholder matches the {word-word} placeholders of templates.
var placeholder = regexp.MustCompile(`\{[a-z]+(?:-[a-z]+)+\}`)

// Generator runs emitters over an assembled ontology and forwards their
// outputs to the sink.
type Generator struct {
	cfg      *Config
	emitters []NamedEmitter
}

// NewGenerator returns a generator running the emitters in order.
func NewGenerator(cfg *Config, emitters ...NamedEmitter) *Generator {
	if cfg == nil {
		cfg = defaultConfig()
	}
	return &Generator{cfg: cfg, emitters: emitters}
}

// Generate runs every emitter over o. Emitters run one after the other,
// or concurrently when the config has more than one worker, each with its
// own Context. Outputs are written as soon as a hook returns them; an
// error aborts the run without removing files already written.
func (g *Generator) Generate(ctx context.Context, o *Ontology) error {
	log := g.cfg.Logger
	start := time.Now()
	log.Info().
		Str("run_id", g.cfg.RunID).
		Str("ontology", o.Name).
		Str("version", o.Version).
		Str("language", g.cfg.Language).
		Str("target", g.cfg.Target).
		Int("packages", len(o.Packages)).
		Int("classes", len(o.Classes)).
		Int("enums", len(o.Enums)).
		Int("entities", len(o.Entities)).
		Int("emitters", len(g.emitters)).
		Msg("generation started")

	if g.cfg.Workers < 2 {
		for _, e := range g.emitters {
			if err := g.run(ctx, o, e); err != nil {
				return err
			}
		}
	} else {
		errg, ctx := errgroup.WithContext(ctx)
		errg.SetLimit(g.cfg.Workers)
		for _, e := range g.emitters {
			errg.Go(func() error {
				return g.run(ctx, o, e)
			})
		}
		if err := errg.Wait(); err != nil {
			return err
		}
	}
	log.Info().
		Str("run_id", g.cfg.RunID).
		Dur("elapsed", time.Since(start)).
		Msg("generation completed")
	return nil
}

// run performs the traversal of a single emitter.
func (g *Generator) run(ctx context.Context, o *Ontology, ne NamedEmitter) error {
	c := NewContext(g.cfg, o, ne.Key)
	c.Logger.Debug().Msg("emitter started")
	w := &outputWriter{sink: g.cfg.sink(), templates: g.cfg.Templates, key: ne.Key}
	e := ne.Emitter

	if err := w.forward(e.OnStart(c)); err != nil {
		return err
	}
	if err := w.forward(e.OnOntology(c)); err != nil {
		return err
	}
	for _, p := range o.Packages {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.SetPackage(p)
		if err := w.forward(e.OnPackage(c)); err != nil {
			return w.at(err, "package", p.Name)
		}
		for _, cls := range p.Classes {
			c.SetClass(cls)
			if err := w.forward(e.OnClass(c)); err != nil {
				return w.at(err, "class", cls.QualifiedName())
			}
		}
		for _, en := range p.Enums {
			c.SetEnum(en)
			if err := w.forward(e.OnEnum(c)); err != nil {
				return w.at(err, "enum", en.QualifiedName())
			}
		}
	}
	c.Reset()
	if err := w.forward(e.OnEnd(c)); err != nil {
		return err
	}
	c.Logger.Info().Int("files", w.files).Msg("emitter completed")
	return nil
}

type outputWriter struct {
	sink      Sink
	templates *Templates
	key       string
	files     int
}

// forward writes the outputs of a hook one by one.
func (w *outputWriter) forward(outs []Output, err error) error {
	if err != nil {
		return NewGenerationError(w.key, "", "", err)
	}
	for _, out := range outs {
		if left := unresolvedPlaceholders(out.Content, w.declared); len(left) > 0 {
			return NewGenerationError(w.key, out.Path(), fmt.Sprintf("unresolved placeholders %v", left), nil)
		}
		if err := w.sink.Write(out); err != nil {
			return NewGenerationError(w.key, out.Path(), "write output", err)
		}
		w.files++
	}
	return nil
}

// declared reports whether p is a template placeholder. Braces coming from
// schema docs are left alone.
func (w *outputWriter) declared(p string) bool {
	return w.templates != nil && w.templates.Declares(p)
}

// at adds the visited node to a generation error raised by a hook.
func (w *outputWriter) at(err error, kind, name string) error {
	if ge, ok := err.(*GenerationError); ok && ge.Message == "" {
		ge.Message = fmt.Sprintf("on %s %s", kind, name)
	}
	return err
}

// unresolvedPlaceholders returns the distinct declared placeholders left
// in s, ignoring {file-name}.
func unresolvedPlaceholders(s string, declared func(string) bool) []string {
	var left []string
	for _, m := range placeholder.FindAllString(s, -1) {
		if m != ParamFileName && declared(m) && !slices.Contains(left, m) {
			left = append(left, m)
		}
	}
	return left
}
