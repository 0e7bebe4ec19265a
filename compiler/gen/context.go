package gen

import (
	"time"

	"github.com/rs/zerolog"
)

// Context carries the state of one emitter traversal: the ontology, the
// node being visited and the generation options. A Context is mutated as
// the traversal proceeds and must not be shared between traversals.
type Context struct {
	// Ontology is the graph being generated.
	Ontology *Ontology
	// Package, Class and Enum hold the node being visited. Class and
	// Enum are mutually exclusive; Package is their owner.
	Package *Package
	Class   *Class
	Enum    *Enum
	// Language, Target and Key are the target language, the output root
	// and the key of the running emitter.
	Language string
	Target   string
	Key      string
	// Now is fixed for the whole run.
	Now   time.Time
	User  string
	RunID string
	// Logger is scoped to the emitter.
	Logger zerolog.Logger

	templates *Templates
}

// NewContext returns the context of the emitter with the given key.
func NewContext(cfg *Config, o *Ontology, key string) *Context {
	now := time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}
	return &Context{
		Ontology:  o,
		Language:  cfg.Language,
		Target:    cfg.Target,
		Key:       key,
		Now:       now(),
		User:      cfg.User,
		RunID:     cfg.RunID,
		Logger:    cfg.Logger.With().Str("emitter", key).Logger(),
		templates: cfg.Templates,
	}
}

// SetPackage makes p the visited node.
func (c *Context) SetPackage(p *Package) {
	c.Package, c.Class, c.Enum = p, nil, nil
}

// SetClass makes cls the visited node.
func (c *Context) SetClass(cls *Class) {
	c.Package, c.Class, c.Enum = cls.Package, cls, nil
}

// SetEnum makes e the visited node.
func (c *Context) SetEnum(e *Enum) {
	c.Package, c.Class, c.Enum = e.Package, nil, e
}

// Reset clears the visited node.
func (c *Context) Reset() {
	c.Package, c.Class, c.Enum = nil, nil, nil
}

// Template loads the named template of the running emitter with the
// standard placeholders substituted.
func (c *Context) Template(name string) (string, error) {
	if c.templates == nil {
		return "", NewTemplateError(TemplatePath(c.Language, c.Key, name), nil)
	}
	return c.templates.Load(c, name)
}
