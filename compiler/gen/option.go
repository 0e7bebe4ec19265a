package gen

import (
	"errors"
	"io/fs"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Option configures assembly and generation.
type Option func(*Config) error

// WithLanguage sets the target language.
func WithLanguage(lang string) Option {
	return func(c *Config) error {
		if lang == "" {
			return NewConfigError("Language", nil, "language cannot be empty")
		}
		c.Language = lang
		return nil
	}
}

// WithTarget sets the output root directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithStrict toggles strict reference resolution.
func WithStrict(strict bool) Option {
	return func(c *Config) error {
		c.Strict = strict
		return nil
	}
}

// WithWorkers sets the number of emitters run concurrently.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewConfigError("Workers", n, "workers must be at least 1")
		}
		c.Workers = n
		return nil
	}
}

// WithEntityMarker sets the property that flags entities.
func WithEntityMarker(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return NewConfigError("EntityMarker", nil, "entity marker cannot be empty")
		}
		c.EntityMarker = name
		return nil
	}
}

// WithTemplates reads templates from fsys instead of the language
// defaults. Paths are <language>/<emitter>/<file>.
func WithTemplates(fsys fs.FS) Option {
	return func(c *Config) error {
		if fsys == nil {
			return NewConfigError("Templates", nil, "template filesystem cannot be nil")
		}
		c.Templates = NewTemplates(FSSource{FS: fsys})
		return nil
	}
}

// WithTemplateCache sets a shared template cache.
func WithTemplateCache(t *Templates) Option {
	return func(c *Config) error {
		if t == nil {
			return NewConfigError("Templates", nil, "templates cannot be nil")
		}
		c.Templates = t
		return nil
	}
}

// WithSink sets the output sink.
func WithSink(s Sink) Option {
	return func(c *Config) error {
		if s == nil {
			return NewConfigError("Sink", nil, "sink cannot be nil")
		}
		c.Sink = s
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Config) error {
		c.Logger = l
		return nil
	}
}

// WithClock sets the time source used by templates.
func WithClock(now func() time.Time) Option {
	return func(c *Config) error {
		if now == nil {
			return NewConfigError("Clock", nil, "clock cannot be nil")
		}
		c.Now = now
		return nil
	}
}

// WithUser sets the user name substituted into templates.
func WithUser(name string) Option {
	return func(c *Config) error {
		c.User = name
		return nil
	}
}

// WithRunID sets the run identifier. It must be a UUID.
func WithRunID(id string) Option {
	return func(c *Config) error {
		if err := uuid.Validate(id); err != nil {
			return &ConfigError{Option: "RunID", Value: id, Message: "invalid run id", Cause: err}
		}
		c.RunID = id
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the defaults and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := defaultConfig()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// NewConfigAll is like NewConfig but applies every option. It returns the
// config along with the joined errors of the options that failed.
func NewConfigAll(opts ...Option) (*Config, error) {
	c := defaultConfig()
	return c, c.ApplyAll(opts...)
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
