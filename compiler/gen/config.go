package gen

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultEntityMarker is the property that flags a non-abstract class as
// an entity.
const DefaultEntityMarker = "cim_info"

// Config holds the assembly and generation settings.
type Config struct {
	// Language selects the template subdirectory, e.g. "python".
	Language string
	// Target is the output root directory.
	Target string
	// Strict makes dangling base and type references fail assembly
	// instead of being logged and left unresolved.
	Strict bool
	// Workers is the number of emitters run concurrently. Values below 2
	// run them one after the other.
	Workers int
	// EntityMarker names the property that flags entities.
	EntityMarker string
	// Templates resolves and caches the emitter templates.
	Templates *Templates
	// Sink receives the generated outputs. Defaults to a FileSink.
	Sink Sink
	// Logger receives assembly and pipeline events.
	Logger zerolog.Logger
	// Now returns the timestamp substituted into templates.
	Now func() time.Time
	// User is substituted for {user-name}. Empty means the current OS user.
	User string
	// RunID identifies the run in logs and in {generation-id}.
	RunID string
}

// defaultConfig returns the settings used before options apply.
func defaultConfig() *Config {
	return &Config{
		Workers:      1,
		EntityMarker: DefaultEntityMarker,
		Logger:       zerolog.Nop(),
		Now:          time.Now,
		RunID:        uuid.NewString(),
	}
}

// sink returns the configured sink or a FileSink.
func (c *Config) sink() Sink {
	if c.Sink == nil {
		return FileSink{}
	}
	return c.Sink
}
