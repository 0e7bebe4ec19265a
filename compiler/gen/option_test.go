package gen

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	c, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, 1, c.Workers)
	assert.Equal(t, DefaultEntityMarker, c.EntityMarker)
	assert.NotEmpty(t, c.RunID)
	assert.NotNil(t, c.Now)
	assert.False(t, c.Strict)
	assert.IsType(t, FileSink{}, c.sink())
}

func TestOptions(t *testing.T) {
	now := func() time.Time { return time.Unix(0, 0) }
	sink := NewMemorySink()
	c, err := NewConfig(
		WithLanguage("go"),
		WithTarget("gen"),
		WithStrict(true),
		WithWorkers(3),
		WithEntityMarker("meta"),
		WithTemplates(fstest.MapFS{}),
		WithSink(sink),
		WithLogger(zerolog.Nop()),
		WithClock(now),
		WithUser("alice"),
		WithRunID("6f1b8a3e-2c4d-4e5f-8a9b-0c1d2e3f4a5b"),
	)
	require.NoError(t, err)
	assert.Equal(t, "go", c.Language)
	assert.Equal(t, "gen", c.Target)
	assert.True(t, c.Strict)
	assert.Equal(t, 3, c.Workers)
	assert.Equal(t, "meta", c.EntityMarker)
	assert.NotNil(t, c.Templates)
	assert.Same(t, sink, c.sink())
	assert.Equal(t, "alice", c.User)
	assert.Equal(t, "6f1b8a3e-2c4d-4e5f-8a9b-0c1d2e3f4a5b", c.RunID)
	assert.Equal(t, int64(0), c.Now().Unix())
}

func TestOptions_Invalid(t *testing.T) {
	tests := map[string]Option{
		"Language":     WithLanguage(""),
		"Target":       WithTarget(""),
		"Workers":      WithWorkers(0),
		"EntityMarker": WithEntityMarker(""),
		"Templates":    WithTemplates(nil),
		"Sink":         WithSink(nil),
		"Clock":        WithClock(nil),
		"RunID":        WithRunID("not-a-uuid"),
	}
	for name, opt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewConfig(opt)
			require.Error(t, err)
			assert.True(t, IsConfigError(err))
			assert.Contains(t, err.Error(), name)
		})
	}
	assert.Panics(t, func() { MustNewConfig(WithWorkers(-1)) })
}

func TestConfig_ApplyAll(t *testing.T) {
	c := &Config{}
	err := c.ApplyAll(WithLanguage(""), WithTarget("out"), WithWorkers(0))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "Language")
	assert.Contains(t, err.Error(), "Workers")
	assert.Equal(t, "out", c.Target)

	c = &Config{}
	err = c.Apply(WithLanguage(""), WithTarget("out"))
	require.Error(t, err)
	assert.Empty(t, c.Target)
}
