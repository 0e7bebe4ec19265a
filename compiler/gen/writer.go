package gen

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"
)

// Sink persists generated outputs.
type Sink interface {
	Write(Output) error
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Output) error

// Write implements Sink.
func (f SinkFunc) Write(out Output) error {
	return f(out)
}

// FileSink writes outputs to the file system, creating directories as
// needed. Each {file-name} placeholder is replaced by the file name.
type FileSink struct{}

// Write implements Sink.
func (FileSink) Write(out Output) error {
	if err := os.MkdirAll(out.Dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", out.Dir, err)
	}
	content := strings.ReplaceAll(out.Content, ParamFileName, out.File)
	if err := os.WriteFile(out.Path(), []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out.Path(), err)
	}
	return nil
}

// MemorySink keeps outputs in memory, keyed by path. It applies the same
// {file-name} substitution as FileSink and is safe for concurrent use.
type MemorySink struct {
	mu    sync.Mutex
	files map[string]string
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string]string)}
}

// Write implements Sink.
func (s *MemorySink) Write(out Output) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.files == nil {
		s.files = make(map[string]string)
	}
	s.files[out.Path()] = strings.ReplaceAll(out.Content, ParamFileName, out.File)
	return nil
}

// File returns the content written at path.
func (s *MemorySink) File(path string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.files[path]
	return content, ok
}

// Paths returns the written paths in ascending order.
func (s *MemorySink) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Sorted(maps.Keys(s.files))
}

// Len returns the number of written files.
func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}
