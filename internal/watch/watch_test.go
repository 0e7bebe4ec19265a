package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_matches(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		exclude  []string
		path     string
		want     bool
	}{
		{
			name:     "base name",
			patterns: []string{"*.yaml"},
			path:     "/project/cim.yaml",
			want:     true,
		},
		{
			name:     "nested extension",
			patterns: []string{"**/*.txt"},
			path:     "/project/templates/python/types/enum.txt",
			want:     true,
		},
		{
			name:     "exact file",
			patterns: []string{"cim.json"},
			path:     "/project/schemas/cim.json",
			want:     true,
		},
		{
			name:     "editor swap file",
			patterns: []string{"*.yaml"},
			exclude:  []string{".*.swp"},
			path:     "/project/.cim.yaml.swp",
			want:     false,
		},
		{
			name:     "exclude overrides pattern",
			patterns: []string{"*.yaml"},
			exclude:  []string{"metagen.yaml"},
			path:     "/project/metagen.yaml",
			want:     false,
		},
		{
			name:     "no match",
			patterns: []string{"*.yaml", "*.json"},
			path:     "/project/readme.md",
			want:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := New(tt.patterns, func([]string) {}, WithExclude(tt.exclude...))
			require.NoError(t, err)
			defer w.Close()
			assert.Equal(t, tt.want, w.matches(tt.path))
		})
	}
}

func TestWatcher_Run(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".config")
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".cache"), 0o755))
	file := filepath.Join(dir, "demo.yaml")
	require.NoError(t, os.WriteFile(file, []byte("name: demo\n"), 0o644))

	var (
		mu    sync.Mutex
		calls [][]string
	)
	w, err := New([]string{"*.yaml"}, func(paths []string) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, paths)
	}, WithDelay(50*time.Millisecond), WithExclude(".*"))
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.AddDirectory(dir))
	assert.Equal(t, []string{dir}, w.watcher.WatchList())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	for range 3 {
		require.NoError(t, os.WriteFile(file, []byte("name: demo\nversion: \"1\"\n"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(calls) > 0
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	mu.Lock()
	defer mu.Unlock()
	for _, paths := range calls {
		assert.Equal(t, []string{file}, paths)
	}
}
