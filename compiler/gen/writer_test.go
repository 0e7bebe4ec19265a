package gen

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo", "v1_0")
	out := Output{Content: "# {file-name}\n", Dir: dir, File: "__init__.py"}
	require.NoError(t, FileSink{}.Write(out))

	b, err := os.ReadFile(filepath.Join(dir, "__init__.py"))
	require.NoError(t, err)
	assert.Equal(t, "# __init__.py\n", string(b))

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	err = FileSink{}.Write(Output{Dir: filepath.Join(blocker, "sub"), File: "x.py"})
	assert.Error(t, err)
}

func TestMemorySink(t *testing.T) {
	s := NewMemorySink()
	var wg sync.WaitGroup
	for _, f := range []string{"b.py", "a.py", "c.py"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Write(Output{Content: "{file-name}", Dir: "out", File: f}))
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{
		filepath.Join("out", "a.py"),
		filepath.Join("out", "b.py"),
		filepath.Join("out", "c.py"),
	}, s.Paths())
	content, ok := s.File(filepath.Join("out", "a.py"))
	require.True(t, ok)
	assert.Equal(t, "a.py", content)

	var zero MemorySink
	require.NoError(t, zero.Write(Output{Dir: "d", File: "f"}))
	assert.Equal(t, 1, zero.Len())
}
