package gen

import (
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, tmpl *Templates) *Context {
	t.Helper()
	o := assemble(t, baseChildSchema())
	cfg := MustNewConfig(
		WithLanguage("python"),
		WithTarget("out"),
		WithTemplateCache(tmpl),
		WithClock(func() time.Time { return time.Date(2024, 3, 9, 10, 30, 0, 0, time.UTC) }),
		WithUser("tester"),
		WithRunID("6f1b8a3e-2c4d-4e5f-8a9b-0c1d2e3f4a5b"),
	)
	return NewContext(cfg, o, "types")
}

func TestTemplates_Load(t *testing.T) {
	var reads atomic.Int32
	fsys := fstest.MapFS{
		"python/types/header.txt": {Data: []byte(
			"{ontology-name} v{ontology-version} ({ontology-version-packagename}) {datetime-year} {user-name} {generation-id} {datetime-now} {file-name}",
		)},
	}
	src := TemplateSourceFunc(func(p string) ([]byte, error) {
		reads.Add(1)
		return FSSource{FS: fsys}.ReadTemplate(p)
	})
	tmpl := NewTemplates(src)
	ctx := testContext(t, tmpl)

	first, err := ctx.Template("header.txt")
	require.NoError(t, err)
	assert.Equal(t,
		"demo v1.0 (1_0) 2024 tester 6f1b8a3e-2c4d-4e5f-8a9b-0c1d2e3f4a5b 2024-03-09 10:30:00.000000 {file-name}",
		first,
	)
	second, err := ctx.Template("header.txt")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, reads.Load())
	assert.Equal(t, 1, tmpl.Len())
}

func TestTemplates_ConcurrentFirstLoad(t *testing.T) {
	var reads atomic.Int32
	release := make(chan struct{})
	tmpl := NewTemplates(TemplateSourceFunc(func(string) ([]byte, error) {
		reads.Add(1)
		<-release
		return []byte("body"), nil
	}))

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = tmpl.Raw("python/root/package_1.txt")
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "body", r)
	}
	assert.EqualValues(t, 1, reads.Load())
	_, err := tmpl.Raw("python/root/package_1.txt")
	require.NoError(t, err)
	assert.Equal(t, 1, tmpl.Len())
}

func TestTemplates_NotFound(t *testing.T) {
	tmpl := NewTemplates(FSSource{FS: fstest.MapFS{}})
	ctx := testContext(t, tmpl)
	_, err := ctx.Template("missing.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
	var tmplErr *TemplateError
	require.ErrorAs(t, err, &tmplErr)
	assert.Equal(t, "python/types/missing.txt", tmplErr.Path)

	ctx.templates = nil
	_, err = ctx.Template("missing.txt")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestReplacements(t *testing.T) {
	var r Replacements
	assert.Equal(t, "{a-b}", r.Apply("{a-b}"))

	r = r.Add("{class-name}", "Child").
		Add("{base-class-name}", "{class-name}")
	assert.Equal(t, "class Child({class-name}):", r.Apply("class {class-name}({base-class-name}):"))
	assert.Len(t, r, 2)
}

func TestTemplatePath(t *testing.T) {
	assert.Equal(t, "python/decoding/decoder_module.txt", TemplatePath("python", "decoding", "decoder_module.txt"))
}
