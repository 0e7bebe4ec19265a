package gen

import (
	"errors"
	"io/fs"
	"os"
	"os/user"
	"path"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// TemplateSource reads raw template text by path.
type TemplateSource interface {
	ReadTemplate(path string) ([]byte, error)
}

// TemplateSourceFunc adapts a function to a TemplateSource.
type TemplateSourceFunc func(path string) ([]byte, error)

// ReadTemplate implements TemplateSource.
func (f TemplateSourceFunc) ReadTemplate(path string) ([]byte, error) {
	return f(path)
}

// FSSource reads templates from a file system.
type FSSource struct {
	FS fs.FS
}

// ReadTemplate implements TemplateSource.
func (s FSSource) ReadTemplate(p string) ([]byte, error) {
	b, err := fs.ReadFile(s.FS, p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, NewTemplateError(p, nil)
	}
	if err != nil {
		return nil, NewTemplateError(p, err)
	}
	return b, nil
}

// TemplatePath returns the path of a template: <language>/<emitter>/<name>.
func TemplatePath(language, key, name string) string {
	return path.Join(language, key, name)
}

// Templates loads templates from a source and caches their raw text by
// path. It is safe for concurrent use; concurrent first loads of a path
// read the source once.
type Templates struct {
	src   TemplateSource
	mu    sync.RWMutex
	cache map[string]string
	// declared holds the placeholders found in the loaded templates.
	declared map[string]struct{}
	group    singleflight.Group
}

// NewTemplates returns an empty cache over src.
func NewTemplates(src TemplateSource) *Templates {
	return &Templates{src: src, cache: make(map[string]string), declared: make(map[string]struct{})}
}

// Raw returns the unsubstituted text of the template at path.
func (t *Templates) Raw(p string) (string, error) {
	t.mu.RLock()
	text, ok := t.cache[p]
	t.mu.RUnlock()
	if ok {
		return text, nil
	}
	v, err, _ := t.group.Do(p, func() (any, error) {
		t.mu.RLock()
		text, ok := t.cache[p]
		t.mu.RUnlock()
		if ok {
			return text, nil
		}
		b, err := t.src.ReadTemplate(p)
		if err != nil {
			if IsTemplateError(err) {
				return nil, err
			}
			return nil, NewTemplateError(p, err)
		}
		text = string(b)
		t.mu.Lock()
		t.cache[p] = text
		for _, m := range placeholder.FindAllString(text, -1) {
			t.declared[m] = struct{}{}
		}
		t.mu.Unlock()
		return text, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Load returns the named template of the emitter running in ctx with the
// standard placeholders substituted.
func (t *Templates) Load(ctx *Context, name string) (string, error) {
	text, err := t.Raw(TemplatePath(ctx.Language, ctx.Key, name))
	if err != nil {
		return "", err
	}
	return StandardParams(ctx).Apply(text), nil
}

// Declares reports whether one of the loaded templates contains the
// placeholder p.
func (t *Templates) Declares(p string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.declared[p]
	return ok
}

// Len returns the number of cached templates.
func (t *Templates) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.cache)
}

// Replacement is a placeholder and its value.
type Replacement struct {
	Placeholder string
	Value       string
}

// Replacements is an ordered list of placeholder substitutions applied in
// a single pass. Substituted values are not scanned again.
type Replacements []Replacement

// Add returns r with the substitution appended.
func (r Replacements) Add(placeholder, value string) Replacements {
	return append(r, Replacement{Placeholder: placeholder, Value: value})
}

// Apply substitutes every placeholder of r in s.
func (r Replacements) Apply(s string) string {
	if len(r) == 0 {
		return s
	}
	pairs := make([]string, 0, 2*len(r))
	for _, rep := range r {
		pairs = append(pairs, rep.Placeholder, rep.Value)
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

// Standard placeholders filled in every template.
const (
	ParamOntologyName        = "{ontology-name}"
	ParamOntologyVersion     = "{ontology-version}"
	ParamOntologyVersionName = "{ontology-version-packagename}"
	ParamDatetimeNow         = "{datetime-now}"
	ParamDatetimeYear        = "{datetime-year}"
	ParamUserName            = "{user-name}"
	ParamGenerationID        = "{generation-id}"
	// ParamFileName is filled by the sink at write time.
	ParamFileName = "{file-name}"
)

// StandardParams returns the standard substitutions for ctx.
func StandardParams(ctx *Context) Replacements {
	var r Replacements
	if o := ctx.Ontology; o != nil {
		r = r.Add(ParamOntologyName, o.Name).
			Add(ParamOntologyVersion, o.Version).
			Add(ParamOntologyVersionName, VersionName(o.Version))
	}
	return r.Add(ParamDatetimeNow, ctx.Now.Format("2006-01-02 15:04:05.000000")).
		Add(ParamDatetimeYear, strconv.Itoa(ctx.Now.Year())).
		Add(ParamUserName, userName(ctx.User)).
		Add(ParamGenerationID, ctx.RunID)
}

func userName(name string) string {
	if name != "" {
		return name
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	for _, env := range []string{"USER", "USERNAME"} {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return "unknown"
}
