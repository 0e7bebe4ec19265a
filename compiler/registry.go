package compiler

import (
	"io/fs"
	"slices"
	"strings"
	"sync"

	"github.com/syssam/metagen/compiler/gen"
)

// Language is a registered target language.
type Language struct {
	Name string
	// Emitters returns a new emitter set, in run order. It is called once
	// per generation run.
	Emitters func() []gen.NamedEmitter
	// Templates caches the default templates of the language.
	Templates *gen.Templates
}

// Registry manages the available target languages.
type Registry struct {
	mu        sync.RWMutex
	languages map[string]*Language
	aliases   map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		languages: make(map[string]*Language),
		aliases:   make(map[string]string),
	}
}

// Register adds a language, its emitter factory and its default
// templates. A language registered twice replaces the first one.
func (r *Registry) Register(name string, emitters func() []gen.NamedEmitter, templates fs.FS) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.languages[name] = &Language{
		Name:      name,
		Emitters:  emitters,
		Templates: gen.NewTemplates(gen.FSSource{FS: templates}),
	}
}

// Alias makes alias select the language name.
func (r *Registry) Alias(alias, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = name
}

// Get returns the language with the given name or alias.
func (r *Registry) Get(name string) (*Language, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key := strings.ToLower(name)
	if target, ok := r.aliases[key]; ok {
		key = target
	}
	l, ok := r.languages[key]
	if !ok {
		return nil, gen.NewConfigError("Language", name, "unsupported language, expected one of "+strings.Join(r.names(), ", "))
	}
	return l, nil
}

// Languages returns the registered language names in ascending order.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.names()
}

func (r *Registry) names() []string {
	names := make([]string, 0, len(r.languages))
	for name := range r.languages {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
