package schema

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/syssam/metagen"
)

// Latest is the version alias resolving to the schema flagged IsLatest.
const Latest = "latest"

var registry struct {
	sync.RWMutex
	schemas []*Ontology
}

// Register adds o to the registry. It panics if o is nil, has no name or
// version, or if the same name and version were already registered.
func Register(o *Ontology) {
	if o == nil || o.Name == "" || o.Version == "" {
		panic("schema: Register called with an unnamed or nil ontology")
	}
	registry.Lock()
	defer registry.Unlock()
	for _, s := range registry.schemas {
		if strings.EqualFold(s.Name, o.Name) && s.Version == o.Version {
			panic(fmt.Sprintf("schema: Register called twice for %s v%s", o.Name, o.Version))
		}
	}
	registry.schemas = append(registry.schemas, o)
}

// Lookup returns the registered schema matching name (case-insensitive)
// and version. The "latest" version (or an empty one) selects the schema
// flagged IsLatest, falling back to the last registered version.
func Lookup(name, version string) (*Ontology, error) {
	registry.RLock()
	defer registry.RUnlock()
	var candidates []*Ontology
	for _, s := range registry.schemas {
		if strings.EqualFold(s.Name, name) {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return nil, metagen.NewNotFoundErrorWithKey("schema", name)
	}
	if version == "" || strings.EqualFold(version, Latest) {
		for _, s := range candidates {
			if s.IsLatest {
				return s, nil
			}
		}
		return candidates[len(candidates)-1], nil
	}
	for _, s := range candidates {
		if s.Version == version {
			return s, nil
		}
	}
	return nil, metagen.NewNotFoundErrorWithKey("schema", name+" v"+version)
}

// Registered returns the registered schemas ordered by name then version.
func Registered() []*Ontology {
	registry.RLock()
	defer registry.RUnlock()
	schemas := slices.Clone(registry.schemas)
	slices.SortStableFunc(schemas, func(a, b *Ontology) int {
		return cmp.Or(
			cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)),
			cmp.Compare(a.Version, b.Version),
		)
	})
	return schemas
}
