package golang

import "github.com/syssam/metagen/compiler/gen"

// importGraph holds the package dependencies the generated code may
// use. Edges are added in a fixed order, base classes first, and an edge
// closing a cycle is refused.
type importGraph struct {
	edges map[string]map[string]bool
}

func newImportGraph(o *gen.Ontology) *importGraph {
	g := &importGraph{edges: make(map[string]map[string]bool)}
	for _, cls := range o.Classes {
		if cls.Base != nil {
			g.add(cls.Package.Name, cls.Base.Package.Name)
		}
	}
	for _, cls := range o.Classes {
		for _, imports := range [][]gen.Import{cls.Imports, cls.CircularImports} {
			for _, imp := range imports {
				g.add(cls.Package.Name, imp.Package)
			}
		}
	}
	return g
}

// add records that from imports to, unless to already reaches from.
func (g *importGraph) add(from, to string) {
	if from == to || g.edges[from][to] || g.reaches(to, from) {
		return
	}
	if g.edges[from] == nil {
		g.edges[from] = make(map[string]bool)
	}
	g.edges[from][to] = true
}

// allows reports whether code of package from may import package to.
func (g *importGraph) allows(from, to string) bool {
	return from == to || g.edges[from][to]
}

func (g *importGraph) reaches(from, to string) bool {
	seen := map[string]bool{from: true}
	stack := []string{from}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == to {
			return true
		}
		for next := range g.edges[n] {
			if !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}
