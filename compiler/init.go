package compiler

import (
	"github.com/syssam/metagen/compiler/gen/golang"
	"github.com/syssam/metagen/compiler/gen/graphql"
	"github.com/syssam/metagen/compiler/gen/python"
)

// DefaultRegistry holds the built-in languages.
var DefaultRegistry = NewRegistry()

func init() {
	DefaultRegistry.Register(python.Language, python.Emitters, python.Templates())
	DefaultRegistry.Register(golang.Language, golang.Emitters, golang.Templates())
	DefaultRegistry.Register(graphql.Language, graphql.Emitters, graphql.Templates())

	DefaultRegistry.Alias("py", python.Language)
	DefaultRegistry.Alias("golang", golang.Language)
	DefaultRegistry.Alias("gql", graphql.Language)
}
