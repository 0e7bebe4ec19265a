package field

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Simple type names.
const (
	TypeBool     = "bool"
	TypeDate     = "date"
	TypeDatetime = "datetime"
	TypeFloat    = "float"
	TypeInt      = "int"
	TypeStr      = "str"
	TypeURI      = "uri"
	TypeUUID     = "uuid"
)

var simpleTypes = []string{
	TypeBool,
	TypeDate,
	TypeDatetime,
	TypeFloat,
	TypeInt,
	TypeStr,
	TypeURI,
	TypeUUID,
}

// IsSimpleType reports whether name is one of the simple type names.
func IsSimpleType(name string) bool {
	return slices.Contains(simpleTypes, name)
}

// SimpleTypes returns the simple type names in ascending order.
func SimpleTypes() []string {
	return slices.Clone(simpleTypes)
}

// IsComplexType reports whether name has the "package.name" shape of a
// class or enum reference.
func IsComplexType(name string) bool {
	pkg, typ, ok := strings.Cut(name, ".")
	return ok && pkg != "" && typ != "" && !strings.Contains(typ, ".")
}

// Occurrence bounds.
const (
	MinOptional = "0"
	MinRequired = "1"
	MaxOne      = "1"
	MaxMany     = "N"
)

// ErrInvalidCardinality is returned for cardinality strings outside
// {0,1} x {1,N}.
var ErrInvalidCardinality = errors.New("invalid cardinality")

// Cardinality is the min/max occurrence constraint of a property.
type Cardinality struct {
	Min string
	Max string
}

// ParseCardinality parses a "min.max" cardinality string.
func ParseCardinality(s string) (Cardinality, error) {
	minOcc, maxOcc, ok := strings.Cut(s, ".")
	if !ok {
		return Cardinality{}, fmt.Errorf("%w %q: expected min.max", ErrInvalidCardinality, s)
	}
	if minOcc != MinOptional && minOcc != MinRequired {
		return Cardinality{}, fmt.Errorf("%w %q: min must be 0 or 1", ErrInvalidCardinality, s)
	}
	if maxOcc != MaxOne && maxOcc != MaxMany {
		return Cardinality{}, fmt.Errorf("%w %q: max must be 1 or N", ErrInvalidCardinality, s)
	}
	return Cardinality{Min: minOcc, Max: maxOcc}, nil
}

// MustParseCardinality is like ParseCardinality but panics on error.
func MustParseCardinality(s string) Cardinality {
	c, err := ParseCardinality(s)
	if err != nil {
		panic(err)
	}
	return c
}

// IsRequired reports whether the property must occur at least once.
func (c Cardinality) IsRequired() bool {
	return c.Min != MinOptional
}

// IsIterative reports whether the property may occur more than once.
func (c Cardinality) IsIterative() bool {
	return c.Max == MaxMany
}

// String returns the "min.max" form.
func (c Cardinality) String() string {
	return c.Min + "." + c.Max
}
