// Package xsd provides an in-memory schema model over parsed XML Schema
// documents. Schemas are held as parsed XML trees and queried by qualified
// name for global element and type declarations, which resolve to content
// models describing their child particle structure.
//
// Multiplicity bounds (minOccurs/maxOccurs) and compositor exclusivity are
// parsed and carried on particles for diagnostics and sample generation, but
// are never enforced by this package or its consumers.
package xsd

import (
	"encoding/xml"

	"github.com/dlclark/regexp2"
)

// Compositor is the XSD grouping construct governing child particles
type Compositor int

const (
	Sequence Compositor = iota
	All
	Choice
)

func (c Compositor) String() string {
	switch c {
	case All:
		return "all"
	case Choice:
		return "choice"
	default:
		return "sequence"
	}
}

// UnboundedOccurs is the parsed value of maxOccurs="unbounded"
const UnboundedOccurs = -1

// ContentModel describes the content of a type: either simple (text only,
// classified by Base) or complex (an ordered list of child particles).
type ContentModel struct {
	// Simple is true for simple types and simple content; the text value is
	// classified by Base
	Simple bool

	// Base is the base type reference for simple content, or the extended
	// base for complex content derived by extension
	Base xml.Name

	// Particles is the ordered child element structure for complex content
	Particles []Particle
}

// Particle is a single child-element position within a content model
type Particle struct {
	// Name is the child element's local name
	Name string

	// Namespace is the namespace the child element is declared in, when the
	// declaring schema uses qualified element form
	Namespace string

	// Type references the child's declared type; zero for inline anonymous
	// types
	Type xml.Name

	// Inline is the resolved model of an inline anonymous type, nil when the
	// child references a named type
	Inline *ContentModel

	// MinOccurs and MaxOccurs carry the declared multiplicity bounds.
	// MaxOccurs is UnboundedOccurs for maxOccurs="unbounded". Informational
	// only; never enforced.
	MinOccurs int
	MaxOccurs int

	// Compositor is the grouping construct the particle appears under
	Compositor Compositor
}

// Repeatable reports whether the particle declares room for more than one
// occurrence. Informational; consumers accept any count regardless.
func (p Particle) Repeatable() bool {
	return p.MaxOccurs == UnboundedOccurs || p.MaxOccurs > 1
}

// Restriction carries the facets of a simple type restriction. Facets are
// metadata for diagnostics and sample generation, not validation.
type Restriction struct {
	Base    xml.Name
	Enum    []string
	Pattern string

	// Compiled is the pattern compiled as a regexp2 expression, nil when no
	// pattern facet is declared or the pattern does not compile
	Compiled *regexp2.Regexp
}
