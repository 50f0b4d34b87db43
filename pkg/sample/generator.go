// Package sample generates example parameter values from schema
// declarations, for previewing operations and scaffolding tests.
package sample

import (
	"encoding/xml"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/soapbind-project/soapbind-go/pkg/binding"
	"github.com/soapbind-project/soapbind-go/pkg/logger"
	"github.com/soapbind-project/soapbind-go/pkg/xsd"
)

// maxDepth bounds recursion into nested complex types
const maxDepth = 8

// Generator produces example parameter values. Enumeration and pattern
// facets guide generation; everything else falls back to kind-based fakes.
type Generator struct {
	schemas *xsd.SchemaSet
	faker   *gofakeit.Faker
}

// NewGenerator returns a generator over the given schemas, randomly seeded
func NewGenerator(schemas *xsd.SchemaSet) *Generator {
	return &Generator{
		schemas: schemas,
		faker:   gofakeit.New(0),
	}
}

// SetSeed reseeds the generator so output is reproducible
func (g *Generator) SetSeed(seed uint64) {
	g.faker = gofakeit.New(seed)
}

// PartParams generates a parameter mapping covering every bound part
func (g *Generator) PartParams(parts []*binding.BoundPart) binding.Params {
	params := make(binding.Params, len(parts))
	for _, bp := range parts {
		params[bp.Part.Name] = g.modelValue(bp.Model, 0)
	}
	return params
}

func (g *Generator) modelValue(model *xsd.ContentModel, depth int) any {
	if depth > maxDepth {
		return nil
	}
	if model == nil || model.Simple {
		var base xml.Name
		if model != nil {
			base = model.Base
		}
		return g.scalarValue(base)
	}

	value := make(map[string]any, len(model.Particles))
	for _, particle := range model.Particles {
		if _, ok := value[particle.Name]; ok {
			continue
		}
		if particle.Repeatable() {
			value[particle.Name] = []any{
				g.particleValue(particle, depth),
				g.particleValue(particle, depth),
			}
		} else {
			value[particle.Name] = g.particleValue(particle, depth)
		}
	}
	return value
}

func (g *Generator) particleValue(particle xsd.Particle, depth int) any {
	if particle.Inline != nil {
		return g.modelValue(particle.Inline, depth+1)
	}
	if particle.Type == (xml.Name{}) {
		return g.faker.Word()
	}

	model, err := g.schemas.ModelFor(particle.Type)
	if err != nil {
		logger.Debugf("no model for type {%s}%s, generating text: %v", particle.Type.Space, particle.Type.Local, err)
		return g.faker.Word()
	}
	if model.Simple {
		// generate from the named reference so restriction facets apply
		return g.scalarValue(particle.Type)
	}
	return g.modelValue(model, depth+1)
}

func (g *Generator) scalarValue(ref xml.Name) any {
	if facets := g.schemas.Facets(ref); facets != nil {
		if len(facets.Enum) > 0 {
			return g.faker.RandomString(facets.Enum)
		}
		if facets.Compiled != nil {
			candidate := g.faker.Regex(facets.Pattern)
			if ok, _ := facets.Compiled.MatchString(candidate); ok {
				return candidate
			}
			logger.Debugf("generated value %q does not match pattern %q, falling back", candidate, facets.Pattern)
		}
	}

	switch g.schemas.ScalarKind(ref) {
	case xsd.KindInteger:
		return int64(g.faker.Number(1, 1000))
	case xsd.KindDecimal:
		return g.faker.Float64Range(1, 100)
	case xsd.KindBoolean:
		return g.faker.Bool()
	case xsd.KindDate:
		return g.faker.Date().UTC().Format("2006-01-02")
	case xsd.KindTime:
		return g.faker.Date().UTC().Format("15:04:05")
	case xsd.KindDateTime:
		return g.faker.Date().UTC().Format(time.RFC3339)
	case xsd.KindBase64:
		return []byte(g.faker.Word())
	default:
		return g.faker.Word()
	}
}
