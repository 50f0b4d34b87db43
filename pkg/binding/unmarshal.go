package binding

import (
	"encoding/xml"
	"fmt"

	"github.com/beevik/etree"

	"github.com/soapbind-project/soapbind-go/internal/scalar"
	"github.com/soapbind-project/soapbind-go/pkg/xsd"
)

// UnmarshalBody decodes SOAP body child elements against the bound parts,
// returning values keyed by part name. Elements are matched to parts by a
// forward scan over the declared order; consecutive elements sharing a name
// form a single repeated value. An element matching no remaining part fails
// the whole call; nothing partial is returned.
func (b *Binder) UnmarshalBody(parts []*BoundPart, body []*etree.Element) (Params, error) {
	result := make(Params)
	cursor := 0

	i := 0
	for i < len(body) {
		run := runAt(body, i)
		i += len(run)

		match := -1
		for j := cursor; j < len(parts); j++ {
			if parts[j].WireName == run[0].Tag {
				match = j
				break
			}
		}
		if match == -1 {
			return nil, &UnexpectedElementError{
				Name:     elementName(run[0]),
				Expected: remainingWireNames(parts, cursor),
			}
		}
		bp := parts[match]
		cursor = match + 1

		value, err := b.unmarshalRun(run, bp.Model, false)
		if err != nil {
			return nil, err
		}
		result[bp.Part.Name] = value
	}
	return result, nil
}

// runAt returns the contiguous run of same-named siblings starting at i.
func runAt(elements []*etree.Element, i int) []*etree.Element {
	end := i + 1
	for end < len(elements) && elements[end].Tag == elements[i].Tag {
		end++
	}
	return elements[i:end]
}

func elementName(el *etree.Element) xml.Name {
	return xml.Name{Space: el.NamespaceURI(), Local: el.Tag}
}

func remainingWireNames(parts []*BoundPart, cursor int) []string {
	names := make([]string, 0, len(parts)-cursor)
	for _, bp := range parts[cursor:] {
		names = append(names, bp.WireName)
	}
	return names
}

// unmarshalRun decodes a run of sibling elements: a single value for a run
// of one, a []any for a repeated group. forceList keeps the sequence shape
// for single occurrences of particles declared repeatable.
func (b *Binder) unmarshalRun(run []*etree.Element, model *xsd.ContentModel, forceList bool) (any, error) {
	if len(run) == 1 && !forceList {
		return b.value(run[0], model)
	}
	values := make([]any, 0, len(run))
	for _, el := range run {
		v, err := b.value(el, model)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// value decodes one element occurrence against its content model.
func (b *Binder) value(el *etree.Element, model *xsd.ContentModel) (any, error) {
	if model == nil || model.Simple {
		kind := xsd.KindString
		if model != nil && model.Base != (xml.Name{}) {
			kind = b.schema.ScalarKind(model.Base)
		}
		v, err := scalar.Decode(el.Text(), kind)
		if err != nil {
			return nil, fmt.Errorf("failed to decode element %q: %w", el.Tag, err)
		}
		return v, nil
	}
	return b.structure(el, model)
}

// structure decodes an element's children against the model's particles.
// Matching scans forward, mirroring the marshaller's ordering; particles
// under an all group are order-free, so unconsumed ones behind the cursor
// stay eligible. Multiplicity bounds are never enforced; a particle declared
// repeatable decodes to a sequence even for a single occurrence, so value
// shapes are stable across occurrence counts.
func (b *Binder) structure(el *etree.Element, model *xsd.ContentModel) (map[string]any, error) {
	children := el.ChildElements()
	result := make(map[string]any)
	consumed := make([]bool, len(model.Particles))
	cursor := 0

	i := 0
	for i < len(children) {
		run := runAt(children, i)
		i += len(run)

		match := matchParticle(model.Particles, consumed, cursor, run[0].Tag)
		if match == -1 {
			return nil, &UnexpectedElementError{
				Name:     elementName(run[0]),
				Expected: remainingParticleNames(model.Particles, consumed),
			}
		}
		consumed[match] = true
		if match >= cursor {
			cursor = match + 1
		}

		particle := model.Particles[match]
		value, err := b.unmarshalRun(run, b.modelOf(particle), particle.Repeatable())
		if err != nil {
			return nil, err
		}

		if existing, ok := result[particle.Name]; ok {
			// Same-named particles at different positions share one key;
			// later groups follow earlier ones.
			result[particle.Name] = append(occurrencesOf(existing), occurrencesOf(value)...)
		} else {
			result[particle.Name] = value
		}
	}
	return result, nil
}

// matchParticle finds the particle a child run binds to: the first
// unconsumed particle at or after the cursor with the run's name, falling
// back to unconsumed all-group particles behind the cursor.
func matchParticle(particles []xsd.Particle, consumed []bool, cursor int, name string) int {
	for j := cursor; j < len(particles); j++ {
		if !consumed[j] && particles[j].Name == name {
			return j
		}
	}
	for j := 0; j < cursor && j < len(particles); j++ {
		if !consumed[j] && particles[j].Compositor == xsd.All && particles[j].Name == name {
			return j
		}
	}
	return -1
}

func remainingParticleNames(particles []xsd.Particle, consumed []bool) []string {
	var names []string
	for j, p := range particles {
		if !consumed[j] {
			names = append(names, p.Name)
		}
	}
	return names
}
