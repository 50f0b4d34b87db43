package binding

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/soapbind-project/soapbind-go/internal/scalar"
	"github.com/soapbind-project/soapbind-go/pkg/utils"
	"github.com/soapbind-project/soapbind-go/pkg/xsd"
)

// MarshalBody renders parameter values against the bound parts into SOAP
// body child elements, in part declaration order. Parts with no entry in
// params are skipped entirely. A []any value emits one sibling element per
// entry, placed contiguously. The call either fully succeeds or returns an
// error with no partial output.
func (b *Binder) MarshalBody(parts []*BoundPart, params Params) ([]*etree.Element, error) {
	var elements []*etree.Element
	for _, bp := range parts {
		value, ok := params[bp.Part.Name]
		if !ok {
			continue
		}
		els, err := b.marshalPart(bp, value)
		if err != nil {
			return nil, err
		}
		elements = append(elements, els...)
	}
	return elements, nil
}

// marshalPart renders every occurrence of one part's value.
func (b *Binder) marshalPart(bp *BoundPart, value any) ([]*etree.Element, error) {
	m := &marshaller{
		binder:        b,
		partName:      bp.Part.Name,
		partNamespace: bp.Namespace,
		prefixes:      make(map[string]string),
	}

	var elements []*etree.Element
	for _, occ := range occurrencesOf(value) {
		el, err := m.element(bp.WireName, bp.Namespace, bp.Model, occ, bp.Part.Name)
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}

	// Namespace declarations go on the part elements, which are the roots
	// of the emitted fragments.
	for _, el := range elements {
		m.declareOn(el)
	}
	return elements, nil
}

// occurrencesOf normalises a value into its occurrence list: one entry per
// element of a []any value, a single occurrence for anything else.
func occurrencesOf(value any) []any {
	if seq, ok := value.([]any); ok {
		return seq
	}
	return []any{value}
}

// marshaller builds one part's elements, allocating namespace prefixes as
// the walk encounters qualified names.
type marshaller struct {
	binder        *Binder
	partName      string
	partNamespace string
	prefixes      map[string]string
	declared      []string // namespaces in first-use order
}

func (m *marshaller) prefixFor(namespace string) string {
	if prefix, ok := m.prefixes[namespace]; ok {
		return prefix
	}
	prefix := fmt.Sprintf("ns%d", len(m.prefixes)+1)
	if namespace == m.partNamespace {
		prefix = "tns"
	}
	m.prefixes[namespace] = prefix
	m.declared = append(m.declared, namespace)
	return prefix
}

func (m *marshaller) tag(name, namespace string) string {
	if namespace == "" {
		return name
	}
	return m.prefixFor(namespace) + ":" + name
}

func (m *marshaller) declareOn(el *etree.Element) {
	for _, namespace := range m.declared {
		el.CreateAttr("xmlns:"+m.prefixes[namespace], namespace)
	}
}

func (m *marshaller) unbound(path, reason string) *UnboundValueError {
	return &UnboundValueError{Part: m.partName, Path: path, Reason: reason}
}

// element renders a single occurrence of a value as an element.
func (m *marshaller) element(name, namespace string, model *xsd.ContentModel, value any, path string) (*etree.Element, error) {
	el := etree.NewElement(m.tag(name, namespace))

	if model == nil || model.Simple {
		return el, m.setText(el, value, path)
	}

	switch v := value.(type) {
	case nil:
		return el, nil
	case Params:
		return el, m.children(el, model, v, path)
	case map[string]any:
		return el, m.children(el, model, v, path)
	case []any:
		return nil, m.unbound(path, "sequences cannot nest directly inside sequences")
	default:
		return nil, m.unbound(path, fmt.Sprintf("scalar value of type %T supplied where nested structure was declared", value))
	}
}

// setText binds a scalar value as the element's text content.
func (m *marshaller) setText(el *etree.Element, value any, path string) error {
	switch value.(type) {
	case Params, map[string]any:
		return m.unbound(path, "nested structure supplied where text content was declared")
	case []any:
		return m.unbound(path, "sequences cannot nest directly inside sequences")
	}
	text, err := scalar.Encode(value)
	if err != nil {
		return m.unbound(path, err.Error())
	}
	if text != "" {
		el.SetText(text)
	}
	return nil
}

// children renders a structured value against the model's particles, in
// particle order. Multiplicity bounds are not checked; any occurrence count
// is emitted as given. Keys matching no particle fail the bind.
func (m *marshaller) children(parent *etree.Element, model *xsd.ContentModel, value map[string]any, path string) error {
	consumed := make(map[string]bool, len(value))
	for _, particle := range model.Particles {
		if consumed[particle.Name] {
			continue
		}
		v, ok := value[particle.Name]
		if !ok {
			continue
		}
		consumed[particle.Name] = true

		childPath := path + "." + particle.Name
		childModel := m.binder.modelOf(particle)
		for _, occ := range occurrencesOf(v) {
			child, err := m.element(particle.Name, particle.Namespace, childModel, occ, childPath)
			if err != nil {
				return err
			}
			parent.AddChild(child)
		}
	}

	for _, key := range utils.SortedKeys(value) {
		if !consumed[key] {
			return m.unbound(path+"."+key, "no such child element is declared")
		}
	}
	return nil
}
