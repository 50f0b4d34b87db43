// Package binding maps WSDL message parts to SOAP body XML and back.
//
// A Binder resolves each message part against the schema model to a wire
// name and content model, renders caller-supplied parameter values into body
// elements, and decodes reply bodies back into values. Multiplicity bounds
// and compositor exclusivity declared by the schema are never enforced;
// repeated values are laid out as contiguous sibling elements.
package binding

import (
	"encoding/xml"
	"sync"

	"github.com/soapbind-project/soapbind-go/pkg/logger"
	"github.com/soapbind-project/soapbind-go/pkg/wsdlmsg"
	"github.com/soapbind-project/soapbind-go/pkg/xsd"
)

// SchemaModel is the view of the schema layer the binder consumes. It is
// satisfied by xsd.SchemaSet.
type SchemaModel interface {
	LookupElement(ref xml.Name) *xsd.ElementDecl
	LookupType(ref xml.Name) *xsd.TypeDecl
	ElementContentModel(decl *xsd.ElementDecl) (*xsd.ContentModel, error)
	ResolveContentModel(decl *xsd.TypeDecl) (*xsd.ContentModel, error)
	ModelFor(ref xml.Name) (*xsd.ContentModel, error)
	ScalarKind(ref xml.Name) xsd.ScalarKind
}

// Params holds parameter values keyed by part name at the top level and by
// child element name within nested values. Values are scalars, []any for
// repeated occurrences, or map[string]any for nested structures.
type Params map[string]any

// BoundPart is a resolved message part: the wire name its XML payload
// carries, the namespace the wire element lives in, and the content model
// the payload follows. Immutable once resolved.
type BoundPart struct {
	Part      wsdlmsg.MessagePart
	WireName  string
	Namespace string

	// Type is the declared type reference behind the part; zero for
	// elements with inline anonymous types
	Type xml.Name

	Model *xsd.ContentModel
}

// Binder resolves message parts and converts parameter values to and from
// SOAP body elements. Resolutions are cached; a Binder is safe for
// concurrent use.
type Binder struct {
	schema SchemaModel

	mu    sync.RWMutex
	cache map[cacheKey]*BoundPart
}

type cacheKey struct {
	kind wsdlmsg.PartKind
	ref  xml.Name
	name string
}

// NewBinder returns a binder resolving against the given schema model
func NewBinder(schema SchemaModel) *Binder {
	return &Binder{
		schema: schema,
		cache:  make(map[cacheKey]*BoundPart),
	}
}

// modelOf resolves a particle's content model. Unresolvable type references
// degrade to text content rather than failing the walk.
func (b *Binder) modelOf(particle xsd.Particle) *xsd.ContentModel {
	if particle.Inline != nil {
		return particle.Inline
	}
	model, err := b.schema.ModelFor(particle.Type)
	if err != nil {
		logger.Debugf("treating unresolvable type {%s}%s as text content: %v", particle.Type.Space, particle.Type.Local, err)
		return &xsd.ContentModel{Simple: true}
	}
	return model
}
