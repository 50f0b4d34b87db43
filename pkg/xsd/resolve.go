package xsd

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/antchfx/xmlquery"
	"github.com/dlclark/regexp2"

	"github.com/soapbind-project/soapbind-go/pkg/logger"
)

// ResolveContentModel resolves a global type definition to its content model
func (s *SchemaSet) ResolveContentModel(decl *TypeDecl) (*ContentModel, error) {
	return newResolveCtx(s).typeModel(decl)
}

// ElementContentModel resolves a global element declaration's type to its
// content model
func (s *SchemaSet) ElementContentModel(decl *ElementDecl) (*ContentModel, error) {
	return newResolveCtx(s).elementModel(decl)
}

// ModelFor resolves a type reference to its content model. References to
// builtin datatypes resolve to simple models without a schema lookup.
func (s *SchemaSet) ModelFor(ref xml.Name) (*ContentModel, error) {
	return newResolveCtx(s).modelFor(ref)
}

// ScalarKind classifies a type reference for value encoding, following named
// simple type restrictions down to their builtin base. Unknown or complex
// references classify as strings.
func (s *SchemaSet) ScalarKind(ref xml.Name) ScalarKind {
	for depth := 0; depth < 16; depth++ {
		if kind, ok := BuiltinKind(ref); ok {
			return kind
		}
		decl := s.LookupType(ref)
		if decl == nil || !decl.Simple {
			return KindString
		}
		r := s.restrictionOf(decl)
		if r == nil || r.Base == (xml.Name{}) {
			return KindString
		}
		ref = r.Base
	}
	return KindString
}

// Facets returns the restriction facets of a named simple type, or nil when
// the reference is not a simple type restriction
func (s *SchemaSet) Facets(ref xml.Name) *Restriction {
	decl := s.LookupType(ref)
	if decl == nil || !decl.Simple {
		return nil
	}
	return s.restrictionOf(decl)
}

// resolveCtx tracks in-flight resolutions to stop circular references
type resolveCtx struct {
	s        *SchemaSet
	visiting map[string]bool
}

func newResolveCtx(s *SchemaSet) *resolveCtx {
	return &resolveCtx{s: s, visiting: make(map[string]bool)}
}

func visitKey(kind string, name xml.Name) string {
	return kind + "|" + name.Space + "|" + name.Local
}

func (c *resolveCtx) modelFor(ref xml.Name) (*ContentModel, error) {
	if IsBuiltin(ref) {
		return &ContentModel{Simple: true, Base: ref}, nil
	}
	decl := c.s.LookupType(ref)
	if decl == nil {
		return nil, fmt.Errorf("type {%s}%s not found", ref.Space, ref.Local)
	}
	return c.typeModel(decl)
}

func (c *resolveCtx) typeModel(decl *TypeDecl) (*ContentModel, error) {
	key := visitKey("type", decl.Name)
	if c.visiting[key] {
		return nil, fmt.Errorf("circular type reference: {%s}%s", decl.Name.Space, decl.Name.Local)
	}
	c.visiting[key] = true
	defer delete(c.visiting, key)

	if decl.Simple {
		return c.simpleModel(decl.node), nil
	}
	return c.complexModel(decl.node, decl.schema)
}

func (c *resolveCtx) elementModel(decl *ElementDecl) (*ContentModel, error) {
	if decl.Type == (xml.Name{}) {
		// inline anonymous type, or no type information at all
		if ct := childByLocalName(decl.node, "complexType"); ct != nil {
			return c.complexModel(ct, decl.schema)
		}
		if st := childByLocalName(decl.node, "simpleType"); st != nil {
			return c.simpleModel(st), nil
		}
		return &ContentModel{Simple: true, Base: xml.Name{Space: Namespace, Local: "anyType"}}, nil
	}
	return c.modelFor(decl.Type)
}

// complexModel resolves a complexType node to a content model, following
// complexContent extension and restriction
func (c *resolveCtx) complexModel(ctNode *xmlquery.Node, schema *Schema) (*ContentModel, error) {
	if sc := childByLocalName(ctNode, "simpleContent"); sc != nil {
		der := childByLocalName(sc, "extension")
		if der == nil {
			der = childByLocalName(sc, "restriction")
		}
		if der == nil {
			return nil, fmt.Errorf("simpleContent without extension or restriction")
		}
		base := ResolveQName(der, der.SelectAttr("base"))
		return &ContentModel{Simple: true, Base: base}, nil
	}

	if cc := childByLocalName(ctNode, "complexContent"); cc != nil {
		if ext := childByLocalName(cc, "extension"); ext != nil {
			baseRef := ResolveQName(ext, ext.SelectAttr("base"))
			baseModel, err := c.modelFor(baseRef)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve extension base: %w", err)
			}
			model := &ContentModel{Base: baseRef}
			model.Particles = append(model.Particles, baseModel.Particles...)
			if comp, compNode := firstCompositor(ext); compNode != nil {
				own, err := c.particles(compNode, comp, schema)
				if err != nil {
					return nil, err
				}
				model.Particles = append(model.Particles, own...)
			}
			return model, nil
		}
		if res := childByLocalName(cc, "restriction"); res != nil {
			baseRef := ResolveQName(res, res.SelectAttr("base"))
			model := &ContentModel{Base: baseRef}
			if comp, compNode := firstCompositor(res); compNode != nil {
				own, err := c.particles(compNode, comp, schema)
				if err != nil {
					return nil, err
				}
				model.Particles = own
			}
			return model, nil
		}
		return nil, fmt.Errorf("complexContent without extension or restriction")
	}

	if comp, compNode := firstCompositor(ctNode); compNode != nil {
		parts, err := c.particles(compNode, comp, schema)
		if err != nil {
			return nil, err
		}
		return &ContentModel{Particles: parts}, nil
	}

	// empty content
	return &ContentModel{}, nil
}

// particles walks a compositor node, flattening nested compositors in
// document order
func (c *resolveCtx) particles(compNode *xmlquery.Node, comp Compositor, schema *Schema) ([]Particle, error) {
	var parts []Particle
	for child := compNode.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode {
			continue
		}
		switch child.Data {
		case "element":
			p, err := c.particleFromElement(child, comp, schema)
			if err != nil {
				return nil, err
			}
			parts = append(parts, p)
		case "sequence":
			nested, err := c.particles(child, Sequence, schema)
			if err != nil {
				return nil, err
			}
			parts = append(parts, nested...)
		case "all":
			nested, err := c.particles(child, All, schema)
			if err != nil {
				return nil, err
			}
			parts = append(parts, nested...)
		case "choice":
			nested, err := c.particles(child, Choice, schema)
			if err != nil {
				return nil, err
			}
			parts = append(parts, nested...)
		case "group", "any":
			logger.Tracef("skipping unsupported particle: %s", child.Data)
		}
	}
	return parts, nil
}

func (c *resolveCtx) particleFromElement(el *xmlquery.Node, comp Compositor, schema *Schema) (Particle, error) {
	p := Particle{Compositor: comp}

	var err error
	p.MinOccurs, err = parseOccurs(el.SelectAttr("minOccurs"), 1)
	if err != nil {
		return p, fmt.Errorf("invalid minOccurs: %w", err)
	}
	p.MaxOccurs, err = parseOccurs(el.SelectAttr("maxOccurs"), 1)
	if err != nil {
		return p, fmt.Errorf("invalid maxOccurs: %w", err)
	}

	if ref := el.SelectAttr("ref"); ref != "" {
		refName := ResolveQName(el, ref)
		key := visitKey("element", refName)
		if c.visiting[key] {
			return p, fmt.Errorf("circular element reference: {%s}%s", refName.Space, refName.Local)
		}
		refDecl := c.s.LookupElement(refName)
		if refDecl == nil {
			return p, fmt.Errorf("element {%s}%s not found", refName.Space, refName.Local)
		}
		// global element declarations are always namespace-qualified
		p.Name = refDecl.Name.Local
		p.Namespace = refDecl.Name.Space
		if refDecl.Type != (xml.Name{}) {
			p.Type = refDecl.Type
		} else {
			c.visiting[key] = true
			inline, err := c.elementModel(refDecl)
			delete(c.visiting, key)
			if err != nil {
				return p, err
			}
			p.Inline = inline
		}
		return p, nil
	}

	name := el.SelectAttr("name")
	if name == "" {
		return p, fmt.Errorf("element declaration missing name and ref")
	}
	p.Name = name
	if schema.Qualified {
		p.Namespace = schema.TargetNamespace
	}

	if typeRef := el.SelectAttr("type"); typeRef != "" {
		p.Type = ResolveQName(el, typeRef)
		return p, nil
	}
	if ct := childByLocalName(el, "complexType"); ct != nil {
		inline, err := c.complexModel(ct, schema)
		if err != nil {
			return p, err
		}
		p.Inline = inline
		return p, nil
	}
	if st := childByLocalName(el, "simpleType"); st != nil {
		p.Inline = c.simpleModel(st)
		return p, nil
	}
	// no type information: treat as anyType
	p.Inline = &ContentModel{Simple: true, Base: xml.Name{Space: Namespace, Local: "anyType"}}
	return p, nil
}

// simpleModel resolves a simpleType node to its base classification
func (c *resolveCtx) simpleModel(stNode *xmlquery.Node) *ContentModel {
	if res := childByLocalName(stNode, "restriction"); res != nil {
		if base := res.SelectAttr("base"); base != "" {
			return &ContentModel{Simple: true, Base: ResolveQName(res, base)}
		}
	}
	// list, union or missing base
	return &ContentModel{Simple: true, Base: xml.Name{Space: Namespace, Local: "anySimpleType"}}
}

// restrictionOf extracts the restriction facets of a simple type declaration
func (s *SchemaSet) restrictionOf(decl *TypeDecl) *Restriction {
	res := childByLocalName(decl.node, "restriction")
	if res == nil {
		return nil
	}
	r := &Restriction{}
	if base := res.SelectAttr("base"); base != "" {
		r.Base = ResolveQName(res, base)
	}
	for _, enum := range xmlquery.Find(res, "./*[local-name()='enumeration']") {
		r.Enum = append(r.Enum, enum.SelectAttr("value"))
	}
	if pattern := xmlquery.FindOne(res, "./*[local-name()='pattern']"); pattern != nil {
		r.Pattern = pattern.SelectAttr("value")
		compiled, err := regexp2.Compile(r.Pattern, regexp2.None)
		if err != nil {
			logger.Warnf("failed to compile pattern facet %q: %v", r.Pattern, err)
		} else {
			r.Compiled = compiled
		}
	}
	return r
}

// parseOccurs parses a minOccurs or maxOccurs attribute value
func parseOccurs(val string, def int) (int, error) {
	if val == "" {
		return def, nil
	}
	if val == "unbounded" {
		return UnboundedOccurs, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid occurs value %q: %w", val, err)
	}
	return n, nil
}

// childByLocalName returns the first child element with the given local name
func childByLocalName(node *xmlquery.Node, name string) *xmlquery.Node {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode && child.Data == name {
			return child
		}
	}
	return nil
}

// firstCompositor returns the first compositor child of a node
func firstCompositor(node *xmlquery.Node) (Compositor, *xmlquery.Node) {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode {
			continue
		}
		switch child.Data {
		case "sequence":
			return Sequence, child
		case "all":
			return All, child
		case "choice":
			return Choice, child
		}
	}
	return Sequence, nil
}
