package binding

import (
	"fmt"

	"github.com/soapbind-project/soapbind-go/pkg/logger"
	"github.com/soapbind-project/soapbind-go/pkg/wsdlmsg"
	"github.com/soapbind-project/soapbind-go/pkg/xsd"
)

// Resolve resolves a message part to its bound form. Element parts take the
// declared element's name on the wire; type parts take the part's own name,
// wrapping the referenced type in a synthesized element.
//
// WSDL 1.1 restricts a type part to be the only part in its message and
// forbids the synthesized wrapper. Deployed tooling does not; this resolver
// deliberately follows the tooling, and permits any mix of element and type
// parts.
//
// Only successful resolutions are cached.
func (b *Binder) Resolve(part wsdlmsg.MessagePart) (*BoundPart, error) {
	key := cacheKey{kind: part.Kind, ref: part.Ref, name: part.Name}

	b.mu.RLock()
	bound, ok := b.cache[key]
	b.mu.RUnlock()
	if ok {
		return bound, nil
	}

	bound, err := b.resolve(part)
	if err != nil {
		return nil, err
	}
	logger.Tracef("resolved %s to wire name %q", part, bound.WireName)

	b.mu.Lock()
	b.cache[key] = bound
	b.mu.Unlock()
	return bound, nil
}

func (b *Binder) resolve(part wsdlmsg.MessagePart) (*BoundPart, error) {
	switch part.Kind {
	case wsdlmsg.ElementPart:
		decl := b.schema.LookupElement(part.Ref)
		if decl == nil {
			return nil, &UnresolvedReferenceError{Part: part}
		}
		model, err := b.schema.ElementContentModel(decl)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve content of element {%s}%s: %w", decl.Name.Space, decl.Name.Local, err)
		}
		return &BoundPart{
			Part:      part,
			WireName:  decl.Name.Local,
			Namespace: decl.Name.Space,
			Type:      decl.Type,
			Model:     model,
		}, nil

	case wsdlmsg.TypePart:
		// Builtin type references need no schema lookup; the synthesized
		// wrapper carries the builtin as text content.
		if xsd.IsBuiltin(part.Ref) {
			return &BoundPart{
				Part:     part,
				WireName: part.Name,
				Type:     part.Ref,
				Model:    &xsd.ContentModel{Simple: true, Base: part.Ref},
			}, nil
		}
		decl := b.schema.LookupType(part.Ref)
		if decl == nil {
			return nil, &UnresolvedReferenceError{Part: part}
		}
		model, err := b.schema.ResolveContentModel(decl)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve content of type {%s}%s: %w", decl.Name.Space, decl.Name.Local, err)
		}
		return &BoundPart{
			Part:     part,
			WireName: part.Name,
			Type:     decl.Name,
			Model:    model,
		}, nil

	default:
		return nil, fmt.Errorf("part %q has unknown kind %d", part.Name, int(part.Kind))
	}
}

// ResolveAll resolves every part of a message in declared order. Two parts
// resolving to the same wire name would make the body ambiguous on both
// sides, so the conflict is reported rather than resolved by precedence.
func (b *Binder) ResolveAll(msg *wsdlmsg.Message) ([]*BoundPart, error) {
	bound := make([]*BoundPart, 0, len(msg.Parts))
	byWireName := make(map[string]string, len(msg.Parts))
	for _, part := range msg.Parts {
		bp, err := b.Resolve(part)
		if err != nil {
			return nil, err
		}
		if prev, ok := byWireName[bp.WireName]; ok {
			return nil, &WireNameConflictError{WireName: bp.WireName, Parts: []string{prev, part.Name}}
		}
		byWireName[bp.WireName] = part.Name
		bound = append(bound, bp)
	}
	return bound, nil
}
