package wsdlmsg

import (
	"encoding/xml"
	"fmt"
)

// PartKind represents the kind of schema reference a WSDL message part carries
type PartKind int

const (
	// ElementPart references a global element declaration
	ElementPart PartKind = iota + 1
	// TypePart references a global type definition
	TypePart
)

func (k PartKind) String() string {
	switch k {
	case ElementPart:
		return "element"
	case TypePart:
		return "type"
	default:
		return fmt.Sprintf("PartKind(%d)", int(k))
	}
}

// MessagePart represents a single named part of a WSDL message. Exactly one
// schema reference is carried: a global element (ElementPart) or a global
// type (TypePart). Immutable once built.
//
// WSDL 1.1 requires a type-referencing part to be the only part in its
// message; this model deliberately does not, and permits any mix of element
// and type parts, matching widely deployed tooling.
type MessagePart struct {
	Name string
	Kind PartKind
	Ref  xml.Name
}

// NewElementPart returns a part referencing a global element declaration
func NewElementPart(name string, ref xml.Name) MessagePart {
	return MessagePart{Name: name, Kind: ElementPart, Ref: ref}
}

// NewTypePart returns a part referencing a global type definition
func NewTypePart(name string, ref xml.Name) MessagePart {
	return MessagePart{Name: name, Kind: TypePart, Ref: ref}
}

func (p MessagePart) String() string {
	if p.Ref.Space == "" {
		return fmt.Sprintf("part %q (%s %s)", p.Name, p.Kind, p.Ref.Local)
	}
	return fmt.Sprintf("part %q (%s {%s}%s)", p.Name, p.Kind, p.Ref.Space, p.Ref.Local)
}

// Message represents a named WSDL message: an ordered list of parts.
// Part order is significant and preserved from the WSDL document.
type Message struct {
	Name  string
	Parts []MessagePart
}

// Part returns the named part, or nil if the message has no such part
func (m *Message) Part(name string) *MessagePart {
	for i := range m.Parts {
		if m.Parts[i].Name == name {
			return &m.Parts[i]
		}
	}
	return nil
}
