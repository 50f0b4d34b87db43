package binding

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/soapbind-project/soapbind-go/pkg/wsdlmsg"
)

// UnresolvedReferenceError is returned when a message part references an
// element or type that none of the registered schemas declare.
type UnresolvedReferenceError struct {
	Part wsdlmsg.MessagePart
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("cannot resolve %s: no such %s declared", e.Part, e.Part.Kind)
}

// WireNameConflictError is returned when two parts of the same message
// resolve to the same wire name, leaving the body ambiguous.
type WireNameConflictError struct {
	WireName string
	Parts    []string
}

func (e *WireNameConflictError) Error() string {
	return fmt.Sprintf("parts %s resolve to the same wire name %q", strings.Join(e.Parts, " and "), e.WireName)
}

// UnboundValueError is returned when a supplied value is structurally
// incompatible with the content model it is bound against.
type UnboundValueError struct {
	// Part is the name of the message part being marshalled
	Part string

	// Path is the dotted path from the part to the offending value
	Path string

	Reason string
}

func (e *UnboundValueError) Error() string {
	return fmt.Sprintf("cannot bind value at %q: %s", e.Path, e.Reason)
}

// UnexpectedElementError is returned when a reply body contains an element
// that matches no remaining expected name. Surfaced rather than dropped, as
// it indicates schema drift or a malformed reply.
type UnexpectedElementError struct {
	Name     xml.Name
	Expected []string
}

func (e *UnexpectedElementError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("unexpected element %q: no further elements were expected", e.Name.Local)
	}
	return fmt.Sprintf("unexpected element %q: expected one of [%s]", e.Name.Local, strings.Join(e.Expected, ", "))
}
