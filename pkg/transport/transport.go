// Package transport sends serialized SOAP envelopes to service endpoints
// and returns the raw reply for envelope parsing.
package transport

import (
	"context"
	"fmt"

	"github.com/soapbind-project/soapbind-go/pkg/soap"
)

// Request carries one outgoing SOAP call
type Request struct {
	// Endpoint is the service URL to post to
	Endpoint string

	// Version selects the protocol framing for the call
	Version soap.Version

	// Action is the operation's SOAP action. SOAP 1.1 sends it as the
	// SOAPAction header; SOAP 1.2 as a content type parameter.
	Action string

	// Envelope is the serialized request envelope
	Envelope []byte
}

// Response carries the raw reply of a SOAP call
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Transport delivers SOAP requests. Implementations return an error for
// delivery failures only; SOAP faults travel back as ordinary responses.
type Transport interface {
	Call(ctx context.Context, req *Request) (*Response, error)
}

// StatusError reports an HTTP status that cannot carry a SOAP reply
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d", e.StatusCode)
}
