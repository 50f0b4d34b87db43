// Package client is the high-level SOAP service client: it reads a WSDL
// description, binds parameter values to message parts, and exchanges
// envelopes with the service endpoint.
package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/soapbind-project/soapbind-go/pkg/binding"
	"github.com/soapbind-project/soapbind-go/pkg/logger"
	"github.com/soapbind-project/soapbind-go/pkg/soap"
	"github.com/soapbind-project/soapbind-go/pkg/transport"
	"github.com/soapbind-project/soapbind-go/pkg/wsdl"
	"github.com/soapbind-project/soapbind-go/pkg/wsse"
)

// Params is the parameter mapping passed to and returned from Invoke,
// keyed by message part name.
type Params = binding.Params

// Client invokes operations of one SOAP service. Not safe for concurrent
// reconfiguration; configure before first use.
type Client struct {
	defs      *wsdl.Definitions
	binder    *binding.Binder
	transport transport.Transport
	security  *wsse.Security
	endpoint  string
	version   soap.Version
}

// New reads the WSDL file at the given path and returns a client for the
// service it describes.
func New(wsdlPath string) (*Client, error) {
	defs, err := wsdl.Parse(wsdlPath)
	if err != nil {
		return nil, err
	}
	return newClient(defs), nil
}

// NewFromBytes returns a client for a WSDL document held in memory
func NewFromBytes(data []byte) (*Client, error) {
	defs, err := wsdl.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	return newClient(defs), nil
}

func newClient(defs *wsdl.Definitions) *Client {
	return &Client{
		defs:      defs,
		binder:    binding.NewBinder(defs.Schemas()),
		transport: transport.NewHTTPTransport(),
		endpoint:  defs.Endpoint(),
		version:   defs.SOAPVersion(),
	}
}

// Definitions returns the parsed service description
func (c *Client) Definitions() *wsdl.Definitions {
	return c.defs
}

// OperationNames lists the operations of the service in sorted order
func (c *Client) OperationNames() []string {
	return c.defs.OperationNames()
}

// SetTransport replaces the transport used to deliver requests
func (c *Client) SetTransport(t transport.Transport) {
	c.transport = t
}

// SetSecurity attaches a WS-Security header to every request
func (c *Client) SetSecurity(s *wsse.Security) {
	c.security = s
}

// SetEndpoint overrides the service address from the WSDL. Required when
// the WSDL declares no soap:address.
func (c *Client) SetEndpoint(url string) {
	c.endpoint = url
}

// SetVersion overrides the SOAP version detected from the WSDL bindings
func (c *Client) SetVersion(v soap.Version) {
	c.version = v
}

// Invoke calls the named operation with the given parameters and returns
// the reply parameters keyed by output part name. SOAP faults are returned
// as a *soap.Fault error.
func (c *Client) Invoke(ctx context.Context, operation string, params Params) (Params, error) {
	op := c.defs.Operation(operation)
	if op == nil {
		return nil, fmt.Errorf("operation not found: %s", operation)
	}
	if c.endpoint == "" {
		return nil, fmt.Errorf("no endpoint address: the WSDL declares no service address and none was set")
	}

	envelope, err := c.buildRequest(op, params)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", operation, err)
	}

	logger.Debugf("invoking %s on %s", operation, c.endpoint)

	resp, err := c.transport.Call(ctx, &transport.Request{
		Endpoint: c.endpoint,
		Version:  c.version,
		Action:   op.SOAPAction,
		Envelope: envelope,
	})
	if err != nil {
		return nil, fmt.Errorf("call to %s failed: %w", operation, err)
	}

	return c.parseReply(op, resp)
}

// buildRequest marshals the parameters into a serialized request envelope
func (c *Client) buildRequest(op *wsdl.Operation, params Params) ([]byte, error) {
	env := soap.NewEnvelope(c.version)
	if c.security != nil {
		env.AddHeaderElement(c.security.Element())
	}

	if op.Input != nil {
		parts, err := c.binder.ResolveAll(op.Input)
		if err != nil {
			return nil, err
		}
		elements, err := c.binder.MarshalBody(parts, params)
		if err != nil {
			return nil, err
		}
		for _, el := range elements {
			env.AddBodyElement(el)
		}
	}
	return env.Bytes()
}

// parseReply parses the reply envelope and unmarshals the output message
func (c *Client) parseReply(op *wsdl.Operation, resp *transport.Response) (Params, error) {
	if op.Output == nil && resp.StatusCode == http.StatusOK {
		// one-way operation: nothing to parse
		return Params{}, nil
	}

	parsed, err := soap.ParseEnvelope(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse reply: %w", err)
	}
	if parsed.Fault != nil {
		return nil, parsed.Fault
	}
	if op.Output == nil {
		return Params{}, nil
	}

	parts, err := c.binder.ResolveAll(op.Output)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve reply message: %w", err)
	}
	result, err := c.binder.UnmarshalBody(parts, parsed.BodyChildren())
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal reply for %s: %w", op.Name, err)
	}
	return result, nil
}
