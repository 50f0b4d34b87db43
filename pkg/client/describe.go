package client

import (
	"fmt"

	"github.com/soapbind-project/soapbind-go/pkg/binding"
	"github.com/soapbind-project/soapbind-go/pkg/sample"
	"github.com/soapbind-project/soapbind-go/pkg/soap"
)

// PartDescription describes one resolved message part
type PartDescription struct {
	// Name is the part name used as the parameter key
	Name string

	// WireName and Namespace identify the element the part produces
	WireName  string
	Namespace string
}

// OperationDescription describes an operation and example input for it
type OperationDescription struct {
	Name        string
	SOAPAction  string
	SOAPVersion soap.Version
	Input       []PartDescription
	Output      []PartDescription

	// SampleInput is generated example input accepted by Invoke
	SampleInput Params
}

// Describe resolves the named operation's messages and generates sample
// input parameters for it.
func (c *Client) Describe(operation string) (*OperationDescription, error) {
	op := c.defs.Operation(operation)
	if op == nil {
		return nil, fmt.Errorf("operation not found: %s", operation)
	}

	desc := &OperationDescription{
		Name:        op.Name,
		SOAPAction:  op.SOAPAction,
		SOAPVersion: c.version,
	}

	if op.Input != nil {
		parts, err := c.binder.ResolveAll(op.Input)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve input message: %w", err)
		}
		desc.Input = partDescriptions(parts)
		desc.SampleInput = sample.NewGenerator(c.defs.Schemas()).PartParams(parts)
	}
	if op.Output != nil {
		parts, err := c.binder.ResolveAll(op.Output)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve output message: %w", err)
		}
		desc.Output = partDescriptions(parts)
	}
	return desc, nil
}

func partDescriptions(parts []*binding.BoundPart) []PartDescription {
	descs := make([]PartDescription, len(parts))
	for i, bp := range parts {
		descs[i] = PartDescription{
			Name:      bp.Part.Name,
			WireName:  bp.WireName,
			Namespace: bp.Namespace,
		}
	}
	return descs
}
