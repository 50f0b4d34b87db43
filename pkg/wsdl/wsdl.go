// Package wsdl reads WSDL 1.1 service descriptions into a model of
// operations, message parts and schema references.
package wsdl

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/soapbind-project/soapbind-go/pkg/soap"
	"github.com/soapbind-project/soapbind-go/pkg/utils"
	"github.com/soapbind-project/soapbind-go/pkg/wsdlmsg"
	"github.com/soapbind-project/soapbind-go/pkg/xsd"
)

// Operation represents a WSDL operation
type Operation struct {
	Name       string
	SOAPAction string
	Binding    string
	Input      *wsdlmsg.Message
	Output     *wsdlmsg.Message
	Fault      *wsdlmsg.Message
}

// Definitions is the parsed model of a WSDL 1.1 document.
type Definitions struct {
	doc             *xmlquery.Node
	wsdlPath        string
	targetNamespace string
	soapVersion     soap.Version
	endpoint        string
	operations      map[string]*Operation
	schemas         *xsd.SchemaSet
}

// Parse reads and parses the WSDL file at the given path, following schema
// imports relative to its directory.
func Parse(wsdlPath string) (*Definitions, error) {
	file, err := os.Open(wsdlPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open WSDL file: %w", err)
	}
	defer file.Close()

	doc, err := xmlquery.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse WSDL file: %w", err)
	}
	return parse(doc, wsdlPath)
}

// ParseBytes parses a WSDL document held in memory. Schema imports with
// relative locations cannot be followed in this mode.
func ParseBytes(data []byte) (*Definitions, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse WSDL document: %w", err)
	}
	return parse(doc, "")
}

// parse detects the WSDL version from the root element namespace and hands
// off to the version-specific reader.
func parse(doc *xmlquery.Node, wsdlPath string) (*Definitions, error) {
	root := doc.SelectElement("*")
	if root == nil {
		return nil, fmt.Errorf("invalid WSDL document: no root element")
	}
	if len(root.Attr) == 0 {
		return nil, fmt.Errorf("invalid WSDL document: root element has no namespace")
	}

	// Check for WSDL 2.0
	for _, attr := range root.Attr {
		if strings.Contains(attr.Value, wsdl2Namespace) {
			return nil, fmt.Errorf("WSDL 2.0 documents are not supported")
		}
	}

	// Check for WSDL 1.1
	for _, attr := range root.Attr {
		if strings.Contains(attr.Value, wsdlNamespace) {
			return parseWSDL1(doc, wsdlPath)
		}
	}

	return nil, fmt.Errorf("unsupported WSDL version")
}

// TargetNamespace returns the target namespace of the WSDL definitions.
func (d *Definitions) TargetNamespace() string {
	return d.targetNamespace
}

// SOAPVersion returns the SOAP version declared by the service bindings.
func (d *Definitions) SOAPVersion() soap.Version {
	return d.soapVersion
}

// Endpoint returns the address of the first SOAP port, or "" when the
// document declares no service address.
func (d *Definitions) Endpoint() string {
	return d.endpoint
}

// Schemas returns the schema set extracted from the types section and any
// imported schema documents.
func (d *Definitions) Schemas() *xsd.SchemaSet {
	return d.schemas
}

// Operations returns all operations keyed by name.
func (d *Definitions) Operations() map[string]*Operation {
	return d.operations
}

// Operation returns the named operation, or nil when not defined.
func (d *Definitions) Operation(name string) *Operation {
	return d.operations[name]
}

// OperationNames returns the operation names in sorted order.
func (d *Definitions) OperationNames() []string {
	return utils.SortedKeys(d.operations)
}
