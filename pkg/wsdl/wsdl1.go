package wsdl // WSDL 1.1 reader

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/soapbind-project/soapbind-go/pkg/logger"
	"github.com/soapbind-project/soapbind-go/pkg/soap"
	"github.com/soapbind-project/soapbind-go/pkg/utils"
	"github.com/soapbind-project/soapbind-go/pkg/wsdlmsg"
	"github.com/soapbind-project/soapbind-go/pkg/xsd"
)

type wsdl1Reader struct {
	doc        *xmlquery.Node
	wsdlPath   string
	operations map[string]*Operation
}

func parseWSDL1(doc *xmlquery.Node, wsdlPath string) (*Definitions, error) {
	schemas, err := xsd.ExtractSchemas(wsdlPath, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to extract schemas: %w", err)
	}
	reader := &wsdl1Reader{
		doc:        doc,
		wsdlPath:   wsdlPath,
		operations: make(map[string]*Operation),
	}
	if err := reader.parseOperations(); err != nil {
		return nil, err
	}
	return &Definitions{
		doc:             doc,
		wsdlPath:        wsdlPath,
		targetNamespace: xsd.GetTargetNamespace(doc),
		soapVersion:     reader.soapVersion(),
		endpoint:        reader.endpoint(),
		operations:      reader.operations,
		schemas:         schemas,
	}, nil
}

func (r *wsdl1Reader) soapVersion() soap.Version {
	// Check for a SOAP 1.2 binding
	if node := findOne(r.doc, "//soap12:binding"); node != nil {
		return soap.SOAP12
	}
	return soap.SOAP11
}

func (r *wsdl1Reader) endpoint() string {
	node := findOne(r.doc, "//wsdl:service/wsdl:port/soap:address|//wsdl:service/wsdl:port/soap12:address")
	if node == nil {
		return ""
	}
	return node.SelectAttr("location")
}

func (r *wsdl1Reader) parseOperations() error {
	portTypeNodes := find(r.doc, "//wsdl:portType")
	for _, portType := range portTypeNodes {
		portTypeName := portType.SelectAttr("name")
		// Find all operation nodes within this portType
		operationNodes := find(portType, "./wsdl:operation")
		for _, node := range operationNodes {
			if err := r.parseOperation(node, portTypeName); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *wsdl1Reader) parseOperation(opNode *xmlquery.Node, portTypeName string) error {
	opName := opNode.SelectAttr("name")
	op := &Operation{
		Name: opName,
	}

	// Find corresponding binding operation to get SOAPAction, binding name and message parts (optional)
	bindingOp := r.findBindingOperation(portTypeName, opName)
	if bindingOp != nil {
		if soapOpNode := findOne(bindingOp, "./soap:operation|./soap12:operation"); soapOpNode != nil {
			op.SOAPAction = soapOpNode.SelectAttr("soapAction")
		}
		// Get binding name from parent binding node
		if bindingNode := findOne(bindingOp, "ancestor::wsdl:binding"); bindingNode != nil {
			op.Binding = bindingNode.SelectAttr("name")
		}
	}

	// Parse input message
	if inputNode := findOne(opNode, "./wsdl:input"); inputNode != nil {
		msg, err := r.getMessage(inputNode, "input", bindingOp)
		if err != nil {
			return fmt.Errorf("failed to parse input message: %w", err)
		}
		op.Input = msg
	}

	// Parse output message
	if outputNode := findOne(opNode, "./wsdl:output"); outputNode != nil {
		msg, err := r.getMessage(outputNode, "output", bindingOp)
		if err != nil {
			return fmt.Errorf("failed to parse output message: %w", err)
		}
		op.Output = msg
	}

	// Parse fault message
	if faultNode := findOne(opNode, "./wsdl:fault"); faultNode != nil {
		msg, err := r.getMessage(faultNode, "fault", bindingOp)
		if err != nil {
			return fmt.Errorf("failed to parse fault message: %w", err)
		}
		op.Fault = msg
	}

	r.operations[op.Name] = op
	return nil
}

// findBindingOperation finds the binding operation node for a given portType
// and operation name. The prefix on the binding's type attribute varies
// across documents, so the portType is matched on the local part.
func (r *wsdl1Reader) findBindingOperation(portTypeName, opName string) *xmlquery.Node {
	for _, binding := range find(r.doc, "//wsdl:binding") {
		_, local := xsd.SplitQName(binding.SelectAttr("type"))
		if local != portTypeName {
			continue
		}
		return findOne(binding, fmt.Sprintf("./wsdl:operation[@name='%s']", opName))
	}
	return nil
}

// getMessage extracts message parts from a WSDL message reference
func (r *wsdl1Reader) getMessage(msgNode *xmlquery.Node, messageType string, bindingOp *xmlquery.Node) (*wsdlmsg.Message, error) {
	// Get the message QName (e.g. "tns:GetPetByNameRequest")
	msgQName := msgNode.SelectAttr("message")
	if msgQName == "" {
		return nil, fmt.Errorf("no message attribute found for node: %s", msgNode.Data)
	}

	_, localPart := xsd.SplitQName(msgQName)

	// Look up the message definition, trying both the local part and the full QName
	msgDef := findOne(r.doc, fmt.Sprintf("/wsdl:definitions/wsdl:message[@name='%s']", localPart))
	if msgDef == nil {
		msgDef = findOne(r.doc, fmt.Sprintf("/wsdl:definitions/wsdl:message[@name='%s']", msgQName))
	}
	if msgDef == nil {
		return nil, fmt.Errorf("message definition not found: %s", msgQName)
	}

	// Get the message parts
	partNodes := find(msgDef, "./wsdl:part")
	if len(partNodes) == 0 {
		return nil, fmt.Errorf("no parts found in message: %s", msgQName)
	}

	// Filter parts based on the soap:body parts attribute
	partNodes = r.filterParts(bindingOp, messageType, partNodes)

	parts, err := r.parseParts(partNodes, msgQName)
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("no parts remain in message after filtering: %s", msgQName)
	}
	return &wsdlmsg.Message{Name: localPart, Parts: parts}, nil
}

// filterParts filters message parts based on the soap:body parts attribute
func (r *wsdl1Reader) filterParts(
	bindingOp *xmlquery.Node,
	messageType string,
	partNodes []*xmlquery.Node,
) []*xmlquery.Node {
	// soap:fault carries no parts attribute
	if bindingOp == nil || messageType == "fault" {
		return partNodes
	}
	var partFilter *[]string

	soapBodyNode := findOne(bindingOp, fmt.Sprintf("./wsdl:%[1]s/soap:body|./wsdl:%[1]s/soap12:body", messageType))
	if soapBodyNode == nil {
		logger.Warnf("no soap:body found in binding operation: %s", bindingOp.Data)
	} else {
		msgParts := strings.Split(soapBodyNode.SelectAttr("parts"), " ")
		msgParts = utils.RemoveEmptyStrings(msgParts)
		if len(msgParts) > 0 {
			partFilter = &msgParts
		}
	}

	if partFilter != nil {
		var filteredParts []*xmlquery.Node
		for _, partNode := range partNodes {
			partNodeName := partNode.SelectAttr("name")
			if utils.StringSliceContainsElement(partFilter, partNodeName) {
				filteredParts = append(filteredParts, partNode)
			}
		}
		logger.Tracef("filtered parts: %v", filteredParts)
		partNodes = filteredParts
	}
	return partNodes
}

// parseParts reads part nodes into message part references. References are
// recorded, not resolved; resolution against the schema set happens when the
// parts are bound.
func (r *wsdl1Reader) parseParts(
	partNodes []*xmlquery.Node,
	msgQName string,
) ([]wsdlmsg.MessagePart, error) {
	var parts []wsdlmsg.MessagePart
	for _, part := range partNodes {
		partName := part.SelectAttr("name")

		if element := part.SelectAttr("element"); element != "" {
			ref := xsd.ResolveQName(part, element)
			parts = append(parts, wsdlmsg.NewElementPart(partName, ref))

		} else if typeRef := part.SelectAttr("type"); typeRef != "" {
			ref := xsd.ResolveQName(part, typeRef)
			parts = append(parts, wsdlmsg.NewTypePart(partName, ref))

		} else {
			return nil, fmt.Errorf("message part must have either element or type attribute: %s", msgQName)
		}
	}
	return parts, nil
}
