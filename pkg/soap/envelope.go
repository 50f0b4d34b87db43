package soap

import (
	"fmt"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// Envelope assembles a SOAP envelope document from header and body elements.
// The prefix "env" is used for the envelope namespace.
type Envelope struct {
	version Version
	header  []*etree.Element
	body    []*etree.Element
}

// NewEnvelope returns an empty envelope for the given protocol version
func NewEnvelope(version Version) *Envelope {
	return &Envelope{version: version}
}

// Version returns the envelope's protocol version
func (e *Envelope) Version() Version {
	return e.version
}

// AddHeaderElement appends an element to the envelope Header. The Header is
// only emitted when at least one element was added.
func (e *Envelope) AddHeaderElement(el *etree.Element) {
	e.header = append(e.header, el)
}

// AddBodyElement appends a child element to the envelope Body
func (e *Envelope) AddBodyElement(el *etree.Element) {
	e.body = append(e.body, el)
}

// Document builds the complete envelope document
func (e *Envelope) Document() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	env := doc.CreateElement("env:Envelope")
	env.CreateAttr("xmlns:env", e.version.EnvNamespace())

	if len(e.header) > 0 {
		header := env.CreateElement("env:Header")
		for _, el := range e.header {
			header.AddChild(el)
		}
	}

	body := env.CreateElement("env:Body")
	for _, el := range e.body {
		body.AddChild(el)
	}
	return doc
}

// Bytes serialises the envelope document
func (e *Envelope) Bytes() ([]byte, error) {
	return e.Document().WriteToBytes()
}

// ParsedEnvelope is a received envelope broken into its parts
type ParsedEnvelope struct {
	// Version detected from the envelope namespace
	Version Version

	// Header element, nil when the envelope carries none
	Header *etree.Element

	// Body element
	Body *etree.Element

	// Fault carried in the body, nil when the reply is not a fault
	Fault *Fault
}

// ParseEnvelope parses a received SOAP envelope document. Non-UTF-8
// encodings declared in the XML prolog are converted on read.
func ParseEnvelope(data []byte) (*ParsedEnvelope, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse envelope: %w", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "Envelope" {
		return nil, fmt.Errorf("invalid SOAP envelope: missing Envelope root")
	}

	parsed := &ParsedEnvelope{
		Version: versionForNamespace(root.NamespaceURI()),
	}

	// unprefixed path components match any namespace prefix
	parsed.Header = root.FindElement("./Header")
	parsed.Body = root.FindElement("./Body")
	if parsed.Body == nil {
		return nil, fmt.Errorf("invalid SOAP envelope: missing Body")
	}

	if faultEl := parsed.Body.FindElement("./Fault"); faultEl != nil {
		parsed.Fault = parseFault(faultEl, parsed.Version)
	}
	return parsed, nil
}

// BodyChildren returns the child elements of the Body
func (p *ParsedEnvelope) BodyChildren() []*etree.Element {
	if p.Body == nil {
		return nil
	}
	return p.Body.ChildElements()
}
