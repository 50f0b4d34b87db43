package binding

import (
	"encoding/xml"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"

	"github.com/soapbind-project/soapbind-go/pkg/wsdlmsg"
	"github.com/soapbind-project/soapbind-go/pkg/xsd"
)

const petstoreNS = "urn:com:example:petstore"

var _ SchemaModel = (*xsd.SchemaSet)(nil)

const petstoreSchema = `<?xml version="1.0" encoding="UTF-8"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           xmlns:tns="urn:com:example:petstore"
           targetNamespace="urn:com:example:petstore"
           elementFormDefault="qualified">
  <xs:element name="GetPetRequest" type="tns:PetLookup"/>
  <xs:element name="GetPetResponse">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="pet" type="tns:Pet" minOccurs="0" maxOccurs="unbounded"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>
  <xs:complexType name="PetLookup">
    <xs:sequence>
      <xs:element name="id" type="xs:int"/>
      <xs:element name="tag" type="xs:string" minOccurs="0" maxOccurs="unbounded"/>
    </xs:sequence>
  </xs:complexType>
  <xs:complexType name="Pet">
    <xs:sequence>
      <xs:element name="id" type="xs:int"/>
      <xs:element name="name" type="xs:string"/>
      <xs:element name="available" type="xs:boolean"/>
    </xs:sequence>
  </xs:complexType>
  <xs:complexType name="Prefs">
    <xs:all>
      <xs:element name="color" type="xs:string"/>
      <xs:element name="food" type="xs:string"/>
    </xs:all>
  </xs:complexType>
</xs:schema>`

func newTestBinder(t *testing.T) *Binder {
	t.Helper()
	set := xsd.NewSchemaSet()
	require.NoError(t, set.AddBytes([]byte(petstoreSchema)))
	return NewBinder(set)
}

func elementPart(name, local string) wsdlmsg.MessagePart {
	return wsdlmsg.NewElementPart(name, xml.Name{Space: petstoreNS, Local: local})
}

func typePart(name, local string) wsdlmsg.MessagePart {
	return wsdlmsg.NewTypePart(name, xml.Name{Space: petstoreNS, Local: local})
}

func builtinPart(name, local string) wsdlmsg.MessagePart {
	return wsdlmsg.NewTypePart(name, xml.Name{Space: xsd.Namespace, Local: local})
}

// resolveParts resolves a part list, failing the test on any error.
func resolveParts(t *testing.T, b *Binder, parts ...wsdlmsg.MessagePart) []*BoundPart {
	t.Helper()
	bound, err := b.ResolveAll(&wsdlmsg.Message{Name: "TestMessage", Parts: parts})
	require.NoError(t, err)
	return bound
}

// bodyElements parses an XML fragment into its top-level elements.
func bodyElements(t *testing.T, fragment string) []*etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString("<body>"+fragment+"</body>"))
	return doc.Root().ChildElements()
}

// serialize renders elements wrapped in a body container.
func serialize(t *testing.T, elements []*etree.Element) string {
	t.Helper()
	doc := etree.NewDocument()
	body := doc.CreateElement("body")
	for _, el := range elements {
		body.AddChild(el)
	}
	out, err := doc.WriteToString()
	require.NoError(t, err)
	return out
}
