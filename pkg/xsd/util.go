package xsd

import (
	"encoding/xml"
	"strings"

	"github.com/antchfx/xmlquery"
)

// SplitQName splits a qualified name into prefix and local part
func SplitQName(qname string) (prefix, localPart string) {
	parts := strings.Split(qname, ":")
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return "", qname
}

// MakeQName joins a prefix and local part into a qualified name
func MakeQName(prefix, localPart string) string {
	if prefix == "" {
		return localPart
	}
	return prefix + ":" + localPart
}

// GetTargetNamespace gets the target namespace from the schema document
func GetTargetNamespace(schemaDoc *xmlquery.Node) string {
	if schemaRoot := schemaDoc.SelectElement("schema"); schemaRoot != nil {
		if ns := schemaRoot.SelectAttr("targetNamespace"); ns != "" {
			return ns
		}
	}
	// Try to get from root element as fallback
	if root := schemaDoc.SelectElement("*"); root != nil {
		if ns := root.SelectAttr("targetNamespace"); ns != "" {
			return ns
		}
	}
	return ""
}

// ResolvePrefix resolves a namespace prefix against the xmlns declarations in
// scope at the given node, walking up through parent nodes. An empty prefix
// resolves the default namespace. Returns "" when the prefix is not bound.
func ResolvePrefix(node *xmlquery.Node, prefix string) string {
	for n := node; n != nil; n = n.Parent {
		for _, attr := range n.Attr {
			if prefix == "" {
				if attr.Name.Space == "" && attr.Name.Local == "xmlns" {
					return attr.Value
				}
			} else if attr.Name.Space == "xmlns" && attr.Name.Local == prefix {
				return attr.Value
			}
		}
	}
	return ""
}

// ResolveQName resolves a prefixed name from an attribute value into a
// qualified name, using the xmlns declarations in scope at the node
func ResolveQName(node *xmlquery.Node, qname string) xml.Name {
	prefix, local := SplitQName(qname)
	return xml.Name{Space: ResolvePrefix(node, prefix), Local: local}
}
