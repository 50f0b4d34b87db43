package xsd

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/antchfx/xmlquery"

	"github.com/soapbind-project/soapbind-go/pkg/logger"
)

// Schema is a single registered schema document
type Schema struct {
	// Root is the parsed schema element node. Parent links are kept, so
	// prefixes declared on enclosing documents (e.g. a WSDL root) stay
	// resolvable.
	Root *xmlquery.Node

	// TargetNamespace of the schema; empty is valid
	TargetNamespace string

	// Qualified is true when elementFormDefault="qualified"
	Qualified bool
}

// SchemaSet holds the parsed schema documents of a service and resolves
// qualified names to element and type declarations.
//
// A SchemaSet is immutable once loaded; concurrent lookups are safe provided
// no further schemas are added.
type SchemaSet struct {
	schemas []*Schema

	// processed tracks imported schema locations to avoid cycles
	processed map[string]bool
}

// NewSchemaSet returns an empty schema set
func NewSchemaSet() *SchemaSet {
	return &SchemaSet{
		processed: make(map[string]bool),
	}
}

// Len returns the number of registered schema documents
func (s *SchemaSet) Len() int {
	return len(s.schemas)
}

// AddNode registers a parsed schema element node
func (s *SchemaSet) AddNode(schemaRoot *xmlquery.Node) *Schema {
	entry := &Schema{
		Root:            schemaRoot,
		TargetNamespace: schemaRoot.SelectAttr("targetNamespace"),
		Qualified:       schemaRoot.SelectAttr("elementFormDefault") == "qualified",
	}
	s.schemas = append(s.schemas, entry)
	logger.Tracef("registered schema with target namespace %q", entry.TargetNamespace)
	return entry
}

// AddBytes parses an XML document and registers every schema element found in it
func (s *SchemaSet) AddBytes(data []byte) error {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse schema: %w", err)
	}
	schemaRoots := xmlquery.Find(doc, "//*[local-name()='schema']")
	if len(schemaRoots) == 0 {
		return fmt.Errorf("no schema element found in document")
	}
	for _, root := range schemaRoots {
		s.AddNode(root)
	}
	return nil
}

// AddFile reads and registers a schema file, following xsd:import
// schemaLocation references relative to the file's directory
func (s *SchemaSet) AddFile(path string) error {
	if s.processed[path] {
		return nil
	}
	s.processed[path] = true

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse schema file %s: %w", path, err)
	}

	schemaRoot := xmlquery.FindOne(doc, "//*[local-name()='schema']")
	if schemaRoot == nil {
		return fmt.Errorf("no schema element found in %s", path)
	}
	s.AddNode(schemaRoot)

	return s.processImports(schemaRoot, filepath.Dir(path))
}

// ExtractSchemas collects the inline schemas of a parsed WSDL document into a
// schema set, following imports relative to the WSDL's directory
func ExtractSchemas(wsdlPath string, wsdlDoc *xmlquery.Node) (*SchemaSet, error) {
	set := NewSchemaSet()

	typesNode := xmlquery.FindOne(wsdlDoc, "//*[local-name()='types']")
	if typesNode == nil {
		logger.Warnf("types element not found")
		return set, nil
	}

	schemas := xmlquery.Find(typesNode, ".//*[local-name()='schema']")
	if len(schemas) == 0 {
		// only base XSD datatypes are supported
		logger.Warnf("no schemas found")
		return set, nil
	}

	wsdlDir := filepath.Dir(wsdlPath)
	for i, schema := range schemas {
		set.AddNode(schema)
		if err := set.processImports(schema, wsdlDir); err != nil {
			return nil, fmt.Errorf("failed to process schema %d: %w", i, err)
		}
	}
	return set, nil
}

// processImports follows import elements in a schema recursively
func (s *SchemaSet) processImports(schemaRoot *xmlquery.Node, baseDir string) error {
	imports := xmlquery.Find(schemaRoot, ".//*[local-name()='import']")
	for _, imp := range imports {
		var schemaLocation, namespace string
		for _, attr := range imp.Attr {
			if attr.Name.Local == "schemaLocation" {
				schemaLocation = attr.Value
			} else if attr.Name.Local == "namespace" {
				namespace = attr.Value
			}
		}
		logger.Tracef("found import with schemaLocation: %s, namespace: %s", schemaLocation, namespace)

		if schemaLocation == "" {
			continue
		}
		resolvedPath := schemaLocation
		if !filepath.IsAbs(schemaLocation) {
			resolvedPath = filepath.Join(baseDir, schemaLocation)
		}
		if err := s.AddFile(resolvedPath); err != nil {
			return fmt.Errorf("failed to import schema %s: %w", schemaLocation, err)
		}
	}
	return nil
}

// ElementDecl is a global element declaration
type ElementDecl struct {
	// Name is the declared element name, qualified by the schema's target
	// namespace
	Name xml.Name

	// Type is the resolved type reference; zero when the element declares an
	// inline anonymous type
	Type xml.Name

	node   *xmlquery.Node
	schema *Schema
}

// TypeDecl is a global type definition
type TypeDecl struct {
	// Name is the declared type name, qualified by the schema's target
	// namespace
	Name xml.Name

	// Simple is true for simpleType definitions
	Simple bool

	node   *xmlquery.Node
	schema *Schema
}

// LookupElement resolves a global element declaration by qualified name.
// Schemas whose target namespace matches are searched first; when the
// namespace is absent or yields no match, all schemas are searched by local
// name. Returns nil when not found.
func (s *SchemaSet) LookupElement(ref xml.Name) *ElementDecl {
	if decl := s.findElement(ref.Local, ref.Space); decl != nil {
		return decl
	}
	if ref.Space != "" {
		// fall back to a local-name search across all schemas
		return s.findElement(ref.Local, "")
	}
	return nil
}

func (s *SchemaSet) findElement(localName, targetNS string) *ElementDecl {
	expr := fmt.Sprintf("./*[local-name()='element' and @name='%s']", localName)
	for _, schema := range s.schemas {
		if targetNS != "" && schema.TargetNamespace != targetNS {
			continue
		}
		node := xmlquery.FindOne(schema.Root, expr)
		if node == nil {
			continue
		}
		decl := &ElementDecl{
			Name:   xml.Name{Space: schema.TargetNamespace, Local: node.SelectAttr("name")},
			node:   node,
			schema: schema,
		}
		if typeRef := node.SelectAttr("type"); typeRef != "" {
			decl.Type = ResolveQName(node, typeRef)
		}
		return decl
	}
	return nil
}

// LookupType resolves a global type definition by qualified name, searching
// complexType then simpleType definitions. Namespace handling matches
// LookupElement. Returns nil when not found.
func (s *SchemaSet) LookupType(ref xml.Name) *TypeDecl {
	if decl := s.findType(ref.Local, ref.Space); decl != nil {
		return decl
	}
	if ref.Space != "" {
		return s.findType(ref.Local, "")
	}
	return nil
}

func (s *SchemaSet) findType(localName, targetNS string) *TypeDecl {
	complexExpr := fmt.Sprintf("./*[local-name()='complexType' and @name='%s']", localName)
	simpleExpr := fmt.Sprintf("./*[local-name()='simpleType' and @name='%s']", localName)
	for _, schema := range s.schemas {
		if targetNS != "" && schema.TargetNamespace != targetNS {
			continue
		}
		if node := xmlquery.FindOne(schema.Root, complexExpr); node != nil {
			return &TypeDecl{
				Name:   xml.Name{Space: schema.TargetNamespace, Local: node.SelectAttr("name")},
				node:   node,
				schema: schema,
			}
		}
		if node := xmlquery.FindOne(schema.Root, simpleExpr); node != nil {
			return &TypeDecl{
				Name:   xml.Name{Space: schema.TargetNamespace, Local: node.SelectAttr("name")},
				Simple: true,
				node:   node,
				schema: schema,
			}
		}
	}
	return nil
}
