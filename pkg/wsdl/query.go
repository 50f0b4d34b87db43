package wsdl

import (
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/soapbind-project/soapbind-go/pkg/logger"
)

// Namespaces used by WSDL 1.1 documents and their SOAP binding extensions.
const (
	wsdlNamespace   = "http://schemas.xmlsoap.org/wsdl/"
	soapNamespace   = "http://schemas.xmlsoap.org/wsdl/soap/"
	soap12Namespace = "http://schemas.xmlsoap.org/wsdl/soap12/"
	wsdl2Namespace  = "http://www.w3.org/ns/wsdl"
)

// wsdlSelectors binds the conventional prefixes used in queries against WSDL
// documents. Matching is by namespace, so documents are free to declare any
// prefix, or none at all.
var wsdlSelectors = map[string]string{
	"wsdl":   wsdlNamespace,
	"soap":   soapNamespace,
	"soap12": soap12Namespace,
}

// find returns all nodes matching the namespace-bound XPath expression.
func find(top *xmlquery.Node, expr string) []*xmlquery.Node {
	compiled, err := xpath.CompileWithNS(expr, wsdlSelectors)
	if err != nil {
		logger.Warnf("failed to compile XPath expression %q: %v", expr, err)
		return nil
	}
	return xmlquery.QuerySelectorAll(top, compiled)
}

// findOne returns the first node matching the namespace-bound XPath expression.
func findOne(top *xmlquery.Node, expr string) *xmlquery.Node {
	compiled, err := xpath.CompileWithNS(expr, wsdlSelectors)
	if err != nil {
		logger.Warnf("failed to compile XPath expression %q: %v", expr, err)
		return nil
	}
	return xmlquery.QuerySelector(top, compiled)
}
