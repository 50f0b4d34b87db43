package soap

// Version represents the SOAP protocol version
type Version string

const (
	// SOAP11 represents SOAP 1.1 protocol
	SOAP11 Version = "1.1"
	// SOAP12 represents SOAP 1.2 protocol
	SOAP12 Version = "1.2"
)

// SOAP namespace URIs
const (
	SOAP11EnvNamespace = "http://schemas.xmlsoap.org/soap/envelope/"
	SOAP12EnvNamespace = "http://www.w3.org/2003/05/soap-envelope"
)

// Content types for SOAP versions
const (
	SOAP11ContentType = "text/xml; charset=utf-8"
	SOAP12ContentType = "application/soap+xml; charset=utf-8"
)

// EnvNamespace returns the envelope namespace for the version
func (v Version) EnvNamespace() string {
	if v == SOAP12 {
		return SOAP12EnvNamespace
	}
	return SOAP11EnvNamespace
}

// ContentType returns the request content type for the version. SOAP 1.2
// carries the action as a content type parameter rather than a header.
func (v Version) ContentType(action string) string {
	if v == SOAP12 {
		if action != "" {
			return SOAP12ContentType + `; action="` + action + `"`
		}
		return SOAP12ContentType
	}
	return SOAP11ContentType
}

// versionForNamespace maps an envelope namespace back to the protocol
// version; defaults to SOAP 1.1 for unrecognised namespaces
func versionForNamespace(ns string) Version {
	if ns == SOAP12EnvNamespace {
		return SOAP12
	}
	return SOAP11
}
