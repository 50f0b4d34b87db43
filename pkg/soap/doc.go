// Package soap builds and parses SOAP 1.1 and SOAP 1.2 envelopes.
//
// The envelope layer sits between the message binder, which produces and
// consumes Body child elements, and the transport, which moves complete
// envelope documents. It carries no binding logic of its own.
//
// # Building an envelope
//
//	env := soap.NewEnvelope(soap.SOAP11)
//	env.AddBodyElement(bodyChild)
//	data, err := env.Bytes()
//
// # Parsing a reply
//
//	parsed, err := soap.ParseEnvelope(data)
//	if err != nil {
//	    return err
//	}
//	if parsed.Fault != nil {
//	    return parsed.Fault
//	}
//	children := parsed.BodyChildren()
//
// Faults of both protocol versions are normalised into a single Fault type
// that implements error.
package soap
