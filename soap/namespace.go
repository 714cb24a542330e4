package soap

import (
	"encoding/xml"
	"strings"
)

const (
	// NSEnvelope is the SOAP 1.1 envelope namespace
	NSEnvelope = "http://schemas.xmlsoap.org/soap/envelope/"
	// NSEncoding is the SOAP 1.1 encoding namespace, also the default
	// request encoding style
	NSEncoding = "http://schemas.xmlsoap.org/soap/encoding/"
	// NSXMLSchema is the XML Schema namespace used for bare argument types
	NSXMLSchema = "http://www.w3.org/1999/XMLSchema"
	// NSXMLSchemaInstance is the XML Schema instance namespace carrying
	// the type attribute
	NSXMLSchemaInstance = "http://www.w3.org/1999/XMLSchema-instance"
)

// QName returns the "{space}local" form of an XML name, the form used
// for explicitly qualified argument types.
func QName(space, local string) string {
	if space == "" {
		return local
	}
	return "{" + space + "}" + local
}

// SplitQName splits a "{space}local" qualified name. Names without a
// namespace brace return an empty space.
func SplitQName(qname string) xml.Name {
	if strings.HasPrefix(qname, "{") {
		if i := strings.Index(qname, "}"); i > 0 {
			return xml.Name{Space: qname[1:i], Local: qname[i+1:]}
		}
	}
	return xml.Name{Local: qname}
}
