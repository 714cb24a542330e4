package soap

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Request is a SOAP request envelope under construction: an optional
// set of header elements and a single body method element carrying
// typed arguments.
type Request struct {
	method        string
	methodNS      string
	encodingStyle string
	headers       []*Node
	args          []*Node
}

// Option is a Request construction option
type Option func(*Request)

// WithNamespace qualifies the method element into the namespace uri
func WithNamespace(uri string) Option { return func(r *Request) { r.methodNS = uri } }

// WithEncodingStyle sets the method encoding style attribute.
// An empty uri suppresses the attribute.
func WithEncodingStyle(uri string) Option { return func(r *Request) { r.encodingStyle = uri } }

// NewRequest returns a Request for the given method. The encoding
// style defaults to the SOAP encoding namespace.
func NewRequest(method string, opts ...Option) *Request {
	r := &Request{method: method, encodingStyle: NSEncoding}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Node is an element within a Request header or method
type Node struct {
	name     string
	ns       string
	typ      string
	value    string
	children []*Node
}

// Append adds a child element to n, returning the child
func (n *Node) Append(name, value string) *Node {
	child := &Node{name: name, value: value}
	n.children = append(n.children, child)
	return child
}

// AddArgument appends an argument element to the method. A non-empty
// typ is written as an xsi:type attribute; a bare local name is
// qualified into the XML Schema namespace, while a "{uri}local" name
// keeps its explicit namespace.
func (r *Request) AddArgument(name, typ, value string) *Node {
	arg := &Node{name: name, typ: typ, value: value}
	r.args = append(r.args, arg)
	return arg
}

// AddHeader appends a header element, qualified into namespace if
// non-empty
func (r *Request) AddHeader(name, namespace, value string) *Node {
	hdr := &Node{name: name, ns: namespace, value: value}
	r.headers = append(r.headers, hdr)
	return hdr
}

// XML serializes the request to a declaration-prefixed UTF-8 document.
// The Header element is omitted when no header elements were added.
// Namespaced method and header elements are qualified through a prefix
// rather than a default xmlns so their child elements stay unqualified.
func (r *Request) XML() []byte {
	b := &bytes.Buffer{}
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>`)
	fmt.Fprintf(b, `<soap:Envelope xmlns:soap="%s" xmlns:xsi="%s" xmlns:xsd="%s">`,
		NSEnvelope, NSXMLSchemaInstance, NSXMLSchema)
	if len(r.headers) > 0 {
		b.WriteString(`<soap:Header>`)
		for _, hdr := range r.headers {
			writeNode(b, hdr)
		}
		b.WriteString(`</soap:Header>`)
	}
	b.WriteString(`<soap:Body>`)
	method := r.method
	if r.methodNS != "" {
		method = "m:" + r.method
	}
	b.WriteString(`<` + method)
	if r.methodNS != "" {
		writeAttr(b, "xmlns:m", r.methodNS)
	}
	if r.encodingStyle != "" {
		writeAttr(b, "soap:encodingStyle", r.encodingStyle)
	}
	b.WriteString(`>`)
	for _, arg := range r.args {
		writeNode(b, arg)
	}
	b.WriteString(`</` + method + `>`)
	b.WriteString(`</soap:Body>`)
	b.WriteString(`</soap:Envelope>`)
	return b.Bytes()
}

func (r *Request) String() string { return fmt.Sprintf("<SOAP request %s>", r.method) }

func writeNode(b *bytes.Buffer, n *Node) {
	name := n.name
	if n.ns != "" {
		name = "h:" + n.name
	}
	b.WriteString(`<` + name)
	if n.ns != "" {
		writeAttr(b, "xmlns:h", n.ns)
	}
	if n.typ != "" {
		if t := SplitQName(n.typ); t.Space != "" {
			writeAttr(b, "xsi:type", "t:"+t.Local)
			writeAttr(b, "xmlns:t", t.Space)
		} else {
			writeAttr(b, "xsi:type", "xsd:"+t.Local)
		}
	}
	b.WriteString(`>`)
	xml.EscapeText(b, []byte(n.value))
	for _, child := range n.children {
		writeNode(b, child)
	}
	b.WriteString(`</` + name + `>`)
}

func writeAttr(b *bytes.Buffer, name, value string) {
	b.WriteString(` ` + name + `="`)
	xml.EscapeText(b, []byte(value))
	b.WriteString(`"`)
}
