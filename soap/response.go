package soap

import (
	"bytes"
	"encoding/xml"
	"io"

	"github.com/luckyluke/papyon/msnperr"
	"github.com/pkg/errors"
)

// Binding is a single namespace binding, prefix to namespace URI.
// The empty prefix denotes the default namespace.
type Binding struct {
	Prefix string
	URI    string
}

// Element is a parsed response element. Namespaces holds the ordered
// list of namespace bindings in scope at the element's start tag,
// outermost first, so that bindings later in the list shadow earlier
// ones.
type Element struct {
	Name       xml.Name
	Attrs      []xml.Attr
	Text       string
	Children   []*Element
	Namespaces []Binding
}

// LookupPrefix resolves prefix against the element's namespace scope,
// innermost binding first
func (e *Element) LookupPrefix(prefix string) (string, bool) {
	for i := len(e.Namespaces) - 1; i >= 0; i-- {
		if e.Namespaces[i].Prefix == prefix {
			return e.Namespaces[i].URI, true
		}
	}
	return "", false
}

// Find returns the first element matching name in a depth first walk
// of e and its descendants, or nil
func (e *Element) Find(name xml.Name) *Element {
	if e.Name == name {
		return e
	}
	for _, child := range e.Children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// child returns the first direct child matching name, or nil
func (e *Element) child(name xml.Name) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Response is a parsed SOAP response document. Header and Body are the
// envelope sections; either may be nil (an empty response header is
// common).
type Response struct {
	Root   *Element
	Header *Element
	Body   *Element
}

// Find returns the first element matching name anywhere in the
// document, or nil
func (r *Response) Find(name xml.Name) *Element { return r.Root.Find(name) }

var (
	nameHeader = xml.Name{Space: NSEnvelope, Local: "Header"}
	nameBody   = xml.Name{Space: NSEnvelope, Local: "Body"}
)

// ParseResponse parses a received SOAP document. The parse is a
// streaming token walk maintaining a namespace binding stack: bindings
// declared on a start tag are pushed, snapshotted onto the element,
// and popped again at the matching end tag. Malformed input returns a
// msnperr.KindMalformedResponse error.
func ParseResponse(data []byte) (*Response, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var root *Element
	var open []*Element // currently open elements
	var scope []Binding // namespace bindings currently in scope
	var declared []int  // bindings pushed per open element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, msnperr.MalformedResponse(
				msnperr.WithCause(errors.Wrap(err, "parsing response")))
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil && len(open) == 0 {
				return nil, msnperr.MalformedResponse(
					msnperr.WithMessage("multiple document elements"))
			}
			elem := &Element{Name: t.Name}
			pushed := 0
			for _, attr := range t.Attr {
				switch {
				case attr.Name.Space == "xmlns":
					scope = append(scope, Binding{Prefix: attr.Name.Local, URI: attr.Value})
					pushed++
				case attr.Name.Space == "" && attr.Name.Local == "xmlns":
					scope = append(scope, Binding{URI: attr.Value})
					pushed++
				default:
					elem.Attrs = append(elem.Attrs, attr)
				}
			}
			elem.Namespaces = append([]Binding(nil), scope...)
			if len(open) == 0 {
				root = elem
			} else {
				parent := open[len(open)-1]
				parent.Children = append(parent.Children, elem)
			}
			open = append(open, elem)
			declared = append(declared, pushed)
		case xml.EndElement:
			scope = scope[:len(scope)-declared[len(declared)-1]]
			open, declared = open[:len(open)-1], declared[:len(declared)-1]
		case xml.CharData:
			if len(open) > 0 {
				open[len(open)-1].Text += string(t)
			}
		}
	}
	if root == nil || len(open) != 0 {
		return nil, msnperr.MalformedResponse(
			msnperr.WithMessage("incomplete document"))
	}
	return &Response{
		Root:   root,
		Header: root.child(nameHeader),
		Body:   root.child(nameBody),
	}, nil
}
