package soap

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	xpMethod = xpath.MustCompile(
		`/soap:Envelope[namespace-uri()='http://schemas.xmlsoap.org/soap/envelope/']` +
			`/soap:Body/m:RequestSecurityToken`)
	xpArg = xpath.MustCompile(
		`/soap:Envelope[namespace-uri()='http://schemas.xmlsoap.org/soap/envelope/']` +
			`/soap:Body/m:RequestSecurityToken/TokenType`)
	xpHeader = xpath.MustCompile(
		`/soap:Envelope[namespace-uri()='http://schemas.xmlsoap.org/soap/envelope/']` +
			`/soap:Header/h:AuthInfo`)
)

func TestRequestXML(t *testing.T) {
	req := NewRequest("RequestSecurityToken",
		WithNamespace("http://schemas.xmlsoap.org/ws/2004/04/trust"))
	req.AddArgument("TokenType", "string", "urn:passport:compact")
	req.AddHeader("AuthInfo", "http://schemas.microsoft.com/Passport/SoapServices/PPCRL", "")

	out := string(req.XML())
	require.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="utf-8"?>`))

	doc, err := xmlquery.Parse(strings.NewReader(out))
	require.NoError(t, err)

	a := assert.New(t)
	method := xmlquery.QuerySelector(doc, xpMethod)
	require.NotNil(t, method)
	a.Equal("http://schemas.xmlsoap.org/ws/2004/04/trust", method.NamespaceURI)

	arg := xmlquery.QuerySelector(doc, xpArg)
	require.NotNil(t, arg)
	a.Equal("urn:passport:compact", arg.InnerText())

	require.NotNil(t, xmlquery.QuerySelector(doc, xpHeader))

	// attribute serialization is not visible through the query layer
	a.Contains(out, `soap:encodingStyle="`+NSEncoding+`"`)
	a.Contains(out, `xsi:type="xsd:string"`)
}

func TestRequestXMLSections(t *testing.T) {
	for _, tc := range []struct {
		name     string
		build    func() *Request
		contains []string
		omits    []string
	}{
		{
			name:     "empty header omitted",
			build:    func() *Request { return NewRequest("Ping") },
			contains: []string{`<soap:Body><Ping soap:encodingStyle=`},
			omits:    []string{`<soap:Header>`},
		},
		{
			name: "encoding style suppressed",
			build: func() *Request {
				return NewRequest("Ping", WithEncodingStyle(""))
			},
			contains: []string{`<Ping></Ping>`},
			omits:    []string{`encodingStyle`},
		},
		{
			name: "explicitly qualified argument type",
			build: func() *Request {
				req := NewRequest("Op")
				req.AddArgument("v", QName("urn:types", "Token"), "x")
				return req
			},
			contains: []string{`xsi:type="t:Token"`, `xmlns:t="urn:types"`},
		},
		{
			name: "nested argument children",
			build: func() *Request {
				req := NewRequest("Op")
				req.AddArgument("outer", "", "").Append("inner", "deep")
				return req
			},
			contains: []string{`<outer><inner>deep</inner></outer>`},
		},
		{
			name: "escaped text content",
			build: func() *Request {
				req := NewRequest("Op")
				req.AddArgument("v", "", `a<b&"c"`)
				return req
			},
			contains: []string{`a&lt;b&amp;&#34;c&#34;`},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a := assert.New(t)
			out := string(tc.build().XML())
			for _, want := range tc.contains {
				a.Contains(out, want)
			}
			for _, not := range tc.omits {
				a.NotContains(out, not)
			}
		})
	}
}

func TestMethodPrefixLeavesArgumentsUnqualified(t *testing.T) {
	req := NewRequest("RequestSecurityToken",
		WithNamespace("http://schemas.xmlsoap.org/ws/2004/04/trust"))
	req.AddArgument("TokenType", "string", "urn:passport:compact")
	req.AddHeader("AuthInfo", "urn:auth", "")

	resp, err := ParseResponse(req.XML())
	require.NoError(t, err)

	a := assert.New(t)
	method := resp.Body.Find(xml.Name{
		Space: "http://schemas.xmlsoap.org/ws/2004/04/trust",
		Local: "RequestSecurityToken",
	})
	require.NotNil(t, method)

	// only the method element carries the namespace; its arguments
	// have no default binding to inherit
	arg := method.Find(xml.Name{Local: "TokenType"})
	require.NotNil(t, arg)
	a.Equal("", arg.Name.Space)
	a.Equal("urn:passport:compact", arg.Text)

	hdr := resp.Header.Find(xml.Name{Space: "urn:auth", Local: "AuthInfo"})
	require.NotNil(t, hdr)
}

func TestQName(t *testing.T) {
	a := assert.New(t)
	a.Equal("{urn:x}y", QName("urn:x", "y"))
	a.Equal("y", QName("", "y"))
	a.Equal("urn:x", SplitQName("{urn:x}y").Space)
	a.Equal("y", SplitQName("{urn:x}y").Local)
	a.Equal("", SplitQName("plain").Space)
	a.Equal("plain", SplitQName("plain").Local)
}
