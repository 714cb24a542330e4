package soap

import (
	"encoding/xml"
	"testing"

	"github.com/luckyluke/papyon/msnperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponseSections(t *testing.T) {
	for _, tc := range []struct {
		name       string
		input      string
		wantHeader bool
		wantBody   bool
	}{
		{
			name: "header and body",
			input: `<s:Envelope xmlns:s="` + NSEnvelope + `">` +
				`<s:Header><x/></s:Header><s:Body><y/></s:Body></s:Envelope>`,
			wantHeader: true,
			wantBody:   true,
		},
		{
			name: "empty response header omitted",
			input: `<s:Envelope xmlns:s="` + NSEnvelope + `">` +
				`<s:Body><y/></s:Body></s:Envelope>`,
			wantBody: true,
		},
		{
			name:  "no envelope sections",
			input: `<other xmlns="urn:other"/>`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := ParseResponse([]byte(tc.input))
			require.NoError(t, err)
			a := assert.New(t)
			a.Equal(tc.wantHeader, resp.Header != nil)
			a.Equal(tc.wantBody, resp.Body != nil)
		})
	}
}

func TestParseResponseMalformed(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "truncated", input: `<s:Envelope xmlns:s="` + NSEnvelope + `"><s:Body>`},
		{name: "mismatched tags", input: `<a><b></a></b>`},
		{name: "multiple roots", input: `<a/><b/>`},
		{name: "not xml", input: `USR 4 SSO S blob`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := ParseResponse([]byte(tc.input))
			require.Error(t, err)
			assert.New(t).True(msnperr.IsKind(err, msnperr.KindMalformedResponse))
			assert.New(t).Nil(resp)
		})
	}
}

func TestParseResponseNamespaceScope(t *testing.T) {
	input := `<s:Envelope xmlns:s="` + NSEnvelope + `">` +
		`<s:Body xmlns:p1="urn:outer">` +
		`<first/>` +
		`<mid xmlns:p1="urn:inner"><deep/></mid>` +
		`<last/>` +
		`</s:Body>` +
		`</s:Envelope>`
	resp, err := ParseResponse([]byte(input))
	require.NoError(t, err)
	require.NotNil(t, resp.Body)

	a := assert.New(t)
	lookup := func(local string) (string, bool) {
		elem := resp.Find(xml.Name{Local: local})
		require.NotNil(t, elem, local)
		return elem.LookupPrefix("p1")
	}

	// inner re-declaration shadows the outer binding...
	uri, ok := lookup("mid")
	a.True(ok)
	a.Equal("urn:inner", uri)
	uri, ok = lookup("deep")
	a.True(ok)
	a.Equal("urn:inner", uri)

	// ...and the outer binding is restored once the inner scope closes
	uri, ok = lookup("first")
	a.True(ok)
	a.Equal("urn:outer", uri)
	uri, ok = lookup("last")
	a.True(ok)
	a.Equal("urn:outer", uri)

	// the envelope precedes the p1 declaration entirely
	_, ok = resp.Root.LookupPrefix("p1")
	a.False(ok)
	uri, ok = resp.Root.LookupPrefix("s")
	a.True(ok)
	a.Equal(NSEnvelope, uri)
}

func TestRequestResponseRoundTrip(t *testing.T) {
	req := NewRequest("X")
	req.AddArgument("a", "string", "v")

	// a server echo of the request structure must parse back to the
	// same element and text
	resp, err := ParseResponse(req.XML())
	require.NoError(t, err)
	require.NotNil(t, resp.Body)

	a := assert.New(t)
	method := resp.Body.child(xml.Name{Local: "X"})
	require.NotNil(t, method)
	arg := method.child(xml.Name{Local: "a"})
	require.NotNil(t, arg)
	a.Equal("v", arg.Text)

	uri, ok := arg.LookupPrefix("xsi")
	a.True(ok)
	a.Equal(NSXMLSchemaInstance, uri)
}

func TestElementFind(t *testing.T) {
	resp, err := ParseResponse([]byte(
		`<root xmlns:f="urn:fault"><a><f:target attr="1">hit</f:target></a><f:target>late</f:target></root>`))
	require.NoError(t, err)

	a := assert.New(t)
	elem := resp.Find(xml.Name{Space: "urn:fault", Local: "target"})
	require.NotNil(t, elem)
	a.Equal("hit", elem.Text)
	require.Len(t, elem.Attrs, 1)
	a.Equal("attr", elem.Attrs[0].Name.Local)
	a.Nil(resp.Find(xml.Name{Local: "missing"}))
}
