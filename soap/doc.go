/*
Package soap builds and parses the SOAP envelopes used by the single
sign-on exchange.

Requests are built from a method name, an optional method namespace and
a list of typed arguments, then serialized to a declaration-prefixed
UTF-8 document. The Header section is serialized only when it carries at
least one element; the Body always wraps the method element.

Responses are parsed with a streaming decoder that maintains a LIFO
namespace binding stack, snapshotting the bindings in scope onto every
element. Tree parsers discard prefix bindings once parsing completes,
but the token consumer needs them to resolve qualified names appearing
inside attribute values, where no XML parser performs resolution.
*/
package soap
