/*
Package papyon is a set of MSN Notification protocol (MSNP) client
support libraries.

Doing the heavy lifting of session establishment (version negotiation,
credential exchange and server redirection), single sign-on token
handling and SOAP envelope encoding and decoding, these libraries allow
easy Messenger client development on top of any byte-stream transport.

The session state machine consumes wire Commands produced by a transport
collaborator and drives authentication against the single sign-on
service, including derivation of the nonce-bound proof blob from the
messenger security token, construction of the address book service
handles from the contacts token, and the initial contact list
synchronization fan-out.

Switchboard (peer chat) sessions, the HTTPS token exchange itself and
the address book SOAP services are external collaborators reached
through interfaces only.

See the session sub-directory for more information about Session objects
and collaborator interfaces.
*/
package papyon
