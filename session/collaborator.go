package session

import (
	"github.com/luckyluke/papyon/sso"
	"github.com/luckyluke/papyon/wire"
)

// Transport is the command transport collaborator interface. The
// transport owns the byte stream and the command line framing; the
// Session owns everything above it.
//
// The transport calls the Session's OnConnect, OnDisconnect and
// HandleCommand entry points as connection events and inbound commands
// arrive.
type Transport interface {
	// SendCommand sends an outbound command
	SendCommand(*wire.Command) error
	// ResetConnection tears the connection down and re-establishes it
	// at the new address. In-flight reads on the old connection are
	// discarded; the session object persists across the reset.
	ResetConnection(host string, port int) error
	// Server returns the address of the currently connected server
	Server() (host string, port int)
}

// Contact is a single address book entry
type Contact struct {
	Account     string
	DisplayName string
}

// Membership is a single privacy list membership entry
type Membership struct {
	Role    string
	Account string
}

// AddressBook is the address book service collaborator, constructed
// from a contacts domain security token.
//
// FetchAllContacts must not block; done fires exactly once, from any
// goroutine, after FetchAllContacts has returned.
type AddressBook interface {
	FetchAllContacts(done func([]Contact, error))
}

// Sharing is the membership (privacy list) service collaborator,
// constructed from a contacts domain security token.
//
// FetchMembership must not block; done fires exactly once, from any
// goroutine, after FetchMembership has returned.
type Sharing interface {
	FetchMembership(done func([]Membership, error))
}

// ServiceFactory constructs the address book domain service handles
// from a contacts security token. The Session builds both handles from
// the same token and assigns them together.
type ServiceFactory interface {
	NewAddressBook(sso.SecurityToken) AddressBook
	NewSharing(sso.SecurityToken) Sharing
}

// MessageParser converts a MSG command payload into a Message
type MessageParser interface {
	Parse(*wire.Command) (*wire.Message, error)
}
