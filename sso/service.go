package sso

// LiveService identifies a service domain a security token can be
// requested for. Address doubles as the match key against the token
// service addresses found in the RST response; PolicyRef is the policy
// reference sent in the token request.
type LiveService struct {
	Address   string
	PolicyRef string
}

var (
	// MessengerClear is the messenger service domain whose token
	// derives the USR proof blob
	MessengerClear = LiveService{Address: "messengerclear.live.com", PolicyRef: "MBI_KEY_OLD"}
	// Contacts is the address book service domain
	Contacts = LiveService{Address: "contacts.msn.com", PolicyRef: "MBI"}
	// Messenger is the plain messenger service domain
	Messenger = LiveService{Address: "messenger.msn.com", PolicyRef: "?id=507"}
)
