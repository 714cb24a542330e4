package session

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/luckyluke/papyon/msnperr"
	"github.com/luckyluke/papyon/sso"
	"github.com/luckyluke/papyon/wire"
)

const (
	contentTypeProfile      = "text/x-msmsgsprofile"
	contentTypeInitialEmail = "text/x-msmsgsinitialemailnotification"
	contentTypeEmail        = "text/x-msmsgsemailnotification"
)

// handleVER records the negotiated protocol version and sends the
// client version report. The server echoes the mutually supported
// version list, most preferred first.
func (s *Session) handleVER(cmd *wire.Command) error {
	if len(cmd.Args) < 2 {
		return msnperr.ProtocolViolation(msnperr.WithVerb("VER"),
			msnperr.WithMessage("invalid version reply "+cmd.String()))
	}
	version, err := strconv.Atoi(strings.TrimPrefix(cmd.Arg(0), "MSNP"))
	if err != nil {
		return msnperr.ProtocolViolation(msnperr.WithVerb("VER"),
			msnperr.WithMessage("unparsable version "+cmd.Arg(0)))
	}
	// the negotiated version never decreases within a session
	if version > s.State.ProtocolVersion {
		s.State.ProtocolVersion = version
	}
	args := append(append([]string{}, s.Config.ClientInfo...), s.Config.Account)
	return s.sendCommand("CVR", args...)
}

// handleCVR chooses the authentication method from the negotiated
// version and sends the initial credential query
func (s *Session) handleCVR(cmd *wire.Command) error {
	method := "SSO"
	if s.State.ProtocolVersion < 15 {
		method = "TWN"
	}
	if err := s.sendCommand("USR", method, "I", s.Config.Account); err != nil {
		return err
	}
	s.setStatus(StatusAuthenticating)
	return nil
}

// handleUSR processes a credential exchange reply. A server challenge
// starts the asynchronous security token exchange; its completion
// re-enters through onTokenResult.
func (s *Session) handleUSR(cmd *wire.Command) error {
	if n := len(cmd.Args); n != 3 && n != 4 {
		return msnperr.ProtocolViolation(msnperr.WithVerb("USR"),
			msnperr.WithMessage("invalid argument count in "+cmd.String()))
	}
	if cmd.Arg(0) == "OK" {
		return msnperr.UnsupportedOperation("final USR acknowledgment", msnperr.WithVerb("USR"))
	}
	if cmd.Arg(1) != "S" {
		s.log.Debugf("ignoring USR reply %s", cmd)
		return nil
	}
	switch cmd.Arg(0) {
	case "SSO":
		if len(cmd.Args) != 4 {
			return msnperr.ProtocolViolation(msnperr.WithVerb("USR"),
				msnperr.WithMessage("SSO challenge missing nonce"))
		}
		nonce := cmd.Arg(3)
		s.abandonAttempt()
		gen := s.generation
		s.authNonce = nonce
		s.authTimer = s.newTimer(s.Config.AuthTimeout, func() { s.onAuthTimeout(gen) })
		s.requester.RequestTokens(s.Config.Account, s.Config.Password, nonce,
			func(result sso.Result) { s.onTokenResult(gen, result) },
			sso.MessengerClear, sso.Contacts)
		return nil
	case "TWN":
		return msnperr.UnsupportedOperation("TWN authentication", msnperr.WithVerb("USR"))
	default:
		s.log.Debugf("ignoring USR challenge method %s", cmd.Arg(0))
		return nil
	}
}

// onTokenResult completes (or fails) the in-flight authentication
// attempt from the security token exchange outcome. Results from an
// abandoned attempt are discarded.
func (s *Session) onTokenResult(gen int, result sso.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.log.Debugf("discarding stale token result for attempt %d", gen)
		return
	}
	nonce := s.authNonce
	s.abandonAttempt()

	if result.Err != nil {
		s.addError(errors.Wrap(result.Err, "security token request"))
		return
	}
	clearToken, ok := sso.FindToken(result.Tokens, sso.MessengerClear)
	if !ok {
		s.addError(msnperr.ProtocolViolation(msnperr.WithVerb("USR"),
			msnperr.WithMessage("no messenger token in response")))
		return
	}
	contactsToken, ok := sso.FindToken(result.Tokens, sso.Contacts)
	if !ok {
		s.addError(msnperr.ProtocolViolation(msnperr.WithVerb("USR"),
			msnperr.WithMessage("no contacts token in response")))
		return
	}
	blob, err := clearToken.DeriveResponse(nonce)
	if err != nil {
		s.addError(msnperr.ProtocolViolation(msnperr.WithVerb("USR"), msnperr.WithCause(err)))
		return
	}
	// both handles come from the same token and are assigned together
	s.addressBook = s.services.NewAddressBook(contactsToken)
	s.sharing = s.services.NewSharing(contactsToken)
	s.addError(s.sendCommand("USR", "SSO", "S", clearToken.Token, blob))
}

// onAuthTimeout fails an authentication attempt whose token exchange
// outlived the configured deadline
func (s *Session) onAuthTimeout(gen int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	s.abandonAttempt()
	s.addError(msnperr.Timeout("security token request", msnperr.WithVerb("USR")))
}

// handleXFR processes a server redirect. Notification server redirects
// reset the transport to the new address; switchboard redirects belong
// to a switchboard component.
func (s *Session) handleXFR(cmd *wire.Command) error {
	if len(cmd.Args) < 2 {
		return msnperr.ProtocolViolation(msnperr.WithVerb("XFR"),
			msnperr.WithMessage("invalid redirect "+cmd.String()))
	}
	if cmd.Arg(0) != "NS" {
		return msnperr.UnsupportedOperation("switchboard redirect", msnperr.WithVerb("XFR"))
	}
	host, port := splitHostPort(cmd.Arg(1))
	if port == 0 {
		_, port = s.transport.Server()
	}
	s.log.Debugf("<-> redirecting to %s", cmd.Arg(1))
	return s.transport.ResetConnection(host, port)
}

// splitHostPort splits "host:port", returning port 0 when the address
// carries no parsable port
func splitHostPort(addr string) (string, int) {
	host, portStr, found := strings.Cut(addr, ":")
	if !found {
		return addr, 0
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return addr, 0
	}
	return host, port
}

// handleMSG classifies an inbound application message by content type
func (s *Session) handleMSG(cmd *wire.Command) error {
	msg, err := s.parser.Parse(cmd)
	if err != nil {
		return msnperr.ProtocolViolation(msnperr.WithVerb("MSG"), msnperr.WithCause(err))
	}
	switch msg.ContentType {
	case contentTypeProfile:
		return s.startSynchronization()
	case contentTypeInitialEmail, contentTypeEmail:
		s.emitMail(msg)
		return nil
	default:
		s.log.Debugf("ignoring message with content type %q", msg.ContentType)
		return nil
	}
}

// startSynchronization runs the post-authentication setup: the privacy
// list configuration and the two independent contact list fetches.
// Their completions re-enter through onContacts and onMembership; the
// session opens once both have completed.
func (s *Session) startSynchronization() error {
	if s.State.ProtocolVersion < 15 {
		return msnperr.UnsupportedOperation("legacy contact synchronization", msnperr.WithVerb("MSG"))
	}
	if s.addressBook == nil || s.sharing == nil {
		return msnperr.ProtocolViolation(msnperr.WithVerb("MSG"),
			msnperr.WithMessage("profile message before authentication"))
	}
	if err := s.sendCommand("BLP", s.Config.Privacy); err != nil {
		return err
	}
	s.setStatus(StatusSynchronizing)
	gen := s.generation
	s.contactsDone, s.membersDone = false, false
	s.addressBook.FetchAllContacts(func(contacts []Contact, err error) {
		s.onContacts(gen, contacts, err)
	})
	s.sharing.FetchMembership(func(members []Membership, err error) {
		s.onMembership(gen, members, err)
	})
	return nil
}

func (s *Session) onContacts(gen int, contacts []Contact, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation || s.contactsDone {
		return
	}
	if s.addError(errors.Wrap(err, "fetching contact list")) > 0 {
		return
	}
	s.State.Contacts = contacts
	s.contactsDone = true
	s.maybeOpen()
}

func (s *Session) onMembership(gen int, members []Membership, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation || s.membersDone {
		return
	}
	if s.addError(errors.Wrap(err, "fetching membership list")) > 0 {
		return
	}
	s.State.Memberships = members
	s.membersDone = true
	s.maybeOpen()
}

// maybeOpen opens the session once both synchronization fetches have
// completed. Callers hold the session lock.
func (s *Session) maybeOpen() {
	if s.contactsDone && s.membersDone && s.State.Status == StatusSynchronizing {
		s.setStatus(StatusOpen)
	}
}

// handleSBS ignores the unknown SBS command
func (s *Session) handleSBS(cmd *wire.Command) error { return nil }

// handleOUT processes a server forced sign-out. The server closes the
// transport after OUT; the disconnect path performs the Closed reset.
func (s *Session) handleOUT(cmd *wire.Command) error {
	return msnperr.UnsupportedOperation("forced sign-out", msnperr.WithVerb("OUT"))
}
