package session

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/luckyluke/papyon/sso"
	"github.com/luckyluke/papyon/wire"
)

// protocol constants
var (
	protocolVersions = []string{"MSNP15", "MSNP14", "MSNP13", "CVR0"}
	clientInfo       = []string{"0x0409", "winnt", "5.1", "i386", "MSNMSGR", "8.1.0178", "msmsgs"}
)

const (
	// ProductID and ProductKey identify the client build to the
	// server's challenge verification. Nothing in this package sends
	// them; they are published for callers implementing the CHL
	// challenge exchange on top of the session.
	ProductID  = "PROD0114ES4Z%Q5W"
	ProductKey = "PK}_A_0N_K%O?A9S"
)

const defaultAuthTimeout = 60 * time.Second

// Config contains Session configuration
type Config struct {
	// Account is the passport account to authenticate
	Account string
	// Password is the account password
	Password string
	// Versions is the supported protocol version list sent in the
	// version query, most preferred first. Defaults to
	// MSNP15 MSNP14 MSNP13 CVR0.
	Versions []string
	// ClientInfo is the client version report tuple. Defaults to the
	// stock MSNMSGR identification.
	ClientInfo []string
	// Privacy is the initial privacy list setting, "AL" to allow known
	// contacts by default or "BL" to block. Defaults to "AL".
	Privacy string
	// AuthTimeout bounds the security token exchange. A zero value
	// selects the 60s default.
	AuthTimeout time.Duration
	// Logger receives session logging. Defaults to the logrus standard
	// logger.
	Logger logrus.FieldLogger
}

// State contains runtime Session state
type State struct {
	// Status is the session status. Read-only to observers; mutated
	// only by the session itself.
	Status Status
	// ProtocolVersion is the negotiated protocol version. Set from the
	// version negotiation reply; never decreases within a session.
	ProtocolVersion int
	// Contacts is the fetched contact list, populated during
	// synchronization
	Contacts []Contact
	// Memberships is the fetched privacy membership list, populated
	// during synchronization
	Memberships []Membership

	errs []error
}

// Session represents a Notification server session
type Session struct {
	Config *Config
	State  *State

	transport Transport
	requester sso.TokenRequester
	services  ServiceFactory
	parser    MessageParser
	log       logrus.FieldLogger

	mu        sync.Mutex
	handlers  map[string]handlerFunc
	listeners []Listener

	// address book domain handles, set together from the contacts
	// token once authentication yields one
	addressBook AddressBook
	sharing     Sharing

	// generation counts authentication attempts; asynchronous
	// completions carrying a stale generation are discarded
	generation   int
	authNonce    string
	authTimer    *time.Timer
	contactsDone bool
	membersDone  bool

	// newTimer is replaced by tests to control the auth deadline
	newTimer func(time.Duration, func()) *time.Timer
}

type handlerFunc func(*wire.Command) error

// New returns a new Notification Session speaking through transport,
// authenticating via requester and building its address book handles
// with services. parser converts MSG command payloads.
func New(transport Transport, requester sso.TokenRequester, services ServiceFactory,
	parser MessageParser, config Config) *Session {
	if config.Versions == nil {
		config.Versions = protocolVersions
	}
	if config.ClientInfo == nil {
		config.ClientInfo = clientInfo
	}
	if config.Privacy == "" {
		config.Privacy = "AL"
	}
	if config.AuthTimeout == 0 {
		config.AuthTimeout = defaultAuthTimeout
	}
	if config.Logger == nil {
		config.Logger = logrus.StandardLogger()
	}
	s := &Session{
		Config:    &config,
		State:     &State{},
		transport: transport,
		requester: requester,
		services:  services,
		parser:    parser,
		log:       config.Logger,
		newTimer:  time.AfterFunc,
	}
	s.handlers = map[string]handlerFunc{
		"VER": s.handleVER,
		"CVR": s.handleCVR,
		"USR": s.handleUSR,
		"XFR": s.handleXFR,
		"MSG": s.handleMSG,
		"SBS": s.handleSBS,
		"OUT": s.handleOUT,
	}
	return s
}

// Status returns the current session status
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.State.Status
}

// AddressBook returns the address book service handle, nil until
// authentication yields a contacts token
func (s *Session) AddressBook() AddressBook {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addressBook
}

// Sharing returns the sharing service handle, nil until authentication
// yields a contacts token
func (s *Session) Sharing() Sharing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sharing
}

// OnConnect is called by the transport once its connection is
// established. The session sends the version query and enters the
// Opening state.
func (s *Session) OnConnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sendCommand("VER", s.Config.Versions...); err != nil {
		return err
	}
	s.setStatus(StatusOpening)
	return nil
}

// OnDisconnect is called by the transport when its connection is lost.
// The session resets to Closed and invalidates any in-flight
// authentication attempt.
func (s *Session) OnDisconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.abandonAttempt()
	s.setStatus(StatusClosed)
}

// HandleCommand dispatches a received command to its verb handler.
// Unrecognized verbs are ignored. A KindProtocolViolation return is
// fatal to the session; the caller should tear the connection down
// rather than retry.
func (s *Session) HandleCommand(cmd *wire.Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	handler, ok := s.handlers[cmd.Verb]
	if !ok {
		s.log.Debugf("ignoring unhandled command %s", cmd)
		return nil
	}
	err := handler(cmd)
	s.addError(err)
	return err
}

// AddError adds errors to the session state, returning the number of
// non-nil errors added
func (s *Session) AddError(errs ...error) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addError(errs...)
}

func (s *Session) addError(errs ...error) (added int) {
	for _, err := range errs {
		if err != nil {
			s.State.errs = append(s.State.errs, err)
			added++
		}
	}
	return added
}

// Errors returns all session errors
func (s *Session) Errors() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.State.errs
}

// sendCommand sends an outbound command on the transport.
// Callers hold the session lock.
func (s *Session) sendCommand(verb string, args ...string) error {
	cmd := wire.NewCommand(verb, args...)
	s.log.Debugf("-> %s", cmd)
	if err := s.transport.SendCommand(cmd); err != nil {
		return errors.Wrapf(err, "sending %s", verb)
	}
	return nil
}

// abandonAttempt invalidates the in-flight authentication attempt, if
// any. Callers hold the session lock.
func (s *Session) abandonAttempt() {
	s.generation++
	if s.authTimer != nil {
		s.authTimer.Stop()
		s.authTimer = nil
	}
	s.authNonce = ""
}
