package session

import "fmt"

// Status is a Session's (present) state.
type Status int

const (
	// StatusClosed is the initial session state, also entered from any
	// state on transport loss.
	StatusClosed Status = iota
	// StatusOpening is set once the transport connects and the version
	// query has been sent.
	StatusOpening
	// StatusAuthenticating is set once the initial credential query
	// has been sent. The state is held across the asynchronous
	// security token exchange.
	StatusAuthenticating
	// StatusSynchronizing is set when the profile message marks
	// authentication complete and the contact list fetches are issued.
	StatusSynchronizing
	// StatusOpen is set once both contact list fetches have completed.
	StatusOpen
)

func (s Status) String() string {
	switch s {
	case StatusClosed:
		return "closed"
	case StatusOpening:
		return "opening"
	case StatusAuthenticating:
		return "authenticating"
	case StatusSynchronizing:
		return "synchronizing"
	case StatusOpen:
		return "open"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}
