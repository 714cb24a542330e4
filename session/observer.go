package session

import "github.com/luckyluke/papyon/wire"

// Listener is the session observer interface. Both notifications are
// fire and forget; no acknowledgment is expected, and implementations
// must not call back into the Session.
type Listener interface {
	// StatusChanged fires after every session status transition
	StatusChanged(Status)
	// MailReceived fires for each mail notification message
	MailReceived(*wire.Message)
}

// Subscribe registers a listener for session events
func (s *Session) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Unsubscribe removes a previously subscribed listener
func (s *Session) Unsubscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, listener := range s.listeners {
		if listener == l {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

// setStatus transitions the session status, notifying listeners.
// Callers hold the session lock.
func (s *Session) setStatus(status Status) {
	if s.State.Status == status {
		return
	}
	s.log.Debugf("status %s -> %s", s.State.Status, status)
	s.State.Status = status
	for _, l := range s.listeners {
		l.StatusChanged(status)
	}
}

// emitMail delivers a mail notification to listeners.
// Callers hold the session lock.
func (s *Session) emitMail(msg *wire.Message) {
	for _, l := range s.listeners {
		l.MailReceived(msg)
	}
}
