/*
Package session offers the Notification server session implementation.

A Session drives the command exchange with a Notification server:
version negotiation, credential exchange through the single sign-on
collaborator, server redirection and the initial contact list
synchronization fan-out, classifying further inbound messages once
authenticated.

Session implementation overview

Sessions are created using the New function, providing the transport,
the identity exchange collaborator, the address book service factory
and the inbound message parser along with a session Config. All
collaborators are explicit; the Session holds no ambient state.

The transport collaborator calls OnConnect, OnDisconnect and
HandleCommand as connection events and commands arrive. All session
entry points serialize on a per-session lock, so state transitions
never interleave: asynchronous completions (security token results,
contact list fetches, the authentication timer) re-enter through the
same lock and are discarded when they outlive their authentication
attempt.

Observers subscribe a Listener to receive status change and mail
notification events. Listeners are invoked synchronously on the
session's own execution context, preserving ordering relative to state
transitions, and must not call back into the Session.

Protocol branches left undefined upstream (the final USR
acknowledgment, legacy TWN credentials, forced sign-out and
switchboard redirects) surface msnperr.KindUnsupportedOperation rather
than silently succeeding.
*/
package session
