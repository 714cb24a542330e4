/*
Package sso contains the single sign-on security token model.

Tokens are produced by an identity exchange collaborator (the HTTPS
RST request itself is out of scope, behind the TokenRequester
interface) and consumed by the session state machine: the messenger
token derives the nonce-bound proof blob completing the USR exchange,
while the contacts token constructs the address book service handles.
*/
package sso
