package sso

// Result is the outcome of a token request, delivered to the done
// callback. Nonce echoes the challenge the request was issued for so
// the consumer can bind proofs to the right authentication attempt.
type Result struct {
	Nonce  string
	Tokens []SecurityToken
	Err    error
}

// TokenRequester is the identity exchange collaborator interface.
//
// RequestTokens issues a federated token request for the given service
// domains and must return without blocking; done fires exactly once
// with the outcome, from any goroutine, after RequestTokens has
// returned. A request is never retried by the caller; a failed
// exchange fails the in-flight authentication attempt.
type TokenRequester interface {
	RequestTokens(account, password, nonce string, done func(Result), services ...LiveService)
}
