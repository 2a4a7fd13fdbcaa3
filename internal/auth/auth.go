package auth

import (
	"context"
)

// Profile holds the identity provider's view of the current user.
type Profile struct {
	Subject string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// State is the authentication state observed by the UI and the API client.
type State struct {
	Loading       bool
	Authenticated bool
	Profile       *Profile
}

// Gate bridges to the identity provider. The API client uses it to decide
// whether to attach a bearer token; the UI subscribes to state changes.
type Gate interface {
	// State returns the current authentication state.
	State() State
	// Token returns a bearer token, refreshing silently when needed. It
	// returns an empty string when no token is available; it never errors
	// to the caller.
	Token(ctx context.Context) string
	// Subscribe registers fn for state notifications. fn is invoked
	// immediately with the current state and synchronously on every
	// subsequent change. The returned function cancels the subscription.
	Subscribe(fn func(State)) func()
}

// Disabled is the gate used when no identity provider is configured. It
// reports authenticated so that read operations are not short-circuited,
// and yields no token so requests carry no Authorization header.
type Disabled struct{}

// State implements Gate.
func (Disabled) State() State { return State{Authenticated: true} }

// Token implements Gate.
func (Disabled) Token(context.Context) string { return "" }

// Subscribe implements Gate. The state never changes.
func (Disabled) Subscribe(fn func(State)) func() {
	fn(State{Authenticated: true})
	return func() {}
}
