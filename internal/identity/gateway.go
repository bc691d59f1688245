// Package identity defines the identity gateway surface the application
// consumes: credential checks, account creation, sign-out and session-change
// notifications. The gateway owns credentials and sessions; everything user
// facing lives in the profile store.
package identity

import "context"

// Session is the live authenticated identity.
type Session struct {
	// UID is the opaque identity the session belongs to.
	UID string
	// Email is the sign-in address of the identity.
	Email string
}

// Gateway is the consumed identity provider surface.
type Gateway interface {
	// SignIn authenticates the credentials and returns a session.
	SignIn(ctx context.Context, email, password string) (*Session, error)
	// SignUp creates a new account and returns its session identity.
	SignUp(ctx context.Context, email, password string) (*Session, error)
	// SignOut ends the session of the given identity.
	SignOut(ctx context.Context, uid string) error
	// Subscribe registers a session-change listener and returns its
	// unsubscribe handle. Listeners receive the new session on sign-in and
	// nil on sign-out.
	Subscribe(fn func(*Session)) (unsubscribe func())
}
