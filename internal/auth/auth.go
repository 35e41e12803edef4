// Package auth defines the identity provider boundary. The dashboard only
// needs a session with a user id, email, and display metadata; everything
// else about authentication is the provider's business.
package auth

import (
	"context"
	"errors"
	"time"
)

// Metadata is the display metadata attached to a user by the provider.
type Metadata struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// User is the provider's user as seen by the dashboard.
type User struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	Metadata Metadata `json:"metadata"`
}

// Session is an authenticated session. A nil session means unauthenticated.
type Session struct {
	User        *User     `json:"user"`
	AccessToken string    `json:"access_token,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
}

// ErrNotAuthenticated is returned by operations requiring a session when
// none is active.
var ErrNotAuthenticated = errors.New("auth: not authenticated")

// Listener receives the new session (nil on sign-out) whenever the session
// changes.
type Listener func(*Session)

// Provider is the external identity service. Implementations must be safe
// for concurrent use.
type Provider interface {
	// GetSession returns the current session, or nil when unauthenticated.
	GetSession(ctx context.Context) (*Session, error)

	// OnSessionChange registers a listener and returns an unsubscribe
	// function.
	OnSessionChange(fn Listener) (unsubscribe func())

	// SignUp registers a new user with display metadata and signs them in.
	SignUp(ctx context.Context, email, password string, metadata Metadata) (*Session, error)

	// SignIn authenticates with email and password.
	SignIn(ctx context.Context, email, password string) (*Session, error)

	// SignOut ends the current session.
	SignOut(ctx context.Context) error

	// ResetPassword triggers a password reset flow for the email.
	ResetPassword(ctx context.Context, email string) error

	// UpdateMetadata updates the current user's display metadata and
	// returns the updated user.
	UpdateMetadata(ctx context.Context, metadata Metadata) (*User, error)
}
