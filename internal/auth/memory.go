package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// sessionTTL bounds how long an in-memory session token is advertised as
// valid. The provider does not enforce it; real providers do.
const sessionTTL = time.Hour

// MemoryProvider is an in-memory Provider for local development and tests.
// Accounts and sessions live in process memory and are lost on restart.
type MemoryProvider struct {
	mu        sync.RWMutex
	accounts  map[string]*account // keyed by lowercased email
	session   *Session
	listeners map[int]Listener
	nextID    int
}

type account struct {
	id       string
	email    string
	password string
	metadata Metadata
}

// NewMemoryProvider creates an empty in-memory identity provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		accounts:  make(map[string]*account),
		listeners: make(map[int]Listener),
	}
}

// GetSession implements the Provider interface.
func (p *MemoryProvider) GetSession(ctx context.Context) (*Session, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return copySession(p.session), nil
}

// OnSessionChange implements the Provider interface.
func (p *MemoryProvider) OnSessionChange(fn Listener) func() {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++
	p.listeners[id] = fn

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.listeners, id)
	}
}

// SignUp implements the Provider interface.
func (p *MemoryProvider) SignUp(ctx context.Context, email, password string, metadata Metadata) (*Session, error) {
	key := normalizeEmail(email)
	if key == "" {
		return nil, fmt.Errorf("auth: email is required")
	}
	if password == "" {
		return nil, fmt.Errorf("auth: password is required")
	}

	p.mu.Lock()
	if _, exists := p.accounts[key]; exists {
		p.mu.Unlock()
		return nil, fmt.Errorf("auth: account already exists for %s", key)
	}
	acct := &account{
		id:       uuid.NewString(),
		email:    key,
		password: password,
		metadata: metadata,
	}
	p.accounts[key] = acct
	session := p.setSessionLocked(acct)
	listeners := p.snapshotListenersLocked()
	p.mu.Unlock()

	notify(listeners, session)
	return copySession(session), nil
}

// SignIn implements the Provider interface.
func (p *MemoryProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	key := normalizeEmail(email)

	p.mu.Lock()
	acct, exists := p.accounts[key]
	if !exists || acct.password != password {
		p.mu.Unlock()
		return nil, fmt.Errorf("auth: invalid login credentials")
	}
	session := p.setSessionLocked(acct)
	listeners := p.snapshotListenersLocked()
	p.mu.Unlock()

	notify(listeners, session)
	return copySession(session), nil
}

// SignOut implements the Provider interface.
func (p *MemoryProvider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	p.session = nil
	listeners := p.snapshotListenersLocked()
	p.mu.Unlock()

	notify(listeners, nil)
	return nil
}

// ResetPassword implements the Provider interface. The in-memory provider
// has no mail delivery; it only verifies the account exists.
func (p *MemoryProvider) ResetPassword(ctx context.Context, email string) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if _, exists := p.accounts[normalizeEmail(email)]; !exists {
		return fmt.Errorf("auth: no account for %s", normalizeEmail(email))
	}
	return nil
}

// UpdateMetadata implements the Provider interface.
func (p *MemoryProvider) UpdateMetadata(ctx context.Context, metadata Metadata) (*User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session == nil || p.session.User == nil {
		return nil, ErrNotAuthenticated
	}

	acct := p.accounts[p.session.User.Email]
	acct.metadata = metadata
	p.session.User.Metadata = metadata

	user := *p.session.User
	return &user, nil
}

func (p *MemoryProvider) setSessionLocked(acct *account) *Session {
	p.session = &Session{
		User: &User{
			ID:       acct.id,
			Email:    acct.email,
			Metadata: acct.metadata,
		},
		AccessToken: uuid.NewString(),
		ExpiresAt:   time.Now().Add(sessionTTL),
	}
	return p.session
}

func (p *MemoryProvider) snapshotListenersLocked() []Listener {
	listeners := make([]Listener, 0, len(p.listeners))
	for _, fn := range p.listeners {
		listeners = append(listeners, fn)
	}
	return listeners
}

// notify fans the session change out to listeners outside the lock, so a
// listener may call back into the provider.
func notify(listeners []Listener, session *Session) {
	for _, fn := range listeners {
		fn(copySession(session))
	}
}

func copySession(s *Session) *Session {
	if s == nil {
		return nil
	}
	cp := *s
	if s.User != nil {
		user := *s.User
		cp.User = &user
	}
	return &cp
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Ensure MemoryProvider implements the Provider interface.
var _ Provider = (*MemoryProvider)(nil)
