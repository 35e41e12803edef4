package records

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dvloznov/monarch/internal/auth"
	"github.com/dvloznov/monarch/internal/domain"
	"github.com/dvloznov/monarch/internal/store"
)

// ProfileListener receives the merged profile after every save.
type ProfileListener func(domain.Profile)

// ProfileService merges the identity provider's user metadata with locally
// stored overrides. Local values win for names and the picture; the email
// always comes from the provider and is never stored locally.
type ProfileService struct {
	mu        sync.Mutex
	store     *store.Store
	provider  auth.Provider
	listeners map[int]ProfileListener
	nextID    int
	log       zerolog.Logger
}

// NewProfileService creates a profile service over the store and provider.
// The provider may be nil for anonymous local use.
func NewProfileService(st *store.Store, provider auth.Provider, log zerolog.Logger) *ProfileService {
	return &ProfileService{
		store:     st,
		provider:  provider,
		listeners: make(map[int]ProfileListener),
		log:       log,
	}
}

// Get returns the merged profile for the current session.
func (s *ProfileService) Get(ctx context.Context) domain.Profile {
	stored := s.store.LoadProfile(ctx)
	merged := domain.Profile{
		FirstName:      stored.FirstName,
		LastName:       stored.LastName,
		ProfilePicture: stored.ProfilePicture,
	}

	if s.provider == nil {
		return merged
	}
	session, err := s.provider.GetSession(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to read session for profile")
		return merged
	}
	if session == nil || session.User == nil {
		return merged
	}

	merged.Email = session.User.Email
	if merged.FirstName == "" {
		merged.FirstName = session.User.Metadata.FirstName
	}
	if merged.LastName == "" {
		merged.LastName = session.User.Metadata.LastName
	}
	return merged
}

// Save persists the profile overrides, pushes the name fields to the
// identity provider, and notifies subscribers with the merged result.
// Provider failures degrade to local-only persistence.
func (s *ProfileService) Save(ctx context.Context, profile domain.Profile) domain.Profile {
	profile.FirstName = strings.TrimSpace(profile.FirstName)
	profile.LastName = strings.TrimSpace(profile.LastName)

	// The email is identity-bearing and stays with the provider.
	stored := profile
	stored.Email = ""
	s.store.SaveProfile(ctx, stored)

	if s.provider != nil {
		_, err := s.provider.UpdateMetadata(ctx, auth.Metadata{
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
		})
		if err != nil && err != auth.ErrNotAuthenticated {
			s.log.Error().Err(err).Msg("Failed to push profile metadata to provider")
		}
	}

	merged := s.Get(ctx)
	s.notify(merged)
	return merged
}

// Subscribe registers a listener for profile saves and returns an
// unsubscribe function.
func (s *ProfileService) Subscribe(fn ProfileListener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// notify fans the merged profile out to listeners outside the lock.
func (s *ProfileService) notify(profile domain.Profile) {
	s.mu.Lock()
	listeners := make([]ProfileListener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(profile)
	}
}
