// Package store persists the user's record collections behind an opaque
// key-value interface. Every read is defensively validated: missing, corrupt,
// or foreign values fall back to documented defaults, and write failures
// degrade to "not persisted" rather than surfacing to the caller.
package store

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/dvloznov/monarch/internal/domain"
)

// KV is the opaque persistent key-value store. Implementations must treat
// Get of an absent key as (nil, false, nil), not an error.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Namespace holds the storage key for each collection. Passing it explicitly
// keeps key names out of module-level state and lets tests isolate data.
type Namespace struct {
	Transactions string
	Budgets      string
	Goals        string
	Profile      string
	Theme        string
}

// DefaultNamespace returns the key names used by the dashboard.
func DefaultNamespace() Namespace {
	return Namespace{
		Transactions: "monarch_transactions",
		Budgets:      "monarch_budgets",
		Goals:        "monarch_goals",
		Profile:      "user_profile",
		Theme:        "theme",
	}
}

// Store is the record store adapter for one namespace.
type Store struct {
	kv  KV
	ns  Namespace
	log zerolog.Logger
}

// New creates a store over the given KV and namespace.
func New(kv KV, ns Namespace, log zerolog.Logger) *Store {
	return &Store{kv: kv, ns: ns, log: log}
}

// LoadTransactions returns the persisted transactions, or the seed sample
// set when the stored value is absent, unparsable, or an empty sequence.
func (s *Store) LoadTransactions(ctx context.Context) []domain.Transaction {
	var txs []domain.Transaction
	if s.loadList(ctx, s.ns.Transactions, &txs) && len(txs) > 0 {
		return txs
	}
	return domain.SeedTransactions()
}

// SaveTransactions persists the full transaction collection.
func (s *Store) SaveTransactions(ctx context.Context, txs []domain.Transaction) {
	s.save(ctx, s.ns.Transactions, txs)
}

// LoadBudgets returns the persisted budgets, or the seed sample set.
func (s *Store) LoadBudgets(ctx context.Context) []domain.Budget {
	var budgets []domain.Budget
	if s.loadList(ctx, s.ns.Budgets, &budgets) && len(budgets) > 0 {
		return budgets
	}
	return domain.SeedBudgets()
}

// SaveBudgets persists the full budget collection.
func (s *Store) SaveBudgets(ctx context.Context, budgets []domain.Budget) {
	s.save(ctx, s.ns.Budgets, budgets)
}

// LoadGoals returns the persisted goals, or the seed sample set.
func (s *Store) LoadGoals(ctx context.Context) []domain.Goal {
	var goals []domain.Goal
	if s.loadList(ctx, s.ns.Goals, &goals) && len(goals) > 0 {
		return goals
	}
	return domain.SeedGoals()
}

// SaveGoals persists the full goal collection.
func (s *Store) SaveGoals(ctx context.Context, goals []domain.Goal) {
	s.save(ctx, s.ns.Goals, goals)
}

// LoadProfile returns the persisted profile overrides, or an all-empty
// profile when nothing usable is stored.
func (s *Store) LoadProfile(ctx context.Context) domain.Profile {
	raw, found, err := s.kv.Get(ctx, s.ns.Profile)
	if err != nil {
		s.log.Error().Err(err).Str("key", s.ns.Profile).Msg("Failed to read profile")
		return domain.Profile{}
	}
	if !found {
		return domain.Profile{}
	}
	var profile domain.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		s.log.Error().Err(err).Str("key", s.ns.Profile).Msg("Discarding unparsable profile")
		return domain.Profile{}
	}
	return profile
}

// SaveProfile persists the profile overrides.
func (s *Store) SaveProfile(ctx context.Context, profile domain.Profile) {
	s.save(ctx, s.ns.Profile, profile)
}

// LoadTheme returns the persisted theme preference, defaulting to system.
func (s *Store) LoadTheme(ctx context.Context) domain.Theme {
	raw, found, err := s.kv.Get(ctx, s.ns.Theme)
	if err != nil || !found {
		if err != nil {
			s.log.Error().Err(err).Str("key", s.ns.Theme).Msg("Failed to read theme")
		}
		return domain.ThemeSystem
	}
	var theme domain.Theme
	if err := json.Unmarshal(raw, &theme); err != nil || !theme.Valid() {
		return domain.ThemeSystem
	}
	return theme
}

// SaveTheme persists the theme preference.
func (s *Store) SaveTheme(ctx context.Context, theme domain.Theme) {
	s.save(ctx, s.ns.Theme, theme)
}

// loadList reads and decodes a collection key. It reports whether a decoded
// value is available; any read or decode failure is logged and absorbed.
func (s *Store) loadList(ctx context.Context, key string, out interface{}) bool {
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("Failed to read collection")
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("Discarding unparsable collection")
		return false
	}
	return true
}

// save serializes and writes a value. In-memory state remains the source of
// truth for the session, so failures are logged and swallowed.
func (s *Store) save(ctx context.Context, key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("Failed to serialize collection")
		return
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("Collection not persisted")
	}
}
