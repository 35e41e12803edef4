package records

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dvloznov/monarch/internal/domain"
	"github.com/dvloznov/monarch/internal/store"
)

// GoalService mutates the savings goal collection. New goals are appended
// in creation order.
type GoalService struct {
	mu    sync.Mutex
	store *store.Store
	goals []domain.Goal
	log   zerolog.Logger
}

// NewGoalService loads the collection (or its seed default) and becomes its
// sole writer.
func NewGoalService(ctx context.Context, st *store.Store, log zerolog.Logger) *GoalService {
	return &GoalService{
		store: st,
		goals: st.LoadGoals(ctx),
		log:   log,
	}
}

// List returns a snapshot of the collection.
func (s *GoalService) List(ctx context.Context) []domain.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]domain.Goal, len(s.goals))
	copy(snapshot, s.goals)
	return snapshot
}

// Add validates the input, assigns the next id, appends the goal, and
// persists the collection.
func (s *GoalService) Add(ctx context.Context, in domain.GoalInput) (domain.Goal, error) {
	if err := in.Validate(); err != nil {
		return domain.Goal{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g := domain.Goal{
		ID:     nextGoalID(s.goals),
		Name:   in.Name,
		Target: in.Target,
		Saved:  in.Saved,
		Due:    in.Due,
	}
	s.goals = append(s.goals, g)
	s.store.SaveGoals(ctx, s.goals)

	return g, nil
}

// Update replaces the fields of the goal with the given id. The id itself
// is immutable.
func (s *GoalService) Update(ctx context.Context, id int, in domain.GoalInput) (domain.Goal, error) {
	if err := in.Validate(); err != nil {
		return domain.Goal{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.goals {
		if s.goals[i].ID != id {
			continue
		}
		s.goals[i] = domain.Goal{
			ID:     id,
			Name:   in.Name,
			Target: in.Target,
			Saved:  in.Saved,
			Due:    in.Due,
		}
		s.store.SaveGoals(ctx, s.goals)
		return s.goals[i], nil
	}
	return domain.Goal{}, notFound("goal", id)
}

// Remove deletes the goal with the given id and persists the collection.
func (s *GoalService) Remove(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.goals {
		if s.goals[i].ID == id {
			s.goals = append(s.goals[:i], s.goals[i+1:]...)
			s.store.SaveGoals(ctx, s.goals)
			return nil
		}
	}
	return notFound("goal", id)
}

func nextGoalID(goals []domain.Goal) int {
	max := 0
	for _, g := range goals {
		if g.ID > max {
			max = g.ID
		}
	}
	return max + 1
}
