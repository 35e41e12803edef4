package records

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dvloznov/monarch/internal/domain"
	"github.com/dvloznov/monarch/internal/store"
)

// BudgetService mutates the budget collection. New budgets are appended in
// creation order.
type BudgetService struct {
	mu      sync.Mutex
	store   *store.Store
	budgets []domain.Budget
	log     zerolog.Logger
}

// NewBudgetService loads the collection (or its seed default) and becomes
// its sole writer.
func NewBudgetService(ctx context.Context, st *store.Store, log zerolog.Logger) *BudgetService {
	return &BudgetService{
		store:   st,
		budgets: st.LoadBudgets(ctx),
		log:     log,
	}
}

// List returns a snapshot of the collection.
func (s *BudgetService) List(ctx context.Context) []domain.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]domain.Budget, len(s.budgets))
	copy(snapshot, s.budgets)
	return snapshot
}

// Add validates the input, assigns the next id, appends the budget, and
// persists the collection.
func (s *BudgetService) Add(ctx context.Context, in domain.BudgetInput) (domain.Budget, error) {
	if err := in.Validate(); err != nil {
		return domain.Budget{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b := domain.Budget{
		ID:     nextBudgetID(s.budgets),
		Name:   in.Name,
		Amount: in.Amount,
		Spent:  in.Spent,
		Color:  in.Color,
	}
	s.budgets = append(s.budgets, b)
	s.store.SaveBudgets(ctx, s.budgets)

	return b, nil
}

// Update replaces the fields of the budget with the given id. The id itself
// is immutable.
func (s *BudgetService) Update(ctx context.Context, id int, in domain.BudgetInput) (domain.Budget, error) {
	if err := in.Validate(); err != nil {
		return domain.Budget{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.budgets {
		if s.budgets[i].ID != id {
			continue
		}
		s.budgets[i] = domain.Budget{
			ID:     id,
			Name:   in.Name,
			Amount: in.Amount,
			Spent:  in.Spent,
			Color:  in.Color,
		}
		s.store.SaveBudgets(ctx, s.budgets)
		return s.budgets[i], nil
	}
	return domain.Budget{}, notFound("budget", id)
}

// Remove deletes the budget with the given id and persists the collection.
func (s *BudgetService) Remove(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.budgets {
		if s.budgets[i].ID == id {
			s.budgets = append(s.budgets[:i], s.budgets[i+1:]...)
			s.store.SaveBudgets(ctx, s.budgets)
			return nil
		}
	}
	return notFound("budget", id)
}

func nextBudgetID(budgets []domain.Budget) int {
	max := 0
	for _, b := range budgets {
		if b.ID > max {
			max = b.ID
		}
	}
	return max + 1
}
