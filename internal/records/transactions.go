package records

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dvloznov/monarch/internal/domain"
	"github.com/dvloznov/monarch/internal/store"
)

// TransactionService mutates the transaction collection. New transactions
// are prepended so the latest entry surfaces first.
type TransactionService struct {
	mu    sync.Mutex
	store *store.Store
	txs   []domain.Transaction
	log   zerolog.Logger
}

// NewTransactionService loads the collection (or its seed default) and
// becomes its sole writer.
func NewTransactionService(ctx context.Context, st *store.Store, log zerolog.Logger) *TransactionService {
	return &TransactionService{
		store: st,
		txs:   st.LoadTransactions(ctx),
		log:   log,
	}
}

// List returns a snapshot of the collection.
func (s *TransactionService) List(ctx context.Context) []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]domain.Transaction, len(s.txs))
	copy(snapshot, s.txs)
	return snapshot
}

// Add validates the input, assigns the next id, prepends the transaction,
// and persists the collection.
func (s *TransactionService) Add(ctx context.Context, in domain.TransactionInput) (domain.Transaction, error) {
	if err := in.Validate(); err != nil {
		return domain.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := domain.Transaction{
		ID:       nextTransactionID(s.txs),
		Merchant: in.Merchant,
		Category: in.Category,
		Amount:   in.Amount,
		Date:     in.Date,
	}
	s.txs = append([]domain.Transaction{t}, s.txs...)
	s.store.SaveTransactions(ctx, s.txs)

	return t, nil
}

// Update replaces the fields of the transaction with the given id. The id
// itself is immutable.
func (s *TransactionService) Update(ctx context.Context, id int, in domain.TransactionInput) (domain.Transaction, error) {
	if err := in.Validate(); err != nil {
		return domain.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.txs {
		if s.txs[i].ID != id {
			continue
		}
		s.txs[i] = domain.Transaction{
			ID:       id,
			Merchant: in.Merchant,
			Category: in.Category,
			Amount:   in.Amount,
			Date:     in.Date,
		}
		s.store.SaveTransactions(ctx, s.txs)
		return s.txs[i], nil
	}
	return domain.Transaction{}, notFound("transaction", id)
}

// Remove deletes the transaction with the given id and persists the
// collection.
func (s *TransactionService) Remove(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.txs {
		if s.txs[i].ID == id {
			s.txs = append(s.txs[:i], s.txs[i+1:]...)
			s.store.SaveTransactions(ctx, s.txs)
			return nil
		}
	}
	return notFound("transaction", id)
}

func nextTransactionID(txs []domain.Transaction) int {
	max := 0
	for _, t := range txs {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}
