// Package memory provides an in-memory debit card store for tests and local
// development.
package memory

import (
	"context"
	"sync"

	"github.com/bankcore/debit-card-service/internal/debit"
	"github.com/bankcore/debit-card-service/internal/errs"
	"github.com/bankcore/debit-card-service/internal/model"
)

// Store keeps cards in a map guarded by a RWMutex. Save replaces the whole
// document under the lock, matching the single-document-atomic guarantee the
// service expects from its store.
type Store struct {
	mu    sync.RWMutex
	cards map[string]model.DebitCard
}

// Compile-time assertion: *Store implements debit.Store.
var _ debit.Store = (*Store)(nil)

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{cards: make(map[string]model.DebitCard)}
}

// Save inserts or replaces the card.
func (s *Store) Save(_ context.Context, card *model.DebitCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cards[card.ID] = cloneCard(card)

	return nil
}

// FindByID returns the card or errs.NotFound.
func (s *Store) FindByID(_ context.Context, id string) (*model.DebitCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	card, ok := s.cards[id]
	if !ok {
		return nil, errs.NotFound("debit card not found: %s", id)
	}

	result := cloneCard(&card)

	return &result, nil
}

// FindByCustomerAndPrimaryAccount returns the card keyed by the pair or
// errs.NotFound.
func (s *Store) FindByCustomerAndPrimaryAccount(_ context.Context, customerID, accountID string) (*model.DebitCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, card := range s.cards {
		if card.CustomerID == customerID && card.PrimaryAccountID == accountID {
			result := cloneCard(&card)

			return &result, nil
		}
	}

	return nil, errs.NotFound("no debit card for customer %s and account %s", customerID, accountID)
}

// FindByCustomerIDActive returns the customer's active card or errs.NotFound.
func (s *Store) FindByCustomerIDActive(_ context.Context, customerID string) (*model.DebitCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, card := range s.cards {
		if card.CustomerID == customerID && card.Active {
			result := cloneCard(&card)

			return &result, nil
		}
	}

	return nil, errs.NotFound("no active debit card found for customer: %s", customerID)
}

// cloneCard deep-copies so callers never share the stored slice.
func cloneCard(card *model.DebitCard) model.DebitCard {
	cloned := *card
	cloned.AssociatedAccounts = append([]string(nil), card.AssociatedAccounts...)

	if card.UpdatedAt != nil {
		updatedAt := *card.UpdatedAt
		cloned.UpdatedAt = &updatedAt
	}

	return cloned
}
