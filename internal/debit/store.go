package debit

import (
	"context"

	"github.com/bankcore/debit-card-service/internal/model"
)

// Store is the persistence contract for debit cards. Lookups that miss must
// return an errs.KindNotFound error.
//
// Save must be atomic per document so two concurrent associations against the
// same card cannot silently overwrite each other.
type Store interface {
	Save(ctx context.Context, card *model.DebitCard) error
	FindByID(ctx context.Context, id string) (*model.DebitCard, error)
	FindByCustomerAndPrimaryAccount(ctx context.Context, customerID, accountID string) (*model.DebitCard, error)
	FindByCustomerIDActive(ctx context.Context, customerID string) (*model.DebitCard, error)
}
