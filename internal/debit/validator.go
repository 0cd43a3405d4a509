package debit

import (
	"context"
	"time"

	"github.com/bankcore/debit-card-service/internal/errs"
	"github.com/bankcore/debit-card-service/internal/logging"
	"github.com/bankcore/debit-card-service/internal/model"
)

// CustomerFetcher is the slice of the customer gateway the validator needs.
type CustomerFetcher interface {
	GetByID(ctx context.Context, customerID string) (*model.Customer, error)
}

// AccountFetcher is the slice of the account gateway the validator needs.
type AccountFetcher interface {
	GetByID(ctx context.Context, accountID string) (*model.Account, error)
}

// Validator runs the precondition chain ahead of card mutations. Checks
// compose in strict sequence and short-circuit on the first failure.
type Validator struct {
	customers CustomerFetcher
	accounts  AccountFetcher
	store     Store
	logger    logging.Logger
}

// NewValidator wires the validator against its collaborators.
func NewValidator(customers CustomerFetcher, accounts AccountFetcher, store Store, logger logging.Logger) *Validator {
	if logger == nil {
		logger = logging.NoneLogger{}
	}

	return &Validator{customers: customers, accounts: accounts, store: store, logger: logger}
}

// ValidateCustomerActive checks the customer exists and is active.
func (v *Validator) ValidateCustomerActive(ctx context.Context, customerID string) error {
	customer, err := v.customers.GetByID(ctx, customerID)
	if err != nil {
		return err
	}

	if !customer.Active {
		return errs.BusinessRule("customer is inactive: %s", customerID)
	}

	v.logger.Debugf("customer %s is active", customerID)

	return nil
}

// ValidateAccountActive checks the account exists and is active.
func (v *Validator) ValidateAccountActive(ctx context.Context, accountID string) error {
	account, err := v.accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}

	if !account.Active {
		return errs.BusinessRule("account is inactive: %s", accountID)
	}

	v.logger.Debugf("account %s is active", accountID)

	return nil
}

// ValidateCardNotExists rejects creation when the customer already holds a
// card for the given primary account.
func (v *Validator) ValidateCardNotExists(ctx context.Context, customerID, accountID string) error {
	_, err := v.store.FindByCustomerAndPrimaryAccount(ctx, customerID, accountID)
	if err != nil {
		if errs.Is(err, errs.KindNotFound) {
			return nil
		}

		return err
	}

	v.logger.Warnf("customer %s already has a debit card for account %s", customerID, accountID)

	return errs.BusinessRule("customer already has a debit card for this account")
}

// ValidateAndAssociate validates accountID is active and not yet linked, then
// appends it and stamps UpdatedAt. The card is left untouched on any failure.
// Persisting the returned card is the caller's responsibility.
func (v *Validator) ValidateAndAssociate(ctx context.Context, card *model.DebitCard, accountID string) (*model.DebitCard, error) {
	if err := v.ValidateAccountActive(ctx, accountID); err != nil {
		return nil, err
	}

	if card.HasAssociatedAccount(accountID) {
		return nil, errs.BusinessRule(
			"account %s is already associated with debit card %s", accountID, card.ID)
	}

	now := time.Now().UTC()
	card.AssociatedAccounts = append(card.AssociatedAccounts, accountID)
	card.UpdatedAt = &now

	v.logger.Debugf("account %s appended to debit card %s", accountID, card.ID)

	return card, nil
}
