package debit

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankcore/debit-card-service/internal/errs"
	"github.com/bankcore/debit-card-service/internal/model"
)

type fakeCustomers struct {
	customers map[string]*model.Customer
	err       error
	calls     int
}

func (f *fakeCustomers) GetByID(_ context.Context, customerID string) (*model.Customer, error) {
	f.calls++

	if f.err != nil {
		return nil, f.err
	}

	customer, ok := f.customers[customerID]
	if !ok {
		return nil, errs.NotFound("customer not found: %s", customerID)
	}

	return customer, nil
}

type fakeAccounts struct {
	accounts map[string]*model.Account
	err      error
	calls    int
}

func (f *fakeAccounts) GetByID(_ context.Context, accountID string) (*model.Account, error) {
	f.calls++

	if f.err != nil {
		return nil, f.err
	}

	account, ok := f.accounts[accountID]
	if !ok {
		return nil, errs.NotFound("account not found: %s", accountID)
	}

	return account, nil
}

type fakeStore struct {
	cards     map[string]*model.DebitCard
	saveErr   error
	saved     []*model.DebitCard
	findCalls int
}

func newFakeStore(cards ...*model.DebitCard) *fakeStore {
	store := &fakeStore{cards: make(map[string]*model.DebitCard)}
	for _, card := range cards {
		store.cards[card.ID] = card
	}

	return store
}

func (f *fakeStore) Save(_ context.Context, card *model.DebitCard) error {
	if f.saveErr != nil {
		return f.saveErr
	}

	f.saved = append(f.saved, card)
	f.cards[card.ID] = card

	return nil
}

func (f *fakeStore) FindByID(_ context.Context, id string) (*model.DebitCard, error) {
	f.findCalls++

	card, ok := f.cards[id]
	if !ok {
		return nil, errs.NotFound("debit card not found: %s", id)
	}

	return card, nil
}

func (f *fakeStore) FindByCustomerAndPrimaryAccount(_ context.Context, customerID, accountID string) (*model.DebitCard, error) {
	f.findCalls++

	for _, card := range f.cards {
		if card.CustomerID == customerID && card.PrimaryAccountID == accountID {
			return card, nil
		}
	}

	return nil, errs.NotFound("no debit card for customer %s and account %s", customerID, accountID)
}

func (f *fakeStore) FindByCustomerIDActive(_ context.Context, customerID string) (*model.DebitCard, error) {
	f.findCalls++

	for _, card := range f.cards {
		if card.CustomerID == customerID && card.Active {
			return card, nil
		}
	}

	return nil, errs.NotFound("no active debit card found for customer: %s", customerID)
}

// withdrawalOutcome scripts the result for one account in the waterfall.
type withdrawalOutcome struct {
	result *model.TransactionResult
	err    error
}

type fakeWithdrawer struct {
	outcomes map[string]withdrawalOutcome
	attempts []string
}

func (f *fakeWithdrawer) Withdraw(_ context.Context, accountID string, _ decimal.Decimal, _ string) (*model.TransactionResult, error) {
	f.attempts = append(f.attempts, accountID)

	outcome, ok := f.outcomes[accountID]
	if !ok {
		return &model.TransactionResult{
			TransactionID: "tx-" + accountID,
			Status:        model.StatusCompleted,
			CreatedAt:     time.Now().UTC(),
		}, nil
	}

	return outcome.result, outcome.err
}

func activeCard(id, customerID string, accounts ...string) *model.DebitCard {
	primary := ""
	if len(accounts) > 0 {
		primary = accounts[0]
	}

	return &model.DebitCard{
		ID:                 id,
		CustomerID:         customerID,
		PrimaryAccountID:   primary,
		AssociatedAccounts: accounts,
		CardNumber:         "****-****-****-0001",
		Active:             true,
		CreatedAt:          time.Now().UTC(),
	}
}
