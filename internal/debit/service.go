// Package debit implements the debit card orchestration core: the
// precondition validation chain, the waterfall withdrawal orchestrator, and
// the card lifecycle workflows built on them.
package debit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bankcore/debit-card-service/internal/errs"
	"github.com/bankcore/debit-card-service/internal/events"
	"github.com/bankcore/debit-card-service/internal/logging"
	"github.com/bankcore/debit-card-service/internal/model"
)

// Service exposes the debit card workflows.
type Service struct {
	validator    *Validator
	orchestrator *Orchestrator
	store        Store
	publisher    events.Publisher
	logger       logging.Logger
}

// NewService wires the service. A nil publisher disables event emission.
func NewService(validator *Validator, orchestrator *Orchestrator, store Store, publisher events.Publisher, logger logging.Logger) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	if logger == nil {
		logger = logging.NoneLogger{}
	}

	return &Service{
		validator:    validator,
		orchestrator: orchestrator,
		store:        store,
		publisher:    publisher,
		logger:       logger,
	}
}

// CreateCard issues a new debit card for the customer with the given primary
// funding account. The validation chain runs in strict order; the first
// failure aborts the workflow.
func (s *Service) CreateCard(ctx context.Context, customerID, primaryAccountID string) (*model.DebitCard, error) {
	s.logger.Infof("creating debit card for customer %s, primary account %s",
		customerID, primaryAccountID)

	if err := s.validator.ValidateCustomerActive(ctx, customerID); err != nil {
		return nil, err
	}

	if err := s.validator.ValidateAccountActive(ctx, primaryAccountID); err != nil {
		return nil, err
	}

	if err := s.validator.ValidateCardNotExists(ctx, customerID, primaryAccountID); err != nil {
		return nil, err
	}

	card := &model.DebitCard{
		ID:                 uuid.NewString(),
		CustomerID:         customerID,
		PrimaryAccountID:   primaryAccountID,
		AssociatedAccounts: []string{primaryAccountID},
		CardNumber:         GenerateCardNumber(),
		Active:             true,
		CreatedAt:          time.Now().UTC(),
	}

	if err := s.store.Save(ctx, card); err != nil {
		return nil, err
	}

	s.logger.Infof("created debit card %s", card.ID)

	return card, nil
}

// AssociateAccount appends a secondary funding account to the customer's
// active debit card.
func (s *Service) AssociateAccount(ctx context.Context, customerID, accountID string) (*model.DebitCard, error) {
	s.logger.Infof("associating account %s to debit card of customer %s",
		accountID, customerID)

	card, err := s.store.FindByCustomerIDActive(ctx, customerID)
	if err != nil {
		return nil, err
	}

	card, err = s.validator.ValidateAndAssociate(ctx, card, accountID)
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, card); err != nil {
		return nil, err
	}

	s.logger.Infof("account %s associated to debit card %s", accountID, card.ID)

	return card, nil
}

// ProcessWithdrawal validates the request, loads the active card, and runs
// the withdrawal waterfall. The amount check happens before any gateway call.
func (s *Service) ProcessWithdrawal(ctx context.Context, cardID string, amount decimal.Decimal, description string) (*model.WithdrawalReceipt, error) {
	s.logger.Infof("processing withdrawal of %s on debit card %s", amount, cardID)

	if amount.Cmp(decimal.Zero) <= 0 {
		return nil, errs.BusinessRule("amount must be greater than 0")
	}

	card, err := s.store.FindByID(ctx, cardID)
	if err != nil {
		return nil, err
	}

	if !card.Active {
		return nil, errs.BusinessRule("debit card is not active: %s", cardID)
	}

	receipt, err := s.orchestrator.Withdraw(ctx, card, amount, description)
	if err != nil {
		return nil, err
	}

	s.publishWithdrawalCompleted(ctx, receipt)

	return receipt, nil
}

// publishWithdrawalCompleted emits the integration event best-effort. A
// broker failure must never fail a withdrawal that already happened.
func (s *Service) publishWithdrawalCompleted(ctx context.Context, receipt *model.WithdrawalReceipt) {
	event := events.WithdrawalCompleted{
		EventID:       uuid.NewString(),
		TransactionID: receipt.TransactionID,
		DebitCardID:   receipt.DebitCardID,
		AccountID:     receipt.AccountID,
		Amount:        receipt.Amount,
		OccurredAt:    receipt.Timestamp,
	}

	if err := s.publisher.PublishWithdrawalCompleted(ctx, event); err != nil {
		s.logger.Errorf("failed to publish withdrawal event for transaction %s: %v",
			receipt.TransactionID, err)
	}
}

// GetCardByID loads a debit card by its identifier.
func (s *Service) GetCardByID(ctx context.Context, cardID string) (*model.DebitCard, error) {
	return s.store.FindByID(ctx, cardID)
}

// GetActiveCardByCustomer loads the customer's active debit card.
func (s *Service) GetActiveCardByCustomer(ctx context.Context, customerID string) (*model.DebitCard, error) {
	return s.store.FindByCustomerIDActive(ctx, customerID)
}
