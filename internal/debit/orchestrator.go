package debit

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankcore/debit-card-service/internal/errs"
	"github.com/bankcore/debit-card-service/internal/logging"
	"github.com/bankcore/debit-card-service/internal/model"
)

// Withdrawer is the slice of the transaction gateway the orchestrator needs.
type Withdrawer interface {
	Withdraw(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*model.TransactionResult, error)
}

// Orchestrator executes the withdrawal waterfall: accounts are tried in their
// associated order, and only an insufficient-funds decline moves on to the
// next account. Any other failure is treated as systemic and stops the
// waterfall immediately so outages are not masked as funds problems.
type Orchestrator struct {
	transactions Withdrawer
	logger       logging.Logger
}

// NewOrchestrator wires the orchestrator against the transaction gateway.
func NewOrchestrator(transactions Withdrawer, logger logging.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.NoneLogger{}
	}

	return &Orchestrator{transactions: transactions, logger: logger}
}

// Withdraw attempts to debit amount from the card's associated accounts in
// order. The loop is index-driven so the waterfall stays stack-safe for
// arbitrarily long account lists. Callers are expected to have validated the
// amount and the card's active state.
func (o *Orchestrator) Withdraw(ctx context.Context, card *model.DebitCard, amount decimal.Decimal, description string) (*model.WithdrawalReceipt, error) {
	accounts := card.AssociatedAccounts

	for index := 0; index < len(accounts); index++ {
		accountID := accounts[index]

		o.logger.Infof("attempting withdrawal on account %s (%d/%d)",
			accountID, index+1, len(accounts))

		tx, err := o.transactions.Withdraw(ctx, accountID, amount, description)
		if err == nil {
			o.logger.Infof("withdrawal succeeded on account %s, transaction %s",
				accountID, tx.TransactionID)

			return o.buildReceipt(card, tx, accountID, index, amount, description), nil
		}

		if errs.Is(err, errs.KindInsufficientFunds) {
			o.logger.Warnf("insufficient funds on account %s (%d/%d), trying next account",
				accountID, index+1, len(accounts))

			continue
		}

		o.logger.Errorf("unrecoverable error on account %s: %v", accountID, err)

		return nil, err
	}

	o.logger.Errorf("insufficient funds across all %d associated accounts", len(accounts))

	return nil, &errs.AggregateInsufficientFunds{AccountsAttempted: len(accounts)}
}

func (o *Orchestrator) buildReceipt(card *model.DebitCard, tx *model.TransactionResult, accountID string, index int, amount decimal.Decimal, description string) *model.WithdrawalReceipt {
	timestamp := tx.CreatedAt
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	return &model.WithdrawalReceipt{
		TransactionID: tx.TransactionID,
		DebitCardID:   card.ID,
		AccountID:     accountID,
		SequenceIndex: index,
		Amount:        amount,
		Description:   description,
		Status:        tx.Status,
		Timestamp:     timestamp,
	}
}
