package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bankcore/debit-card-service/internal/errs"
	"github.com/bankcore/debit-card-service/internal/model"
	"github.com/bankcore/debit-card-service/internal/resilience"
)

// ErrorCodeInsufficientFunds is the structured discriminator the transaction
// service reports for funds declines. Preferred over message sniffing.
const ErrorCodeInsufficientFunds = "INSUFFICIENT_FUNDS"

// insufficientFundsMarkers are the free-text indicators accepted as a
// defensive fallback when the transaction service omits the error code.
var insufficientFundsMarkers = []string{
	"insufficient funds",
	"insufficient balance",
}

// TransactionClient is the raw transport client for the transaction service.
type TransactionClient interface {
	Withdraw(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*model.TransactionResult, error)
}

// TransactionGateway wraps a TransactionClient with the resilience policy
// and raises funds declines as the insufficient-funds domain error so the
// withdrawal waterfall can branch on error kind.
type TransactionGateway struct {
	caller *resilience.Caller
	client TransactionClient
}

// NewTransactionGateway builds the gateway around its dedicated caller.
func NewTransactionGateway(caller *resilience.Caller, client TransactionClient) *TransactionGateway {
	return &TransactionGateway{caller: caller, client: client}
}

// Withdraw debits amount from accountID. A FAILED result whose error code or
// message indicates a funds decline comes back as errs.KindInsufficientFunds;
// any other FAILED result counts as an infrastructure failure against the
// transaction service breaker.
func (g *TransactionGateway) Withdraw(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*model.TransactionResult, error) {
	result, err := g.caller.Invoke(ctx, func(ctx context.Context) (any, error) {
		tx, err := g.client.Withdraw(ctx, accountID, amount, description)
		if err != nil {
			return nil, err
		}

		if tx.Status == model.StatusFailed {
			if isInsufficientFunds(tx) {
				return nil, errs.InsufficientFunds(
					"insufficient funds in account %s: %s", accountID, tx.ErrorMessage)
			}

			return nil, fmt.Errorf("transaction failed on account %s: %s", accountID, tx.ErrorMessage)
		}

		return tx, nil
	})
	if err != nil {
		return nil, err
	}

	tx, ok := result.(*model.TransactionResult)
	if !ok {
		return nil, fmt.Errorf("transaction gateway: unexpected result type %T", result)
	}

	return tx, nil
}

// isInsufficientFunds prefers the structured error code and falls back to
// message matching only when the code is absent.
func isInsufficientFunds(tx *model.TransactionResult) bool {
	if tx.ErrorCode != "" {
		return tx.ErrorCode == ErrorCodeInsufficientFunds
	}

	message := strings.ToLower(tx.ErrorMessage)
	for _, marker := range insufficientFundsMarkers {
		if strings.Contains(message, marker) {
			return true
		}
	}

	return false
}
