package gateway

import (
	"context"
	"fmt"

	"github.com/bankcore/debit-card-service/internal/model"
	"github.com/bankcore/debit-card-service/internal/resilience"
)

// AccountClient is the raw transport client for the account service.
// Implementations must return an errs.NotFound error when the account does
// not exist.
type AccountClient interface {
	GetAccount(ctx context.Context, accountID string) (*model.Account, error)
}

// AccountGateway wraps an AccountClient with the resilience policy.
type AccountGateway struct {
	caller *resilience.Caller
	client AccountClient
}

// NewAccountGateway builds the gateway around its dedicated caller.
func NewAccountGateway(caller *resilience.Caller, client AccountClient) *AccountGateway {
	return &AccountGateway{caller: caller, client: client}
}

// GetByID fetches an account. Returns errs.NotFound when absent and
// errs.Unavailable when the account service cannot be reached.
func (g *AccountGateway) GetByID(ctx context.Context, accountID string) (*model.Account, error) {
	result, err := g.caller.Invoke(ctx, func(ctx context.Context) (any, error) {
		return g.client.GetAccount(ctx, accountID)
	})
	if err != nil {
		return nil, err
	}

	account, ok := result.(*model.Account)
	if !ok {
		return nil, fmt.Errorf("account gateway: unexpected result type %T", result)
	}

	return account, nil
}
