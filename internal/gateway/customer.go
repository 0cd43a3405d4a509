// Package gateway exposes typed adapters for the customer, account, and
// transaction services. Every call goes through a resilience.Caller so
// timeouts, retries, and the per-service circuit breaker apply uniformly.
package gateway

import (
	"context"
	"fmt"

	"github.com/bankcore/debit-card-service/internal/model"
	"github.com/bankcore/debit-card-service/internal/resilience"
)

// CustomerClient is the raw transport client for the customer service.
// Implementations must return an errs.NotFound error when the customer does
// not exist.
type CustomerClient interface {
	GetCustomer(ctx context.Context, customerID string) (*model.Customer, error)
}

// CustomerGateway wraps a CustomerClient with the resilience policy.
type CustomerGateway struct {
	caller *resilience.Caller
	client CustomerClient
}

// NewCustomerGateway builds the gateway around its dedicated caller.
func NewCustomerGateway(caller *resilience.Caller, client CustomerClient) *CustomerGateway {
	return &CustomerGateway{caller: caller, client: client}
}

// GetByID fetches a customer. Returns errs.NotFound when absent and
// errs.Unavailable when the customer service cannot be reached.
func (g *CustomerGateway) GetByID(ctx context.Context, customerID string) (*model.Customer, error) {
	result, err := g.caller.Invoke(ctx, func(ctx context.Context) (any, error) {
		return g.client.GetCustomer(ctx, customerID)
	})
	if err != nil {
		return nil, err
	}

	customer, ok := result.(*model.Customer)
	if !ok {
		return nil, fmt.Errorf("customer gateway: unexpected result type %T", result)
	}

	return customer, nil
}
