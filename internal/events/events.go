// Package events defines the integration events the service emits and the
// publisher contract they go out through.
package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalCompleted is emitted after a waterfall withdrawal succeeds.
type WithdrawalCompleted struct {
	EventID       string          `json:"eventId"`
	TransactionID string          `json:"transactionId"`
	DebitCardID   string          `json:"debitCardId"`
	AccountID     string          `json:"accountId"`
	Amount        decimal.Decimal `json:"amount"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

// Publisher delivers integration events. Publishing is best-effort from the
// service's point of view; a failed publish never fails the withdrawal.
type Publisher interface {
	PublishWithdrawalCompleted(ctx context.Context, event WithdrawalCompleted) error
}

// NopPublisher discards every event. Used when no broker is configured.
type NopPublisher struct{}

// PublishWithdrawalCompleted drops the event.
func (NopPublisher) PublishWithdrawalCompleted(context.Context, WithdrawalCompleted) error {
	return nil
}
