// Package model holds the domain entities of the debit card service.
package model

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// DebitCard links a customer to one primary funding account and zero or more
// secondary accounts. AssociatedAccounts is ordered, holds no duplicates, and
// starts as [PrimaryAccountID] at creation. The order is the order the
// withdrawal waterfall attempts accounts in.
type DebitCard struct {
	ID                 string     `json:"id" bson:"_id"`
	CustomerID         string     `json:"customerId" bson:"customerId"`
	PrimaryAccountID   string     `json:"primaryAccountId" bson:"primaryAccountId"`
	AssociatedAccounts []string   `json:"associatedAccounts" bson:"associatedAccounts"`
	CardNumber         string     `json:"cardNumber" bson:"cardNumber"`
	Active             bool       `json:"active" bson:"active"`
	CreatedAt          time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt          *time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// HasAssociatedAccount reports whether accountID is already linked.
func (c *DebitCard) HasAssociatedAccount(accountID string) bool {
	return slices.Contains(c.AssociatedAccounts, accountID)
}

// Customer is the read-only projection consumed from the customer service.
type Customer struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
}

// Account is the read-only projection consumed from the account service.
type Account struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
}

// TransactionStatus enumerates the states the transaction service reports.
type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusFailed    TransactionStatus = "FAILED"
	StatusPending   TransactionStatus = "PENDING"
)

// TransactionResult is the outcome of one withdrawal call against the
// transaction service. Owned by that service; consumed read-only here.
type TransactionResult struct {
	TransactionID string            `json:"id"`
	Status        TransactionStatus `json:"status"`
	ErrorCode     string            `json:"errorCode,omitempty"`
	ErrorMessage  string            `json:"errorMessage,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// WithdrawalReceipt is returned to the caller after a successful waterfall
// withdrawal. SequenceIndex is the zero-based position of the account that
// finally honored the debit.
type WithdrawalReceipt struct {
	TransactionID string            `json:"transactionId"`
	DebitCardID   string            `json:"debitCardId"`
	AccountID     string            `json:"accountId"`
	SequenceIndex int               `json:"sequenceIndex"`
	Amount        decimal.Decimal   `json:"amount"`
	Description   string            `json:"description"`
	Status        TransactionStatus `json:"status"`
	Timestamp     time.Time         `json:"timestamp"`
}
