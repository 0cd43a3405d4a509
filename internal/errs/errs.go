// Package errs defines the error taxonomy shared by the orchestration core.
//
// Errors carry an explicit Kind so callers branch on classification instead
// of message text. Domain kinds (not found, business rule, insufficient
// funds) represent expected business outcomes and must never be retried or
// counted against a circuit breaker; everything else is treated as an
// infrastructure failure.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error for propagation and resilience decisions.
type Kind uint8

const (
	// KindInternal is the zero kind for unclassified failures.
	KindInternal Kind = iota
	// KindNotFound indicates a customer, account, or debit card is absent.
	KindNotFound
	// KindBusinessRule indicates a violated business precondition
	// (inactive entity, duplicate card, duplicate association, bad amount).
	KindBusinessRule
	// KindInsufficientFunds indicates a withdrawal was declined for funds,
	// either on a single account or across every associated account.
	KindInsufficientFunds
	// KindUnavailable indicates a downstream service could not be reached
	// after the resilience policy was exhausted or while its circuit is open.
	KindUnavailable
	// KindValidation indicates malformed or missing input fields.
	KindValidation
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindBusinessRule:
		return "business_rule_violation"
	case KindInsufficientFunds:
		return "insufficient_funds"
	case KindUnavailable:
		return "service_unavailable"
	case KindValidation:
		return "validation"
	default:
		return "internal"
	}
}

// Error is a kind-tagged error. Err optionally wraps the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

// Unwrap exposes the wrapped cause to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound builds a KindNotFound error.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// BusinessRule builds a KindBusinessRule error.
func BusinessRule(format string, args ...any) *Error {
	return &Error{Kind: KindBusinessRule, Message: fmt.Sprintf(format, args...)}
}

// InsufficientFunds builds a KindInsufficientFunds error for one account.
func InsufficientFunds(format string, args ...any) *Error {
	return &Error{Kind: KindInsufficientFunds, Message: fmt.Sprintf(format, args...)}
}

// Unavailable builds a KindUnavailable error wrapping the underlying cause.
func Unavailable(service string, cause error) *Error {
	return &Error{
		Kind:    KindUnavailable,
		Message: fmt.Sprintf("service %s is currently unavailable", service),
		Err:     cause,
	}
}

// Validation builds a KindValidation error.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// AggregateInsufficientFunds reports that every associated account declined a
// withdrawal for funds.
type AggregateInsufficientFunds struct {
	AccountsAttempted int
}

func (e *AggregateInsufficientFunds) Error() string {
	return fmt.Sprintf("insufficient funds in all %d associated accounts", e.AccountsAttempted)
}

// KindOf extracts the Kind from err, unwrapping as needed. Errors that do not
// carry a kind classify as KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}

	var agg *AggregateInsufficientFunds
	if errors.As(err, &agg) {
		return KindInsufficientFunds
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// IsDomain reports whether err represents an expected business outcome.
// Domain errors bypass retry and circuit-breaker accounting entirely.
func IsDomain(err error) bool {
	switch KindOf(err) {
	case KindNotFound, KindBusinessRule, KindInsufficientFunds, KindValidation:
		return true
	default:
		return false
	}
}
