package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{
			name:     "not found",
			err:      NotFound("customer not found: %s", "c-1"),
			expected: KindNotFound,
		},
		{
			name:     "business rule",
			err:      BusinessRule("customer is inactive"),
			expected: KindBusinessRule,
		},
		{
			name:     "insufficient funds",
			err:      InsufficientFunds("no funds"),
			expected: KindInsufficientFunds,
		},
		{
			name:     "unavailable",
			err:      Unavailable("customer", errors.New("timeout")),
			expected: KindUnavailable,
		},
		{
			name:     "validation",
			err:      Validation("missing field"),
			expected: KindValidation,
		},
		{
			name:     "aggregate insufficient funds",
			err:      &AggregateInsufficientFunds{AccountsAttempted: 3},
			expected: KindInsufficientFunds,
		},
		{
			name:     "plain error is internal",
			err:      errors.New("boom"),
			expected: KindInternal,
		},
		{
			name:     "nil is internal",
			err:      nil,
			expected: KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, KindOf(tt.err))
		})
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("while validating: %w", NotFound("account not found"))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, Is(wrapped, KindNotFound))
}

func TestIsDomain(t *testing.T) {
	t.Parallel()

	assert.True(t, IsDomain(NotFound("gone")))
	assert.True(t, IsDomain(BusinessRule("inactive")))
	assert.True(t, IsDomain(InsufficientFunds("broke")))
	assert.True(t, IsDomain(&AggregateInsufficientFunds{AccountsAttempted: 1}))

	assert.False(t, IsDomain(Unavailable("account", errors.New("down"))))
	assert.False(t, IsDomain(errors.New("io error")))
	assert.False(t, IsDomain(nil))
}

func TestUnavailable_WrapsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := Unavailable("transaction", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "transaction")
}

func TestAggregateInsufficientFunds_Message(t *testing.T) {
	t.Parallel()

	err := &AggregateInsufficientFunds{AccountsAttempted: 2}
	assert.Equal(t, "insufficient funds in all 2 associated accounts", err.Error())
}
