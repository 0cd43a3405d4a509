package debit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskCardNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sixteen digits masked",
			input:    "1234567812345678",
			expected: "****-****-****-5678",
		},
		{
			name:     "eight digits pass through",
			input:    "12345678",
			expected: "12345678",
		},
		{
			name:     "empty passes through",
			input:    "",
			expected: "",
		},
		{
			name:     "seventeen digits pass through",
			input:    "12345678123456789",
			expected: "12345678123456789",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, MaskCardNumber(tt.input))
		})
	}
}

func TestGenerateCardNumber(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)

	for i := 0; i < 20; i++ {
		number := GenerateCardNumber()

		assert.True(t, strings.HasPrefix(number, "****-****-****-"), "got %q", number)
		assert.Len(t, number, 19)

		last4 := strings.TrimPrefix(number, "****-****-****-")
		for _, r := range last4 {
			assert.True(t, r >= '0' && r <= '9', "non-digit in %q", number)
		}

		seen[number] = true
	}

	// 20 draws over 10k suffixes colliding every time would mean a broken
	// generator.
	assert.Greater(t, len(seen), 1)
}
