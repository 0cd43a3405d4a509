package debit

import (
	"crypto/rand"
	"math/big"
)

const cardNumberDigits = 16

// GenerateCardNumber produces a random 16-digit card number already masked
// for display. The full number is never stored.
func GenerateCardNumber() string {
	digits := make([]byte, cardNumberDigits)

	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			digits[i] = '0'

			continue
		}

		digits[i] = byte('0' + n.Int64())
	}

	return MaskCardNumber(string(digits))
}

// MaskCardNumber renders a 16-digit card number as ****-****-****-NNNN.
// Inputs of any other length pass through unmasked.
func MaskCardNumber(cardNumber string) string {
	if len(cardNumber) != cardNumberDigits {
		return cardNumber
	}

	return "****-****-****-" + cardNumber[12:]
}
