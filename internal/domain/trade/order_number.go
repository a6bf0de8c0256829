package trade

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	OrderNumberLength   = 20
	orderNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// NewOrderNumber returns a random upper-case alphanumeric order number
func NewOrderNumber() (string, error) {
	max := big.NewInt(int64(len(orderNumberAlphabet)))
	buf := make([]byte, OrderNumberLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate order number: %w", err)
		}
		buf[i] = orderNumberAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// IsValidOrderNumber checks the shape of an order number
func IsValidOrderNumber(s string) bool {
	if len(s) != OrderNumberLength {
		return false
	}
	for _, r := range s {
		if !((r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}
