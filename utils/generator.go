package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateReceiptID produces a short unique reference passed to the payment
// gateway as the order receipt.
func GenerateReceiptID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "rcpt_fallback"
	}
	return fmt.Sprintf("rcpt_%s", hex.EncodeToString(b))
}
