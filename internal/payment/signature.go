package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature recomputes the gateway's HMAC-SHA256 over
// "orderID|paymentID" with the shared secret and compares it to the supplied
// hex signature. This is the sole authenticity check for a payment: a
// client-asserted success is never trusted without it.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
