package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signPair(t *testing.T, orderID, paymentID, secret string) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	_, err := mac.Write([]byte(orderID + "|" + paymentID))
	require.NoError(t, err)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	const (
		orderID   = "order_IluGWxBm9U8zJ8"
		paymentID = "pay_IluGWxBm9U8zJ9"
		secret    = "test_secret"
	)
	valid := signPair(t, orderID, paymentID, secret)

	t.Run("accepts the matching signature", func(t *testing.T) {
		assert.True(t, VerifySignature(orderID, paymentID, valid, secret))
	})

	t.Run("rejects any single-character corruption", func(t *testing.T) {
		for i := 0; i < len(valid); i += 7 {
			corrupted := []byte(valid)
			if corrupted[i] == 'a' {
				corrupted[i] = 'b'
			} else {
				corrupted[i] = 'a'
			}
			assert.False(t, VerifySignature(orderID, paymentID, string(corrupted), secret),
				"corruption at index %d must fail", i)
		}
	})

	t.Run("rejects a signature for different ids", func(t *testing.T) {
		other := signPair(t, "order_other", paymentID, secret)
		assert.False(t, VerifySignature(orderID, paymentID, other, secret))
	})

	t.Run("rejects the wrong secret", func(t *testing.T) {
		wrong := signPair(t, orderID, paymentID, "other_secret")
		assert.False(t, VerifySignature(orderID, paymentID, wrong, secret))
	})

	t.Run("rejects empty signature", func(t *testing.T) {
		assert.False(t, VerifySignature(orderID, paymentID, "", secret))
	})
}
