package payment

import (
	"net/http"

	"github.com/shayrooms/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrInvalidAmount = apperror.New(http.StatusBadRequest, "invalid amount")
	ErrMissingLinkID = apperror.New(http.StatusBadRequest, "missing payment link id")

	// ErrVerificationFailed is returned when the gateway signature does not
	// match. A mismatch is never downgraded to success.
	ErrVerificationFailed = apperror.New(http.StatusBadRequest, "payment verification failed")
)

// GatewayError wraps an upstream payment-provider failure, carrying the
// provider's message to the client with a 502.
func GatewayError(err error, message string) error {
	return apperror.Wrap(err, http.StatusBadGateway, message+": "+err.Error())
}

// LinkStatus is the polled state of a payment link. Terminal statuses are
// "paid" and "completed".
type LinkStatus struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	AmountPaid int64  `json:"amount_paid"`
}

// Terminal reports whether the link has been settled.
func (l LinkStatus) Terminal() bool {
	return l.Status == "paid" || l.Status == "completed"
}
