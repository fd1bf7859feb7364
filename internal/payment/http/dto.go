package http

// VerifyPaymentRequest carries the gateway's callback triple. The field names
// follow Razorpay's checkout response verbatim.
type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature" binding:"required"`
}

// CreatePaymentLinkRequest is the fallback checkout submission.
type CreatePaymentLinkRequest struct {
	Amount      int64                  `json:"amount"`
	Description string                 `json:"description"`
	Customer    map[string]interface{} `json:"customer"`
	Notes       map[string]interface{} `json:"notes"`
}
