package payment

import (
	"context"
	"fmt"
	"time"
)

type Service interface {
	// CreateOrder creates a gateway order for the amount in the currency's
	// minor unit (e.g., paise). Extra metadata travels as order notes.
	CreateOrder(ctx context.Context, amount int64, notes map[string]interface{}) (map[string]interface{}, error)

	// VerifyPayment checks the gateway signature for an order/payment pair.
	// Returns ErrVerificationFailed on mismatch.
	VerifyPayment(orderID, paymentID, signature string) error

	// CreatePaymentLink is the fallback checkout path when the client-side
	// widget cannot render.
	CreatePaymentLink(ctx context.Context, amount int64, description string, customer, notes map[string]interface{}) (map[string]interface{}, error)

	// FetchPaymentLinkStatus returns the polled state of a payment link.
	FetchPaymentLinkStatus(ctx context.Context, linkID string) (*LinkStatus, error)
}

type service struct {
	gateway  Gateway
	secret   string
	currency string
}

func NewService(gateway Gateway, keySecret, currency string) Service {
	return &service{
		gateway:  gateway,
		secret:   keySecret,
		currency: currency,
	}
}

func (s *service) CreateOrder(ctx context.Context, amount int64, notes map[string]interface{}) (map[string]interface{}, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	data := map[string]interface{}{
		"amount":   amount,
		"currency": s.currency,
		"receipt":  fmt.Sprintf("order_rcptid_%d", time.Now().UnixMilli()),
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	order, err := s.gateway.CreateOrder(data)
	if err != nil {
		return nil, GatewayError(err, "failed to create order")
	}
	return order, nil
}

func (s *service) VerifyPayment(orderID, paymentID, signature string) error {
	if !VerifySignature(orderID, paymentID, signature, s.secret) {
		return ErrVerificationFailed
	}
	return nil
}

func (s *service) CreatePaymentLink(ctx context.Context, amount int64, description string, customer, notes map[string]interface{}) (map[string]interface{}, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if description == "" {
		description = "Order payment"
	}

	data := map[string]interface{}{
		"amount":          amount,
		"currency":        s.currency,
		"description":     description,
		"notify":          map[string]interface{}{"sms": false, "email": false},
		"reminder_enable": false,
		"callback_method": "get",
	}
	if len(customer) > 0 {
		data["customer"] = customer
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	link, err := s.gateway.CreatePaymentLink(data)
	if err != nil {
		return nil, GatewayError(err, "failed to create payment link")
	}
	return link, nil
}

func (s *service) FetchPaymentLinkStatus(ctx context.Context, linkID string) (*LinkStatus, error) {
	if linkID == "" {
		return nil, ErrMissingLinkID
	}

	link, err := s.gateway.FetchPaymentLink(linkID)
	if err != nil {
		return nil, GatewayError(err, "failed to fetch payment link status")
	}

	status := &LinkStatus{
		ID:         asString(link["id"]),
		Status:     asString(link["status"]),
		AmountPaid: asInt64(link["amount_paid"]),
	}
	return status, nil
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// asInt64 tolerates the number types the gateway SDK's JSON decoding produces.
func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	default:
		return 0
	}
}
