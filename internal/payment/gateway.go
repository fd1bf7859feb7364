package payment

import (
	razorpay "github.com/razorpay/razorpay-go"
)

// Gateway abstracts the upstream payment provider so the service can be
// exercised without network access. The maps mirror the provider's JSON.
type Gateway interface {
	CreateOrder(data map[string]interface{}) (map[string]interface{}, error)
	CreatePaymentLink(data map[string]interface{}) (map[string]interface{}, error)
	FetchPaymentLink(id string) (map[string]interface{}, error)
}

type razorpayGateway struct {
	client *razorpay.Client
}

// NewRazorpayGateway creates a Gateway backed by the Razorpay SDK. The
// credential pair is injected here, at construction, and nowhere else.
func NewRazorpayGateway(keyID, keySecret string) Gateway {
	return &razorpayGateway{
		client: razorpay.NewClient(keyID, keySecret),
	}
}

func (g *razorpayGateway) CreateOrder(data map[string]interface{}) (map[string]interface{}, error) {
	return g.client.Order.Create(data, nil)
}

func (g *razorpayGateway) CreatePaymentLink(data map[string]interface{}) (map[string]interface{}, error) {
	return g.client.PaymentLink.Create(data, nil)
}

func (g *razorpayGateway) FetchPaymentLink(id string) (map[string]interface{}, error) {
	return g.client.PaymentLink.Fetch(id, nil, nil)
}
