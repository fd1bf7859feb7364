package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	lastOrderData map[string]interface{}
	lastLinkData  map[string]interface{}
	fetched       map[string]interface{}
	err           error
}

func (g *fakeGateway) CreateOrder(data map[string]interface{}) (map[string]interface{}, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.lastOrderData = data
	return map[string]interface{}{"id": "order_test123", "amount": data["amount"], "status": "created"}, nil
}

func (g *fakeGateway) CreatePaymentLink(data map[string]interface{}) (map[string]interface{}, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.lastLinkData = data
	return map[string]interface{}{"id": "plink_test123", "short_url": "https://rzp.io/i/abc"}, nil
}

func (g *fakeGateway) FetchPaymentLink(id string) (map[string]interface{}, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.fetched, nil
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("builds the order request", func(t *testing.T) {
		gw := &fakeGateway{}
		svc := NewService(gw, "secret", "INR")

		order, err := svc.CreateOrder(ctx, 354000, map[string]interface{}{"bookingid": "b-1"})
		require.NoError(t, err)
		assert.Equal(t, "order_test123", order["id"])

		assert.Equal(t, int64(354000), gw.lastOrderData["amount"])
		assert.Equal(t, "INR", gw.lastOrderData["currency"])
		assert.Contains(t, gw.lastOrderData["receipt"], "order_rcptid_")
		assert.Equal(t, map[string]interface{}{"bookingid": "b-1"}, gw.lastOrderData["notes"])
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		svc := NewService(&fakeGateway{}, "secret", "INR")

		_, err := svc.CreateOrder(ctx, 0, nil)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = svc.CreateOrder(ctx, -100, nil)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("wraps upstream failures", func(t *testing.T) {
		gw := &fakeGateway{err: errors.New("BAD_REQUEST_ERROR: key expired")}
		svc := NewService(gw, "secret", "INR")

		_, err := svc.CreateOrder(ctx, 1000, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create order")
		assert.Contains(t, err.Error(), "key expired")
	})
}

func TestVerifyPayment(t *testing.T) {
	const secret = "test_secret"
	svc := NewService(&fakeGateway{}, secret, "INR")

	t.Run("accepts a valid signature", func(t *testing.T) {
		sig := signPair(t, "order_1", "pay_1", secret)
		assert.NoError(t, svc.VerifyPayment("order_1", "pay_1", sig))
	})

	t.Run("rejects a forged signature", func(t *testing.T) {
		err := svc.VerifyPayment("order_1", "pay_1", "deadbeef")
		assert.ErrorIs(t, err, ErrVerificationFailed)
	})
}

func TestCreatePaymentLink(t *testing.T) {
	ctx := context.Background()

	t.Run("builds the link request with notifications off", func(t *testing.T) {
		gw := &fakeGateway{}
		svc := NewService(gw, "secret", "INR")

		link, err := svc.CreatePaymentLink(ctx, 500000, "Room booking", map[string]interface{}{"name": "Asha"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "plink_test123", link["id"])

		assert.Equal(t, "Room booking", gw.lastLinkData["description"])
		assert.Equal(t, map[string]interface{}{"sms": false, "email": false}, gw.lastLinkData["notify"])
		assert.Equal(t, false, gw.lastLinkData["reminder_enable"])
	})

	t.Run("defaults an empty description", func(t *testing.T) {
		gw := &fakeGateway{}
		svc := NewService(gw, "secret", "INR")

		_, err := svc.CreatePaymentLink(ctx, 1000, "", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "Order payment", gw.lastLinkData["description"])
	})
}

func TestFetchPaymentLinkStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("maps the gateway response", func(t *testing.T) {
		gw := &fakeGateway{fetched: map[string]interface{}{
			"id":          "plink_test123",
			"status":      "paid",
			"amount_paid": float64(354000), // JSON numbers decode as float64
		}}
		svc := NewService(gw, "secret", "INR")

		status, err := svc.FetchPaymentLinkStatus(ctx, "plink_test123")
		require.NoError(t, err)
		assert.Equal(t, "plink_test123", status.ID)
		assert.Equal(t, "paid", status.Status)
		assert.Equal(t, int64(354000), status.AmountPaid)
		assert.True(t, status.Terminal())
	})

	t.Run("pending link is not terminal", func(t *testing.T) {
		gw := &fakeGateway{fetched: map[string]interface{}{"id": "plink_x", "status": "created"}}
		svc := NewService(gw, "secret", "INR")

		status, err := svc.FetchPaymentLinkStatus(ctx, "plink_x")
		require.NoError(t, err)
		assert.False(t, status.Terminal())
	})

	t.Run("requires a link id", func(t *testing.T) {
		svc := NewService(&fakeGateway{}, "secret", "INR")
		_, err := svc.FetchPaymentLinkStatus(ctx, "")
		assert.ErrorIs(t, err, ErrMissingLinkID)
	})
}
