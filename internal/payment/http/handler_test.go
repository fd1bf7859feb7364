package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shayrooms/hotel-booking-backend/internal/payment"
)

type stubService struct {
	lastAmount int64
	lastNotes  map[string]interface{}
}

func (s *stubService) CreateOrder(_ context.Context, amount int64, notes map[string]interface{}) (map[string]interface{}, error) {
	s.lastAmount = amount
	s.lastNotes = notes
	return map[string]interface{}{"id": "order_test123"}, nil
}

func (s *stubService) VerifyPayment(string, string, string) error { return nil }

func (s *stubService) CreatePaymentLink(context.Context, int64, string, map[string]interface{}, map[string]interface{}) (map[string]interface{}, error) {
	return nil, nil
}

func (s *stubService) FetchPaymentLinkStatus(context.Context, string) (*payment.LinkStatus, error) {
	return nil, nil
}

func postCreateOrder(t *testing.T, svc payment.Service, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/payment/create-order", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	NewHandler(svc).CreateOrder(c)
	return w
}

func TestCreateOrderAmountParsing(t *testing.T) {
	t.Run("whole amount in minor units is accepted", func(t *testing.T) {
		svc := &stubService{}
		w := postCreateOrder(t, svc, map[string]interface{}{
			"amount":    float64(354000),
			"bookingid": "b-1",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(354000), svc.lastAmount)
		assert.Equal(t, map[string]interface{}{"bookingid": "b-1"}, svc.lastNotes)
	})

	t.Run("fractional amount is rejected, not truncated", func(t *testing.T) {
		svc := &stubService{}
		w := postCreateOrder(t, svc, map[string]interface{}{"amount": 100.5})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, svc.lastAmount, "service must not be called with a truncated amount")
	})

	t.Run("missing or non-numeric amount is rejected", func(t *testing.T) {
		for _, body := range []map[string]interface{}{
			{},
			{"amount": "1000"},
			{"amount": nil},
		} {
			w := postCreateOrder(t, &stubService{}, body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		}
	})
}
