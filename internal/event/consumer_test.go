package event

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmedLine(t *testing.T) {
	body, err := json.Marshal(BookingConfirmedEvent{
		BookingID:   "b-1",
		RoomID:      "room-1",
		RoomName:    "Deluxe Suite",
		UserID:      "user-1",
		FromDate:    "05-01-2099",
		ToDate:      "10-01-2099",
		TotalDays:   5,
		TotalAmount: 5000,
		ConfirmedAt: "2026-08-30T12:00:00Z",
	})
	require.NoError(t, err)

	line, err := confirmedLine(body)
	require.NoError(t, err)
	assert.Equal(t,
		`2026-08-30T12:00:00Z confirmed booking=b-1 room="Deluxe Suite" user=user-1 stay=05-01-2099..10-01-2099 days=5 amount=5000.00`,
		line)
}

func TestCancelledLine(t *testing.T) {
	body, err := json.Marshal(BookingCancelledEvent{
		BookingID:   "b-1",
		RoomID:      "room-1",
		UserID:      "user-1",
		CancelledAt: "2026-08-30T12:05:00Z",
	})
	require.NoError(t, err)

	line, err := cancelledLine(body)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-30T12:05:00Z cancelled booking=b-1 room=room-1 user=user-1", line)
}

func TestLineDecodeRejectsGarbage(t *testing.T) {
	_, err := confirmedLine([]byte("{not json"))
	assert.Error(t, err)

	_, err = cancelledLine([]byte("{not json"))
	assert.Error(t, err)
}
