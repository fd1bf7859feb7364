package room

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2099, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestIntervalOverlaps(t *testing.T) {
	iv := Interval{FromDate: day(5), ToDate: day(10)}

	cases := []struct {
		name     string
		from, to time.Time
		want     bool
	}{
		{"identical range", day(5), day(10), true},
		{"contained", day(6), day(8), true},
		{"straddles start", day(3), day(6), true},
		{"straddles end", day(9), day(12), true},
		{"covers whole", day(1), day(20), true},
		{"ends at check-in", day(1), day(5), false},
		{"starts at check-out", day(10), day(14), false},
		{"well before", day(1), day(3), false},
		{"well after", day(12), day(15), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, iv.Overlaps(tc.from, tc.to))
		})
	}
}

type stubRepo struct {
	rooms []*Room
}

func (r *stubRepo) GetByID(_ context.Context, id string) (*Room, error) {
	for _, rm := range r.rooms {
		if rm.ID == id {
			return rm, nil
		}
	}
	return nil, ErrNotFound
}

func (r *stubRepo) List(context.Context) ([]*Room, error) { return r.rooms, nil }

func (r *stubRepo) AddImage(context.Context, *Image) error { return nil }

func (r *stubRepo) ListImages(context.Context, string) ([]Image, error) { return nil, nil }

type stubLedger struct {
	intervals []Interval
}

func (l *stubLedger) IsFree(_ context.Context, roomID string, from, to time.Time) (bool, *Interval, error) {
	for _, iv := range l.intervals {
		if iv.RoomID == roomID && iv.Overlaps(from, to) {
			conflict := iv
			return false, &conflict, nil
		}
	}
	return true, nil, nil
}

func (l *stubLedger) Reserve(context.Context, string, string, time.Time, time.Time) error {
	return nil
}

func (l *stubLedger) Release(context.Context, string, string) error { return nil }

func (l *stubLedger) Intervals(context.Context, string) ([]Interval, error) { return nil, nil }

func TestListAvailability(t *testing.T) {
	ctx := context.Background()

	repo := &stubRepo{rooms: []*Room{
		{ID: "room-1", Name: "Deluxe Suite"},
		{ID: "room-2", Name: "Standard Twin"},
	}}
	ledger := &stubLedger{intervals: []Interval{
		{BookingID: "b-1", RoomID: "room-1", FromDate: day(5), ToDate: day(10)},
	}}
	svc := NewService(repo, ledger, nil)

	t.Run("no window returns every room", func(t *testing.T) {
		rooms, err := svc.List(ctx, time.Time{}, time.Time{})
		require.NoError(t, err)
		assert.Len(t, rooms, 2)
	})

	t.Run("occupied room is filtered out", func(t *testing.T) {
		rooms, err := svc.List(ctx, day(7), day(9))
		require.NoError(t, err)
		require.Len(t, rooms, 1)
		assert.Equal(t, "room-2", rooms[0].ID)
	})

	t.Run("adjacent window keeps the room", func(t *testing.T) {
		rooms, err := svc.List(ctx, day(10), day(12))
		require.NoError(t, err)
		assert.Len(t, rooms, 2)
	})
}
