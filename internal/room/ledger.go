package room

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrRangeConflict is returned by Reserve when the interval overlaps an
// existing reservation. It fires even when two requests raced past IsFree:
// the room_bookings_no_overlap exclusion constraint makes the insert itself
// the conditional write, so at most one of them commits.
var ErrRangeConflict = errors.New("date range overlaps an existing reservation")

// Ledger owns each room's set of active reservation intervals.
type Ledger interface {
	// IsFree reports whether [from, to) overlaps no existing interval for the
	// room. When it does overlap, the first conflicting interval is returned
	// so callers can name the occupied range.
	IsFree(ctx context.Context, roomID string, from, to time.Time) (bool, *Interval, error)

	// Reserve appends an interval for the booking. Returns ErrRangeConflict
	// if the interval overlaps, including under concurrent reservers.
	Reserve(ctx context.Context, roomID, bookingID string, from, to time.Time) error

	// Release removes the interval recorded for the booking.
	// Releasing an absent interval is a no-op, not an error.
	Release(ctx context.Context, roomID, bookingID string) error

	// Intervals lists the room's active intervals ordered by start date.
	Intervals(ctx context.Context, roomID string) ([]Interval, error)
}

type pgxLedger struct {
	pool *pgxpool.Pool
}

func NewPgxLedger(pool *pgxpool.Pool) Ledger {
	return &pgxLedger{pool: pool}
}

func (l *pgxLedger) IsFree(ctx context.Context, roomID string, from, to time.Time) (bool, *Interval, error) {
	// Half-open overlap: [a,b) and [c,d) overlap iff a < d AND c < b.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("booking_id", "room_id", "from_date", "to_date").
		From("public.room_bookings").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.Lt{"from_date": to}).
		Where(squirrel.Gt{"to_date": from}).
		OrderBy("from_date ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return false, nil, fmt.Errorf("build overlap query failed: %w", err)
	}

	var iv Interval
	err = l.pool.QueryRow(ctx, query, args...).
		Scan(&iv.BookingID, &iv.RoomID, &iv.FromDate, &iv.ToDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return true, nil, nil
	}
	if err != nil {
		return false, nil, fmt.Errorf("check overlap failed: %w", err)
	}
	return false, &iv, nil
}

func (l *pgxLedger) Reserve(ctx context.Context, roomID, bookingID string, from, to time.Time) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.room_bookings").
		Columns("booking_id", "room_id", "from_date", "to_date").
		Values(bookingID, roomID, from, to).
		ToSql()
	if err != nil {
		return fmt.Errorf("build reserve query failed: %w", err)
	}

	if _, err := l.pool.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
			return ErrRangeConflict
		}
		return fmt.Errorf("reserve interval failed: %w", err)
	}
	return nil
}

func (l *pgxLedger) Release(ctx context.Context, roomID, bookingID string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.room_bookings").
		Where(squirrel.Eq{"room_id": roomID, "booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build release query failed: %w", err)
	}

	// RowsAffected is intentionally ignored: releasing an absent interval
	// must succeed so cancellation stays idempotent.
	if _, err := l.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("release interval failed: %w", err)
	}
	return nil
}

func (l *pgxLedger) Intervals(ctx context.Context, roomID string) ([]Interval, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("booking_id", "room_id", "from_date", "to_date").
		From("public.room_bookings").
		Where(squirrel.Eq{"room_id": roomID}).
		OrderBy("from_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build intervals query failed: %w", err)
	}

	rows, err := l.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list intervals failed: %w", err)
	}
	defer rows.Close()

	var intervals []Interval
	for rows.Next() {
		var iv Interval
		if err := rows.Scan(&iv.BookingID, &iv.RoomID, &iv.FromDate, &iv.ToDate); err != nil {
			return nil, fmt.Errorf("scan interval failed: %w", err)
		}
		intervals = append(intervals, iv)
	}
	return intervals, rows.Err()
}
