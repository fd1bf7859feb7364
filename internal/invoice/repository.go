package invoice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Sentinels for the two unique constraints on the invoices table. The service
// reacts differently: a duplicate booking means "already invoiced, fetch it",
// a taken number means "generate another and retry".
var (
	ErrDuplicateBooking = errors.New("invoice already exists for booking")
	ErrNumberTaken      = errors.New("invoice number already taken")
)

// Money columns come back as text so they parse straight into decimals
// without a float round-trip.
var selectColumns = []string{
	"id", "invoice_number", "user_id", "booking_id",
	"amount::text", "tax_rate::text", "tax_amount::text", "total_with_tax::text",
	"pdf_path", "created_at",
}

type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	GetByBookingID(ctx context.Context, bookingID string) (*Invoice, error)
	ListByUser(ctx context.Context, userID string) ([]*Invoice, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, inv *Invoice) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.invoices").
		Columns("invoice_number", "user_id", "booking_id", "amount", "tax_rate", "tax_amount", "total_with_tax", "pdf_path").
		Values(
			inv.InvoiceNumber, inv.UserID, inv.BookingID,
			inv.Amount.String(), inv.TaxRate.String(), inv.TaxAmount.String(), inv.TotalWithTax.String(),
			inv.PDFPath,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create invoice query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&inv.ID, &inv.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "booking_id") {
				return ErrDuplicateBooking
			}
			return ErrNumberTaken
		}
		return fmt.Errorf("create invoice failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByBookingID(ctx context.Context, bookingID string) (*Invoice, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(selectColumns...).
		From("public.invoices").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get invoice query failed: %w", err)
	}

	var inv Invoice
	if err := scanInvoice(r.pool.QueryRow(ctx, query, args...), &inv); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get invoice failed: %w", err)
	}
	return &inv, nil
}

func (r *pgxRepository) ListByUser(ctx context.Context, userID string) ([]*Invoice, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(selectColumns...).
		From("public.invoices").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list invoices query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices failed: %w", err)
	}
	defer rows.Close()

	var invoices []*Invoice
	for rows.Next() {
		var inv Invoice
		if err := scanInvoice(rows, &inv); err != nil {
			return nil, fmt.Errorf("scan invoice failed: %w", err)
		}
		invoices = append(invoices, &inv)
	}
	return invoices, rows.Err()
}

// scanInvoice reads numeric columns as text and parses them into decimals,
// avoiding float round-trips for money values.
func scanInvoice(row pgx.Row, inv *Invoice) error {
	var amount, taxRate, taxAmount, totalWithTax string
	if err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.UserID, &inv.BookingID,
		&amount, &taxRate, &taxAmount, &totalWithTax, &inv.PDFPath, &inv.CreatedAt,
	); err != nil {
		return err
	}

	var err error
	if inv.Amount, err = decimal.NewFromString(amount); err != nil {
		return fmt.Errorf("parse amount: %w", err)
	}
	if inv.TaxRate, err = decimal.NewFromString(taxRate); err != nil {
		return fmt.Errorf("parse tax_rate: %w", err)
	}
	if inv.TaxAmount, err = decimal.NewFromString(taxAmount); err != nil {
		return fmt.Errorf("parse tax_amount: %w", err)
	}
	if inv.TotalWithTax, err = decimal.NewFromString(totalWithTax); err != nil {
		return fmt.Errorf("parse total_with_tax: %w", err)
	}
	return nil
}
