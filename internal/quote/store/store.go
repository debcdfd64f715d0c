package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/emrekole/takip/internal/quote"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectQuoteColumns = `
	q.id, q.customer_id, q.title, q.description, q.total_amount, q.has_vat,
	q.vat_rate, q.vat_amount, q.total_with_vat, q.status, q.is_approved,
	q.quote_date, q.valid_until, q.created_at, q.updated_at
`

func scanQuote(s scanner) (*quote.Quote, error) {
	var q quote.Quote

	var statusStr string

	var description sql.NullString

	if err := s.Scan(
		&q.ID, &q.CustomerID, &q.Title, &description, &q.TotalAmount, &q.HasVAT,
		&q.VATRate, &q.VATAmount, &q.TotalWithVAT, &statusStr, &q.IsApproved,
		&q.QuoteDate, &q.ValidUntil, &q.CreatedAt, &q.UpdatedAt,
	); err != nil {
		return nil, err
	}

	q.Description = description.String
	q.Status = quote.Status(statusStr)

	return &q, nil
}

const selectItemColumns = `
	i.id, i.quote_id, i.title, i.description, i.quantity, i.unit, i.unit_price,
	i.total_price, i.status, i.is_approved, i.created_at, i.updated_at
`

func scanItem(s scanner) (*quote.Item, error) {
	var item quote.Item

	var statusStr string

	var description sql.NullString

	if err := s.Scan(
		&item.ID, &item.QuoteID, &item.Title, &description, &item.Quantity,
		&item.Unit, &item.UnitPrice, &item.TotalPrice, &statusStr,
		&item.IsApproved, &item.CreatedAt, &item.UpdatedAt,
	); err != nil {
		return nil, err
	}

	item.Description = description.String
	item.Status = quote.Status(statusStr)

	return &item, nil
}

func (s *Store) CreateQuote(ctx context.Context, q *quote.Quote) error {
	query := `
		INSERT INTO customer_quotes (customer_id, title, description, total_amount, has_vat,
			vat_rate, vat_amount, total_with_vat, status, is_approved, quote_date, valid_until, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		q.CustomerID,
		q.Title,
		q.Description,
		q.TotalAmount,
		q.HasVAT,
		q.VATRate,
		q.VATAmount,
		q.TotalWithVAT,
		q.Status,
		q.IsApproved,
		q.QuoteDate,
		q.ValidUntil,
	).Scan(&q.ID, &q.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating quote: %w", err)
	}

	return nil
}

func (s *Store) GetQuote(ctx context.Context, id uuid.UUID) (*quote.Quote, error) {
	query := `SELECT ` + selectQuoteColumns + ` FROM customer_quotes q WHERE q.id = $1`

	q, err := scanQuote(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, quote.ErrNotFound
		}

		return nil, fmt.Errorf("getting quote: %w", err)
	}

	return q, nil
}

func (s *Store) ListQuotes(ctx context.Context, filter quote.ListFilter) ([]*quote.Quote, error) {
	query := `SELECT ` + selectQuoteColumns + ` FROM customer_quotes q WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.CustomerID != nil {
		query += fmt.Sprintf(" AND q.customer_id = $%d", argIdx)

		args = append(args, *filter.CustomerID)
		argIdx++
	}

	if filter.UserID != nil {
		query += fmt.Sprintf(" AND q.customer_id IN (SELECT id FROM customers WHERE user_id = $%d)", argIdx)

		args = append(args, *filter.UserID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND q.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	query += " ORDER BY q.quote_date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}
	defer rows.Close()

	var quotes []*quote.Quote

	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning quote: %w", err)
		}

		quotes = append(quotes, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quote rows: %w", err)
	}

	return quotes, nil
}

func (s *Store) UpdateQuote(ctx context.Context, q *quote.Quote) error {
	query := `
		UPDATE customer_quotes
		SET title = $1, description = $2, total_amount = $3, has_vat = $4, vat_rate = $5,
			vat_amount = $6, total_with_vat = $7, status = $8, is_approved = $9,
			quote_date = $10, valid_until = $11, updated_at = NOW()
		WHERE id = $12
	`

	_, err := s.db.ExecContext(ctx, query,
		q.Title,
		q.Description,
		q.TotalAmount,
		q.HasVAT,
		q.VATRate,
		q.VATAmount,
		q.TotalWithVAT,
		q.Status,
		q.IsApproved,
		q.QuoteDate,
		q.ValidUntil,
		q.ID,
	)
	if err != nil {
		return fmt.Errorf("updating quote: %w", err)
	}

	return nil
}

func (s *Store) DeleteQuote(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM customer_quotes WHERE id = $1`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting quote: %w", err)
	}

	return nil
}

func (s *Store) CreateItem(ctx context.Context, item *quote.Item) error {
	query := `
		INSERT INTO customer_quote_items (quote_id, title, description, quantity, unit,
			unit_price, total_price, status, is_approved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		item.QuoteID,
		item.Title,
		item.Description,
		item.Quantity,
		item.Unit,
		item.UnitPrice,
		item.TotalPrice,
		item.Status,
		item.IsApproved,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating quote item: %w", err)
	}

	return nil
}

func (s *Store) GetItem(ctx context.Context, id uuid.UUID) (*quote.Item, error) {
	query := `SELECT ` + selectItemColumns + ` FROM customer_quote_items i WHERE i.id = $1`

	item, err := scanItem(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, quote.ErrItemNotFound
		}

		return nil, fmt.Errorf("getting quote item: %w", err)
	}

	return item, nil
}

func (s *Store) ListItems(ctx context.Context, quoteID uuid.UUID) ([]*quote.Item, error) {
	query := `SELECT ` + selectItemColumns + `
		FROM customer_quote_items i
		WHERE i.quote_id = $1
		ORDER BY i.created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("listing quote items: %w", err)
	}
	defer rows.Close()

	var items []*quote.Item

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning quote item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quote item rows: %w", err)
	}

	return items, nil
}

func (s *Store) UpdateItem(ctx context.Context, item *quote.Item) error {
	query := `
		UPDATE customer_quote_items
		SET title = $1, description = $2, quantity = $3, unit = $4, unit_price = $5,
			total_price = $6, status = $7, is_approved = $8, updated_at = NOW()
		WHERE id = $9
	`

	_, err := s.db.ExecContext(ctx, query,
		item.Title,
		item.Description,
		item.Quantity,
		item.Unit,
		item.UnitPrice,
		item.TotalPrice,
		item.Status,
		item.IsApproved,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating quote item: %w", err)
	}

	return nil
}

func (s *Store) DeleteItem(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM customer_quote_items WHERE id = $1`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting quote item: %w", err)
	}

	return nil
}
