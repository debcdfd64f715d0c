package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/emrekole/takip/internal/payment"
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

const selectPaymentColumns = `
	p.id, p.user_id, p.kind, p.party_id, p.amount, p.description, p.payment_date,
	p.payment_method, p.created_at
`

func scanPayment(s scanner) (*payment.Payment, error) {
	var p payment.Payment

	var kindStr string

	var method sql.NullString

	if err := s.Scan(
		&p.ID, &p.UserID, &kindStr, &p.PartyID, &p.Amount, &p.Description,
		&p.PaymentDate, &method, &p.CreatedAt,
	); err != nil {
		return nil, err
	}

	p.Kind = payment.Kind(kindStr)
	p.PaymentMethod = method.String

	return &p, nil
}

func (s *Store) CreatePayment(ctx context.Context, p *payment.Payment) error {
	query := `
		INSERT INTO payments (user_id, kind, party_id, amount, description, payment_date, payment_method, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.UserID,
		p.Kind,
		p.PartyID,
		p.Amount,
		p.Description,
		p.PaymentDate,
		p.PaymentMethod,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}

	return nil
}

func (s *Store) GetPayment(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	query := `SELECT ` + selectPaymentColumns + ` FROM payments p WHERE p.id = $1`

	p, err := scanPayment(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, payment.ErrNotFound
		}

		return nil, fmt.Errorf("getting payment: %w", err)
	}

	return p, nil
}

func (s *Store) ListPayments(ctx context.Context, filter payment.ListFilter) ([]*payment.Payment, error) {
	query := `SELECT ` + selectPaymentColumns + ` FROM payments p WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.UserID != nil {
		query += fmt.Sprintf(" AND p.user_id = $%d", argIdx)

		args = append(args, *filter.UserID)
		argIdx++
	}

	if filter.Kind != nil {
		query += fmt.Sprintf(" AND p.kind = $%d", argIdx)

		args = append(args, *filter.Kind)
		argIdx++
	}

	if filter.PartyID != nil {
		query += fmt.Sprintf(" AND p.party_id = $%d", argIdx)

		args = append(args, *filter.PartyID)
		argIdx++
	}

	query += " ORDER BY p.payment_date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []*payment.Payment

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment rows: %w", err)
	}

	return payments, nil
}

func (s *Store) DeletePayment(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM payments WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting payment: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("counting deleted payments: %w", err)
	}

	if affected == 0 {
		return payment.ErrNotFound
	}

	return nil
}

// PartyName resolves the payee's display name from the table matching the
// payment kind.
func (s *Store) PartyName(ctx context.Context, kind payment.Kind, id uuid.UUID) (string, error) {
	var query string

	switch kind {
	case payment.KindCustomer:
		query = `SELECT name FROM customers WHERE id = $1`
	case payment.KindContractor:
		query = `SELECT name FROM contractors WHERE id = $1`
	case payment.KindPersonnel:
		query = `SELECT name FROM personnel WHERE id = $1`
	default:
		return "", fmt.Errorf("unknown payment kind %q", kind)
	}

	var name string

	err := s.db.QueryRowContext(ctx, query, id).Scan(&name)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}

		return "", fmt.Errorf("resolving party name: %w", err)
	}

	return name, nil
}
