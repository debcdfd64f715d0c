package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/emrekole/takip/internal/task"
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

const selectTaskColumns = `
	t.id, t.customer_id, t.source_quote_id, t.title, t.description, t.quantity,
	t.unit, t.unit_price, t.amount, t.has_vat, t.vat_rate, t.vat_amount,
	t.total_with_vat, t.status, t.due_date, t.created_at, t.updated_at
`

func scanTask(s scanner) (*task.Task, error) {
	var t task.Task

	var statusStr string

	var description sql.NullString

	if err := s.Scan(
		&t.ID, &t.CustomerID, &t.SourceQuoteID, &t.Title, &description, &t.Quantity,
		&t.Unit, &t.UnitPrice, &t.Amount, &t.HasVAT, &t.VATRate, &t.VATAmount,
		&t.TotalWithVAT, &statusStr, &t.DueDate, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}

	t.Description = description.String
	t.Status = task.Status(statusStr)

	return &t, nil
}

func (s *Store) CreateTask(ctx context.Context, t *task.Task) error {
	query := `
		INSERT INTO customer_tasks (customer_id, source_quote_id, title, description, quantity,
			unit, unit_price, amount, has_vat, vat_rate, vat_amount, total_with_vat,
			status, due_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		t.CustomerID,
		t.SourceQuoteID,
		t.Title,
		t.Description,
		t.Quantity,
		t.Unit,
		t.UnitPrice,
		t.Amount,
		t.HasVAT,
		t.VATRate,
		t.VATAmount,
		t.TotalWithVAT,
		t.Status,
		t.DueDate,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}

	return nil
}

func (s *Store) GetTask(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	query := `SELECT ` + selectTaskColumns + ` FROM customer_tasks t WHERE t.id = $1`

	t, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, task.ErrNotFound
		}

		return nil, fmt.Errorf("getting task: %w", err)
	}

	return t, nil
}

func (s *Store) ListTasks(ctx context.Context, filter task.ListFilter) ([]*task.Task, error) {
	query := `SELECT ` + selectTaskColumns + ` FROM customer_tasks t WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.CustomerID != nil {
		query += fmt.Sprintf(" AND t.customer_id = $%d", argIdx)

		args = append(args, *filter.CustomerID)
		argIdx++
	}

	if filter.UserID != nil {
		query += fmt.Sprintf(" AND t.customer_id IN (SELECT id FROM customers WHERE user_id = $%d)", argIdx)

		args = append(args, *filter.UserID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND t.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	query += " ORDER BY t.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*task.Task

	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}

		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task rows: %w", err)
	}

	return tasks, nil
}

func (s *Store) UpdateTask(ctx context.Context, t *task.Task) error {
	query := `
		UPDATE customer_tasks
		SET title = $1, description = $2, quantity = $3, unit = $4, unit_price = $5,
			amount = $6, has_vat = $7, vat_rate = $8, vat_amount = $9,
			total_with_vat = $10, status = $11, due_date = $12, updated_at = NOW()
		WHERE id = $13
	`

	_, err := s.db.ExecContext(ctx, query,
		t.Title,
		t.Description,
		t.Quantity,
		t.Unit,
		t.UnitPrice,
		t.Amount,
		t.HasVAT,
		t.VATRate,
		t.VATAmount,
		t.TotalWithVAT,
		t.Status,
		t.DueDate,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}

	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status task.Status) error {
	query := `
		UPDATE customer_tasks
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	_, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating task status: %w", err)
	}

	return nil
}

func (s *Store) DeleteTask(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM customer_tasks WHERE id = $1`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	return nil
}

func (s *Store) FindBySourceQuote(ctx context.Context, quoteID uuid.UUID) (*task.Task, error) {
	query := `SELECT ` + selectTaskColumns + ` FROM customer_tasks t WHERE t.source_quote_id = $1 LIMIT 1`

	t, err := scanTask(s.db.QueryRowContext(ctx, query, quoteID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, task.ErrNotFound
		}

		return nil, fmt.Errorf("finding task by source quote: %w", err)
	}

	return t, nil
}
