package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"razorpay-integration/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PaymentLogRepo implements ports.PaymentLogRepository.
type PaymentLogRepo struct {
	pool Pool
}

// NewPaymentLogRepo creates a new PaymentLogRepo.
func NewPaymentLogRepo(pool Pool) *PaymentLogRepo {
	return &PaymentLogRepo{pool: pool}
}

// Create inserts a new payment log entry.
func (r *PaymentLogRepo) Create(ctx context.Context, l *domain.PaymentLog) error {
	query := `INSERT INTO payment_logs (id, link_id, reference_id, payment_id, amount, description, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		l.ID, l.LinkID, l.ReferenceID, l.PaymentID,
		l.Amount, l.Description, l.Status, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment log: %w", err)
	}
	return nil
}

// GetByReferenceID fetches a payment log entry by its reference id.
// Returns (nil, nil) when no entry exists.
func (r *PaymentLogRepo) GetByReferenceID(ctx context.Context, referenceID string) (*domain.PaymentLog, error) {
	query := `SELECT id, link_id, reference_id, payment_id, amount, description, status, created_at, updated_at
		FROM payment_logs WHERE reference_id = $1`

	return r.scanPaymentLog(r.pool.QueryRow(ctx, query, referenceID))
}

// MarkPaid records the payment id and moves the entry to Paid.
func (r *PaymentLogRepo) MarkPaid(ctx context.Context, referenceID string, paymentID string) error {
	now := time.Now()
	query := `UPDATE payment_logs SET payment_id = $1, status = $2, updated_at = $3 WHERE reference_id = $4`

	tag, err := r.pool.Exec(ctx, query, paymentID, domain.PaymentLogStatusPaid, now, referenceID)
	if err != nil {
		return fmt.Errorf("mark payment log paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payment log not found: %s", referenceID)
	}
	return nil
}

// UpdateStatus updates a payment log entry's status.
func (r *PaymentLogRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PaymentLogStatus) error {
	now := time.Now()
	query := `UPDATE payment_logs SET status = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.pool.Exec(ctx, query, status, now, id)
	if err != nil {
		return fmt.Errorf("update payment log status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payment log not found: %s", id)
	}
	return nil
}

// MarkFailedAsRefund transitions every Failed entry to Refund in a single
// statement and returns the number of entries moved.
func (r *PaymentLogRepo) MarkFailedAsRefund(ctx context.Context) (int64, error) {
	now := time.Now()
	query := `UPDATE payment_logs SET status = $1, updated_at = $2 WHERE status = $3`

	tag, err := r.pool.Exec(ctx, query, domain.PaymentLogStatusRefund, now, domain.PaymentLogStatusFailed)
	if err != nil {
		return 0, fmt.Errorf("mark failed payment logs as refund: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListByStatus fetches entries in the given status, oldest first.
func (r *PaymentLogRepo) ListByStatus(ctx context.Context, status domain.PaymentLogStatus, limit int) ([]domain.PaymentLog, error) {
	query := `SELECT id, link_id, reference_id, payment_id, amount, description, status, created_at, updated_at
		FROM payment_logs WHERE status = $1 ORDER BY created_at ASC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, status, limit)
	if err != nil {
		return nil, fmt.Errorf("list payment logs: %w", err)
	}
	defer rows.Close()

	var entries []domain.PaymentLog
	for rows.Next() {
		l := domain.PaymentLog{}
		err := rows.Scan(
			&l.ID, &l.LinkID, &l.ReferenceID, &l.PaymentID,
			&l.Amount, &l.Description, &l.Status, &l.CreatedAt, &l.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan payment log row: %w", err)
		}
		entries = append(entries, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment log rows: %w", err)
	}
	return entries, nil
}

func (r *PaymentLogRepo) scanPaymentLog(row pgx.Row) (*domain.PaymentLog, error) {
	l := domain.PaymentLog{}
	err := row.Scan(
		&l.ID, &l.LinkID, &l.ReferenceID, &l.PaymentID,
		&l.Amount, &l.Description, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan payment log: %w", err)
	}
	return &l, nil
}
