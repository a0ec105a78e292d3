package ports

import (
	"context"

	"razorpay-integration/internal/core/domain"

	"github.com/google/uuid"
)

// PaymentLogRepository defines persistence operations for payment log entries.
type PaymentLogRepository interface {
	Create(ctx context.Context, log *domain.PaymentLog) error
	GetByReferenceID(ctx context.Context, referenceID string) (*domain.PaymentLog, error)

	// MarkPaid records the payment id and moves the entry to Paid.
	MarkPaid(ctx context.Context, referenceID string, paymentID string) error

	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PaymentLogStatus) error

	// MarkFailedAsRefund transitions every Failed entry to Refund in one
	// statement and returns the number of entries moved.
	MarkFailedAsRefund(ctx context.Context) (int64, error)

	ListByStatus(ctx context.Context, status domain.PaymentLogStatus, limit int) ([]domain.PaymentLog, error)
}
