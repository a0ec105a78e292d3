package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentLogStatus represents the lifecycle state of a payment log entry.
type PaymentLogStatus string

const (
	PaymentLogStatusCreated  PaymentLogStatus = "Created"
	PaymentLogStatusPaid     PaymentLogStatus = "Paid"
	PaymentLogStatusFailed   PaymentLogStatus = "Failed"
	PaymentLogStatusRefund   PaymentLogStatus = "Refund"
	PaymentLogStatusRefunded PaymentLogStatus = "Refunded"
)

// PaymentLog is the persisted record of a payment link and the payment made
// against it. One entry is created per link; the payment id arrives later via
// the gateway callback.
type PaymentLog struct {
	ID          uuid.UUID        `json:"id"`
	LinkID      string           `json:"link_id"`
	ReferenceID string           `json:"reference_id"`
	PaymentID   *string          `json:"payment_id,omitempty"`
	Amount      int64            `json:"amount"` // major units, as requested
	Description string           `json:"description,omitempty"`
	Status      PaymentLogStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   *time.Time       `json:"updated_at,omitempty"`
}

// IsTerminal returns true if the entry needs no further processing.
func (l *PaymentLog) IsTerminal() bool {
	return l.Status == PaymentLogStatusPaid || l.Status == PaymentLogStatusRefunded
}

// NeedsRefund returns true if the sweep job should issue a refund for this entry.
func (l *PaymentLog) NeedsRefund() bool {
	return l.Status == PaymentLogStatusRefund && l.PaymentID != nil && *l.PaymentID != ""
}
