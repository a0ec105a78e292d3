package service

import (
	"context"
	"time"

	"razorpay-integration/internal/core/domain"
	"razorpay-integration/internal/core/ports"

	"github.com/rs/zerolog"
)

// RefundSweeper periodically moves Failed payment log entries to Refund and
// issues full refunds for swept entries through the gateway. Per-entry
// failures are logged and skipped; the entry stays in Refund and is retried
// on the next tick.
type RefundSweeper struct {
	logs     ports.PaymentLogRepository
	gateway  ports.GatewayClient
	interval time.Duration
	batch    int
	log      zerolog.Logger
}

// NewRefundSweeper creates a new RefundSweeper.
func NewRefundSweeper(
	logs ports.PaymentLogRepository,
	gateway ports.GatewayClient,
	interval time.Duration,
	batch int,
	log zerolog.Logger,
) *RefundSweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	if batch <= 0 {
		batch = 100
	}
	return &RefundSweeper{logs: logs, gateway: gateway, interval: interval, batch: batch, log: log}
}

// Start runs the sweep loop until ctx is cancelled.
func (s *RefundSweeper) Start(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep performs one pass: bulk Failed -> Refund, then refund each swept
// entry and mark it Refunded.
func (s *RefundSweeper) Sweep(ctx context.Context) {
	moved, err := s.logs.MarkFailedAsRefund(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("refund sweep: bulk status transition failed")
		return
	}
	if moved > 0 {
		s.log.Info().Int64("count", moved).Msg("refund sweep: moved failed entries to refund")
	}

	entries, err := s.logs.ListByStatus(ctx, domain.PaymentLogStatusRefund, s.batch)
	if err != nil {
		s.log.Error().Err(err).Msg("refund sweep: listing refund entries failed")
		return
	}

	for i := range entries {
		entry := &entries[i]
		if !entry.NeedsRefund() {
			continue
		}

		if _, err := s.gateway.RefundPayment(ctx, *entry.PaymentID, 0); err != nil {
			s.log.Warn().Err(err).
				Str("payment_id", *entry.PaymentID).
				Str("reference_id", entry.ReferenceID).
				Msg("refund sweep: gateway refund failed, will retry")
			continue
		}

		if err := s.logs.UpdateStatus(ctx, entry.ID, domain.PaymentLogStatusRefunded); err != nil {
			s.log.Error().Err(err).
				Str("reference_id", entry.ReferenceID).
				Msg("refund sweep: refunded at gateway but status update failed")
			continue
		}

		s.log.Info().
			Str("payment_id", *entry.PaymentID).
			Str("reference_id", entry.ReferenceID).
			Msg("refund sweep: entry refunded")
	}
}
