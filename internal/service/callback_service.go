package service

import (
	"context"
	"fmt"
	"time"

	"razorpay-integration/internal/core/domain"
	"razorpay-integration/internal/core/ports"
	"razorpay-integration/pkg/apperror"

	"github.com/rs/zerolog"
)

// replayTTL is how long a processed payment id is remembered. Long enough to
// outlive any realistic redirect replay window.
const replayTTL = 24 * time.Hour

// CallbackServiceImpl implements ports.CallbackService.
// Pipeline: verify signature (strict) -> replay guard -> mark log entry paid.
type CallbackServiceImpl struct {
	sigSvc ports.SignatureService
	guard  ports.ReplayGuard
	logs   ports.PaymentLogRepository
	secret string
	log    zerolog.Logger
}

// NewCallbackService creates a new CallbackServiceImpl. secret is the
// gateway API secret, the shared HMAC key. guard may be nil to disable
// replay protection.
func NewCallbackService(
	sigSvc ports.SignatureService,
	guard ports.ReplayGuard,
	logs ports.PaymentLogRepository,
	secret string,
	log zerolog.Logger,
) *CallbackServiceImpl {
	return &CallbackServiceImpl{
		sigSvc: sigSvc,
		guard:  guard,
		logs:   logs,
		secret: secret,
		log:    log,
	}
}

// Confirm verifies and applies a payment-status callback, returning the
// updated payment log entry.
func (s *CallbackServiceImpl) Confirm(ctx context.Context, params domain.CallbackParams) (*domain.PaymentLog, error) {
	if _, err := s.sigSvc.VerifyCallback(params, s.secret, true); err != nil {
		s.log.Warn().
			Str("link_id", params.LinkID).
			Str("reference_id", params.ReferenceID).
			Msg("callback signature verification failed")
		return nil, err
	}

	if s.guard != nil {
		isNew, err := s.guard.CheckAndSet(ctx, params.PaymentID, replayTTL)
		if err != nil {
			s.log.Warn().Err(err).Msg("replay guard error, allowing callback")
		} else if !isNew {
			return nil, apperror.ErrCallbackReplayed()
		}
	}

	if err := s.logs.MarkPaid(ctx, params.ReferenceID, params.PaymentID); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("marking payment log paid: %w", err))
	}

	entry, err := s.logs.GetByReferenceID(ctx, params.ReferenceID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("fetching payment log: %w", err))
	}
	if entry == nil {
		return nil, apperror.ErrNotFound("payment log entry")
	}

	s.log.Info().
		Str("reference_id", params.ReferenceID).
		Str("payment_id", params.PaymentID).
		Str("link_status", params.LinkStatus).
		Msg("payment callback confirmed")

	return entry, nil
}
