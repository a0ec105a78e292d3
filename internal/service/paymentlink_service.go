package service

import (
	"context"
	"time"

	"razorpay-integration/internal/core/domain"
	"razorpay-integration/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PaymentLinkServiceImpl implements ports.PaymentLinkService: it fronts the
// gateway client and keeps the payment log in step with created links.
type PaymentLinkServiceImpl struct {
	gateway ports.GatewayClient
	logs    ports.PaymentLogRepository
	log     zerolog.Logger
}

// NewPaymentLinkService creates a new PaymentLinkServiceImpl.
func NewPaymentLinkService(
	gateway ports.GatewayClient,
	logs ports.PaymentLogRepository,
	log zerolog.Logger,
) *PaymentLinkServiceImpl {
	return &PaymentLinkServiceImpl{gateway: gateway, logs: logs, log: log}
}

// CreateLink creates a payment link on the gateway and records it in the
// payment log. The link exists remotely once the gateway accepts it; a log
// write failure is reported to operators but does not fail the call.
func (s *PaymentLinkServiceImpl) CreateLink(ctx context.Context, req *domain.PaymentLinkRequest) (domain.Payload, error) {
	payload, err := s.gateway.GetOrCreatePaymentLink(ctx, "", req)
	if err != nil {
		return nil, err
	}

	entry := &domain.PaymentLog{
		ID:          uuid.New(),
		LinkID:      payload.Str("id"),
		ReferenceID: payload.Str("reference_id"),
		Amount:      req.Amount,
		Description: req.Description,
		Status:      domain.PaymentLogStatusCreated,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		s.log.Error().Err(err).
			Str("link_id", entry.LinkID).
			Str("reference_id", entry.ReferenceID).
			Msg("payment link created but log write failed")
	}

	return payload, nil
}

// GetLink fetches a payment link by its gateway-issued id.
func (s *PaymentLinkServiceImpl) GetLink(ctx context.Context, linkID string) (domain.Payload, error) {
	return s.gateway.GetOrCreatePaymentLink(ctx, linkID, nil)
}

// GetPayment fetches a payment by id.
func (s *PaymentLinkServiceImpl) GetPayment(ctx context.Context, paymentID string) (domain.Payload, error) {
	return s.gateway.GetPayment(ctx, paymentID)
}

// Refund refunds a payment; amount 0 means full refund.
func (s *PaymentLinkServiceImpl) Refund(ctx context.Context, paymentID string, amount int64) (domain.Payload, error) {
	return s.gateway.RefundPayment(ctx, paymentID, amount)
}
