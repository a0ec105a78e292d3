package ports

import (
	"context"

	"razorpay-integration/internal/core/domain"
)

// GatewayClient is the outbound Razorpay surface this application uses.
// Implementations must validate credentials at construction time; a client
// that exists is a client whose credentials were accepted by the gateway.
type GatewayClient interface {
	// GetOrCreatePaymentLink fetches the link by id when linkID is non-empty
	// (req is ignored), otherwise creates a new link from req.
	GetOrCreatePaymentLink(ctx context.Context, linkID string, req *domain.PaymentLinkRequest) (domain.Payload, error)

	// GetPayment fetches a payment by id.
	GetPayment(ctx context.Context, paymentID string) (domain.Payload, error)

	// RefundPayment refunds a payment. amount == 0 requests a full refund;
	// any other value is converted to minor units and refunded partially.
	RefundPayment(ctx context.Context, paymentID string, amount int64) (domain.Payload, error)
}

// SignatureService verifies gateway callback authenticity with HMAC-SHA256.
type SignatureService interface {
	// Sign computes the lowercase hex HMAC-SHA256 digest of payload.
	Sign(secret string, payload string) string

	// VerifyCallback checks params.Signature against the canonical callback
	// message. Non-strict mismatches return (false, nil); strict mismatches
	// return (false, SignatureMismatchError). Verification has no side effects.
	VerifyCallback(params domain.CallbackParams, secret string, strict bool) (bool, error)
}

// CallbackService processes an inbound payment-status callback.
type CallbackService interface {
	Confirm(ctx context.Context, params domain.CallbackParams) (*domain.PaymentLog, error)
}

// PaymentLinkService is the hosting-application-facing orchestration over the
// gateway client and the payment log.
type PaymentLinkService interface {
	CreateLink(ctx context.Context, req *domain.PaymentLinkRequest) (domain.Payload, error)
	GetLink(ctx context.Context, linkID string) (domain.Payload, error)
	GetPayment(ctx context.Context, paymentID string) (domain.Payload, error)
	Refund(ctx context.Context, paymentID string, amount int64) (domain.Payload, error)
}
