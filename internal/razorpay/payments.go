package razorpay

import (
	"context"
	"net/http"

	"razorpay-integration/internal/core/domain"
	"razorpay-integration/pkg/apperror"
)

// GetPayment fetches a payment by id through the SDK.
func (c *Client) GetPayment(ctx context.Context, paymentID string) (domain.Payload, error) {
	if paymentID == "" {
		return nil, apperror.ErrMissingPaymentID()
	}

	return c.normalize("payment.fetch", func() (domain.Payload, error) {
		m, err := c.payments.Fetch(paymentID, map[string]interface{}{}, nil)
		if err != nil {
			return nil, err
		}
		return domain.Payload(m), nil
	})
}

// RefundPayment refunds a payment. amount == 0 requests a full refund: the
// call goes over direct HTTP with an empty body so no amount field is
// transmitted and the gateway refunds the whole payment. Any other amount is
// converted to minor units and refunded partially through the SDK. Whether
// the amount exceeds the original payment is the gateway's check, reported
// back as a business error.
func (c *Client) RefundPayment(ctx context.Context, paymentID string, amount int64) (domain.Payload, error) {
	if paymentID == "" {
		return nil, apperror.ErrMissingPaymentID()
	}

	if amount == 0 {
		return c.normalize("payment.refund", func() (domain.Payload, error) {
			return c.doJSON(ctx, http.MethodPost, "/payments/"+paymentID+"/refund", map[string]interface{}{})
		})
	}

	return c.normalize("payment.refund", func() (domain.Payload, error) {
		m, err := c.payments.Refund(paymentID, int(amount*minorUnitFactor), map[string]interface{}{}, nil)
		if err != nil {
			return nil, err
		}
		return domain.Payload(m), nil
	})
}
