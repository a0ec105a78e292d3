package razorpay

import (
	"context"
	"net/http"

	"razorpay-integration/internal/core/domain"
	"razorpay-integration/pkg/apperror"

	"github.com/google/uuid"
)

// minorUnitFactor converts major units to paise. The gateway assumes amount
// precision up to two places, specified as a whole integer.
const minorUnitFactor = 100

// emptyNotes is the shared default for requests without notes. Never mutated.
var emptyNotes = map[string]string{}

// GetOrCreatePaymentLink fetches a payment link by id when linkID is
// non-empty; otherwise it creates a new link from req. The two paths are
// mutually exclusive: on fetch, req is ignored entirely.
func (c *Client) GetOrCreatePaymentLink(ctx context.Context, linkID string, req *domain.PaymentLinkRequest) (domain.Payload, error) {
	if linkID != "" {
		return c.normalize("payment_link.fetch", func() (domain.Payload, error) {
			return c.doJSON(ctx, http.MethodGet, "/payment_links/"+linkID, nil)
		})
	}

	if !req.HasAmount() {
		return nil, apperror.ErrMissingAmount()
	}

	body := c.linkPayload(req)
	return c.normalize("payment_link.create", func() (domain.Payload, error) {
		return c.doJSON(ctx, http.MethodPost, "/payment_links", body)
	})
}

// linkPayload assembles the create request. Amount is converted to minor
// units here; callback URL and reference id fall back to the configured
// status endpoint and a freshly generated UUID. A fresh UUID per call means
// repeated creates without an explicit reference id produce distinct links.
func (c *Client) linkPayload(req *domain.PaymentLinkRequest) map[string]interface{} {
	callbackURL := req.CallbackURL
	if callbackURL == "" {
		callbackURL = c.callbackURL
	}

	referenceID := req.ReferenceID
	if referenceID == "" {
		referenceID = uuid.NewString()
	}

	notes := req.Notes
	if notes == nil {
		notes = emptyNotes
	}

	return map[string]interface{}{
		"amount":          req.Amount * minorUnitFactor,
		"callback_url":    callbackURL,
		"callback_method": "get",
		"currency":        "INR",
		"customer": map[string]interface{}{
			"name":  req.PayerName,
			"email": req.PayerEmail,
			"phone": req.PayerPhone,
		},
		"description":  req.Description,
		"expire_by":    req.ExpireBy,
		"notify":       map[string]interface{}{"sms": req.NotifyViaSMS, "email": req.NotifyViaEmail},
		"reference_id": referenceID,
		"notes":        notes,
	}
}
