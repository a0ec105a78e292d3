package domain

// CallbackParams are the five fields the gateway appends to the callback
// redirect after a payment attempt on a link.
type CallbackParams struct {
	LinkID      string
	ReferenceID string
	LinkStatus  string
	PaymentID   string
	Signature   string
}

// Message builds the canonical HMAC input. Field order is part of the
// gateway's protocol and must not change.
func (p CallbackParams) Message() string {
	return p.LinkID + "|" + p.ReferenceID + "|" + p.LinkStatus + "|" + p.PaymentID
}
