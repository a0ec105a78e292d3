package domain

// PaymentLinkRequest describes a payment link to be created on the gateway.
// Amount is in currency major units; the wire conversion to minor units
// happens at transmission time, not here.
type PaymentLinkRequest struct {
	Amount         int64
	CallbackURL    string
	Description    string
	ExpireBy       int64 // Unix timestamp, 0 = no expiry
	PayerName      string
	PayerEmail     string
	PayerPhone     string
	ReferenceID    string // empty = generated per call
	NotifyViaEmail bool
	NotifyViaSMS   bool
	Notes          map[string]string
}

// HasAmount reports whether the request carries a usable amount.
func (r *PaymentLinkRequest) HasAmount() bool {
	return r != nil && r.Amount > 0
}
