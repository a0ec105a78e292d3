package dto

// CreatePaymentLinkRequest is the request body for payment link creation.
// Amount is in currency major units. The amount presence check lives in the
// gateway client so every caller gets it, not only the HTTP surface.
type CreatePaymentLinkRequest struct {
	Amount         int64             `json:"amount"`
	Description    string            `json:"description,omitempty"`
	CallbackURL    string            `json:"callback_url,omitempty"`
	ExpireBy       int64             `json:"expire_by,omitempty"`
	PayerName      string            `json:"payer_name,omitempty"`
	PayerEmail     string            `json:"payer_email,omitempty" binding:"omitempty,email"`
	PayerPhone     string            `json:"payer_phone,omitempty"`
	ReferenceID    string            `json:"reference_id,omitempty" binding:"omitempty,max=100"`
	NotifyViaEmail bool              `json:"notify_via_email,omitempty"`
	NotifyViaSMS   bool              `json:"notify_via_sms,omitempty"`
	Notes          map[string]string `json:"notes,omitempty"`
}

// RefundRequest is the request body for refund processing.
// Amount 0 (or omitted) requests a full refund.
type RefundRequest struct {
	Amount int64 `json:"amount,omitempty"`
}

// CallbackQuery binds the query parameters Razorpay appends to the callback
// redirect after a payment completes.
type CallbackQuery struct {
	LinkID      string `form:"razorpay_payment_link_id" binding:"required"`
	ReferenceID string `form:"razorpay_payment_link_reference_id" binding:"required"`
	LinkStatus  string `form:"razorpay_payment_link_status" binding:"required"`
	PaymentID   string `form:"razorpay_payment_id" binding:"required"`
	Signature   string `form:"razorpay_signature" binding:"required"`
}

// PaymentLogResponse is the response body for a confirmed callback.
type PaymentLogResponse struct {
	ID          string  `json:"id"`
	LinkID      string  `json:"link_id"`
	ReferenceID string  `json:"reference_id"`
	PaymentID   *string `json:"payment_id,omitempty"`
	Amount      int64   `json:"amount"`
	Description string  `json:"description,omitempty"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   *string `json:"updated_at,omitempty"`
}
