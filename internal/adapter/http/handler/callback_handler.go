package handler

import (
	"time"

	"razorpay-integration/internal/adapter/http/dto"
	"razorpay-integration/internal/core/domain"
	"razorpay-integration/internal/core/ports"
	"razorpay-integration/pkg/apperror"
	"razorpay-integration/pkg/response"

	"github.com/gin-gonic/gin"
)

// CallbackHandler receives the payment-status redirect from Razorpay.
type CallbackHandler struct {
	callbackSvc ports.CallbackService
}

// NewCallbackHandler creates a new CallbackHandler.
func NewCallbackHandler(callbackSvc ports.CallbackService) *CallbackHandler {
	return &CallbackHandler{callbackSvc: callbackSvc}
}

// Confirm handles GET /razorpay_payment_status. Razorpay redirects the payer
// here with the link id, reference id, status, payment id and signature as
// query parameters.
func (h *CallbackHandler) Confirm(c *gin.Context) {
	var q dto.CallbackQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	entry, err := h.callbackSvc.Confirm(c.Request.Context(), domain.CallbackParams{
		LinkID:      q.LinkID,
		ReferenceID: q.ReferenceID,
		LinkStatus:  q.LinkStatus,
		PaymentID:   q.PaymentID,
		Signature:   q.Signature,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toPaymentLogResponse(entry))
}

// toPaymentLogResponse converts domain.PaymentLog to DTO.
func toPaymentLogResponse(l *domain.PaymentLog) dto.PaymentLogResponse {
	resp := dto.PaymentLogResponse{
		ID:          l.ID.String(),
		LinkID:      l.LinkID,
		ReferenceID: l.ReferenceID,
		PaymentID:   l.PaymentID,
		Amount:      l.Amount,
		Description: l.Description,
		Status:      string(l.Status),
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
	}
	if l.UpdatedAt != nil {
		s := l.UpdatedAt.Format(time.RFC3339)
		resp.UpdatedAt = &s
	}
	return resp
}
