package handler

import (
	"errors"
	"io"

	"razorpay-integration/internal/adapter/http/dto"
	"razorpay-integration/internal/core/domain"
	"razorpay-integration/internal/core/ports"
	"razorpay-integration/pkg/apperror"
	"razorpay-integration/pkg/response"

	"github.com/gin-gonic/gin"
)

// PaymentLinkHandler handles payment link and payment endpoints.
type PaymentLinkHandler struct {
	linkSvc ports.PaymentLinkService
}

// NewPaymentLinkHandler creates a new PaymentLinkHandler.
func NewPaymentLinkHandler(linkSvc ports.PaymentLinkService) *PaymentLinkHandler {
	return &PaymentLinkHandler{linkSvc: linkSvc}
}

// CreateLink handles POST /api/v1/payment-links.
func (h *PaymentLinkHandler) CreateLink(c *gin.Context) {
	var req dto.CreatePaymentLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.linkSvc.CreateLink(c.Request.Context(), &domain.PaymentLinkRequest{
		Amount:         req.Amount,
		CallbackURL:    req.CallbackURL,
		Description:    req.Description,
		ExpireBy:       req.ExpireBy,
		PayerName:      req.PayerName,
		PayerEmail:     req.PayerEmail,
		PayerPhone:     req.PayerPhone,
		ReferenceID:    req.ReferenceID,
		NotifyViaEmail: req.NotifyViaEmail,
		NotifyViaSMS:   req.NotifyViaSMS,
		Notes:          req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// GetLink handles GET /api/v1/payment-links/:link_id.
func (h *PaymentLinkHandler) GetLink(c *gin.Context) {
	linkID := c.Param("link_id")

	result, err := h.linkSvc.GetLink(c.Request.Context(), linkID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result)
}

// GetPayment handles GET /api/v1/payments/:payment_id.
func (h *PaymentLinkHandler) GetPayment(c *gin.Context) {
	paymentID := c.Param("payment_id")

	result, err := h.linkSvc.GetPayment(c.Request.Context(), paymentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result)
}

// Refund handles POST /api/v1/payments/:payment_id/refund.
// An omitted or zero amount requests a full refund.
func (h *PaymentLinkHandler) Refund(c *gin.Context) {
	paymentID := c.Param("payment_id")

	// An absent body is a full refund request.
	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.linkSvc.Refund(c.Request.Context(), paymentID, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}
