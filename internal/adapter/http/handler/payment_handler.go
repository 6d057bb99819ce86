package handler

import (
	"fmt"
	"net/http"
	"net/url"

	"dealer-payment-service/config"
	"dealer-payment-service/internal/adapter/http/dto"
	"dealer-payment-service/internal/core/domain"
	"dealer-payment-service/internal/core/ports"
	"dealer-payment-service/pkg/apperror"
	"dealer-payment-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yeqown/go-qrcode"
)

// PaymentHandler handles the caller-facing payment endpoints.
type PaymentHandler struct {
	paymentSvc ports.PaymentService
	sepCfg     config.SePayConfig
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentSvc ports.PaymentService, sepCfg config.SePayConfig) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc, sepCfg: sepCfg}
}

// CreatePayment handles POST /api/v1/payments.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		response.Error(c, apperror.Validation("order_id is not a valid UUID"))
		return
	}

	artifact, err := h.paymentSvc.CreatePayment(c.Request.Context(), ports.CreatePaymentRequest{
		OrderID:   orderID,
		Gateway:   domain.Gateway(req.Gateway),
		Purpose:   ports.PaymentPurpose(req.Purpose),
		Amount:    req.Amount,
		OrderInfo: req.OrderInfo,
		BankCode:  req.BankCode,
		ClientIP:  c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.NewPaymentResponse(artifact))
}

// GetStatus handles GET /api/v1/payments/:code.
func (h *PaymentHandler) GetStatus(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		response.Error(c, apperror.Validation("code is required"))
		return
	}

	txn, err := h.paymentSvc.GetStatus(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewStatusResponse(txn))
}

// GetQR handles GET /api/v1/payments/:code/qr. It renders a scannable
// QR image for a pending bank-transfer payment; the encoded content is
// the VietQR link for the configured receiving account.
func (h *PaymentHandler) GetQR(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		response.Error(c, apperror.Validation("code is required"))
		return
	}

	txn, err := h.paymentSvc.GetStatus(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}
	if txn.Gateway != domain.GatewaySePay {
		response.Error(c, apperror.Validation("QR rendering is only available for bank transfer payments"))
		return
	}

	content := txn.Code
	if txn.OrderInfo != "" {
		content = txn.Code + " " + txn.OrderInfo
	}
	qrc, err := qrcode.New(h.buildVietQRURL(txn.Amount, content))
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	c.Header("Content-Type", "image/jpeg")
	c.Status(http.StatusOK)
	if err := qrc.SaveTo(c.Writer); err != nil {
		// Headers are gone at this point; nothing useful left to send.
		_ = c.Error(err)
	}
}

func (h *PaymentHandler) buildVietQRURL(amount int64, content string) string {
	return fmt.Sprintf("%s/%s-%s-compact2.png?amount=%d&addInfo=%s&accountName=%s",
		h.sepCfg.QRBaseURL,
		h.sepCfg.BankCode,
		h.sepCfg.AccountNumber,
		amount,
		url.QueryEscape(content),
		url.QueryEscape(h.sepCfg.AccountName),
	)
}
