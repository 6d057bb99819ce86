package dto

import (
	"dealer-payment-service/internal/core/domain"
	"dealer-payment-service/internal/core/ports"
)

// CreatePaymentRequest is the request body for payment creation.
type CreatePaymentRequest struct {
	OrderID   string `json:"order_id" binding:"required,uuid"`
	Gateway   string `json:"gateway" binding:"required,oneof=vnpay sepay"`
	Purpose   string `json:"purpose" binding:"required,oneof=deposit invoice"`
	Amount    int64  `json:"amount" binding:"omitempty,gt=0"`
	OrderInfo string `json:"order_info" binding:"required,max=255"`
	BankCode  string `json:"bank_code" binding:"omitempty,safe_id"`
}

// PaymentResponse is the response body for successful payment creation.
// PayURL is set for the redirect gateway; QRImageURL and
// RemittanceContent for the bank-transfer gateway.
type PaymentResponse struct {
	TransactionID     string `json:"transaction_id"`
	Code              string `json:"code"`
	Gateway           string `json:"gateway"`
	Amount            int64  `json:"amount"`
	OrderInfo         string `json:"order_info"`
	PayURL            string `json:"pay_url,omitempty"`
	QRImageURL        string `json:"qr_image_url,omitempty"`
	RemittanceContent string `json:"remittance_content,omitempty"`
	ExpiresAt         *int64 `json:"expires_at,omitempty"` // Unix timestamp
}

// NewPaymentResponse maps a payment artifact onto the wire shape.
func NewPaymentResponse(a *ports.PaymentArtifact) PaymentResponse {
	resp := PaymentResponse{
		TransactionID:     a.TransactionID.String(),
		Code:              a.Code,
		Gateway:           string(a.Gateway),
		Amount:            a.Amount,
		OrderInfo:         a.OrderInfo,
		PayURL:            a.PayURL,
		QRImageURL:        a.QRImageURL,
		RemittanceContent: a.RemittanceContent,
	}
	if a.ExpiresAt != nil {
		exp := a.ExpiresAt.Unix()
		resp.ExpiresAt = &exp
	}
	return resp
}

// StatusResponse is the response body for transaction status queries.
type StatusResponse struct {
	TransactionID string  `json:"transaction_id"`
	Code          string  `json:"code"`
	Gateway       string  `json:"gateway"`
	Amount        int64   `json:"amount"`
	Currency      string  `json:"currency"`
	Status        string  `json:"status"`
	GatewayRef    *string `json:"gateway_ref,omitempty"`
	ResponseCode  *string `json:"response_code,omitempty"`
	CreatedAt     string  `json:"created_at"`
	TransactionAt *string `json:"transaction_at,omitempty"`
}

// NewStatusResponse maps a transaction onto the wire shape.
func NewStatusResponse(t *domain.Transaction) StatusResponse {
	resp := StatusResponse{
		TransactionID: t.ID.String(),
		Code:          t.Code,
		Gateway:       string(t.Gateway),
		Amount:        t.Amount,
		Currency:      t.Currency,
		Status:        string(t.Status),
		GatewayRef:    t.GatewayRef,
		ResponseCode:  t.ResponseCode,
		CreatedAt:     t.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if t.TransactionAt != nil {
		at := t.TransactionAt.UTC().Format("2006-01-02T15:04:05Z07:00")
		resp.TransactionAt = &at
	}
	return resp
}

// VNPayIPNResponse is the acknowledgement contract the redirect gateway
// expects on its server-to-server notification.
type VNPayIPNResponse struct {
	RspCode string `json:"RspCode"`
	Message string `json:"Message"`
}

// VNPayReturnResponse reports the payment state to the redirected
// browser. It carries no authority; the IPN path owns the transition.
type VNPayReturnResponse struct {
	Code    string `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// SePayWebhookResponse is the acknowledgement contract of the
// bank-transfer gateway webhook.
type SePayWebhookResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
