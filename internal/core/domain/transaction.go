package domain

import (
	"time"

	"github.com/google/uuid"
)

// Gateway identifies which payment gateway a transaction went through.
type Gateway string

const (
	GatewayVNPay Gateway = "vnpay"
	GatewaySePay Gateway = "sepay"
)

// CodePrefix returns the gateway-visible idempotency code prefix.
func (g Gateway) CodePrefix() string {
	switch g {
	case GatewayVNPay:
		return "VNP"
	case GatewaySePay:
		return "SEPAY"
	default:
		return ""
	}
}

// TransactionStatus represents the lifecycle state of a transaction.
type TransactionStatus string

const (
	TransactionStatusPending TransactionStatus = "PENDING"
	TransactionStatusSuccess TransactionStatus = "SUCCESS"
	TransactionStatusFailed  TransactionStatus = "FAILED"
)

// Transaction is the record of one attempted money movement through a
// gateway. It is created PENDING when the payable artifact is built and
// transitions to SUCCESS or FAILED exactly once, driven by the callback
// reconciliation path.
type Transaction struct {
	ID       uuid.UUID         `json:"id"`
	Code     string            `json:"code"` // Gateway-visible idempotency code, unique per gateway
	Gateway  Gateway           `json:"gateway"`
	Amount   int64             `json:"amount"` // In minor units (VND)
	Currency string            `json:"currency"`
	Status   TransactionStatus `json:"status"`

	// Linked settlement target. Exactly one of DepositID/InvoiceID is set.
	DepositID *uuid.UUID `json:"deposit_id,omitempty"`
	InvoiceID *uuid.UUID `json:"invoice_id,omitempty"`

	// Fields assigned by the gateway callback; nil until reconciled.
	GatewayRef    *string `json:"gateway_ref,omitempty"`
	BankCode      *string `json:"bank_code,omitempty"`
	CardType      *string `json:"card_type,omitempty"`
	ResponseCode  *string `json:"response_code,omitempty"`
	SignatureSeen *string `json:"-"`

	OrderInfo     string     `json:"order_info"`
	ClientIP      string     `json:"client_ip,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	TransactionAt *time.Time `json:"transaction_at,omitempty"`
}

// IsTerminal returns true once the transaction reached a final state.
func (t *Transaction) IsTerminal() bool {
	return t.Status == TransactionStatusSuccess || t.Status == TransactionStatusFailed
}

// SettlesDeposit returns true if this transaction pays a deposit.
func (t *Transaction) SettlesDeposit() bool {
	return t.DepositID != nil
}

// SettlesInvoice returns true if this transaction pays an invoice.
func (t *Transaction) SettlesInvoice() bool {
	return t.InvoiceID != nil
}

// AmountMatches compares a callback-reported amount against the stored
// amount, absorbing up to tolerance minor units of rounding drift.
func (t *Transaction) AmountMatches(reported int64, tolerance int64) bool {
	diff := t.Amount - reported
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}
