package domain

import (
	"time"

	"github.com/google/uuid"
)

// DepositStatus is the deposit lifecycle state.
type DepositStatus string

const (
	DepositStatusPending DepositStatus = "PENDING"
	DepositStatusPaid    DepositStatus = "PAID"
)

// PaymentMethod records how a deposit was (or will be) settled.
type PaymentMethod string

const (
	PaymentMethodVNPay        PaymentMethod = "VNPAY"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// Deposit is a partial upfront payment against an order. Auto-created
// deposits carry a policy fraction of the order's final amount;
// gateway-initiated deposits may carry an explicit amount.
type Deposit struct {
	ID        uuid.UUID     `json:"id"`
	OrderID   uuid.UUID     `json:"order_id"`
	Amount    int64         `json:"amount"` // In minor units (VND)
	Method    PaymentMethod `json:"method"`
	Status    DepositStatus `json:"status"`
	Receiver  *string       `json:"receiver,omitempty"`
	Note      *string       `json:"note,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
