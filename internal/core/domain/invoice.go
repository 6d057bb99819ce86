package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InvoiceStatus is the invoice lifecycle state.
type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "DRAFT"
	InvoiceStatusPaid  InvoiceStatus = "PAID"
)

// Invoice is the full settlement document for an order. At most one
// invoice exists per order; it is created lazily the first time a
// non-deposit payment is requested.
type Invoice struct {
	ID          uuid.UUID     `json:"id"`
	OrderID     uuid.UUID     `json:"order_id"`
	Code        string        `json:"code"` // Unique, derived from order id + timestamp
	TotalAmount int64         `json:"total_amount"`
	Status      InvoiceStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// BuildInvoiceCode derives the unique invoice code for an order.
func BuildInvoiceCode(orderID uuid.UUID, at time.Time) string {
	return fmt.Sprintf("INV-%s-%d", orderID.String()[:8], at.Unix())
}
