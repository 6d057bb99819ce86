package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the coarse order lifecycle state. The reconciliation
// engine only ever advances an order forward; other subsystems own the
// remaining transitions.
type OrderStatus string

const (
	OrderStatusAwaitingDeposit OrderStatus = "AWAITING_DEPOSIT"
	OrderStatusInProgress      OrderStatus = "IN_PROGRESS"
	OrderStatusPaySuccess      OrderStatus = "PAY_SUCCESS"
	OrderStatusConfirmed       OrderStatus = "CONFIRMED"
)

// orderStatusRank orders statuses so a cascade can refuse to regress.
var orderStatusRank = map[OrderStatus]int{
	OrderStatusAwaitingDeposit: 1,
	OrderStatusInProgress:      2,
	OrderStatusPaySuccess:      3,
	OrderStatusConfirmed:       4,
}

// Rank returns the position of the status in the forward ordering.
// Unknown statuses rank highest so the engine never overwrites them.
func (s OrderStatus) Rank() int {
	if r, ok := orderStatusRank[s]; ok {
		return r
	}
	return len(orderStatusRank) + 1
}

// Order owns deposits and the invoice. The payment engine reads it to
// derive deposit amounts and advances its status on successful payment.
type Order struct {
	ID          uuid.UUID   `json:"id"`
	Code        string      `json:"code"`
	FinalAmount int64       `json:"final_amount"` // In minor units (VND)
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// CanAdvanceTo reports whether moving to target is a forward transition.
func (o *Order) CanAdvanceTo(target OrderStatus) bool {
	return target.Rank() > o.Status.Rank()
}

// OrderStatusesBelow lists every status ranked strictly below target.
// Conditional updates use it to advance an order without ever
// regressing a later state.
func OrderStatusesBelow(target OrderStatus) []OrderStatus {
	var out []OrderStatus
	for s, r := range orderStatusRank {
		if r < target.Rank() {
			out = append(out, s)
		}
	}
	return out
}
