package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusRank_ForwardOrdering(t *testing.T) {
	assert.Less(t, OrderStatusAwaitingDeposit.Rank(), OrderStatusInProgress.Rank())
	assert.Less(t, OrderStatusInProgress.Rank(), OrderStatusPaySuccess.Rank())
	assert.Less(t, OrderStatusPaySuccess.Rank(), OrderStatusConfirmed.Rank())
}

func TestOrderStatusRank_UnknownRanksHighest(t *testing.T) {
	unknown := OrderStatus("CANCELLED")
	assert.Greater(t, unknown.Rank(), OrderStatusConfirmed.Rank())
}

func TestOrder_CanAdvanceTo(t *testing.T) {
	o := &Order{Status: OrderStatusInProgress}

	assert.True(t, o.CanAdvanceTo(OrderStatusPaySuccess))
	assert.True(t, o.CanAdvanceTo(OrderStatusConfirmed))
	assert.False(t, o.CanAdvanceTo(OrderStatusInProgress))
	assert.False(t, o.CanAdvanceTo(OrderStatusAwaitingDeposit))
}

func TestOrder_CanAdvanceTo_NeverOverwritesUnknown(t *testing.T) {
	o := &Order{Status: OrderStatus("CANCELLED")}
	assert.False(t, o.CanAdvanceTo(OrderStatusConfirmed))
}

func TestOrderStatusesBelow(t *testing.T) {
	below := OrderStatusesBelow(OrderStatusPaySuccess)
	assert.ElementsMatch(t, []OrderStatus{OrderStatusAwaitingDeposit, OrderStatusInProgress}, below)

	assert.Empty(t, OrderStatusesBelow(OrderStatusAwaitingDeposit))

	all := OrderStatusesBelow(OrderStatusConfirmed)
	assert.Len(t, all, 3)
}
