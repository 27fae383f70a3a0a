package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionForwardSteps(t *testing.T) {
	forward := []struct {
		from, to OrderStatus
	}{
		{StatusPending, StatusConfirmed},
		{StatusConfirmed, StatusPreparing},
		{StatusPreparing, StatusReady},
		{StatusReady, StatusOutForDelivery},
		{StatusOutForDelivery, StatusDelivered},
	}

	for _, step := range forward {
		assert.True(t, CanTransition(step.from, step.to), "%s -> %s", step.from, step.to)
	}
}

func TestCanTransitionRejectsBackwardAndSame(t *testing.T) {
	assert.False(t, CanTransition(StatusDelivered, StatusPreparing))
	assert.False(t, CanTransition(StatusOutForDelivery, StatusConfirmed))
	assert.False(t, CanTransition(StatusPreparing, StatusPending))

	all := []OrderStatus{
		StatusPending, StatusConfirmed, StatusPreparing, StatusReady,
		StatusOutForDelivery, StatusDelivered, StatusCancelled,
	}
	for _, status := range all {
		assert.False(t, CanTransition(status, status), "%s -> %s", status, status)
	}
}

func TestCancellationReachableFromNonTerminalOnly(t *testing.T) {
	nonTerminal := []OrderStatus{
		StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusOutForDelivery,
	}
	for _, status := range nonTerminal {
		assert.True(t, CanTransition(status, StatusCancelled), "%s -> cancelled", status)
	}

	assert.False(t, CanTransition(StatusDelivered, StatusCancelled))
	assert.False(t, CanTransition(StatusCancelled, StatusCancelled))
}

func TestTerminalStatesAdmitNoTransitions(t *testing.T) {
	assert.True(t, IsTerminal(StatusDelivered))
	assert.True(t, IsTerminal(StatusCancelled))
	assert.False(t, IsTerminal(StatusPending))
	assert.False(t, IsTerminal(StatusOutForDelivery))

	for _, to := range []OrderStatus{
		StatusPending, StatusConfirmed, StatusPreparing, StatusReady,
		StatusOutForDelivery, StatusDelivered,
	} {
		assert.False(t, CanTransition(StatusCancelled, to), "cancelled -> %s", to)
	}
}

func TestValidateOrderStatus(t *testing.T) {
	status, err := ValidateOrderStatus("out-for-delivery")
	assert.NoError(t, err)
	assert.Equal(t, StatusOutForDelivery, status)

	_, err = ValidateOrderStatus("shipped")
	assert.Error(t, err)
}

func TestGenerateOrderNumber(t *testing.T) {
	date := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "ORD_20260315_001", GenerateOrderNumber(date, 1))
	assert.Equal(t, "ORD_20260315_042", GenerateOrderNumber(date, 42))
	assert.Equal(t, "ORD_20260315_123", GenerateOrderNumber(date, 123))
}

func TestOrderPriorityBands(t *testing.T) {
	assert.Equal(t, 1, OrderPriority(120))
	assert.Equal(t, 5, OrderPriority(500))
	assert.Equal(t, 5, OrderPriority(1000))
	assert.Equal(t, 10, OrderPriority(1000.01))
}

func TestOrderRoutingKey(t *testing.T) {
	assert.Equal(t, "order.placed.upi.5", OrderRoutingKey(PaymentUPI, 5))
	assert.Equal(t, "order.placed.cash.1", OrderRoutingKey(PaymentCash, 1))
}
