package engine_test

import (
	"testing"
	"time"

	"lapak/internal/engine"
	"lapak/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestTransitionOrder_AllStatusPairs(t *testing.T) {
	allowed := map[[2]models.OrderStatus]bool{
		{models.OrderPending, models.OrderProcessing}:   true,
		{models.OrderPending, models.OrderCancelled}:    true,
		{models.OrderProcessing, models.OrderShipped}:   true,
		{models.OrderProcessing, models.OrderCancelled}: true,
		{models.OrderShipped, models.OrderDelivered}:    true,
		{models.OrderDelivered, models.OrderCompleted}:  true,
	}

	checked := 0
	for _, from := range models.OrderStatuses {
		for _, to := range models.OrderStatuses {
			from, to := from, to
			checked++
			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				order := &models.Order{ID: "o-1", Status: from}
				_, err := engine.TransitionOrder(order, to, "reason", testNow)
				if allowed[[2]models.OrderStatus{from, to}] {
					assert.NoError(t, err)
					assert.Equal(t, to, order.Status)
					assert.Equal(t, testNow, order.UpdatedAt)
				} else {
					assert.ErrorIs(t, err, engine.ErrInvalidTransition)
					assert.Equal(t, from, order.Status, "rejected transition must not mutate the order")
				}
				assert.Equal(t, allowed[[2]models.OrderStatus{from, to}], engine.CanTransition(from, to))
			})
		}
	}
	assert.Equal(t, 36, checked)
}

func TestTransitionOrder_UnknownStatus(t *testing.T) {
	order := &models.Order{Status: models.OrderPending}
	_, err := engine.TransitionOrder(order, models.OrderStatus("refunded"), "", testNow)
	assert.ErrorIs(t, err, engine.ErrInvalidTransition)

	order = &models.Order{Status: models.OrderStatus("refunded")}
	_, err = engine.TransitionOrder(order, models.OrderPending, "", testNow)
	assert.ErrorIs(t, err, engine.ErrInvalidTransition)
}

func TestTransitionOrder_FullLifecycle(t *testing.T) {
	order := &models.Order{ID: "o-1", Status: models.OrderPending}

	for _, next := range []models.OrderStatus{models.OrderProcessing, models.OrderShipped, models.OrderDelivered} {
		change, err := engine.TransitionOrder(order, next, "", testNow)
		require.NoError(t, err)
		assert.Equal(t, next, change.To)
	}

	_, err := engine.TransitionOrder(order, models.OrderPending, "", testNow)
	assert.ErrorIs(t, err, engine.ErrInvalidTransition)
	assert.Equal(t, models.OrderDelivered, order.Status)
}

func TestTransitionOrder_RecordsDeliveryTime(t *testing.T) {
	order := &models.Order{ID: "o-1", Status: models.OrderShipped}

	_, err := engine.TransitionOrder(order, models.OrderDelivered, "", testNow)
	require.NoError(t, err)
	require.NotNil(t, order.DeliveredAt)
	assert.Equal(t, testNow, *order.DeliveredAt)

	_, err = engine.TransitionOrder(order, models.OrderCompleted, "", testNow.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, testNow, *order.DeliveredAt)
	assert.Equal(t, testNow.Add(time.Hour), order.UpdatedAt)
}

func TestTransitionOrder_CancellationReason(t *testing.T) {
	order := &models.Order{Status: models.OrderProcessing}
	change, err := engine.TransitionOrder(order, models.OrderCancelled, "out of stock", testNow)
	require.NoError(t, err)
	assert.False(t, change.MissingReason)
	require.NotNil(t, order.CancellationReason)
	assert.Equal(t, "out of stock", *order.CancellationReason)

	// An empty reason is accepted but flagged.
	order = &models.Order{Status: models.OrderPending}
	change, err = engine.TransitionOrder(order, models.OrderCancelled, "", testNow)
	require.NoError(t, err)
	assert.True(t, change.MissingReason)
	require.NotNil(t, order.CancellationReason)
	assert.Empty(t, *order.CancellationReason)
}

func TestNextStatuses(t *testing.T) {
	assert.ElementsMatch(t, []models.OrderStatus{models.OrderProcessing, models.OrderCancelled}, engine.NextStatuses(models.OrderPending))
	assert.Empty(t, engine.NextStatuses(models.OrderCancelled))
	assert.Empty(t, engine.NextStatuses(models.OrderCompleted))
}

func TestConfirmPayment(t *testing.T) {
	order := &models.Order{PaymentMethod: models.PaymentBankTransfer, PaymentStatus: models.PaymentUnpaid, Status: models.OrderShipped}

	// First confirmation succeeds regardless of lifecycle status
	assert.NoError(t, engine.ConfirmPayment(order, testNow))
	assert.Equal(t, models.PaymentPaid, order.PaymentStatus)
	require.NotNil(t, order.PaidAt)
	assert.Equal(t, testNow, *order.PaidAt)
	assert.True(t, order.UpdatedAt.IsZero())

	// Replay is rejected
	assert.ErrorIs(t, engine.ConfirmPayment(order, testNow), engine.ErrInvalidPaymentState)

	// Cash on delivery needs no confirmation
	cod := &models.Order{PaymentMethod: models.PaymentCashOnDelivery, PaymentStatus: models.PaymentUnpaid}
	assert.ErrorIs(t, engine.ConfirmPayment(cod, testNow), engine.ErrInvalidPaymentState)
	assert.Equal(t, models.PaymentUnpaid, cod.PaymentStatus)
}

func TestAuthorizeOrderTransition(t *testing.T) {
	order := &models.Order{UserID: "user-1", VendorID: "vendor-1"}

	tests := []struct {
		name    string
		caller  engine.Caller
		to      models.OrderStatus
		wantErr bool
	}{
		{"owning vendor", engine.Caller{UserID: "u9", VendorID: "vendor-1", Role: engine.RoleVendor}, models.OrderShipped, false},
		{"other vendor", engine.Caller{UserID: "u9", VendorID: "vendor-2", Role: engine.RoleVendor}, models.OrderShipped, true},
		{"vendor without id", engine.Caller{UserID: "u9", Role: engine.RoleVendor}, models.OrderShipped, true},
		{"admin", engine.Caller{UserID: "root", Role: engine.RoleAdmin}, models.OrderShipped, false},
		{"customer cancels own order", engine.Caller{UserID: "user-1", Role: engine.RoleCustomer}, models.OrderCancelled, false},
		{"customer ships own order", engine.Caller{UserID: "user-1", Role: engine.RoleCustomer}, models.OrderShipped, true},
		{"customer cancels other order", engine.Caller{UserID: "user-2", Role: engine.RoleCustomer}, models.OrderCancelled, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := engine.AuthorizeOrderTransition(tt.caller, order, tt.to)
			if tt.wantErr {
				assert.ErrorIs(t, err, engine.ErrForbidden)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthorizeOrderView(t *testing.T) {
	order := &models.Order{UserID: "user-1", VendorID: "vendor-1"}

	assert.NoError(t, engine.AuthorizeOrderView(engine.Caller{UserID: "user-1", Role: engine.RoleCustomer}, order))
	assert.NoError(t, engine.AuthorizeOrderView(engine.Caller{UserID: "s", VendorID: "vendor-1", Role: engine.RoleVendor}, order))
	assert.NoError(t, engine.AuthorizeOrderView(engine.Caller{UserID: "root", Role: engine.RoleAdmin}, order))
	assert.ErrorIs(t, engine.AuthorizeOrderView(engine.Caller{UserID: "user-2", Role: engine.RoleCustomer}, order), engine.ErrForbidden)
	assert.ErrorIs(t, engine.AuthorizeOrderView(engine.Caller{Role: engine.RoleCustomer}, &models.Order{VendorID: "vendor-1"}), engine.ErrForbidden)
}
