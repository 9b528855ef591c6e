package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"lapak/internal/engine"
	"lapak/internal/models"
	"lapak/internal/repositories"
	"lapak/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seedDeliveredOrder(t *testing.T, repo repositories.OrderRepository, deliveredAt time.Time) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:            "order-1",
		UserID:        "user-1",
		VendorID:      "vendor-1",
		PaymentMethod: models.PaymentCashOnDelivery,
		PaymentStatus: models.PaymentPaid,
		Status:        models.OrderDelivered,
		DeliveredAt:   &deliveredAt,
		UpdatedAt:     deliveredAt,
		Items: []models.OrderItem{
			{ID: "item-1", ProductID: "prod-1", VendorID: "vendor-1", Price: 50000, Quantity: 2},
		},
	}
	require.NoError(t, repo.Create(context.Background(), order))
	return order
}

func newReturnService(t *testing.T, deliveredAt time.Time) (*services.ReturnService, *MockPublisher) {
	orders := repositories.NewMemoryOrderRepository()
	seedDeliveredOrder(t, orders, deliveredAt)
	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil)
	svc := services.NewReturnService(orders, repositories.NewMemoryReturnRepository(), pub, nil).WithClock(fixedClock)
	return svc, pub
}

func returnInput(returnType string) services.CreateReturnInput {
	return services.CreateReturnInput{
		OrderID:     "order-1",
		OrderItemID: "item-1",
		Reason:      "wrong size",
		ReturnType:  returnType,
		Quantity:    2,
	}
}

func TestReturnService_CreateReturn(t *testing.T) {
	ctx := context.Background()
	svc, pub := newReturnService(t, testNow.Add(-time.Hour))

	ret, err := svc.CreateReturn(ctx, customerCaller, returnInput(models.ReturnTypeReturn))
	require.NoError(t, err)
	assert.NotEmpty(t, ret.ID)
	assert.Equal(t, models.ReturnPending, ret.Status)
	assert.Equal(t, int64(100000), ret.RefundAmount)
	assert.Equal(t, "vendor-1", ret.VendorID)
	pub.AssertCalled(t, "Publish", services.EventReturnRequested, mock.Anything)

	_, err = svc.CreateReturn(ctx, customerCaller, returnInput(models.ReturnTypeExchange))
	assert.ErrorIs(t, err, engine.ErrAlreadyActive)
}

func TestReturnService_CreateReturnRules(t *testing.T) {
	ctx := context.Background()

	svc, _ := newReturnService(t, testNow.Add(-engine.ReturnWindow-time.Second))
	_, err := svc.CreateReturn(ctx, customerCaller, returnInput(models.ReturnTypeReturn))
	assert.ErrorIs(t, err, engine.ErrReturnWindowExpired)

	svc, _ = newReturnService(t, testNow.Add(-engine.ReturnWindow))
	_, err = svc.CreateReturn(ctx, customerCaller, returnInput(models.ReturnTypeReturn))
	assert.NoError(t, err)

	svc, _ = newReturnService(t, testNow)
	_, err = svc.CreateReturn(ctx, engine.Caller{UserID: "user-2", Role: engine.RoleCustomer}, returnInput(models.ReturnTypeReturn))
	assert.ErrorIs(t, err, engine.ErrForbidden)

	in := returnInput(models.ReturnTypeReturn)
	in.OrderItemID = "item-404"
	_, err = svc.CreateReturn(ctx, customerCaller, in)
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

func TestReturnService_ConcurrentCreateAllowsOne(t *testing.T) {
	ctx := context.Background()
	svc, _ := newReturnService(t, testNow)

	const workers = 10
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateReturn(ctx, customerCaller, returnInput(models.ReturnTypeReturn))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	ok := 0
	for err := range results {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, engine.ErrAlreadyActive)
		}
	}
	assert.Equal(t, 1, ok)
}

func TestReturnService_CancelReturn(t *testing.T) {
	ctx := context.Background()
	svc, pub := newReturnService(t, testNow)

	ret, err := svc.CreateReturn(ctx, customerCaller, returnInput(models.ReturnTypeReturn))
	require.NoError(t, err)

	_, err = svc.CancelReturn(ctx, vendorCaller, ret.ID, "not mine")
	assert.ErrorIs(t, err, engine.ErrForbidden)

	cancelled, err := svc.CancelReturn(ctx, customerCaller, ret.ID, "kept it")
	require.NoError(t, err)
	assert.Equal(t, models.ReturnCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)
	pub.AssertCalled(t, "Publish", services.EventReturnCancelled, mock.Anything)

	_, err = svc.CancelReturn(ctx, customerCaller, ret.ID, "again")
	assert.ErrorIs(t, err, engine.ErrInvalidTransition)

	// A cancelled claim frees the item
	_, err = svc.CreateReturn(ctx, customerCaller, returnInput(models.ReturnTypeReturn))
	assert.NoError(t, err)
}

func TestReturnService_ReviewAndCompleteExchange(t *testing.T) {
	ctx := context.Background()
	svc, pub := newReturnService(t, testNow)

	ret, err := svc.CreateReturn(ctx, customerCaller, returnInput(models.ReturnTypeExchange))
	require.NoError(t, err)

	_, err = svc.CompleteExchange(ctx, vendorCaller, ret.ID)
	assert.ErrorIs(t, err, engine.ErrInvalidTransition)

	_, err = svc.ApproveReturn(ctx, customerCaller, ret.ID)
	assert.ErrorIs(t, err, engine.ErrForbidden)

	approved, err := svc.ApproveReturn(ctx, vendorCaller, ret.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReturnApproved, approved.Status)

	// Approved still blocks new claims
	_, err = svc.CreateReturn(ctx, customerCaller, returnInput(models.ReturnTypeReturn))
	assert.ErrorIs(t, err, engine.ErrAlreadyActive)

	completed, err := svc.CompleteExchange(ctx, vendorCaller, ret.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReturnCompleted, completed.Status)
	pub.AssertCalled(t, "Publish", services.EventReturnApproved, mock.Anything)
	pub.AssertCalled(t, "Publish", services.EventReturnCompleted, mock.Anything)
}

func TestReturnService_RejectReturn(t *testing.T) {
	ctx := context.Background()
	svc, _ := newReturnService(t, testNow)

	ret, err := svc.CreateReturn(ctx, customerCaller, returnInput(models.ReturnTypeReturn))
	require.NoError(t, err)

	rejected, err := svc.RejectReturn(ctx, vendorCaller, ret.ID, "used item")
	require.NoError(t, err)
	assert.Equal(t, models.ReturnRejected, rejected.Status)
	require.NotNil(t, rejected.SellerNotes)
	assert.Equal(t, "used item", *rejected.SellerNotes)

	_, err = svc.ApproveReturn(ctx, vendorCaller, ret.ID)
	assert.ErrorIs(t, err, engine.ErrInvalidTransition)
}
