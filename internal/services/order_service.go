package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lapak/internal/engine"
	"lapak/internal/metrics"
	"lapak/internal/models"
	"lapak/internal/repositories"

	"go.uber.org/zap"
)

// OrderService handles order lifecycle and payment confirmation.
type OrderService struct {
	orderRepo repositories.OrderRepository
	events    EventPublisher
	log       *zap.Logger
	now       func() time.Time
}

// NewOrderService creates a new OrderService. events may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, events EventPublisher, log *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		events:    events,
		log:       nopIfNil(log),
		now:       time.Now,
	}
}

// WithClock replaces the time source.
func (s *OrderService) WithClock(now func() time.Time) *OrderService {
	s.now = now
	return s
}

// GetOrder returns an order visible to caller.
func (s *OrderService) GetOrder(ctx context.Context, caller engine.Caller, id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := engine.AuthorizeOrderView(caller, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Transition moves an order to the requested status.
func (s *OrderService) Transition(ctx context.Context, caller engine.Caller, id string, to models.OrderStatus, reason string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := engine.AuthorizeOrderTransition(caller, order, to); err != nil {
		recordRejection("order_transition", err)
		return nil, err
	}

	expected := order.Status
	change, err := engine.TransitionOrder(order, to, reason, s.now())
	if err != nil {
		recordRejection("order_transition", err)
		return nil, err
	}
	if change.MissingReason {
		s.log.Warn("order cancelled without a reason",
			zap.String("order_id", order.ID),
			zap.String("actor_id", caller.UserID))
	}

	if err := s.orderRepo.UpdateStatusIfCurrent(ctx, order, expected); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			err = fmt.Errorf("%w: order %s changed concurrently", engine.ErrInvalidTransition, order.ID)
			recordRejection("order_transition", err)
		}
		return nil, err
	}

	metrics.OrderTransitionsTotal.WithLabelValues(string(change.From), string(change.To)).Inc()
	s.log.Info("order status changed",
		zap.String("order_id", order.ID),
		zap.String("from", string(change.From)),
		zap.String("to", string(change.To)))
	publishEvent(s.events, s.log, LifecycleEvent{
		Type:       EventOrderStatusChanged,
		OrderID:    order.ID,
		From:       string(change.From),
		To:         string(change.To),
		ActorID:    caller.UserID,
		OccurredAt: change.At,
	})
	return order, nil
}

// ConfirmPayment marks a bank-transfer order as paid.
func (s *OrderService) ConfirmPayment(ctx context.Context, caller engine.Caller, id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := engine.AuthorizePaymentConfirmation(caller, order); err != nil {
		recordRejection("confirm_payment", err)
		return nil, err
	}
	if err := engine.ConfirmPayment(order, s.now()); err != nil {
		recordRejection("confirm_payment", err)
		return nil, err
	}

	if err := s.orderRepo.MarkPaidIfUnpaid(ctx, order); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			err = fmt.Errorf("%w: order %s already paid", engine.ErrInvalidPaymentState, order.ID)
			recordRejection("confirm_payment", err)
		}
		return nil, err
	}

	metrics.PaymentsConfirmedTotal.Inc()
	s.log.Info("payment confirmed", zap.String("order_id", order.ID))
	publishEvent(s.events, s.log, LifecycleEvent{
		Type:       EventOrderPaymentConfirmed,
		OrderID:    order.ID,
		To:         models.PaymentPaid,
		ActorID:    caller.UserID,
		OccurredAt: *order.PaidAt,
	})
	return order, nil
}
