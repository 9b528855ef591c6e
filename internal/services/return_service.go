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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateReturnInput is a customer's return request for one order item.
type CreateReturnInput struct {
	OrderID     string
	OrderItemID string
	Reason      string
	Description string
	ReturnType  string
	Quantity    int
	Images      []string
}

// ReturnService handles return and exchange requests.
type ReturnService struct {
	orderRepo  repositories.OrderRepository
	returnRepo repositories.ReturnRepository
	events     EventPublisher
	log        *zap.Logger
	now        func() time.Time
}

// NewReturnService creates a new ReturnService. events may be nil.
func NewReturnService(orderRepo repositories.OrderRepository, returnRepo repositories.ReturnRepository, events EventPublisher, log *zap.Logger) *ReturnService {
	return &ReturnService{
		orderRepo:  orderRepo,
		returnRepo: returnRepo,
		events:     events,
		log:        nopIfNil(log),
		now:        time.Now,
	}
}

// WithClock replaces the time source.
func (s *ReturnService) WithClock(now func() time.Time) *ReturnService {
	s.now = now
	return s
}

// CreateReturn opens a pending return. At most one pending or approved
// return may exist per order item.
func (s *ReturnService) CreateReturn(ctx context.Context, caller engine.Caller, in CreateReturnInput) (*models.Return, error) {
	order, err := s.orderRepo.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if err := engine.AuthorizeReturnRequest(caller, order); err != nil {
		recordRejection("create_return", err)
		return nil, err
	}
	item, err := s.orderRepo.GetItem(ctx, in.OrderItemID)
	if err != nil {
		return nil, err
	}

	req := engine.ReturnRequest{
		ID:          uuid.New().String(),
		Reason:      in.Reason,
		Description: in.Description,
		ReturnType:  in.ReturnType,
		Quantity:    in.Quantity,
		Images:      in.Images,
	}
	now := s.now()
	ret, err := s.returnRepo.CreateGuarded(ctx, item.ID, func(existing []models.Return) (*models.Return, error) {
		return engine.NewReturn(req, order, item, existing, now)
	})
	if err != nil {
		recordRejection("create_return", err)
		return nil, err
	}

	metrics.ReturnsCreatedTotal.WithLabelValues(ret.ReturnType).Inc()
	s.log.Info("return requested",
		zap.String("return_id", ret.ID),
		zap.String("order_id", ret.OrderID),
		zap.String("order_item_id", ret.OrderItemID),
		zap.Int64("refund_amount", ret.RefundAmount))
	publishEvent(s.events, s.log, LifecycleEvent{
		Type:       EventReturnRequested,
		OrderID:    ret.OrderID,
		ReturnID:   ret.ID,
		To:         string(ret.Status),
		ActorID:    caller.UserID,
		OccurredAt: now,
	})
	return ret, nil
}

// CancelReturn withdraws a pending return on the requester's behalf.
func (s *ReturnService) CancelReturn(ctx context.Context, caller engine.Caller, id, reason string) (*models.Return, error) {
	return s.transition(ctx, caller, id, "cancel_return", EventReturnCancelled,
		engine.AuthorizeReturnCancel,
		func(r *models.Return, now time.Time) error { return engine.CancelReturn(r, reason, now) })
}

// ApproveReturn accepts a pending return.
func (s *ReturnService) ApproveReturn(ctx context.Context, caller engine.Caller, id string) (*models.Return, error) {
	return s.transition(ctx, caller, id, "approve_return", EventReturnApproved,
		engine.AuthorizeReturnReview, engine.ApproveReturn)
}

// RejectReturn refuses a pending return.
func (s *ReturnService) RejectReturn(ctx context.Context, caller engine.Caller, id, notes string) (*models.Return, error) {
	return s.transition(ctx, caller, id, "reject_return", EventReturnRejected,
		engine.AuthorizeReturnReview,
		func(r *models.Return, now time.Time) error { return engine.RejectReturn(r, notes, now) })
}

// CompleteExchange closes an approved exchange.
func (s *ReturnService) CompleteExchange(ctx context.Context, caller engine.Caller, id string) (*models.Return, error) {
	return s.transition(ctx, caller, id, "complete_exchange", EventReturnCompleted,
		engine.AuthorizeReturnReview, engine.CompleteExchange)
}

func (s *ReturnService) transition(
	ctx context.Context,
	caller engine.Caller,
	id, operation, event string,
	authorize func(engine.Caller, *models.Return) error,
	apply func(*models.Return, time.Time) error,
) (*models.Return, error) {
	ret, err := s.returnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(caller, ret); err != nil {
		recordRejection(operation, err)
		return nil, err
	}

	from := ret.Status
	now := s.now()
	if err := apply(ret, now); err != nil {
		recordRejection(operation, err)
		return nil, err
	}
	if err := s.returnRepo.UpdateIfStatus(ctx, ret, from); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			err = fmt.Errorf("%w: return %s changed concurrently", engine.ErrInvalidTransition, ret.ID)
			recordRejection(operation, err)
		}
		return nil, err
	}

	metrics.ReturnTransitionsTotal.WithLabelValues(string(ret.Status)).Inc()
	s.log.Info("return status changed",
		zap.String("return_id", ret.ID),
		zap.String("from", string(from)),
		zap.String("to", string(ret.Status)))
	publishEvent(s.events, s.log, LifecycleEvent{
		Type:       event,
		OrderID:    ret.OrderID,
		ReturnID:   ret.ID,
		From:       string(from),
		To:         string(ret.Status),
		ActorID:    caller.UserID,
		OccurredAt: now,
	})
	return ret, nil
}
