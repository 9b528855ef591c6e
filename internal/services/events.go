package services

import (
	"time"

	"lapak/internal/engine"
	"lapak/internal/metrics"

	"go.uber.org/zap"
)

// Lifecycle event routing keys.
const (
	EventOrderStatusChanged    = "order.status_changed"
	EventOrderPaymentConfirmed = "order.payment_confirmed"
	EventReturnRequested       = "return.requested"
	EventReturnCancelled       = "return.cancelled"
	EventReturnApproved        = "return.approved"
	EventReturnRejected        = "return.rejected"
	EventReturnCompleted       = "return.completed"
)

// EventPublisher publishes lifecycle events. *rabbitmq.Client satisfies it.
type EventPublisher interface {
	Publish(routingKey string, payload interface{}) error
}

// LifecycleEvent is the payload of every published event.
type LifecycleEvent struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"order_id"`
	ReturnID   string    `json:"return_id,omitempty"`
	From       string    `json:"from,omitempty"`
	To         string    `json:"to,omitempty"`
	ActorID    string    `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// publishEvent sends ev after the write it describes has been stored.
// Failures are logged and counted but never returned.
func publishEvent(pub EventPublisher, log *zap.Logger, ev LifecycleEvent) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ev.Type, ev); err != nil {
		metrics.EventPublishFailuresTotal.WithLabelValues(ev.Type).Inc()
		log.Warn("failed to publish lifecycle event",
			zap.String("event", ev.Type),
			zap.String("order_id", ev.OrderID),
			zap.String("return_id", ev.ReturnID),
			zap.Error(err))
	}
}

func recordRejection(operation string, err error) {
	if engine.IsRuleViolation(err) {
		metrics.RuleRejectionsTotal.WithLabelValues(operation, engine.Code(err)).Inc()
	}
}

func nopIfNil(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
