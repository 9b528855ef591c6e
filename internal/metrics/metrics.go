package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrderTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lapak_order_transitions_total",
		Help: "Total number of order status changes applied.",
	},
		[]string{"from", "to"},
	)

	PaymentsConfirmedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lapak_payments_confirmed_total",
		Help: "Total number of orders marked as paid.",
	})

	ReturnsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lapak_returns_created_total",
		Help: "Total number of return requests accepted.",
	},
		[]string{"type"},
	)

	ReturnTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lapak_return_transitions_total",
		Help: "Total number of return status changes applied.",
	},
		[]string{"to"},
	)

	VouchersValidatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lapak_vouchers_validated_total",
		Help: "Total number of voucher validations by result code.",
	},
		[]string{"result"},
	)

	RuleRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lapak_rule_rejections_total",
		Help: "Total number of operations rejected by a business rule.",
	},
		[]string{"operation", "code"},
	)

	EventPublishFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lapak_event_publish_failures_total",
		Help: "Total number of lifecycle events that could not be published.",
	},
		[]string{"event"},
	)
)
