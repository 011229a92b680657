package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ticketbot_orders_created_total",
			Help: "Orders created, by buyers and by admins",
		},
	)

	OrderActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketbot_order_actions_total",
			Help: "Admin actions on orders",
		},
		[]string{"action", "status"},
	)

	DeliveryFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ticketbot_delivery_failures_total",
			Help: "Messages that could not be delivered to a user chat",
		},
	)

	HandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketbot_handler_errors_total",
			Help: "Update handlers that returned an error",
		},
		[]string{"kind"},
	)
)

// Action statuses.
const (
	StatusOK       = "ok"
	StatusNotFound = "not_found"
	StatusConflict = "conflict"
)
