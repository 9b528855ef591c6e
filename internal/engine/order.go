package engine

import (
	"fmt"
	"time"

	"lapak/internal/models"
)

// allowedTransitions is the order lifecycle. cancelled and completed are terminal.
var allowedTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderPending:    {models.OrderProcessing, models.OrderCancelled},
	models.OrderProcessing: {models.OrderShipped, models.OrderCancelled},
	models.OrderShipped:    {models.OrderDelivered},
	models.OrderDelivered:  {models.OrderCompleted},
}

// NextStatuses returns the statuses an order in from may move to.
func NextStatuses(from models.OrderStatus) []models.OrderStatus {
	next := allowedTransitions[from]
	out := make([]models.OrderStatus, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether the lifecycle allows from -> to.
func CanTransition(from, to models.OrderStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// StatusChange describes an applied lifecycle transition.
type StatusChange struct {
	From models.OrderStatus
	To   models.OrderStatus
	At   time.Time
	// MissingReason is set when an order is cancelled without a reason.
	// Callers should surface it as a warning.
	MissingReason bool
}

// TransitionOrder moves order to the requested status, mutating it in place.
// order is left untouched when the transition is rejected.
func TransitionOrder(order *models.Order, to models.OrderStatus, reason string, now time.Time) (StatusChange, error) {
	if order == nil {
		return StatusChange{}, ErrNotFound
	}
	from := order.Status
	if !CanTransition(from, to) {
		return StatusChange{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	change := StatusChange{From: from, To: to, At: now}
	order.Status = to
	order.UpdatedAt = now
	if to == models.OrderDelivered {
		delivered := now
		order.DeliveredAt = &delivered
	}
	if to == models.OrderCancelled {
		r := reason
		order.CancellationReason = &r
		change.MissingReason = reason == ""
	}
	return change, nil
}

// ConfirmPayment marks a bank-transfer order as paid. It is independent of the
// lifecycle status and fails on a second call. UpdatedAt and DeliveredAt are
// not touched.
func ConfirmPayment(order *models.Order, now time.Time) error {
	if order == nil {
		return ErrNotFound
	}
	if order.PaymentMethod != models.PaymentBankTransfer {
		return fmt.Errorf("%w: payment method %q needs no confirmation", ErrInvalidPaymentState, order.PaymentMethod)
	}
	if order.PaymentStatus == models.PaymentPaid {
		return fmt.Errorf("%w: order already paid", ErrInvalidPaymentState)
	}
	order.PaymentStatus = models.PaymentPaid
	paid := now
	order.PaidAt = &paid
	return nil
}

// AuthorizeOrderTransition checks that caller may move order to the requested
// status. Vendors are limited to their own orders; customers may only cancel
// orders they placed.
func AuthorizeOrderTransition(caller Caller, order *models.Order, to models.OrderStatus) error {
	switch caller.Role {
	case RoleAdmin:
		return nil
	case RoleVendor:
		if caller.OwnsVendor(order.VendorID) {
			return nil
		}
	case RoleCustomer:
		if caller.UserID != "" && caller.UserID == order.UserID && to == models.OrderCancelled {
			return nil
		}
	}
	return ErrForbidden
}

// AuthorizePaymentConfirmation checks that caller may confirm payment on order.
func AuthorizePaymentConfirmation(caller Caller, order *models.Order) error {
	if caller.OwnsVendor(order.VendorID) {
		return nil
	}
	return ErrForbidden
}

// AuthorizeOrderView checks that caller placed order or sells it.
func AuthorizeOrderView(caller Caller, order *models.Order) error {
	if caller.OwnsVendor(order.VendorID) {
		return nil
	}
	if caller.UserID != "" && caller.UserID == order.UserID {
		return nil
	}
	return ErrForbidden
}
