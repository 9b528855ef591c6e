package engine

import (
	"fmt"
	"time"

	"lapak/internal/models"
)

// ReturnWindow is how long after delivery a return may be requested.
// A request at exactly the boundary is accepted.
const ReturnWindow = 72 * time.Hour

// IsActiveReturn reports whether a return in status s still blocks new
// claims on the same order item.
func IsActiveReturn(s models.ReturnStatus) bool {
	return s == models.ReturnPending || s == models.ReturnApproved
}

// ReturnRequest is the customer's input for a new return.
type ReturnRequest struct {
	ID          string
	Reason      string
	Description string
	ReturnType  string
	Quantity    int
	Images      []string
}

// NewReturn builds a pending return for item after checking, in order, that no
// other return is active for the item, that the order was delivered, and that
// the return window is still open.
func NewReturn(req ReturnRequest, order *models.Order, item *models.OrderItem, existing []models.Return, now time.Time) (*models.Return, error) {
	if order == nil || item == nil || item.OrderID != order.ID {
		return nil, ErrNotFound
	}
	for _, r := range existing {
		if r.OrderItemID == item.ID && IsActiveReturn(r.Status) {
			return nil, fmt.Errorf("%w: return %s is %s", ErrAlreadyActive, r.ID, r.Status)
		}
	}
	if order.Status != models.OrderDelivered {
		return nil, fmt.Errorf("%w: status is %s", ErrOrderNotDelivered, order.Status)
	}
	if now.Sub(deliveredAt(order)) > ReturnWindow {
		return nil, ErrReturnWindowExpired
	}
	if req.Quantity < 1 || req.Quantity > item.Quantity {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidQuantity, req.Quantity, item.Quantity)
	}
	if req.ReturnType != models.ReturnTypeReturn && req.ReturnType != models.ReturnTypeExchange {
		return nil, fmt.Errorf("%w: %q", ErrInvalidReturnType, req.ReturnType)
	}

	return &models.Return{
		ID:           req.ID,
		OrderID:      order.ID,
		OrderItemID:  item.ID,
		UserID:       order.UserID,
		VendorID:     item.VendorID,
		ProductID:    item.ProductID,
		VariantID:    item.VariantID,
		Reason:       req.Reason,
		Description:  req.Description,
		ReturnType:   req.ReturnType,
		Quantity:     req.Quantity,
		RefundAmount: item.Price * int64(req.Quantity),
		Images:       models.StringList(req.Images),
		Status:       models.ReturnPending,
		RequestedAt:  now,
		UpdatedAt:    now,
	}, nil
}

func requireReturnStatus(r *models.Return, want models.ReturnStatus) error {
	if r == nil {
		return ErrNotFound
	}
	if r.Status != want {
		return fmt.Errorf("%w: return is %s, expected %s", ErrInvalidTransition, r.Status, want)
	}
	return nil
}

// CancelReturn withdraws a pending return on the customer's behalf.
func CancelReturn(r *models.Return, reason string, now time.Time) error {
	if err := requireReturnStatus(r, models.ReturnPending); err != nil {
		return err
	}
	r.Status = models.ReturnCancelled
	r.SellerNotes = &reason
	r.CancelledAt = &now
	r.UpdatedAt = now
	return nil
}

// ApproveReturn accepts a pending return.
func ApproveReturn(r *models.Return, now time.Time) error {
	if err := requireReturnStatus(r, models.ReturnPending); err != nil {
		return err
	}
	r.Status = models.ReturnApproved
	r.ApprovedAt = &now
	r.UpdatedAt = now
	return nil
}

// RejectReturn refuses a pending return, recording the seller's reason.
func RejectReturn(r *models.Return, notes string, now time.Time) error {
	if err := requireReturnStatus(r, models.ReturnPending); err != nil {
		return err
	}
	r.Status = models.ReturnRejected
	r.SellerNotes = &notes
	r.UpdatedAt = now
	return nil
}

// CompleteExchange closes an approved exchange.
func CompleteExchange(r *models.Return, now time.Time) error {
	if err := requireReturnStatus(r, models.ReturnApproved); err != nil {
		return err
	}
	if r.ReturnType != models.ReturnTypeExchange {
		return fmt.Errorf("%w: return %s is not an exchange", ErrInvalidTransition, r.ID)
	}
	r.Status = models.ReturnCompleted
	r.CompletedAt = &now
	r.UpdatedAt = now
	return nil
}

// AuthorizeReturnRequest checks that caller placed the order being returned.
func AuthorizeReturnRequest(caller Caller, order *models.Order) error {
	if caller.Role == RoleAdmin {
		return nil
	}
	if caller.Role == RoleCustomer && caller.UserID != "" && caller.UserID == order.UserID {
		return nil
	}
	return ErrForbidden
}

// AuthorizeReturnReview checks that caller may approve, reject or complete r.
func AuthorizeReturnReview(caller Caller, r *models.Return) error {
	if caller.OwnsVendor(r.VendorID) {
		return nil
	}
	return ErrForbidden
}

// AuthorizeReturnCancel checks that caller requested r.
func AuthorizeReturnCancel(caller Caller, r *models.Return) error {
	if caller.Role == RoleAdmin {
		return nil
	}
	if caller.Role == RoleCustomer && caller.UserID != "" && caller.UserID == r.UserID {
		return nil
	}
	return ErrForbidden
}

// deliveredAt returns when order was delivered. Orders stored before the
// delivery time was recorded fall back to their last lifecycle change.
func deliveredAt(order *models.Order) time.Time {
	if order.DeliveredAt != nil {
		return *order.DeliveredAt
	}
	return order.UpdatedAt
}
