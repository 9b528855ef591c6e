package models

import "time"

// OrderStatus is the lifecycle status of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every lifecycle status.
var OrderStatuses = []OrderStatus{
	OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCompleted, OrderCancelled,
}

const (
	PaymentCashOnDelivery = "cash-on-delivery"
	PaymentBankTransfer   = "bank-transfer"

	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

// OrderItem represents a single item within an order.
// Price is a snapshot taken at checkout and never follows the live product price.
type OrderItem struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string  `json:"order_id" gorm:"index;type:varchar(36);not null"`
	ProductID string  `json:"product_id" gorm:"type:varchar(36);not null"`
	VariantID *string `json:"variant_id,omitempty" gorm:"type:varchar(36)"`
	VendorID  string  `json:"vendor_id" gorm:"index;type:varchar(36);not null"`
	Price     int64   `json:"price" gorm:"not null"` // Price at the time of order
	Quantity  int     `json:"quantity" gorm:"not null"`
}

// Order represents a customer order placed with a single vendor.
type Order struct {
	ID                 string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID             string      `json:"user_id" gorm:"index;type:varchar(36);not null"`
	VendorID           string      `json:"vendor_id" gorm:"index;type:varchar(36);not null"`
	Items              []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	TotalAmount        int64       `json:"total_amount" gorm:"not null"`
	ShippingCost       int64       `json:"shipping_cost" gorm:"not null;default:0"`
	PaymentMethod      string      `json:"payment_method" gorm:"type:varchar(32);not null"`
	PaymentStatus      string      `json:"payment_status" gorm:"type:varchar(16);not null;default:'unpaid'"`
	Status             OrderStatus `json:"status" gorm:"type:varchar(16);index;not null;default:'pending'"`
	CancellationReason *string     `json:"cancellation_reason,omitempty"`
	DeliveredAt        *time.Time  `json:"delivered_at,omitempty"`
	PaidAt             *time.Time  `json:"paid_at,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at" gorm:"autoUpdateTime:false"`
}
