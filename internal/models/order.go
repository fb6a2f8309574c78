package models

import "time"

// OrderStatus is the lifecycle state of an order. Any status may overwrite
// any other; only the transition into PREPARED has a side effect (PaidAt).
type OrderStatus string

const (
	StatusInitialized OrderStatus = "INITIALIZED"
	StatusPrepared    OrderStatus = "PREPARED"
	StatusShipped     OrderStatus = "SHIPPED"
	StatusDelivered   OrderStatus = "DELIVERED"
)

// OrderStatuses lists every valid status, in intended lifecycle order.
var OrderStatuses = []OrderStatus{StatusInitialized, StatusPrepared, StatusShipped, StatusDelivered}

// ParseOrderStatus reports whether s names a valid status and returns it.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, st := range OrderStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Order represents a client's request for delivery of products on a date.
// An order with zero items is valid ("empty order").
type Order struct {
	ID             uint        `json:"id" gorm:"primaryKey"`
	ClientID       uint        `json:"client_id" gorm:"not null;index"`
	Client         *Client     `json:"-" gorm:"foreignKey:ClientID"`
	DateOrder      time.Time   `json:"date_order" gorm:"not null;autoCreateTime"` // creation time, immutable
	DeliveringDate time.Time   `json:"delivering_date" gorm:"not null;index"`
	PaidAt         *time.Time  `json:"paid_at"` // stamped when the order enters PREPARED
	Status         OrderStatus `json:"status" gorm:"type:varchar(20);not null;default:'INITIALIZED'"`
	Items          []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is a line item. At most one row exists per (order, product) pair;
// adding the same product again increments Quantity instead of duplicating.
type OrderItem struct {
	OrderID   uint     `json:"order_id" gorm:"primaryKey;autoIncrement:false"`
	ProductID uint     `json:"product_id" gorm:"primaryKey;autoIncrement:false"`
	Product   *Product `json:"-" gorm:"foreignKey:ProductID"`
	Quantity  int      `json:"quantity" gorm:"not null"` // always >= 1
}
