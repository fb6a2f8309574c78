package repositories

import (
	"time"

	"orderdesk/internal/models"
)

// OrderFilter restricts an order listing. All set fields combine with AND;
// the zero value matches every order. Date ranges are half-open [From, To).
type OrderFilter struct {
	DeliveringFrom *time.Time // on DeliveringDate
	DeliveringTo   *time.Time
	OrderedFrom    *time.Time // on DateOrder (creation date)
	OrderedTo      *time.Time
	ClientID       *uint
	ProductID      *uint // orders containing at least one item for this product
	Status         *models.OrderStatus
}

// ProductSales is one row of the popular-products aggregation.
type ProductSales struct {
	ProductID     uint `gorm:"column:product_id"`
	TotalQuantity int  `gorm:"column:total_quantity"`
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Find(filter OrderFilter) ([]models.Order, error)
	GetByID(id uint) (*models.Order, error)
	Create(order *models.Order) error
	// Update applies the given column values to one order; the caller has
	// already validated them. Missing order yields a not-found error.
	Update(id uint, updates map[string]interface{}) error
	Delete(id uint) error

	// AddItem atomically creates the (orderID, productID) line item or
	// increments its quantity when the row already exists.
	AddItem(orderID, productID uint, quantity int) (*models.OrderItem, error)
	GetItem(orderID, productID uint) (*models.OrderItem, error)
	SetItemQuantity(orderID, productID uint, quantity int) error
	DeleteItem(orderID, productID uint) error

	// Aggregations for the statistics engine.
	CountDeliveringBetween(from, to time.Time) (int64, error)
	FindPaidBetween(from, to time.Time) ([]models.Order, error)
	TopProducts(limit int) ([]ProductSales, error)
}
