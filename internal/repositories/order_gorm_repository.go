package repositories

import (
	"errors"
	"fmt"
	"time"

	"orderdesk/internal/apperr"
	"orderdesk/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Find retrieves orders matching the filter, with client and item details.
func (r *GORMOrderRepository) Find(filter OrderFilter) ([]models.Order, error) {
	q := r.db.Preload("Client").Preload("Items.Product")

	if filter.DeliveringFrom != nil && filter.DeliveringTo != nil {
		q = q.Where("delivering_date >= ? AND delivering_date < ?", *filter.DeliveringFrom, *filter.DeliveringTo)
	}
	if filter.OrderedFrom != nil && filter.OrderedTo != nil {
		q = q.Where("date_order >= ? AND date_order < ?", *filter.OrderedFrom, *filter.OrderedTo)
	}
	if filter.ClientID != nil {
		q = q.Where("client_id = ?", *filter.ClientID)
	}
	if filter.ProductID != nil {
		sub := r.db.Model(&models.OrderItem{}).Select("order_id").Where("product_id = ?", *filter.ProductID)
		q = q.Where("id IN (?)", sub)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}

	var orders []models.Order
	if err := q.Order("id").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves a single order with client and item details.
func (r *GORMOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Client").Preload("Items.Product").First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "id", "order with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &order, nil
}

// Create creates a new order in the database.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// Update applies column updates to one order.
func (r *GORMOrderRepository) Update(id uint, updates map[string]interface{}) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update order %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "id", "order with ID %d not found for update", id)
	}
	return nil
}

// Delete deletes an order and, through the cascade constraint, its items.
func (r *GORMOrderRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Order{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete order %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.NotFound, "id", "order with ID %d not found for deletion", id)
		}
		// Cascade is declared on the relation; issue the delete explicitly
		// as well for stores where the constraint was not migrated.
		if err := tx.Delete(&models.OrderItem{}, "order_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete items of order %d: %w", id, err)
		}
		return nil
	})
}

// AddItem upserts the line item in a single statement so two concurrent adds
// for the same pair cannot lose an update.
func (r *GORMOrderRepository) AddItem(orderID, productID uint, quantity int) (*models.OrderItem, error) {
	item := models.OrderItem{OrderID: orderID, ProductID: productID, Quantity: quantity}
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "order_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("quantity + ?", quantity),
		}),
	}).Create(&item).Error
	if err != nil {
		return nil, fmt.Errorf("failed to add item (%d, %d): %w", orderID, productID, err)
	}
	// Re-read: on the increment path the struct still holds the request
	// quantity, not the accumulated one.
	return r.GetItem(orderID, productID)
}

// GetItem retrieves one line item by its composite key.
func (r *GORMOrderRepository) GetItem(orderID, productID uint) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.db.First(&item, "order_id = ? AND product_id = ?", orderID, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "productId",
				"order %d has no item for product %d", orderID, productID)
		}
		return nil, fmt.Errorf("failed to get item (%d, %d): %w", orderID, productID, err)
	}
	return &item, nil
}

// SetItemQuantity overwrites the quantity of an existing line item.
func (r *GORMOrderRepository) SetItemQuantity(orderID, productID uint, quantity int) error {
	res := r.db.Model(&models.OrderItem{}).
		Where("order_id = ? AND product_id = ?", orderID, productID).
		Update("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("failed to update item (%d, %d): %w", orderID, productID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "productId",
			"order %d has no item for product %d", orderID, productID)
	}
	return nil
}

// DeleteItem removes one line item.
func (r *GORMOrderRepository) DeleteItem(orderID, productID uint) error {
	res := r.db.Delete(&models.OrderItem{}, "order_id = ? AND product_id = ?", orderID, productID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete item (%d, %d): %w", orderID, productID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "productId",
			"order %d has no item for product %d", orderID, productID)
	}
	return nil
}

// CountDeliveringBetween counts orders whose delivery falls in [from, to].
func (r *GORMOrderRepository) CountDeliveringBetween(from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).
		Where("delivering_date >= ? AND delivering_date <= ?", from, to).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count orders in period: %w", err)
	}
	return count, nil
}

// FindPaidBetween retrieves orders paid in [from, to], items and products
// included, for revenue summation.
func (r *GORMOrderRepository) FindPaidBetween(from, to time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items.Product").
		Where("paid_at IS NOT NULL AND paid_at >= ? AND paid_at <= ?", from, to).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list paid orders in period: %w", err)
	}
	return orders, nil
}

// TopProducts sums line-item quantities per product, most ordered first.
// Ties break on ascending product id so the ranking is stable.
func (r *GORMOrderRepository) TopProducts(limit int) ([]ProductSales, error) {
	var rows []ProductSales
	err := r.db.Model(&models.OrderItem{}).
		Select("product_id, SUM(quantity) AS total_quantity").
		Group("product_id").
		Order("total_quantity DESC, product_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate popular products: %w", err)
	}
	return rows, nil
}
