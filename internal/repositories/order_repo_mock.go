package repositories

import (
	"sort"
	"sync"
	"time"

	"orderdesk/internal/apperr"
	"orderdesk/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository,
// used in tests and when running without a database.
type MockOrderRepository struct {
	orders   map[uint]models.Order
	items    map[uint]map[uint]int // orderID -> productID -> quantity
	products map[uint]models.Product
	nextID   uint
	mu       sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders:   make(map[uint]models.Order),
		items:    make(map[uint]map[uint]int),
		products: make(map[uint]models.Product),
		nextID:   1,
	}
}

// SeedProduct registers product details so item views and revenue sums can
// resolve names and prices, mirroring the store-side join.
func (r *MockOrderRepository) SeedProduct(p models.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
}

// Find returns orders matching the filter, ordered by id.
func (r *MockOrderRepository) Find(filter OrderFilter) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []models.Order
	for _, order := range r.orders {
		if filter.DeliveringFrom != nil && filter.DeliveringTo != nil {
			if order.DeliveringDate.Before(*filter.DeliveringFrom) || !order.DeliveringDate.Before(*filter.DeliveringTo) {
				continue
			}
		}
		if filter.OrderedFrom != nil && filter.OrderedTo != nil {
			if order.DateOrder.Before(*filter.OrderedFrom) || !order.DateOrder.Before(*filter.OrderedTo) {
				continue
			}
		}
		if filter.ClientID != nil && order.ClientID != *filter.ClientID {
			continue
		}
		if filter.ProductID != nil {
			if _, ok := r.items[order.ID][*filter.ProductID]; !ok {
				continue
			}
		}
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		matched = append(matched, r.withItems(order))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id uint) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "id", "order with ID %d not found", id)
	}
	full := r.withItems(order)
	return &full, nil
}

// Create adds a new order.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == 0 {
		order.ID = r.nextID
		r.nextID++
	} else if order.ID >= r.nextID {
		r.nextID = order.ID + 1
	}
	r.orders[order.ID] = *order
	return nil
}

// Update applies column updates to one order.
func (r *MockOrderRepository) Update(id uint, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return apperr.New(apperr.NotFound, "id", "order with ID %d not found for update", id)
	}
	if v, ok := updates["status"]; ok {
		order.Status = v.(models.OrderStatus)
	}
	if v, ok := updates["delivering_date"]; ok {
		order.DeliveringDate = v.(time.Time)
	}
	if v, ok := updates["paid_at"]; ok {
		t := v.(time.Time)
		order.PaidAt = &t
	}
	r.orders[id] = order
	return nil
}

// Delete removes an order and its items.
func (r *MockOrderRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return apperr.New(apperr.NotFound, "id", "order with ID %d not found for deletion", id)
	}
	delete(r.orders, id)
	delete(r.items, id)
	return nil
}

// AddItem creates or increments the (orderID, productID) line item.
func (r *MockOrderRepository) AddItem(orderID, productID uint, quantity int) (*models.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.items[orderID] == nil {
		r.items[orderID] = make(map[uint]int)
	}
	r.items[orderID][productID] += quantity
	return r.itemLocked(orderID, productID)
}

// GetItem retrieves one line item.
func (r *MockOrderRepository) GetItem(orderID, productID uint) (*models.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.itemLocked(orderID, productID)
}

// SetItemQuantity overwrites the quantity of an existing line item.
func (r *MockOrderRepository) SetItemQuantity(orderID, productID uint, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[orderID][productID]; !ok {
		return apperr.New(apperr.NotFound, "productId",
			"order %d has no item for product %d", orderID, productID)
	}
	r.items[orderID][productID] = quantity
	return nil
}

// DeleteItem removes one line item.
func (r *MockOrderRepository) DeleteItem(orderID, productID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[orderID][productID]; !ok {
		return apperr.New(apperr.NotFound, "productId",
			"order %d has no item for product %d", orderID, productID)
	}
	delete(r.items[orderID], productID)
	return nil
}

// CountDeliveringBetween counts orders delivering in [from, to].
func (r *MockOrderRepository) CountDeliveringBetween(from, to time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, order := range r.orders {
		if !order.DeliveringDate.Before(from) && !order.DeliveringDate.After(to) {
			count++
		}
	}
	return count, nil
}

// FindPaidBetween returns orders paid in [from, to], items included.
func (r *MockOrderRepository) FindPaidBetween(from, to time.Time) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []models.Order
	for _, order := range r.orders {
		if order.PaidAt == nil || order.PaidAt.Before(from) || order.PaidAt.After(to) {
			continue
		}
		matched = append(matched, r.withItems(order))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

// TopProducts sums item quantities per product, most ordered first, ties
// broken by ascending product id.
func (r *MockOrderRepository) TopProducts(limit int) ([]ProductSales, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	totals := make(map[uint]int)
	for _, perOrder := range r.items {
		for productID, qty := range perOrder {
			totals[productID] += qty
		}
	}
	rows := make([]ProductSales, 0, len(totals))
	for productID, total := range totals {
		rows = append(rows, ProductSales{ProductID: productID, TotalQuantity: total})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalQuantity != rows[j].TotalQuantity {
			return rows[i].TotalQuantity > rows[j].TotalQuantity
		}
		return rows[i].ProductID < rows[j].ProductID
	})
	if limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *MockOrderRepository) itemLocked(orderID, productID uint) (*models.OrderItem, error) {
	qty, ok := r.items[orderID][productID]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "productId",
			"order %d has no item for product %d", orderID, productID)
	}
	item := models.OrderItem{OrderID: orderID, ProductID: productID, Quantity: qty}
	if p, ok := r.products[productID]; ok {
		prod := p
		item.Product = &prod
	}
	return &item, nil
}

func (r *MockOrderRepository) withItems(order models.Order) models.Order {
	order.Items = nil
	productIDs := make([]uint, 0, len(r.items[order.ID]))
	for productID := range r.items[order.ID] {
		productIDs = append(productIDs, productID)
	}
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })
	for _, productID := range productIDs {
		item, _ := r.itemLocked(order.ID, productID)
		order.Items = append(order.Items, *item)
	}
	return order
}
