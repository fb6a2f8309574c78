package services

import (
	"encoding/json"
	"log"
	"time"

	"orderdesk/internal/apperr"
	"orderdesk/internal/dates"
	"orderdesk/internal/models"
	"orderdesk/internal/repositories"
	"orderdesk/pkg/rabbitmq"
)

// OrderService handles the order lifecycle and filtered listings.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	clientRepo  repositories.ClientRepository
	productRepo repositories.ProductRepository
	mqClient    *rabbitmq.Client
}

// NewOrderService creates a new OrderService. mqClient may be nil, in which
// case lifecycle events are not published.
func NewOrderService(orderRepo repositories.OrderRepository, clientRepo repositories.ClientRepository, productRepo repositories.ProductRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		mqClient:    mqClient,
	}
}

// FindOrders resolves a listing query. When the query selects a single order
// by id, that order is returned alone; otherwise the filtered collection is.
func (s *OrderService) FindOrders(q OrderQuery) (*models.Order, []models.Order, error) {
	id, filter, err := s.buildFilter(q)
	if err != nil {
		return nil, nil, err
	}
	if id != nil {
		order, err := s.orderRepo.GetByID(*id)
		if err != nil {
			return nil, nil, err
		}
		return order, nil, nil
	}
	orders, err := s.orderRepo.Find(filter)
	if err != nil {
		return nil, nil, err
	}
	return nil, orders, nil
}

// CreateOrder creates an empty order for a client, to be delivered on the
// given dd/mm/yyyy date. The date must be today or later.
func (s *OrderService) CreateOrder(clientID uint, deliveringDisplay string) (*models.Order, error) {
	delivering, err := dates.Parse(deliveringDisplay)
	if err != nil {
		return nil, err
	}
	if dates.BeforeToday(delivering) {
		return nil, apperr.New(apperr.PastDate, "deliveringDate",
			"delivering date %s is before today, impossible", deliveringDisplay)
	}
	if _, err := s.clientRepo.GetByID(clientID); err != nil {
		return nil, err
	}

	order := &models.Order{
		ClientID:       clientID,
		DateOrder:      time.Now(),
		DeliveringDate: delivering,
		Status:         models.StatusInitialized,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}
	// Re-read so the client association is populated for the response.
	order, err = s.orderRepo.GetByID(order.ID)
	if err != nil {
		return nil, err
	}

	s.publishEvent("order.created", map[string]interface{}{
		"orderID":        order.ID,
		"clientID":       order.ClientID,
		"deliveringDate": dates.Format(order.DeliveringDate),
		"status":         order.Status,
	})
	return order, nil
}

// AddItem adds quantity units of a product to an order. Adding a product
// already on the order accumulates into the existing line item.
func (s *OrderService) AddItem(orderID, productID uint, quantity int) (*models.OrderItem, error) {
	if quantity < 1 {
		return nil, apperr.New(apperr.InvalidArgument, "quantity",
			"quantity must be a positive integer, got %d", quantity)
	}
	if _, err := s.orderRepo.GetByID(orderID); err != nil {
		return nil, err
	}
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, err
	}
	item, err := s.orderRepo.AddItem(orderID, productID, quantity)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItemQuantity sets the absolute quantity of an existing line item.
// Setting it to zero removes the item; a line item never sits at zero.
func (s *OrderService) UpdateItemQuantity(orderID, productID uint, quantity int) (*models.OrderItem, error) {
	if quantity < 0 {
		return nil, apperr.New(apperr.InvalidArgument, "quantity",
			"quantity must be zero or a positive integer, got %d", quantity)
	}
	if quantity == 0 {
		if err := s.orderRepo.DeleteItem(orderID, productID); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err := s.orderRepo.SetItemQuantity(orderID, productID, quantity); err != nil {
		return nil, err
	}
	return s.orderRepo.GetItem(orderID, productID)
}

// RemoveItem deletes a line item from an order.
func (s *OrderService) RemoveItem(orderID, productID uint) error {
	return s.orderRepo.DeleteItem(orderID, productID)
}

// OrderUpdate carries the mutable order fields; nil means "leave unchanged".
type OrderUpdate struct {
	Status         *string
	DeliveringDate *string // dd/mm/yyyy
}

// UpdateOrder applies a partial update to an order. At least one field must
// be supplied; both are validated before anything is written, and the write
// is a single store call. Entering PREPARED stamps PaidAt with now.
func (s *OrderService) UpdateOrder(orderID uint, update OrderUpdate) (*models.Order, error) {
	if update.Status == nil && update.DeliveringDate == nil {
		return nil, apperr.New(apperr.InvalidArgument, "body",
			"supply a status and/or a deliveringDate to update")
	}

	updates := make(map[string]interface{})

	if update.Status != nil {
		status, ok := models.ParseOrderStatus(*update.Status)
		if !ok {
			return nil, apperr.New(apperr.InvalidArgument, "status",
				"enter a valid status among INITIALIZED, PREPARED, SHIPPED, DELIVERED")
		}
		updates["status"] = status
		if status == models.StatusPrepared {
			updates["paid_at"] = time.Now()
		}
	}

	if update.DeliveringDate != nil {
		delivering, err := dates.Parse(*update.DeliveringDate)
		if err != nil {
			return nil, err
		}
		if dates.BeforeToday(delivering) {
			return nil, apperr.New(apperr.PastDate, "deliveringDate",
				"delivering date %s is before today, impossible", *update.DeliveringDate)
		}
		updates["delivering_date"] = delivering
	}

	if err := s.orderRepo.Update(orderID, updates); err != nil {
		return nil, err
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	s.publishEvent("order.updated", map[string]interface{}{
		"orderID": order.ID,
		"status":  order.Status,
	})
	return order, nil
}

// DeleteOrder removes an order together with its line items.
func (s *OrderService) DeleteOrder(orderID uint) error {
	if err := s.orderRepo.Delete(orderID); err != nil {
		return err
	}
	s.publishEvent("order.deleted", map[string]interface{}{"orderID": orderID})
	return nil
}

// publishEvent pushes a lifecycle event to the broker, best effort: failures
// are logged and never fail the originating operation.
func (s *OrderService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.mqClient.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
