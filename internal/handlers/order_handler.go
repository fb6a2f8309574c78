package handlers

import (
	"log"
	"strconv"

	"orderdesk/internal/apperr"
	"orderdesk/internal/middleware"
	"orderdesk/internal/models"
	"orderdesk/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders and their statistics.
type OrderHandler struct {
	service *services.OrderService
	stats   *services.StatsService
	baseURL string
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, stats *services.StatsService, baseURL string) *OrderHandler {
	return &OrderHandler{
		service: service,
		stats:   stats,
		baseURL: baseURL,
	}
}

// RegisterRoutes registers the order routes with the Fiber app. Every route
// requires a token; order mutation is open to admins and employees, the
// statistics endpoint to admins only.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, authService *services.AuthService) {
	staff := middleware.RequireRole(models.RoleAdmin, models.RoleEmployee)
	orderRoutes := router.Group("/orders", middleware.AuthRequired(authService))
	// Registered before /:orderId so "stats" is not read as an order id.
	orderRoutes.Get("/stats", middleware.RequireRole(models.RoleAdmin), h.HandleGetStats)
	orderRoutes.Get("/", staff, h.HandleListOrders)
	orderRoutes.Post("/", staff, h.HandleCreateOrder)
	orderRoutes.Patch("/:orderId", staff, h.HandleUpdateOrder)
	orderRoutes.Delete("/:orderId", staff, h.HandleDeleteOrder)
	orderRoutes.Post("/:orderId/items", staff, h.HandleAddItem)
	orderRoutes.Patch("/:orderId/items", staff, h.HandleUpdateItem)
	orderRoutes.Delete("/:orderId/items", staff, h.HandleRemoveItem)
}

// HandleListOrders retrieves orders, filtered by the optional query
// parameters, or a single order when the id parameter is given.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	query := services.OrderQuery{
		ID:        c.Query("id"),
		Time:      c.Query("time"),
		Planned:   c.Query("planned"),
		ClientID:  c.Query("clientId"),
		ProductID: c.Query("productId"),
		Status:    c.Query("status"),
	}

	single, orders, err := h.service.FindOrders(query)
	if err != nil {
		return respondError(c, err)
	}
	if single != nil {
		return c.JSON(fiber.Map{"order": toOrderView(*single, h.baseURL)})
	}

	views := make([]orderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, toOrderView(order, h.baseURL))
	}
	return c.JSON(fiber.Map{
		"totalOrders": len(views),
		"orders":      views,
	})
}

// HandleCreateOrder creates a new empty order.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req struct {
		ClientID       uint   `json:"clientId"`
		DeliveringDate string `json:"deliveringDate"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create order body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.ClientID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "clientId is required to create an order.",
		})
	}

	order, err := h.service.CreateOrder(req.ClientID, req.DeliveringDate)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "(empty) order created!",
		"order":   toOrderView(*order, h.baseURL),
		"request": requestLink{
			Type:    "GET",
			URL:     h.baseURL + "/orders",
			Comment: "Get all orders, a specific order with ?id=value, or today's deliveries with ?time=today",
		},
	})
}

// HandleUpdateOrder applies a partial update (status and/or deliveringDate).
func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	orderID, err := paramID(c, "orderId")
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		Status         *string `json:"status"`
		DeliveringDate *string `json:"deliveringDate"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update order body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	order, err := h.service.UpdateOrder(orderID, services.OrderUpdate{
		Status:         req.Status,
		DeliveringDate: req.DeliveringDate,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"order": toOrderView(*order, h.baseURL)})
}

// HandleDeleteOrder deletes an order together with its line items.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	orderID, err := paramID(c, "orderId")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.DeleteOrder(orderID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type itemRequest struct {
	ProductID uint `json:"productId"`
	Quantity  *int `json:"quantity"`
}

// HandleAddItem adds a product to an order, accumulating into the existing
// line item when the product is already on the order.
func (h *OrderHandler) HandleAddItem(c *fiber.Ctx) error {
	orderID, err := paramID(c, "orderId")
	if err != nil {
		return respondError(c, err)
	}
	req, err := parseItemRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	item, err := h.service.AddItem(orderID, req.ProductID, quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"product": toItemView(*item)})
}

// HandleUpdateItem sets the absolute quantity of a line item. A quantity of
// zero removes the item.
func (h *OrderHandler) HandleUpdateItem(c *fiber.Ctx) error {
	orderID, err := paramID(c, "orderId")
	if err != nil {
		return respondError(c, err)
	}
	req, err := parseItemRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	if req.Quantity == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "quantity is required to update an item.",
		})
	}

	item, err := h.service.UpdateItemQuantity(orderID, req.ProductID, *req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	if item == nil { // quantity reached zero, item removed
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(fiber.Map{"product": toItemView(*item)})
}

// HandleRemoveItem deletes a line item from an order.
func (h *OrderHandler) HandleRemoveItem(c *fiber.Ctx) error {
	orderID, err := paramID(c, "orderId")
	if err != nil {
		return respondError(c, err)
	}
	req, err := parseItemRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.RemoveItem(orderID, req.ProductID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleGetStats answers one of the three reporting queries. The
// popularProducts flag wins over sales; without either flag the order count
// for the period is returned.
func (h *OrderHandler) HandleGetStats(c *fiber.Ctx) error {
	fromPeriod := c.Query("fromPeriod")
	toPeriod := c.Query("toPeriod")

	if popular := c.Query("popularProducts"); popular != "" {
		n, convErr := strconv.Atoi(popular)
		if convErr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "popularProducts must be a positive integer.",
			})
		}
		ranking, err := h.stats.TopProducts(n)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(statsPopularView{PopularProducts: ranking})
	}

	if c.Query("sales") != "" {
		revenue, err := h.stats.RevenueInPeriod(fromPeriod, toPeriod)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(statsRevenueView{TotalRevenue: revenue})
	}

	count, err := h.stats.CountInPeriod(fromPeriod, toPeriod)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(statsCountView{Count: count})
}

func parseItemRequest(c *fiber.Ctx) (itemRequest, error) {
	var req itemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing item body: %v", err)
		return req, apperr.Wrap(err, apperr.InvalidArgument, "body", "invalid request body")
	}
	if req.ProductID == 0 {
		return req, apperr.New(apperr.InvalidArgument, "productId", "productId is required")
	}
	return req, nil
}
