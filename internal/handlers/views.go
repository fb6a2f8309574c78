package handlers

import (
	"fmt"
	"log"
	"strconv"

	"orderdesk/internal/apperr"
	"orderdesk/internal/dates"
	"orderdesk/internal/models"
	"orderdesk/internal/services"

	"github.com/gofiber/fiber/v2"
)

// requestLink is the derived hyperlink block attached to responses.
type requestLink struct {
	Type    string `json:"type"`
	URL     string `json:"url"`
	Comment string `json:"comment,omitempty"`
}

type clientView struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// orderItemView joins a line item with its product details. Name and price
// are nil when the product row is gone.
type orderItemView struct {
	ProductID    uint     `json:"productId"`
	ProductName  *string  `json:"productName"`
	ProductPrice *float64 `json:"productPrice"`
	Quantity     int      `json:"quantity"`
}

// orderView is the external shape of an order. All dates cross the boundary
// in the dd/mm/yyyy display format; a missing paidAt renders as null.
type orderView struct {
	ID             uint            `json:"id"`
	DateOrder      string          `json:"dateOrder"`
	DeliveringDate string          `json:"deliveringDate"`
	PaidAt         *string         `json:"paidAt"`
	Status         string          `json:"status"`
	Client         clientView      `json:"client"`
	Products       []orderItemView `json:"products"`
	Request        requestLink     `json:"request"`
}

type productView struct {
	ID      uint        `json:"id"`
	Name    string      `json:"name"`
	Price   float64     `json:"price"`
	InStock bool        `json:"inStock"`
	Request requestLink `json:"request"`
}

func toClientView(c *models.Client) clientView {
	if c == nil {
		return clientView{}
	}
	return clientView{ID: c.ID, Email: c.Email, Name: c.Name}
}

func toItemView(item models.OrderItem) orderItemView {
	view := orderItemView{ProductID: item.ProductID, Quantity: item.Quantity}
	if item.Product != nil {
		name := item.Product.Name
		price := item.Product.Price
		view.ProductName = &name
		view.ProductPrice = &price
	}
	return view
}

func toOrderView(order models.Order, baseURL string) orderView {
	view := orderView{
		ID:             order.ID,
		DateOrder:      dates.Format(order.DateOrder),
		DeliveringDate: dates.Format(order.DeliveringDate),
		PaidAt:         dates.FormatPtr(order.PaidAt),
		Status:         string(order.Status),
		Client:         toClientView(order.Client),
		Products:       make([]orderItemView, 0, len(order.Items)),
		Request: requestLink{
			Type:    "GET",
			URL:     fmt.Sprintf("%s/orders?id=%d", baseURL, order.ID),
			Comment: "Click to see the order detail !",
		},
	}
	for _, item := range order.Items {
		view.Products = append(view.Products, toItemView(item))
	}
	return view
}

func toProductView(product models.Product, baseURL string) productView {
	return productView{
		ID:      product.ID,
		Name:    product.Name,
		Price:   product.Price,
		InStock: product.InStock,
		Request: requestLink{
			Type:    "GET",
			URL:     fmt.Sprintf("%s/products/%d", baseURL, product.ID),
			Comment: "Get all info of this product!",
		},
	}
}

type statsCountView struct {
	Count int64 `json:"count"`
}

type statsRevenueView struct {
	TotalRevenue float64 `json:"totalRevenue"`
}

type statsPopularView struct {
	PopularProducts []services.PopularProduct `json:"popularProducts"`
}

// paramID parses a numeric path parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, apperr.New(apperr.InvalidArgument, name, "%q is not a valid integer id", c.Params(name))
	}
	return uint(v), nil
}

// respondError maps a service error to its HTTP status. Internal failures
// are logged; validation failures are echoed back with their field.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.InvalidArgument, apperr.PastDate:
		status = fiber.StatusBadRequest
	case apperr.NotFound:
		status = fiber.StatusNotFound
	case apperr.Conflict:
		status = fiber.StatusConflict
	}
	if status == fiber.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
		return c.Status(status).JSON(fiber.Map{"error": "unexpected internal error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
