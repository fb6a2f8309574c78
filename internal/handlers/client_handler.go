package handlers

import (
	"log"

	"orderdesk/internal/middleware"
	"orderdesk/internal/models"
	"orderdesk/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ClientHandler handles HTTP requests for clients.
type ClientHandler struct {
	service  *services.ClientService
	validate *validator.Validate
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(service *services.ClientService) *ClientHandler {
	return &ClientHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the client routes; all of them are staff only.
func (h *ClientHandler) RegisterRoutes(router fiber.Router, authService *services.AuthService) {
	clientRoutes := router.Group("/clients",
		middleware.AuthRequired(authService),
		middleware.RequireRole(models.RoleAdmin, models.RoleEmployee))
	clientRoutes.Get("/", h.HandleGetClients)
	clientRoutes.Get("/:clientId", h.HandleGetClientByID)
	clientRoutes.Post("/", h.HandleCreateClient)
	clientRoutes.Delete("/:clientId", h.HandleDeleteClient)
}

// HandleGetClients retrieves all clients.
func (h *ClientHandler) HandleGetClients(c *fiber.Ctx) error {
	clients, err := h.service.GetAllClients()
	if err != nil {
		return respondError(c, err)
	}
	views := make([]clientView, 0, len(clients))
	for _, client := range clients {
		views = append(views, toClientView(&client))
	}
	return c.JSON(fiber.Map{
		"total":   len(views),
		"clients": views,
	})
}

// HandleGetClientByID retrieves a single client by its ID.
func (h *ClientHandler) HandleGetClientByID(c *fiber.Ctx) error {
	clientID, err := paramID(c, "clientId")
	if err != nil {
		return respondError(c, err)
	}
	client, err := h.service.GetClientByID(clientID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"client": toClientView(client)})
}

// HandleCreateClient registers a new client.
func (h *ClientHandler) HandleCreateClient(c *fiber.Ctx) error {
	var client models.Client
	if err := c.BodyParser(&client); err != nil {
		log.Printf("Error parsing create client body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(client); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	if err := h.service.CreateClient(&client); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Client created!",
		"client":  toClientView(&client),
	})
}

// HandleDeleteClient removes a client that no longer owns orders.
func (h *ClientHandler) HandleDeleteClient(c *fiber.Ctx) error {
	clientID, err := paramID(c, "clientId")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.DeleteClient(clientID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
