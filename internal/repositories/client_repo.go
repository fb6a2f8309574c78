package repositories

import (
	"orderdesk/internal/models"
)

// ClientRepository defines the interface for client data access.
type ClientRepository interface {
	GetAll() ([]models.Client, error)
	GetByID(id uint) (*models.Client, error)
	Create(client *models.Client) error
	// Delete removes a client; it fails with a conflict while the client
	// still owns orders.
	Delete(id uint) error
}
