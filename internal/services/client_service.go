package services

import (
	"orderdesk/internal/models"
	"orderdesk/internal/repositories"
)

// ClientService handles business logic related to clients.
type ClientService struct {
	repo repositories.ClientRepository
}

// NewClientService creates a new ClientService.
func NewClientService(repo repositories.ClientRepository) *ClientService {
	return &ClientService{
		repo: repo,
	}
}

// GetAllClients retrieves all clients.
func (s *ClientService) GetAllClients() ([]models.Client, error) {
	return s.repo.GetAll()
}

// GetClientByID retrieves a single client by its ID.
func (s *ClientService) GetClientByID(id uint) (*models.Client, error) {
	return s.repo.GetByID(id)
}

// CreateClient registers a new client.
func (s *ClientService) CreateClient(client *models.Client) error {
	return s.repo.Create(client)
}

// DeleteClient removes a client without orders; a client still owning orders
// is reported as a conflict by the repository.
func (s *ClientService) DeleteClient(id uint) error {
	return s.repo.Delete(id)
}
