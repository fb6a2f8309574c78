package repositories

import (
	"errors"
	"fmt"
	"strings"

	"orderdesk/internal/apperr"
	"orderdesk/internal/models"

	"gorm.io/gorm"
)

// GORMClientRepository is a GORM implementation of ClientRepository.
type GORMClientRepository struct {
	db *gorm.DB
}

// NewGORMClientRepository creates a new instance of GORMClientRepository.
func NewGORMClientRepository(db *gorm.DB) *GORMClientRepository {
	return &GORMClientRepository{
		db: db,
	}
}

// GetAll retrieves all clients from the database.
func (r *GORMClientRepository) GetAll() ([]models.Client, error) {
	var clients []models.Client
	if err := r.db.Order("id").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("failed to get all clients: %w", err)
	}
	return clients, nil
}

// GetByID retrieves a single client by its ID from the database.
func (r *GORMClientRepository) GetByID(id uint) (*models.Client, error) {
	var client models.Client
	if err := r.db.First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "clientId", "client with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get client by ID %d: %w", id, err)
	}
	return &client, nil
}

// Create creates a new client; a duplicate email is reported as a conflict.
func (r *GORMClientRepository) Create(client *models.Client) error {
	if err := r.db.Create(client).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE") {
			return apperr.New(apperr.Conflict, "email", "client email %q is already registered", client.Email)
		}
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

// Delete deletes a client once it no longer owns orders.
func (r *GORMClientRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var orders int64
		if err := tx.Model(&models.Order{}).Where("client_id = ?", id).Count(&orders).Error; err != nil {
			return fmt.Errorf("failed to count orders of client %d: %w", id, err)
		}
		if orders > 0 {
			return apperr.New(apperr.Conflict, "clientId",
				"client %d still owns %d order(s) and cannot be deleted", id, orders)
		}
		res := tx.Delete(&models.Client{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete client %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.NotFound, "clientId", "client with ID %d not found for deletion", id)
		}
		return nil
	})
}
