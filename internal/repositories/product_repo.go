package repositories

import (
	"orderdesk/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	// Update applies the given column values to one product.
	Update(id uint, updates map[string]interface{}) error
	// Delete removes a product with its images and returns the image URLs so
	// the caller can clean up the stored files.
	Delete(id uint) ([]string, error)

	AddImage(image *models.ProductImage) error
	GetImage(productID, imageID uint) (*models.ProductImage, error)
	CountImages(productID uint) (int64, error)
	HasMainImage(productID uint) (bool, error)
	DeleteImage(productID, imageID uint) error
}
