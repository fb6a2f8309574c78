package repositories

import (
	"errors"
	"fmt"

	"orderdesk/internal/apperr"
	"orderdesk/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product with its images.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Images").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "productId", "product with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update applies column updates to one product.
func (r *GORMProductRepository) Update(id uint, updates map[string]interface{}) error {
	res := r.db.Model(&models.Product{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "productId", "product with ID %d not found for update", id)
	}
	return nil
}

// Delete removes a product and its image rows, returning the image URLs.
func (r *GORMProductRepository) Delete(id uint) ([]string, error) {
	var urls []string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var images []models.ProductImage
		if err := tx.Find(&images, "product_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to list images of product %d: %w", id, err)
		}
		for _, img := range images {
			urls = append(urls, img.URL)
		}
		if err := tx.Delete(&models.ProductImage{}, "product_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete images of product %d: %w", id, err)
		}
		res := tx.Delete(&models.Product{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete product %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.NotFound, "productId", "product with ID %d not found for deletion", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return urls, nil
}

// AddImage stores a new product image row.
func (r *GORMProductRepository) AddImage(image *models.ProductImage) error {
	if err := r.db.Create(image).Error; err != nil {
		return fmt.Errorf("failed to create product image: %w", err)
	}
	return nil
}

// GetImage retrieves one image belonging to the given product.
func (r *GORMProductRepository) GetImage(productID, imageID uint) (*models.ProductImage, error) {
	var image models.ProductImage
	err := r.db.First(&image, "id = ? AND product_id = ?", imageID, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "imageId",
				"image %d not found for product %d", imageID, productID)
		}
		return nil, fmt.Errorf("failed to get image %d of product %d: %w", imageID, productID, err)
	}
	return &image, nil
}

// CountImages counts the images attached to a product.
func (r *GORMProductRepository) CountImages(productID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ProductImage{}).Where("product_id = ?", productID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count images of product %d: %w", productID, err)
	}
	return count, nil
}

// HasMainImage reports whether the product already has an image marked main.
func (r *GORMProductRepository) HasMainImage(productID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProductImage{}).
		Where("product_id = ? AND is_main = ?", productID, true).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check main image of product %d: %w", productID, err)
	}
	return count > 0, nil
}

// DeleteImage removes one image row of the given product.
func (r *GORMProductRepository) DeleteImage(productID, imageID uint) error {
	res := r.db.Delete(&models.ProductImage{}, "id = ? AND product_id = ?", imageID, productID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete image %d of product %d: %w", imageID, productID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "imageId",
			"image %d not found for product %d", imageID, productID)
	}
	return nil
}
