package services

import (
	"orderdesk/internal/apperr"
	"orderdesk/internal/models"
	"orderdesk/internal/repositories"
)

// ProductService handles business logic related to products and their images.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new product.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if product.Price < 0 {
		return apperr.New(apperr.InvalidArgument, "price", "price must not be negative")
	}
	return s.repo.Create(product)
}

// ProductUpdate carries the mutable product fields; nil means unchanged.
type ProductUpdate struct {
	Name    *string
	Price   *float64
	InStock *bool
}

// UpdateProduct applies a partial update. At least one field is required.
func (s *ProductService) UpdateProduct(id uint, update ProductUpdate) (*models.Product, error) {
	updates := make(map[string]interface{})
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Price != nil {
		if *update.Price < 0 {
			return nil, apperr.New(apperr.InvalidArgument, "price", "price must not be negative")
		}
		updates["price"] = *update.Price
	}
	if update.InStock != nil {
		updates["in_stock"] = *update.InStock
	}
	if len(updates) == 0 {
		return nil, apperr.New(apperr.InvalidArgument, "body",
			"no field(s) or no valid field(s) provided for update")
	}
	if err := s.repo.Update(id, updates); err != nil {
		return nil, err
	}
	return s.repo.GetByID(id)
}

// DeleteProduct removes a product with its images, returning the stored
// image URLs so the caller can unlink the underlying files.
func (s *ProductService) DeleteProduct(id uint) ([]string, error) {
	if _, err := s.repo.GetByID(id); err != nil {
		return nil, err
	}
	return s.repo.Delete(id)
}

// AddImage attaches an uploaded image to a product. The first image of a
// product becomes main by default; a second main image is rejected.
func (s *ProductService) AddImage(productID uint, url string, isMain bool, altText string) (*models.ProductImage, error) {
	product, err := s.repo.GetByID(productID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.CountImages(productID)
	if err != nil {
		return nil, err
	}
	if !isMain && existing == 0 {
		isMain = true
	}
	if isMain {
		hasMain, err := s.repo.HasMainImage(productID)
		if err != nil {
			return nil, err
		}
		if hasMain {
			return nil, apperr.New(apperr.Conflict, "isMain",
				"product %d already has a main image, remove that assignment first", productID)
		}
	}
	if altText == "" {
		altText = "imageProduct-" + product.Name
	}

	image := &models.ProductImage{
		ProductID: productID,
		URL:       url,
		IsMain:    isMain,
		AltText:   altText,
	}
	if err := s.repo.AddImage(image); err != nil {
		return nil, err
	}
	return image, nil
}

// DeleteImage removes a product image row and returns its URL so the stored
// file can be cleaned up.
func (s *ProductService) DeleteImage(productID, imageID uint) (string, error) {
	image, err := s.repo.GetImage(productID, imageID)
	if err != nil {
		return "", err
	}
	if err := s.repo.DeleteImage(productID, imageID); err != nil {
		return "", err
	}
	return image.URL, nil
}
