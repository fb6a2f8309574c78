package services_test

import (
	"testing"

	"orderdesk/internal/apperr"
	"orderdesk/internal/models"
	"orderdesk/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	newProduct := &models.Product{Name: "Crate", Price: 50.0, InStock: true}
	mockRepo.On("Create", newProduct).Return(nil).Once()
	assert.NoError(t, service.CreateProduct(newProduct))
	mockRepo.AssertExpectations(t)

	err := service.CreateProduct(&models.Product{Name: "Bad", Price: -1})
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))
}

func TestProductService_UpdateProduct_EmptyPatch(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	_, err := service.UpdateProduct(1, services.ProductUpdate{})
	assert.Error(t, err)
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))
	mockRepo.AssertNotCalled(t, "Update")
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	price := 12.0
	mockRepo.On("Update", uint(1), map[string]interface{}{"price": price}).Return(nil).Once()
	mockRepo.On("GetByID", uint(1)).Return(&models.Product{ID: 1, Name: "Crate", Price: price}, nil).Once()

	product, err := service.UpdateProduct(1, services.ProductUpdate{Price: &price})
	assert.NoError(t, err)
	assert.Equal(t, price, product.Price)
	mockRepo.AssertExpectations(t)
}

func TestProductService_AddImage_FirstBecomesMain(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("GetByID", uint(1)).Return(&models.Product{ID: 1, Name: "Crate"}, nil)
	mockRepo.On("CountImages", uint(1)).Return(int64(0), nil)
	mockRepo.On("HasMainImage", uint(1)).Return(false, nil)
	mockRepo.On("AddImage", mock.AnythingOfType("*models.ProductImage")).Return(nil)

	image, err := service.AddImage(1, "uploads/a.png", false, "")
	assert.NoError(t, err)
	assert.True(t, image.IsMain, "the first image of a product defaults to main")
	assert.Equal(t, "imageProduct-Crate", image.AltText, "altText falls back to a derived name")
}

func TestProductService_AddImage_SecondMainRejected(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("GetByID", uint(1)).Return(&models.Product{ID: 1, Name: "Crate"}, nil)
	mockRepo.On("CountImages", uint(1)).Return(int64(1), nil)
	mockRepo.On("HasMainImage", uint(1)).Return(true, nil)

	_, err := service.AddImage(1, "uploads/b.png", true, "side view")
	assert.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
	mockRepo.AssertNotCalled(t, "AddImage")
}

func TestProductService_AddImage_ExtraNonMainAllowed(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("GetByID", uint(1)).Return(&models.Product{ID: 1, Name: "Crate"}, nil)
	mockRepo.On("CountImages", uint(1)).Return(int64(2), nil)
	mockRepo.On("AddImage", mock.AnythingOfType("*models.ProductImage")).Return(nil)

	image, err := service.AddImage(1, "uploads/c.png", false, "back view")
	assert.NoError(t, err)
	assert.False(t, image.IsMain)
	assert.Equal(t, "back view", image.AltText)
	mockRepo.AssertNotCalled(t, "HasMainImage")
}

func TestProductService_DeleteImage(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("GetImage", uint(1), uint(9)).Return(&models.ProductImage{ID: 9, ProductID: 1, URL: "uploads/a.png"}, nil).Once()
	mockRepo.On("DeleteImage", uint(1), uint(9)).Return(nil).Once()

	url, err := service.DeleteImage(1, 9)
	assert.NoError(t, err)
	assert.Equal(t, "uploads/a.png", url)
	mockRepo.AssertExpectations(t)

	mockRepo.On("GetImage", uint(1), uint(10)).Return(nil, notFound("imageId")).Once()
	_, err = service.DeleteImage(1, 10)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}
