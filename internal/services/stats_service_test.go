package services_test

import (
	"testing"
	"time"

	"orderdesk/internal/apperr"
	"orderdesk/internal/dates"
	"orderdesk/internal/models"
	"orderdesk/internal/repositories"
	"orderdesk/internal/services"

	"github.com/stretchr/testify/assert"
)

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := dates.Parse(s)
	assert.NoError(t, err)
	return d
}

func seedPaidOrder(t *testing.T, repo *repositories.MockOrderRepository, paidAt time.Time, items map[uint]int) {
	t.Helper()
	order := &models.Order{
		ClientID:       1,
		DateOrder:      paidAt,
		DeliveringDate: paidAt,
		PaidAt:         &paidAt,
		Status:         models.StatusPrepared,
	}
	assert.NoError(t, repo.Create(order))
	for productID, qty := range items {
		_, err := repo.AddItem(order.ID, productID, qty)
		assert.NoError(t, err)
	}
}

func TestStatsService_CountInPeriod(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	service := services.NewStatsService(orderRepo, new(MockProductRepository))

	for _, day := range []string{"05/01/2025", "20/01/2025", "01/02/2025"} {
		d := mustParse(t, day)
		assert.NoError(t, orderRepo.Create(&models.Order{ClientID: 1, DateOrder: d, DeliveringDate: d, Status: models.StatusInitialized}))
	}

	count, err := service.CountInPeriod("01/01/2025", "31/01/2025")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// The period is inclusive of both end days.
	count, err = service.CountInPeriod("05/01/2025", "05/01/2025")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = service.CountInPeriod("01/01/2025", "")
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err), "one bound alone is invalid")
}

func TestStatsService_RevenueInPeriod(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	orderRepo.SeedProduct(models.Product{ID: 1, Name: "Crate", Price: 10})
	orderRepo.SeedProduct(models.Product{ID: 2, Name: "Box", Price: 5})
	service := services.NewStatsService(orderRepo, new(MockProductRepository))

	// Paid inside the window: 3*10 + 1*5 = 35.
	seedPaidOrder(t, orderRepo, mustParse(t, "15/01/2025"), map[uint]int{1: 3, 2: 1})
	// Paid outside the window contributes nothing.
	seedPaidOrder(t, orderRepo, mustParse(t, "15/02/2025"), map[uint]int{1: 100})
	// Never paid contributes nothing either.
	d := mustParse(t, "10/01/2025")
	assert.NoError(t, orderRepo.Create(&models.Order{ClientID: 1, DateOrder: d, DeliveringDate: d, Status: models.StatusInitialized}))

	revenue, err := service.RevenueInPeriod("01/01/2025", "31/01/2025")
	assert.NoError(t, err)
	assert.Equal(t, 35.0, revenue)
}

func TestStatsService_RevenueInPeriod_SkipsMissingProducts(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	orderRepo.SeedProduct(models.Product{ID: 1, Name: "Crate", Price: 10})
	service := services.NewStatsService(orderRepo, new(MockProductRepository))

	// Product 9 has no detail row: its items are skipped, not fatal.
	seedPaidOrder(t, orderRepo, mustParse(t, "15/01/2025"), map[uint]int{1: 2, 9: 4})

	revenue, err := service.RevenueInPeriod("01/01/2025", "31/01/2025")
	assert.NoError(t, err)
	assert.Equal(t, 20.0, revenue)
}

func TestStatsService_TopProducts(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	productRepo := new(MockProductRepository)
	service := services.NewStatsService(orderRepo, productRepo)

	// P1: 10, P2: 5, P3: 10 ordered across two orders.
	seedPaidOrder(t, orderRepo, mustParse(t, "15/01/2025"), map[uint]int{1: 6, 2: 5, 3: 10})
	seedPaidOrder(t, orderRepo, mustParse(t, "16/01/2025"), map[uint]int{1: 4})

	productRepo.On("GetByID", uint(1)).Return(&models.Product{ID: 1, Name: "Crate", Price: 10}, nil)
	productRepo.On("GetByID", uint(3)).Return(&models.Product{ID: 3, Name: "Pallet", Price: 30}, nil)

	top, err := service.TopProducts(2)
	assert.NoError(t, err)
	assert.Len(t, top, 2)
	// Tie between P1 and P3 breaks on ascending product id.
	assert.Equal(t, uint(1), top[0].ProductID)
	assert.Equal(t, 10, top[0].TotalQuantity)
	assert.Equal(t, "Crate", top[0].Name)
	assert.Equal(t, uint(3), top[1].ProductID)
	assert.Equal(t, 10, top[1].TotalQuantity)
	productRepo.AssertExpectations(t)
}

func TestStatsService_TopProducts_UnknownProduct(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	productRepo := new(MockProductRepository)
	service := services.NewStatsService(orderRepo, productRepo)

	seedPaidOrder(t, orderRepo, mustParse(t, "15/01/2025"), map[uint]int{42: 7})
	productRepo.On("GetByID", uint(42)).Return(nil, notFound("productId"))

	top, err := service.TopProducts(1)
	assert.NoError(t, err)
	assert.Len(t, top, 1)
	assert.Equal(t, "Unknown product", top[0].Name)
	assert.Nil(t, top[0].Price)
	assert.Equal(t, 7, top[0].TotalQuantity)
}

func TestStatsService_TopProducts_RequiresPositiveN(t *testing.T) {
	service := services.NewStatsService(repositories.NewMockOrderRepository(), new(MockProductRepository))

	for _, n := range []int{0, -3} {
		_, err := service.TopProducts(n)
		assert.Error(t, err)
		assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))
	}
}
