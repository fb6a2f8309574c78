package services

import (
	"orderdesk/internal/apperr"
	"orderdesk/internal/dates"
	"orderdesk/internal/repositories"
)

// StatsService answers the period-bounded reporting queries.
type StatsService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository) *StatsService {
	return &StatsService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// PopularProduct is one entry of the top-N ranking. Price is nil when the
// product row no longer exists.
type PopularProduct struct {
	ProductID     uint     `json:"productId"`
	Name          string   `json:"productName"`
	Price         *float64 `json:"productPrice"`
	TotalQuantity int      `json:"totalQuantity"`
}

// CountInPeriod counts orders whose delivery date falls inside the inclusive
// [from 00:00:00, to 23:59:59.999] period. Both bounds are required.
func (s *StatsService) CountInPeriod(fromDisplay, toDisplay string) (int64, error) {
	from, to, err := dates.ParsePeriod(fromDisplay, toDisplay)
	if err != nil {
		return 0, err
	}
	return s.orderRepo.CountDeliveringBetween(from, to)
}

// RevenueInPeriod sums quantity times product price over every line item of
// orders paid inside the period. Items whose product detail is missing are
// skipped instead of failing the whole computation.
func (s *StatsService) RevenueInPeriod(fromDisplay, toDisplay string) (float64, error) {
	from, to, err := dates.ParsePeriod(fromDisplay, toDisplay)
	if err != nil {
		return 0, err
	}
	orders, err := s.orderRepo.FindPaidBetween(from, to)
	if err != nil {
		return 0, err
	}
	var revenue float64
	for _, order := range orders {
		for _, item := range order.Items {
			if item.Product == nil {
				continue
			}
			revenue += float64(item.Quantity) * item.Product.Price
		}
	}
	return revenue, nil
}

// TopProducts ranks products by total quantity ordered across all orders and
// returns the first n, joined with product name and price. A product deleted
// since its items were placed is reported as "Unknown product".
func (s *StatsService) TopProducts(n int) ([]PopularProduct, error) {
	if n < 1 {
		return nil, apperr.New(apperr.InvalidArgument, "popularProducts",
			"the number of popular products must be a positive integer, got %d", n)
	}
	rows, err := s.orderRepo.TopProducts(n)
	if err != nil {
		return nil, err
	}
	ranking := make([]PopularProduct, 0, len(rows))
	for _, row := range rows {
		entry := PopularProduct{
			ProductID:     row.ProductID,
			Name:          "Unknown product",
			TotalQuantity: row.TotalQuantity,
		}
		product, err := s.productRepo.GetByID(row.ProductID)
		switch {
		case err == nil:
			entry.Name = product.Name
			price := product.Price
			entry.Price = &price
		case apperr.KindOf(err) != apperr.NotFound:
			return nil, err
		}
		ranking = append(ranking, entry)
	}
	return ranking, nil
}
