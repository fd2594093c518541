package services

import (
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/shopspring/decimal"
)

// ComputeStats derives inventory statistics from products in a single pass.
func ComputeStats(products []models.Product) models.InventoryStats {
	stats := models.InventoryStats{TotalProducts: len(products)}
	total := decimal.Zero
	for _, p := range products {
		switch {
		case p.IsOutOfStock():
			stats.OutOfStockProducts++
		case p.IsLowStock():
			stats.LowStockProducts++
		}
		total = total.Add(decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(p.Inventory))))
	}
	stats.TotalValue = total.InexactFloat64()
	return stats
}

// InventoryService serves the inventory dashboard.
type InventoryService struct {
	repo repositories.ProductRepository
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(repo repositories.ProductRepository) *InventoryService {
	return &InventoryService{repo: repo}
}

// Stats computes statistics over the current collection.
func (s *InventoryService) Stats() (models.InventoryStats, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return models.InventoryStats{}, err
	}
	return ComputeStats(products), nil
}

// Report returns the statistics together with the low-stock and out-of-stock
// products, in collection order.
func (s *InventoryService) Report() (models.InventoryReport, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return models.InventoryReport{}, err
	}

	report := models.InventoryReport{
		Stats:      ComputeStats(products),
		LowStock:   []models.Product{},
		OutOfStock: []models.Product{},
	}
	for _, p := range products {
		switch {
		case p.IsOutOfStock():
			report.OutOfStock = append(report.OutOfStock, p)
		case p.IsLowStock():
			report.LowStock = append(report.LowStock, p)
		}
	}
	return report, nil
}
