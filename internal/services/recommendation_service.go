package services

import (
	"sort"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

const (
	featuredLimit        = 3
	featuredMinInventory = 20
	featuredMinPrice     = 50
	featuredMaxPrice     = 500

	popularPerCategory = 2

	budgetLimit    = 4
	budgetMaxPrice = 100

	premiumLimit    = 3
	premiumMinPrice = 200
)

// Recommend builds the four recommendation views from products.
// It never reorders its input, and ties keep collection order.
func Recommend(products []models.Product) models.Recommendations {
	return models.Recommendations{
		Featured:          featured(products),
		PopularByCategory: popularByCategory(products),
		BudgetFriendly:    budgetFriendly(products),
		Premium:           premium(products),
	}
}

func featured(products []models.Product) []models.Product {
	picked := filter(products, func(p models.Product) bool {
		return p.Inventory > featuredMinInventory && p.Price >= featuredMinPrice && p.Price <= featuredMaxPrice
	})
	sort.SliceStable(picked, func(i, j int) bool { return picked[i].Inventory > picked[j].Inventory })
	return top(picked, featuredLimit)
}

func popularByCategory(products []models.Product) []models.CategoryProducts {
	var order []string
	groups := make(map[string][]models.Product)
	for _, p := range products {
		if _, ok := groups[p.Category]; !ok {
			order = append(order, p.Category)
		}
		groups[p.Category] = append(groups[p.Category], p)
	}

	result := []models.CategoryProducts{}
	for _, category := range order {
		group := groups[category]
		if len(group) == 0 {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool { return group[i].Inventory > group[j].Inventory })
		result = append(result, models.CategoryProducts{
			Category: category,
			Products: top(group, popularPerCategory),
		})
	}
	return result
}

func budgetFriendly(products []models.Product) []models.Product {
	picked := filter(products, func(p models.Product) bool {
		return p.Price < budgetMaxPrice && p.Inventory > 0
	})
	sort.SliceStable(picked, func(i, j int) bool { return picked[i].Price < picked[j].Price })
	return top(picked, budgetLimit)
}

func premium(products []models.Product) []models.Product {
	picked := filter(products, func(p models.Product) bool {
		return p.Price > premiumMinPrice && p.Inventory > 0
	})
	sort.SliceStable(picked, func(i, j int) bool { return picked[i].Price > picked[j].Price })
	return top(picked, premiumLimit)
}

// filter returns a fresh slice so sorting never touches the caller's data.
func filter(products []models.Product, keep func(models.Product) bool) []models.Product {
	out := []models.Product{}
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func top(products []models.Product, n int) []models.Product {
	if len(products) > n {
		return products[:n]
	}
	return products
}

// RecommendationService serves the recommendation listing.
type RecommendationService struct {
	repo repositories.ProductRepository
}

// NewRecommendationService creates a new RecommendationService.
func NewRecommendationService(repo repositories.ProductRepository) *RecommendationService {
	return &RecommendationService{repo: repo}
}

// Recommendations computes the views over the current collection.
func (s *RecommendationService) Recommendations() (models.Recommendations, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return models.Recommendations{}, err
	}
	return Recommend(products), nil
}
