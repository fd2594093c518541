package services_test

import (
	"testing"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recommendationCatalog() []models.Product {
	return []models.Product{
		{ID: "a", Category: "Electronics", Price: 100, Inventory: 25},
		{ID: "b", Category: "Electronics", Price: 60, Inventory: 40},
		{ID: "c", Category: "Books", Price: 12, Inventory: 0},
		{ID: "d", Category: "Books", Price: 30, Inventory: 25},
		{ID: "e", Category: "Electronics", Price: 1200, Inventory: 5},
		{ID: "f", Category: "Sports", Price: 499, Inventory: 21},
		{ID: "g", Category: "Sports", Price: 250, Inventory: 21},
		{ID: "h", Category: "Toys", Price: 30, Inventory: 8},
		{ID: "i", Category: "Toys", Price: 9.5, Inventory: 3},
		{ID: "j", Category: "Electronics", Price: 501, Inventory: 100},
		{ID: "k", Category: "Books", Price: 30, Inventory: 2},
	}
}

func TestRecommend_Featured(t *testing.T) {
	rec := services.Recommend(recommendationCatalog())

	// j is over the price cap, e is under the inventory floor; f and g tie on inventory
	assert.Equal(t, []string{"b", "a", "f"}, ids(rec.Featured))
}

func TestRecommend_PopularByCategory(t *testing.T) {
	rec := services.Recommend(recommendationCatalog())

	require.Len(t, rec.PopularByCategory, 4)
	assert.Equal(t, "Electronics", rec.PopularByCategory[0].Category)
	assert.Equal(t, []string{"j", "b"}, ids(rec.PopularByCategory[0].Products))
	assert.Equal(t, "Books", rec.PopularByCategory[1].Category)
	assert.Equal(t, []string{"d", "k"}, ids(rec.PopularByCategory[1].Products))
	assert.Equal(t, "Sports", rec.PopularByCategory[2].Category)
	assert.Equal(t, []string{"f", "g"}, ids(rec.PopularByCategory[2].Products))
	assert.Equal(t, "Toys", rec.PopularByCategory[3].Category)
	assert.Equal(t, []string{"h", "i"}, ids(rec.PopularByCategory[3].Products))
}

func TestRecommend_BudgetFriendly(t *testing.T) {
	rec := services.Recommend(recommendationCatalog())

	// c is out of stock; d, h and k tie on price and keep collection order
	assert.Equal(t, []string{"i", "d", "h", "k"}, ids(rec.BudgetFriendly))
}

func TestRecommend_Premium(t *testing.T) {
	rec := services.Recommend(recommendationCatalog())

	assert.Equal(t, []string{"e", "j", "f"}, ids(rec.Premium))
}

func TestRecommend_OutOfStockNeverBudgetOrPremium(t *testing.T) {
	products := []models.Product{
		{ID: "empty", Category: "Misc", Price: 100, Inventory: 0},
		{ID: "stocked", Category: "Misc", Price: 100, Inventory: 25},
	}

	rec := services.Recommend(products)

	assert.Equal(t, []string{"stocked"}, ids(rec.Featured))
	assert.Empty(t, rec.BudgetFriendly)
	assert.Empty(t, rec.Premium)
}

func TestRecommend_IdempotentAndInputUntouched(t *testing.T) {
	products := recommendationCatalog()

	first := services.Recommend(products)
	second := services.Recommend(products)

	assert.Equal(t, first, second)
	assert.Equal(t, recommendationCatalog(), products)
}

func TestRecommend_Empty(t *testing.T) {
	rec := services.Recommend(nil)

	assert.Empty(t, rec.Featured)
	assert.Empty(t, rec.PopularByCategory)
	assert.Empty(t, rec.BudgetFriendly)
	assert.Empty(t, rec.Premium)
}
