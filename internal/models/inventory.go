package models

// InventoryStats is derived from the current collection on every request.
type InventoryStats struct {
	TotalProducts      int     `json:"totalProducts"`
	LowStockProducts   int     `json:"lowStockProducts"`
	OutOfStockProducts int     `json:"outOfStockProducts"`
	TotalValue         float64 `json:"totalValue"`
}

// InventoryReport backs the inventory dashboard.
type InventoryReport struct {
	Stats      InventoryStats `json:"stats"`
	LowStock   []Product      `json:"lowStock"`
	OutOfStock []Product      `json:"outOfStock"`
}

// CategoryProducts is one group of the popular-by-category view.
type CategoryProducts struct {
	Category string    `json:"category"`
	Products []Product `json:"products"`
}

// Recommendations holds the four recommendation views.
type Recommendations struct {
	Featured          []Product          `json:"featured"`
	PopularByCategory []CategoryProducts `json:"popularByCategory"`
	BudgetFriendly    []Product          `json:"budgetFriendly"`
	Premium           []Product          `json:"premium"`
}
