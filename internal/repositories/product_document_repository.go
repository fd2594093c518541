package repositories

import (
	"fmt"

	"storefront/internal/models"
	"storefront/internal/pkg/clock"
	"storefront/internal/storage"
	"storefront/pkg/slug"

	"github.com/google/uuid"
)

// DocumentProductRepository implements ProductRepository over a whole-document store.
// Every call reloads the collection and every mutation rewrites it. Two concurrent
// updates can both pass the slug check before either saves; nothing here prevents that.
type DocumentProductRepository struct {
	store storage.ProductStore
	clock clock.Clock
}

// NewDocumentProductRepository creates a repository reading and writing through store.
func NewDocumentProductRepository(store storage.ProductStore, clk clock.Clock) *DocumentProductRepository {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &DocumentProductRepository{
		store: store,
		clock: clk,
	}
}

// GetAll returns every product in document order.
func (r *DocumentProductRepository) GetAll() ([]models.Product, error) {
	return r.store.Load(), nil
}

// GetBySlug returns the product with slug, or nil when there is none.
func (r *DocumentProductRepository) GetBySlug(slug string) (*models.Product, error) {
	for _, p := range r.store.Load() {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, nil
}

// GetByID returns the product with id, or nil when there is none.
func (r *DocumentProductRepository) GetByID(id string) (*models.Product, error) {
	for _, p := range r.store.Load() {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

// Create appends a new product and persists the collection.
func (r *DocumentProductRepository) Create(data models.ProductFormData) (*models.Product, error) {
	products := r.store.Load()

	productSlug := slug.Slugify(data.Name)
	if slugTaken(products, productSlug, "") {
		return nil, fmt.Errorf("failed to create product %q: %w", data.Name, ErrDuplicateName)
	}

	product := models.Product{
		ID:          uuid.New().String(),
		Name:        data.Name,
		Slug:        productSlug,
		Description: data.Description,
		Price:       data.Price,
		Category:    data.Category,
		Inventory:   data.Inventory,
		LastUpdated: r.clock.Now(),
		ImageURL:    data.ImageURL,
	}

	products = append(products, product)
	if err := r.store.Save(products); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

// Update merges the provided fields into the product with id.
// It returns nil, nil when id does not exist.
func (r *DocumentProductRepository) Update(id string, update models.ProductUpdate) (*models.Product, error) {
	products := r.store.Load()

	idx := indexOf(products, id)
	if idx == -1 {
		return nil, nil
	}

	product := products[idx]
	if update.Name != nil {
		newSlug := slug.Slugify(*update.Name)
		if slugTaken(products, newSlug, id) {
			return nil, fmt.Errorf("failed to update product %s: %w", id, ErrDuplicateName)
		}
		product.Name = *update.Name
		product.Slug = newSlug
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Category != nil {
		product.Category = *update.Category
	}
	if update.Inventory != nil {
		product.Inventory = *update.Inventory
	}
	if update.ImageURL != nil {
		product.ImageURL = update.ImageURL
	}
	product.LastUpdated = r.clock.Now()

	products[idx] = product
	if err := r.store.Save(products); err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}
	return &product, nil
}

// Delete removes the product with id and reports whether anything was removed.
func (r *DocumentProductRepository) Delete(id string) (bool, error) {
	products := r.store.Load()

	idx := indexOf(products, id)
	if idx == -1 {
		return false, nil
	}

	remaining := append(products[:idx:idx], products[idx+1:]...)
	if err := r.store.Save(remaining); err != nil {
		return false, fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return true, nil
}

func indexOf(products []models.Product, id string) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}

// slugTaken reports whether a product other than exceptID already uses productSlug.
func slugTaken(products []models.Product, productSlug, exceptID string) bool {
	for _, p := range products {
		if p.Slug == productSlug && p.ID != exceptID {
			return true
		}
	}
	return false
}
