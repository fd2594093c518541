package repositories

import (
	"errors"

	"storefront/internal/models"
)

var (
	// ErrDuplicateName is returned when a product name slugifies to a slug already in use.
	ErrDuplicateName = errors.New("a product with this name already exists")
	// ErrProductNotFound marks a lookup or mutation that targets an unknown product.
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access.
// Lookups and updates report absence as a nil product with a nil error.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(data models.ProductFormData) (*models.Product, error)
	Update(id string, update models.ProductUpdate) (*models.Product, error)
	Delete(id string) (bool, error)
}
