package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort orders accepted by ListProducts.
const (
	SortByName      = "name"
	SortByPriceLow  = "price-low"
	SortByPriceHigh = "price-high"
	SortByCategory  = "category"
)

// Product event routing keys.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

const relatedProductsLimit = 3

// ErrInvalidSort is returned by ListProducts for an unknown sort order.
var ErrInvalidSort = errors.New("invalid sort order")

// EventPublisher delivers product change events to interested consumers.
type EventPublisher interface {
	PublishProductEvent(routingKey string, body []byte) error
}

// ProductQuery narrows and orders the catalog listing. Zero values mean "no filter".
type ProductQuery struct {
	Search   string
	Category string
	Sort     string
}

// ProductEvent is the message body published on every product mutation.
type ProductEvent struct {
	Event      string    `json:"event"`
	ProductID  string    `json:"productId"`
	Slug       string    `json:"slug,omitempty"`
	Name       string    `json:"name,omitempty"`
	Inventory  int       `json:"inventory"`
	OccurredAt time.Time `json:"occurredAt"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
	}
}

// GetAllProducts retrieves all products in document order.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// ListProducts returns the products matching q, ordered by q.Sort.
// The search term matches name or description case-insensitively.
func (s *ProductService) ListProducts(q ProductQuery) ([]models.Product, error) {
	switch q.Sort {
	case "", SortByName, SortByPriceLow, SortByPriceHigh, SortByCategory:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSort, q.Sort)
	}

	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(q.Search))
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		filtered = append(filtered, p)
	}

	sortProducts(filtered, q.Sort)
	return filtered, nil
}

func sortProducts(products []models.Product, order string) {
	switch order {
	case SortByName:
		c := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Name, products[j].Name) < 0
		})
	case SortByCategory:
		c := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Category, products[j].Category) < 0
		})
	case SortByPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortByPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	}
}

// Categories returns the distinct categories in ascending order.
func (s *ProductService) Categories() ([]string, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	categories := []string{}
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product with ID %s: %w", id, repositories.ErrProductNotFound)
	}
	return product, nil
}

// GetProductBySlug retrieves a single product by its slug.
func (s *ProductService) GetProductBySlug(slug string) (*models.Product, error) {
	product, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product with slug %s: %w", slug, repositories.ErrProductNotFound)
	}
	return product, nil
}

// RelatedProducts returns up to three other products from the same category.
func (s *ProductService) RelatedProducts(product models.Product) ([]models.Product, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	related := []models.Product{}
	for _, p := range products {
		if len(related) == relatedProductsLimit {
			break
		}
		if p.Category == product.Category && p.ID != product.ID {
			related = append(related, p)
		}
	}
	return related, nil
}

// CreateProduct creates a new product from validated input.
func (s *ProductService) CreateProduct(data models.ProductFormData) (*models.Product, error) {
	product, err := s.repo.Create(data)
	if err != nil {
		return nil, err
	}
	s.publish(EventProductCreated, *product)
	return product, nil
}

// UpdateProduct applies a partial update to the product with id.
func (s *ProductService) UpdateProduct(id string, update models.ProductUpdate) (*models.Product, error) {
	product, err := s.repo.Update(id, update)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product with ID %s: %w", id, repositories.ErrProductNotFound)
	}
	s.publish(EventProductUpdated, *product)
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	removed, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("product with ID %s: %w", id, repositories.ErrProductNotFound)
	}
	s.publish(EventProductDeleted, models.Product{ID: id})
	return nil
}

// publish sends a change event. Delivery problems are logged and never fail the mutation.
func (s *ProductService) publish(routingKey string, product models.Product) {
	if s.publisher == nil {
		return
	}

	body, err := json.Marshal(ProductEvent{
		Event:      routingKey,
		ProductID:  product.ID,
		Slug:       product.Slug,
		Name:       product.Name,
		Inventory:  product.Inventory,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		log.Printf("Failed to marshal %s event for product %s: %v", routingKey, product.ID, err)
		return
	}

	if err := s.publisher.PublishProductEvent(routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s event for product %s: %v", routingKey, product.ID, err)
	}
}
