package storage

import (
	"fmt"
	"log"
	"time"

	"storefront/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// productRecord is the row layout of the collection. Position keeps document order.
type productRecord struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	Position    int    `gorm:"index"`
	Name        string `gorm:"type:varchar(255)"`
	Slug        string `gorm:"type:varchar(255);index"`
	Description string
	Price       float64
	Category    string `gorm:"type:varchar(255)"`
	Inventory   int
	LastUpdated time.Time
	ImageURL    *string
}

func (productRecord) TableName() string {
	return "product_records"
}

// GORMStore is a GORM implementation of ProductStore. The collection is
// stored as rows but still read and replaced as a whole.
type GORMStore struct {
	db *gorm.DB
}

// OpenGORM connects to the sqlite or postgres database described by dsn.
func OpenGORM(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, &StorageError{Op: "connect", Err: err}
	}
	return db, nil
}

// NewGORMStore creates a GORMStore and migrates its table.
func NewGORMStore(db *gorm.DB) (*GORMStore, error) {
	if err := db.AutoMigrate(&productRecord{}); err != nil {
		return nil, &StorageError{Op: "migrate", Err: err}
	}
	return &GORMStore{db: db}, nil
}

// Load retrieves all products ordered by their document position.
func (s *GORMStore) Load() []models.Product {
	var records []productRecord
	if err := s.db.Order("position asc").Find(&records).Error; err != nil {
		log.Printf("Error reading products from database: %v", err)
		return []models.Product{}
	}

	products := make([]models.Product, 0, len(records))
	for _, r := range records {
		products = append(products, r.toModel())
	}
	return products
}

// Save replaces every row inside a single transaction.
func (s *GORMStore) Save(products []models.Product) error {
	records := make([]productRecord, 0, len(products))
	for i, p := range products {
		records = append(records, newProductRecord(p, i))
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&productRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear products: %w", err)
		}
		if len(records) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(records, 100).Error; err != nil {
			return fmt.Errorf("failed to insert products: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Printf("Error writing products to database: %v", err)
		return &StorageError{Op: "save", Err: err}
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *GORMStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func newProductRecord(p models.Product, position int) productRecord {
	return productRecord{
		ID:          p.ID,
		Position:    position,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Inventory:   p.Inventory,
		LastUpdated: p.LastUpdated,
		ImageURL:    p.ImageURL,
	}
}

func (r productRecord) toModel() models.Product {
	return models.Product{
		ID:          r.ID,
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		Inventory:   r.Inventory,
		LastUpdated: r.LastUpdated,
		ImageURL:    r.ImageURL,
	}
}
