package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"storefront/internal/models"
)

// Supported values for Config.Driver.
const (
	DriverJSON     = "json"
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// ProductStore reads and writes the whole product collection as a single document.
// Every Save replaces the previous document; there is no locking between callers,
// so concurrent writers follow last-write-wins.
type ProductStore interface {
	// Load returns the collection in document order. A missing or unreadable
	// document yields an empty collection; the failure is logged, not returned.
	Load() []models.Product
	// Save overwrites the document with products. Failures are returned as *StorageError.
	Save(products []models.Product) error
}

// StorageError reports a failed read or write of the backing document.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Config selects and configures a ProductStore backend.
type Config struct {
	Driver        string
	DataFile      string
	DatabaseDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string
}

// Open builds the store selected by cfg.Driver. Stores holding connections
// implement io.Closer.
func Open(cfg Config) (ProductStore, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", DriverJSON:
		return NewJSONFileStore(cfg.DataFile)
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite, DriverPostgres:
		db, err := OpenGORM(cfg.Driver, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return NewGORMStore(db)
	case DriverRedis:
		client, err := OpenRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client, cfg.RedisKey), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// decodeDocument parses a serialized collection, failing soft.
func decodeDocument(data []byte, source string) []models.Product {
	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		log.Printf("Error reading products from %s: %v", source, err)
		return []models.Product{}
	}
	if products == nil {
		return []models.Product{}
	}
	return products
}

func encodeDocument(products []models.Product) ([]byte, error) {
	if products == nil {
		products = []models.Product{}
	}
	return json.MarshalIndent(products, "", "  ")
}

func copyProducts(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)
	return out
}
