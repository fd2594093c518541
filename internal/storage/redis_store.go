package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"storefront/internal/models"

	"github.com/go-redis/redis/v8"
)

// DefaultRedisKey is the key holding the serialized collection.
const DefaultRedisKey = "storefront:products"

const redisTimeout = 5 * time.Second

// RedisStore keeps the JSON document under a single Redis key.
type RedisStore struct {
	client *redis.Client
	key    string
}

// OpenRedis connects to Redis and verifies the connection with a ping.
func OpenRedis(addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis address is not configured")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, &StorageError{Op: "connect", Err: fmt.Errorf("failed to connect to Redis: %w", err)}
	}
	log.Printf("Connected to Redis at %s", addr)
	return client, nil
}

// NewRedisStore creates a RedisStore using key, or DefaultRedisKey when empty.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

// Load fetches the document; a missing key is an empty collection.
func (s *RedisStore) Load() []models.Product {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("Error reading products from Redis key %s: %v", s.key, err)
		}
		return []models.Product{}
	}
	return decodeDocument(data, "redis key "+s.key)
}

// Save overwrites the document with no expiration.
func (s *RedisStore) Save(products []models.Product) error {
	data, err := encodeDocument(products)
	if err != nil {
		return &StorageError{Op: "save", Err: fmt.Errorf("failed to encode products: %w", err)}
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		log.Printf("Error writing products to Redis key %s: %v", s.key, err)
		return &StorageError{Op: "save", Err: err}
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
