package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/pkg/clock"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/internal/storage"
	"storefront/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	config.LoadEnv()
	cfg := config.Load(viper.GetViper())

	// --- Storage ---
	store, err := storage.Open(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to open %s product store: %v", cfg.Storage.Driver, err)
	}
	if closer, ok := store.(io.Closer); ok {
		defer closer.Close()
	}

	// --- Product events (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("Warning: product events disabled: %v", err)
		} else {
			defer mqClient.Close()
			publisher = mqClient
			if err := mqClient.ConsumeProductEvents(rabbitmq.LogProductEvent); err != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", err)
			}
		}
	} else {
		log.Println("RABBITMQ_URL is not set. Product events will not be published.")
	}

	repo := repositories.NewDocumentProductRepository(store, clock.RealClock{})
	if cfg.SeedDemoData {
		seedProducts(repo)
	}

	app := NewApp(cfg, repo, publisher)

	// --- Start HTTP Server ---
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Starting server on port %s (storage: %s)", cfg.AppPort, cfg.Storage.Driver)
		return app.Listen(cfg.AppPort)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down server...")
		return app.Shutdown()
	})

	if err := g.Wait(); err != nil {
		log.Printf("Server stopped with error: %v", err)
		return
	}
	log.Println("Server gracefully stopped")
}

// NewApp wires services and handlers over repo into a Fiber app.
// publisher may be nil, in which case no product events are sent.
func NewApp(cfg config.Config, repo repositories.ProductRepository, publisher services.EventPublisher) *fiber.App {
	productService := services.NewProductService(repo, publisher)
	inventoryService := services.NewInventoryService(repo)
	recommendationService := services.NewRecommendationService(repo)
	authService := services.NewAuthService(services.AuthConfig{
		APIKey:     cfg.AdminAPIKey,
		APIKeyHash: cfg.AdminAPIKeyHash,
		JWTSecret:  cfg.JWTSecret,
		TokenTTL:   cfg.TokenTTL,
	})

	productHandler := handlers.NewProductHandler(productService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService)
	authHandler := handlers.NewAuthHandler(authService)

	app := fiber.New()

	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	apiV1 := app.Group("/api/v1")
	productHandler.RegisterRoutes(apiV1, middleware.AdminRequired(authService))
	inventoryHandler.RegisterRoutes(apiV1)
	recommendationHandler.RegisterRoutes(apiV1)
	authHandler.RegisterRoutes(apiV1)

	return app
}

// seedProducts fills an empty collection with demo products.
func seedProducts(repo repositories.ProductRepository) {
	existing, err := repo.GetAll()
	if err != nil {
		log.Printf("Error reading products before seeding: %v", err)
		return
	}
	if len(existing) > 0 {
		return
	}

	products := []models.ProductFormData{
		{Name: "Wireless Bluetooth Headphones", Description: "Over-ear headphones with active noise cancellation", Price: 199.99, Category: "Electronics", Inventory: 45},
		{Name: "Mechanical Keyboard", Description: "Tenkeyless keyboard with hot-swappable switches", Price: 89.99, Category: "Electronics", Inventory: 8},
		{Name: "Organic Cotton T-Shirt", Description: "Soft, breathable everyday tee", Price: 24.99, Category: "Clothing", Inventory: 120},
		{Name: "Trail Running Shoes", Description: "Lightweight shoes with aggressive grip", Price: 129.5, Category: "Sports", Inventory: 0},
		{Name: "Espresso Machine", Description: "15-bar pump espresso maker with milk frother", Price: 349, Category: "Home & Garden", Inventory: 12},
		{Name: "The Pragmatic Programmer", Description: "Classic book on software craftsmanship", Price: 39.95, Category: "Books", Inventory: 30},
	}

	for _, p := range products {
		created, err := repo.Create(p)
		if err != nil {
			log.Printf("Error seeding product %s: %v", p.Name, err)
			continue
		}
		log.Printf("Seeded product: %s (ID: %s)", created.Name, created.ID)
	}
}
