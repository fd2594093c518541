package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/pkg/clock"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-admin-key"

// setupApp sets up a Fiber app for testing over the given store.
func setupApp(t *testing.T, store storage.ProductStore) *fiber.App {
	t.Helper()

	repo := repositories.NewDocumentProductRepository(store, clock.RealClock{})
	authService := services.NewAuthService(services.AuthConfig{APIKey: testAPIKey, JWTSecret: "test_jwt_secret"})

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	handlers.NewProductHandler(services.NewProductService(repo, nil)).RegisterRoutes(apiV1, middleware.AdminRequired(authService))
	handlers.NewInventoryHandler(services.NewInventoryService(repo)).RegisterRoutes(apiV1)
	handlers.NewRecommendationHandler(services.NewRecommendationService(repo)).RegisterRoutes(apiV1)
	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)
	return app
}

func setupFileApp(t *testing.T) (*fiber.App, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "products.json")
	store, err := storage.NewJSONFileStore(path)
	require.NoError(t, err)
	return setupApp(t, store), path
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func doRequest(t *testing.T, app *fiber.App, method, url string, body interface{}, headers map[string]string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

var adminHeaders = map[string]string{"X-API-Key": testAPIKey}

func createProduct(t *testing.T, app *fiber.App, body map[string]interface{}) models.Product {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, "/api/v1/products", body, adminHeaders)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var product models.Product
	decode(t, resp, &product)
	return product
}

func productBody(name, category string, price float64, inventory int) map[string]interface{} {
	return map[string]interface{}{
		"name":        name,
		"description": "Description of " + name,
		"price":       price,
		"category":    category,
		"inventory":   inventory,
	}
}

func TestProductLifecycle(t *testing.T) {
	app, path := setupFileApp(t)

	// --- Test POST /products ---
	created := createProduct(t, app, map[string]interface{}{
		"name":        "  Smart Phone X  ",
		"description": "Latest model smartphone",
		"price":       799.99,
		"category":    " Electronics ",
		"inventory":   50,
	})
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Smart Phone X", created.Name)
	assert.Equal(t, "smart-phone-x", created.Slug)
	assert.Equal(t, "Electronics", created.Category)
	assert.False(t, created.LastUpdated.IsZero())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"slug": "smart-phone-x"`)

	// --- Test GET /products ---
	resp := doRequest(t, app, http.MethodGet, "/api/v1/products", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var products []models.Product
	decode(t, resp, &products)
	require.Len(t, products, 1)
	assert.Equal(t, created.ID, products[0].ID)

	// --- Test GET /products/:id ---
	resp = doRequest(t, app, http.MethodGet, "/api/v1/products/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched models.Product
	decode(t, resp, &fetched)
	assert.Equal(t, created.ID, fetched.ID)

	// --- Test GET /products/slug/:slug ---
	resp = doRequest(t, app, http.MethodGet, "/api/v1/products/slug/smart-phone-x", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var detail struct {
		Product models.Product   `json:"product"`
		Related []models.Product `json:"related"`
	}
	decode(t, resp, &detail)
	assert.Equal(t, created.ID, detail.Product.ID)
	assert.Empty(t, detail.Related)

	// --- Test PUT /products/:id ---
	resp = doRequest(t, app, http.MethodPut, "/api/v1/products/"+created.ID, map[string]interface{}{"inventory": 0}, adminHeaders)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Product
	decode(t, resp, &updated)
	assert.Equal(t, 0, updated.Inventory)
	assert.Equal(t, created.Slug, updated.Slug)
	assert.Equal(t, created.Name, updated.Name)
	assert.False(t, updated.LastUpdated.Before(created.LastUpdated))

	resp = doRequest(t, app, http.MethodPut, "/api/v1/products/"+created.ID, map[string]interface{}{"name": "Smart Phone X Pro"}, adminHeaders)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &updated)
	assert.Equal(t, "smart-phone-x-pro", updated.Slug)

	// --- Test DELETE /products/:id ---
	resp = doRequest(t, app, http.MethodDelete, "/api/v1/products/"+created.ID, nil, adminHeaders)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var deleteResp map[string]string
	decode(t, resp, &deleteResp)
	assert.Contains(t, deleteResp["message"], "deleted successfully")

	// Verify deletion
	resp = doRequest(t, app, http.MethodGet, "/api/v1/products/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodDelete, "/api/v1/products/"+created.ID, nil, adminHeaders)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateProduct_Duplicate(t *testing.T) {
	app, _ := setupFileApp(t)
	createProduct(t, app, productBody("Yoga Mat", "Sports", 25, 10))

	resp := doRequest(t, app, http.MethodPost, "/api/v1/products", productBody("YOGA  mat!", "Sports", 30, 3), adminHeaders)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "a product with this name already exists", body["error"])
}

func TestCreateProduct_Validation(t *testing.T) {
	app, _ := setupFileApp(t)

	tests := []struct {
		name  string
		body  map[string]interface{}
		field string
	}{
		{name: "missing price", body: map[string]interface{}{"name": "A", "description": "d", "category": "c", "inventory": 1}, field: "price"},
		{name: "negative price", body: map[string]interface{}{"name": "A", "description": "d", "category": "c", "inventory": 1, "price": -1}, field: "price"},
		{name: "negative inventory", body: map[string]interface{}{"name": "A", "description": "d", "category": "c", "inventory": -5, "price": 1}, field: "inventory"},
		{name: "blank name", body: map[string]interface{}{"name": "   ", "description": "d", "category": "c", "inventory": 1, "price": 1}, field: "name"},
		{name: "blank category", body: map[string]interface{}{"name": "A", "description": "d", "category": "", "inventory": 1, "price": 1}, field: "category"},
		{name: "missing description", body: map[string]interface{}{"name": "A", "category": "c", "inventory": 1, "price": 1}, field: "description"},
		{name: "blank description", body: map[string]interface{}{"name": "A", "description": "  ", "category": "c", "inventory": 1, "price": 1}, field: "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, app, http.MethodPost, "/api/v1/products", tt.body, adminHeaders)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var body struct {
				Error  string            `json:"error"`
				Errors map[string]string `json:"errors"`
			}
			decode(t, resp, &body)
			assert.Equal(t, "Validation failed", body.Error)
			assert.Contains(t, body.Errors, tt.field)
		})
	}
}

func TestCreateProduct_WrongTypes(t *testing.T) {
	app, _ := setupFileApp(t)

	body := productBody("Lamp", "Home", 10, 1)
	body["price"] = "ten"
	resp := doRequest(t, app, http.MethodPost, "/api/v1/products", body, adminHeaders)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	body = productBody("Lamp", "Home", 10, 1)
	body["inventory"] = 2.5
	resp = doRequest(t, app, http.MethodPost, "/api/v1/products", body, adminHeaders)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestUpdateProduct_Errors(t *testing.T) {
	app, _ := setupFileApp(t)
	lamp := createProduct(t, app, productBody("Desk Lamp", "Home", 40, 5))
	createProduct(t, app, productBody("Floor Lamp", "Home", 90, 5))

	resp := doRequest(t, app, http.MethodPut, "/api/v1/products/missing", map[string]interface{}{"inventory": 1}, adminHeaders)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPut, "/api/v1/products/"+lamp.ID, map[string]interface{}{}, adminHeaders)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, "No valid fields to update", body["error"])

	resp = doRequest(t, app, http.MethodPut, "/api/v1/products/"+lamp.ID, map[string]interface{}{"price": -3}, adminHeaders)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPut, "/api/v1/products/"+lamp.ID, map[string]interface{}{"name": "  "}, adminHeaders)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPut, "/api/v1/products/"+lamp.ID, map[string]interface{}{"name": "Floor lamp"}, adminHeaders)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestProductEndpointsWithoutAuth(t *testing.T) {
	app, _ := setupFileApp(t)

	// Reads are public
	resp := doRequest(t, app, http.MethodGet, "/api/v1/products", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Test POST /products without key
	resp = doRequest(t, app, http.MethodPost, "/api/v1/products", productBody("Unauthorized Product", "Misc", 100, 10), nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "Unauthorized. Admin API key required.", body["error"])

	// Test POST /products with the wrong key
	resp = doRequest(t, app, http.MethodPost, "/api/v1/products", productBody("Unauthorized Product", "Misc", 100, 10), map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodDelete, "/api/v1/products/anything", nil, map[string]string{"Authorization": "Bearer wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Nothing was written
	resp = doRequest(t, app, http.MethodGet, "/api/v1/products", nil, nil)
	var products []models.Product
	decode(t, resp, &products)
	assert.Empty(t, products)
}

func TestAdminBearerKeyAndToken(t *testing.T) {
	app, _ := setupFileApp(t)

	// Bearer <api key>
	resp := doRequest(t, app, http.MethodPost, "/api/v1/products", productBody("Tent", "Sports", 150, 4), map[string]string{"Authorization": "Bearer " + testAPIKey})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Token exchange requires the key
	resp = doRequest(t, app, http.MethodPost, "/api/v1/admin/token", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPost, "/api/v1/admin/token", nil, adminHeaders)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tokenResp map[string]string
	decode(t, resp, &tokenResp)
	require.NotEmpty(t, tokenResp["token"])

	// Bearer <token>
	resp = doRequest(t, app, http.MethodPost, "/api/v1/products", productBody("Sleeping Bag", "Sports", 80, 9), map[string]string{"Authorization": "Bearer " + tokenResp["token"]})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// An issued token cannot mint further tokens
	resp = doRequest(t, app, http.MethodPost, "/api/v1/admin/token", nil, map[string]string{"Authorization": "Bearer " + tokenResp["token"]})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestListProducts_QueryParameters(t *testing.T) {
	app, _ := setupFileApp(t)
	createProduct(t, app, productBody("Zebra Plush", "Toys", 20, 5))
	createProduct(t, app, productBody("Action Figure", "Toys", 15, 5))
	createProduct(t, app, productBody("Board Game", "Games", 45, 5))

	resp := doRequest(t, app, http.MethodGet, "/api/v1/products?category=Toys&sort=name", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var products []models.Product
	decode(t, resp, &products)
	require.Len(t, products, 2)
	assert.Equal(t, "Action Figure", products[0].Name)
	assert.Equal(t, "Zebra Plush", products[1].Name)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/products?search=game&sort=price-high", nil, nil)
	decode(t, resp, &products)
	require.Len(t, products, 1)
	assert.Equal(t, "board-game", products[0].Slug)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/products?sort=bogus", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/api/v1/products/categories", nil, nil)
	var categories []string
	decode(t, resp, &categories)
	assert.Equal(t, []string{"Games", "Toys"}, categories)
}

func TestGetProductBySlug_RelatedAndNotFound(t *testing.T) {
	app, _ := setupFileApp(t)
	createProduct(t, app, productBody("Chess Set", "Games", 35, 5))
	checkers := createProduct(t, app, productBody("Checkers", "Games", 10, 5))
	createProduct(t, app, productBody("Kite", "Toys", 12, 5))

	resp := doRequest(t, app, http.MethodGet, "/api/v1/products/slug/chess-set", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var detail struct {
		Product models.Product   `json:"product"`
		Related []models.Product `json:"related"`
	}
	decode(t, resp, &detail)
	require.Len(t, detail.Related, 1)
	assert.Equal(t, checkers.ID, detail.Related[0].ID)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/products/slug/unknown", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestInventoryAndRecommendations(t *testing.T) {
	app, _ := setupFileApp(t)
	createProduct(t, app, productBody("Pen", "Office", 10, 5))
	createProduct(t, app, productBody("Stapler", "Office", 0, 3))
	createProduct(t, app, productBody("Bookshelf", "Home", 100, 25))
	createProduct(t, app, productBody("Printer", "Office", 250, 0))

	resp := doRequest(t, app, http.MethodGet, "/api/v1/inventory/stats", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var stats models.InventoryStats
	decode(t, resp, &stats)
	assert.Equal(t, models.InventoryStats{TotalProducts: 4, LowStockProducts: 2, OutOfStockProducts: 1, TotalValue: 2550}, stats)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/inventory/report", nil, nil)
	var report models.InventoryReport
	decode(t, resp, &report)
	assert.Len(t, report.LowStock, 2)
	require.Len(t, report.OutOfStock, 1)
	assert.Equal(t, "printer", report.OutOfStock[0].Slug)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/recommendations", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var rec models.Recommendations
	decode(t, resp, &rec)
	require.Len(t, rec.Featured, 1)
	assert.Equal(t, "bookshelf", rec.Featured[0].Slug)
	assert.Empty(t, rec.Premium)
	require.Len(t, rec.BudgetFriendly, 2)
	assert.Equal(t, "stapler", rec.BudgetFriendly[0].Slug)
	assert.Equal(t, "Office", rec.PopularByCategory[0].Category)
}

func TestStorageFailureReturnsServerError(t *testing.T) {
	store := storage.NewMemoryStore()
	app := setupApp(t, store)
	store.FailSaves(errors.New("disk full"))

	resp := doRequest(t, app, http.MethodPost, "/api/v1/products", productBody("Mug", "Kitchen", 8, 40), adminHeaders)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "Failed to create product", body["error"])
}
