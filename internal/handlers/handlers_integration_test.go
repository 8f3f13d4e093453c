package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alshop/internal/handlers"
	"alshop/internal/middleware"
	"alshop/internal/models"
	"alshop/internal/repositories"
	"alshop/internal/services"
	"alshop/pkg/mailer"
)

const (
	testSecret        = "integration-test-secret"
	testAdminEmail    = "admin@alshop.test"
	testAdminPassword = "admin-secret"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// setupApp assembles the full HTTP surface on a fresh in-memory database
// with one seeded admin account. No broker; order events are skipped.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Product{},
		&models.Order{}, &models.OrderItem{}, &models.Address{},
		&models.Notification{}, &models.Review{}, &models.PasswordReset{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	addressRepo := repositories.NewGORMAddressRepository(db)
	notificationRepo := repositories.NewGORMNotificationRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)
	resetRepo := repositories.NewGORMPasswordResetRepository(db)

	hashed, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash admin password: %v", err)
	}
	err = userRepo.Create(&models.User{
		Name: "Admin", Email: testAdminEmail, Password: string(hashed), Role: models.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	notificationService := services.NewNotificationService(notificationRepo)
	authService := services.NewAuthService(userRepo, resetRepo, mailer.LogMailer{}, testSecret)
	userService := services.NewUserService(userRepo, productRepo)
	productService := services.NewProductService(productRepo, categoryRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, userRepo, notificationService, nil)
	addressService := services.NewAddressService(addressRepo)
	reviewService := services.NewReviewService(reviewRepo, productRepo, userRepo, notificationService)
	analyticsService := services.NewAnalyticsService(orderRepo, userRepo, productRepo)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	orderHandler := handlers.NewOrderHandler(orderService)
	addressHandler := handlers.NewAddressHandler(addressService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	public := apiV1.Group("", middleware.AuthOptional(authService))
	authHandler.RegisterRoutes(public)
	productHandler.RegisterRoutes(public)
	categoryHandler.RegisterRoutes(public)
	reviewHandler.RegisterPublicRoutes(public)

	protected := apiV1.Group("", middleware.AuthRequired(authService))
	userHandler.RegisterRoutes(protected)
	orderHandler.RegisterRoutes(protected)
	addressHandler.RegisterRoutes(protected)
	notificationHandler.RegisterRoutes(protected)
	reviewHandler.RegisterRoutes(protected)

	admin := apiV1.Group("/admin", middleware.AuthRequired(authService), middleware.RequireRole(models.RoleAdmin))
	userHandler.RegisterAdminRoutes(admin)
	productHandler.RegisterAdminRoutes(admin)
	categoryHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)
	reviewHandler.RegisterAdminRoutes(admin)
	analyticsHandler.RegisterAdminRoutes(admin)

	return app
}

// doJSON performs one request and decodes the JSON response body.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	if len(raw) > 0 {
		assert.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

func loginAs(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	assert.Equal(t, http.StatusOK, status)
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func registerShopper(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "Test Shopper", "email": email, "password": "password123",
	})
	assert.Equal(t, http.StatusCreated, status)
	return loginAs(t, app, email, "password123")
}

// seedCatalog creates a category and product through the admin API and
// returns the product ID.
func seedCatalog(t *testing.T, app *fiber.App, adminToken string, price float64) string {
	t.Helper()

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/admin/categories", adminToken, map[string]string{
		"name": "Electronics",
	})
	assert.Equal(t, http.StatusCreated, status)
	categoryID := body["data"].(map[string]interface{})["id"].(string)

	status, body = doJSON(t, app, http.MethodPost, "/api/v1/admin/products", adminToken, map[string]interface{}{
		"name":        "Test Laptop",
		"description": "For testing purposes",
		"price":       price,
		"category_id": categoryID,
		"stock":       10,
	})
	assert.Equal(t, http.StatusCreated, status)
	return body["data"].(map[string]interface{})["id"].(string)
}

func TestAuthFlow(t *testing.T) {
	app := setupApp(t)

	// Register, then log in.
	token := registerShopper(t, app, "shopper@example.com")
	assert.NotEmpty(t, token)

	// Duplicate registration conflicts.
	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "Copy", "email": "shopper@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusConflict, status)

	// Wrong password is rejected.
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "shopper@example.com", "password": "nope",
	})
	assert.Equal(t, http.StatusForbidden, status)

	// Shoppers cannot use the admin login.
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/admin/login", "", map[string]string{
		"email": "shopper@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAuthBoundary(t *testing.T) {
	app := setupApp(t)

	// Protected routes require a token.
	status, _ := doJSON(t, app, http.MethodGet, "/api/v1/orders/mine", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// Admin routes reject shoppers.
	shopper := registerShopper(t, app, "shopper@example.com")
	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/admin/orders", shopper, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// Public catalog needs no token.
	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/products", "", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestOrderLifecycleFlow(t *testing.T) {
	app := setupApp(t)
	admin := loginAs(t, app, testAdminEmail, testAdminPassword)
	shopper := registerShopper(t, app, "shopper@example.com")
	productID := seedCatalog(t, app, admin, 12.50)

	// Checkout: total is recomputed server-side, client price ignored.
	status, body := doJSON(t, app, http.MethodPost, "/api/v1/orders", shopper, map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": productID, "quantity": 2, "unit_price": 0.01},
		},
		"shipping_address": map[string]string{
			"recipient_name": "Test Shopper",
			"full_address":   "12 Harbor Street",
			"phone_number":   "0812345678",
		},
	})
	assert.Equal(t, http.StatusCreated, status)
	order := body["data"].(map[string]interface{})
	orderID := order["id"].(string)
	assert.Equal(t, 25.0, order["total"])
	assert.Equal(t, "pending", order["status"])

	// The shopper sees it; a second shopper does not.
	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/orders/"+orderID, shopper, nil)
	assert.Equal(t, http.StatusOK, status)
	other := registerShopper(t, app, "other@example.com")
	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/orders/"+orderID, other, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// The buyer's confirmation notification arrives in the background.
	assert.Eventually(t, func() bool {
		_, body := doJSON(t, app, http.MethodGet, "/api/v1/notifications/unread-count", shopper, nil)
		count, _ := body["count"].(float64)
		return count >= 1
	}, 2*time.Second, 25*time.Millisecond)

	// The admin moves it through the state machine.
	status, body = doJSON(t, app, http.MethodPatch, "/api/v1/admin/orders/"+orderID+"/status", admin, map[string]string{
		"status": "processing",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "processing", body["data"].(map[string]interface{})["status"])

	// Skipping states is rejected.
	status, _ = doJSON(t, app, http.MethodPatch, "/api/v1/admin/orders/"+orderID+"/status", admin, map[string]string{
		"status": "delivered",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	// Shoppers cannot drive the state machine at all.
	status, _ = doJSON(t, app, http.MethodPatch, "/api/v1/admin/orders/"+orderID+"/status", shopper, map[string]string{
		"status": "shipped",
	})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestOrderRejectsUnknownProduct(t *testing.T) {
	app := setupApp(t)
	shopper := registerShopper(t, app, "shopper@example.com")

	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/orders", shopper, map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": "no-such-product", "quantity": 1},
		},
		"shipping_address": map[string]string{
			"recipient_name": "Test Shopper",
			"full_address":   "12 Harbor Street",
			"phone_number":   "0812345678",
		},
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestNotificationFlow(t *testing.T) {
	app := setupApp(t)
	admin := loginAs(t, app, testAdminEmail, testAdminPassword)
	shopper := registerShopper(t, app, "shopper@example.com")
	productID := seedCatalog(t, app, admin, 10)

	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/orders", shopper, map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": productID, "quantity": 1}},
		"shipping_address": map[string]string{
			"recipient_name": "Test Shopper",
			"full_address":   "12 Harbor Street",
			"phone_number":   "0812345678",
		},
	})
	assert.Equal(t, http.StatusCreated, status)

	// Wait for the fire-and-forget dispatch, then read the feed.
	var notificationID string
	assert.Eventually(t, func() bool {
		_, body := doJSON(t, app, http.MethodGet, "/api/v1/notifications", shopper, nil)
		list, _ := body["data"].([]interface{})
		if len(list) == 0 {
			return false
		}
		notificationID = list[0].(map[string]interface{})["id"].(string)
		return true
	}, 2*time.Second, 25*time.Millisecond)

	// Mark one read, then all.
	status, _ = doJSON(t, app, http.MethodPatch, "/api/v1/notifications/"+notificationID+"/read", shopper, nil)
	assert.Equal(t, http.StatusOK, status)

	// Another user cannot mark it.
	other := registerShopper(t, app, "other@example.com")
	status, _ = doJSON(t, app, http.MethodPatch, "/api/v1/notifications/"+notificationID+"/read", other, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, app, http.MethodPatch, "/api/v1/notifications/read-all", shopper, nil)
	assert.Equal(t, http.StatusOK, status)
	_, body := doJSON(t, app, http.MethodGet, "/api/v1/notifications/unread-count", shopper, nil)
	assert.Equal(t, float64(0), body["count"])

	// The new-order fan-out reached the admin as well.
	assert.Eventually(t, func() bool {
		_, body := doJSON(t, app, http.MethodGet, "/api/v1/notifications/unread-count", admin, nil)
		count, _ := body["count"].(float64)
		return count >= 1
	}, 2*time.Second, 25*time.Millisecond)
}

func TestAddressFlow(t *testing.T) {
	app := setupApp(t)
	shopper := registerShopper(t, app, "shopper@example.com")

	newAddress := func(name string) map[string]string {
		return map[string]string{
			"recipient_name": name,
			"full_address":   "12 Harbor Street",
			"phone_number":   "0812345678",
		}
	}

	// First address becomes the default automatically.
	status, body := doJSON(t, app, http.MethodPost, "/api/v1/addresses", shopper, newAddress("Home"))
	assert.Equal(t, http.StatusCreated, status)
	first := body["data"].(map[string]interface{})
	assert.Equal(t, true, first["is_default"])

	status, body = doJSON(t, app, http.MethodPost, "/api/v1/addresses", shopper, newAddress("Office"))
	assert.Equal(t, http.StatusCreated, status)
	second := body["data"].(map[string]interface{})
	assert.Equal(t, false, second["is_default"])

	// Promoting the second demotes the first.
	status, _ = doJSON(t, app, http.MethodPut, "/api/v1/addresses/"+second["id"].(string), shopper, map[string]interface{}{
		"is_default": true,
	})
	assert.Equal(t, http.StatusOK, status)

	_, body = doJSON(t, app, http.MethodGet, "/api/v1/addresses", shopper, nil)
	list := body["data"].([]interface{})
	assert.Len(t, list, 2)
	assert.Equal(t, second["id"], list[0].(map[string]interface{})["id"])
	assert.Equal(t, true, list[0].(map[string]interface{})["is_default"])
	assert.Equal(t, false, list[1].(map[string]interface{})["is_default"])

	// Deleting the default promotes the survivor.
	status, _ = doJSON(t, app, http.MethodDelete, "/api/v1/addresses/"+second["id"].(string), shopper, nil)
	assert.Equal(t, http.StatusOK, status)
	_, body = doJSON(t, app, http.MethodGet, "/api/v1/addresses", shopper, nil)
	list = body["data"].([]interface{})
	assert.Len(t, list, 1)
	assert.Equal(t, true, list[0].(map[string]interface{})["is_default"])
}

func TestReviewFlow(t *testing.T) {
	app := setupApp(t)
	admin := loginAs(t, app, testAdminEmail, testAdminPassword)
	shopper := registerShopper(t, app, "shopper@example.com")
	productID := seedCatalog(t, app, admin, 10)

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/reviews", shopper, map[string]interface{}{
		"product_id": productID, "rating": 4, "comment": "Works well",
	})
	assert.Equal(t, http.StatusCreated, status)
	reviewID := body["data"].(map[string]interface{})["id"].(string)

	// One review per product and user.
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/reviews", shopper, map[string]interface{}{
		"product_id": productID, "rating": 5, "comment": "Changed my mind",
	})
	assert.Equal(t, http.StatusConflict, status)

	// The admin replies and the reply shows up publicly.
	status, _ = doJSON(t, app, http.MethodPut, "/api/v1/admin/reviews/"+reviewID+"/reply", admin, map[string]string{
		"reply": "Thanks!",
	})
	assert.Equal(t, http.StatusOK, status)

	_, body = doJSON(t, app, http.MethodGet, "/api/v1/reviews/product/"+productID, "", nil)
	list := body["data"].([]interface{})
	if assert.Len(t, list, 1) {
		assert.Equal(t, "Thanks!", list[0].(map[string]interface{})["admin_reply"])
	}

	// Moderating it out hides it from shoppers but not from admins.
	status, _ = doJSON(t, app, http.MethodPatch, "/api/v1/admin/reviews/"+reviewID+"/toggle", admin, nil)
	assert.Equal(t, http.StatusOK, status)

	_, body = doJSON(t, app, http.MethodGet, "/api/v1/reviews/product/"+productID, "", nil)
	assert.Empty(t, body["data"])

	_, body = doJSON(t, app, http.MethodGet, "/api/v1/reviews/product/"+productID+"?all=true", admin, nil)
	assert.Len(t, body["data"], 1)
}

func TestCatalogVisibility(t *testing.T) {
	app := setupApp(t)
	admin := loginAs(t, app, testAdminEmail, testAdminPassword)
	productID := seedCatalog(t, app, admin, 10)

	// Hide the product.
	status, _ := doJSON(t, app, http.MethodPatch, "/api/v1/admin/products/"+productID+"/toggle", admin, nil)
	assert.Equal(t, http.StatusOK, status)

	// Shoppers no longer see it; the admin can ask for everything.
	_, body := doJSON(t, app, http.MethodGet, "/api/v1/products", "", nil)
	assert.Empty(t, body["data"])

	_, body = doJSON(t, app, http.MethodGet, "/api/v1/products?all=true", admin, nil)
	assert.Len(t, body["data"], 1)

	// Hidden products cannot be ordered.
	shopper := registerShopper(t, app, "shopper@example.com")
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/orders", shopper, map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": productID, "quantity": 1}},
		"shipping_address": map[string]string{
			"recipient_name": "Test Shopper",
			"full_address":   "12 Harbor Street",
			"phone_number":   "0812345678",
		},
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestFavoritesFlow(t *testing.T) {
	app := setupApp(t)
	admin := loginAs(t, app, testAdminEmail, testAdminPassword)
	shopper := registerShopper(t, app, "shopper@example.com")
	productID := seedCatalog(t, app, admin, 10)

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/users/favorites/toggle", shopper, map[string]string{
		"product_id": productID,
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["favorited"])

	_, body = doJSON(t, app, http.MethodGet, "/api/v1/users/favorites", shopper, nil)
	assert.Len(t, body["data"], 1)

	status, body = doJSON(t, app, http.MethodPost, "/api/v1/users/favorites/toggle", shopper, map[string]string{
		"product_id": productID,
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["favorited"])
}

func TestAnalyticsFlow(t *testing.T) {
	app := setupApp(t)
	admin := loginAs(t, app, testAdminEmail, testAdminPassword)
	shopper := registerShopper(t, app, "shopper@example.com")
	productID := seedCatalog(t, app, admin, 20)

	for i := 0; i < 2; i++ {
		status, _ := doJSON(t, app, http.MethodPost, "/api/v1/orders", shopper, map[string]interface{}{
			"items": []map[string]interface{}{{"product_id": productID, "quantity": 1}},
			"shipping_address": map[string]string{
				"recipient_name": "Test Shopper",
				"full_address":   "12 Harbor Street",
				"phone_number":   "0812345678",
			},
		})
		assert.Equal(t, http.StatusCreated, status)
	}

	status, body := doJSON(t, app, http.MethodGet, "/api/v1/admin/stats/dashboard", admin, nil)
	assert.Equal(t, http.StatusOK, status)
	stats := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), stats["orders"])
	assert.Equal(t, float64(40), stats["revenue"])
	assert.Equal(t, float64(2), stats["users"]) // admin + shopper
	assert.Equal(t, float64(1), stats["products"])

	// Both orders land in today's buckets.
	status, body = doJSON(t, app, http.MethodGet, "/api/v1/admin/stats/revenue?type=day", admin, nil)
	assert.Equal(t, http.StatusOK, status)
	var revenueTotal float64
	for _, p := range body["data"].([]interface{}) {
		revenueTotal += p.(map[string]interface{})["total"].(float64)
	}
	assert.Equal(t, float64(40), revenueTotal)

	status, body = doJSON(t, app, http.MethodGet, "/api/v1/admin/stats/orders?type=week", admin, nil)
	assert.Equal(t, http.StatusOK, status)
	var orderCount float64
	for _, p := range body["data"].([]interface{}) {
		orderCount += p.(map[string]interface{})["count"].(float64)
	}
	assert.Equal(t, float64(2), orderCount)

	// Garbage period types are rejected.
	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/admin/stats/revenue?type=fortnight", admin, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestProfileUpdateScoping(t *testing.T) {
	app := setupApp(t)
	shopperA := registerShopper(t, app, "a@example.com")
	registerShopper(t, app, "b@example.com")

	// Find B's ID through A's attempt is impossible; use the admin list.
	admin := loginAs(t, app, testAdminEmail, testAdminPassword)
	_, body := doJSON(t, app, http.MethodGet, "/api/v1/admin/users", admin, nil)
	var idA, idB string
	for _, u := range body["data"].([]interface{}) {
		user := u.(map[string]interface{})
		switch user["email"] {
		case "a@example.com":
			idA = user["id"].(string)
		case "b@example.com":
			idB = user["id"].(string)
		}
	}
	assert.NotEmpty(t, idA)
	assert.NotEmpty(t, idB)

	// A can edit A.
	status, body := doJSON(t, app, http.MethodPut, "/api/v1/users/"+idA, shopperA, map[string]string{
		"name": "Renamed",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Renamed", body["data"].(map[string]interface{})["name"])

	// A cannot edit B.
	status, _ = doJSON(t, app, http.MethodPut, "/api/v1/users/"+idB, shopperA, map[string]string{
		"name": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, status)

	// A cannot take B's email.
	status, _ = doJSON(t, app, http.MethodPut, "/api/v1/users/"+idA, shopperA, map[string]string{
		"email": "b@example.com",
	})
	assert.Equal(t, http.StatusConflict, status)
}
