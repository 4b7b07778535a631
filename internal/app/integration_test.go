package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/neonstore/neonstore-backend/config"
	"github.com/neonstore/neonstore-backend/internal/app/controller"
	"github.com/neonstore/neonstore-backend/internal/app/model"
	"github.com/neonstore/neonstore-backend/internal/app/repository"
	"github.com/neonstore/neonstore-backend/internal/app/service"
	"github.com/neonstore/neonstore-backend/internal/db"
	"github.com/neonstore/neonstore-backend/internal/middleware"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
}

func setupIntegrationTest(t *testing.T) *testServer {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	checkout := config.CheckoutConfig{
		FreeShippingThreshold: 100,
		ShippingFee:           15,
		TaxRate:               0.08,
	}

	userRepo := repository.NewUserRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	wishlistRepo := repository.NewWishlistRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	addressRepo := repository.NewAddressRepository(testDB)

	authService := service.NewAuthService(userRepo, "test-secret", 15*time.Minute, 7*24*time.Hour)
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(cartRepo, productRepo, checkout)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, checkout, testDB)
	addressService := service.NewAddressService(addressRepo)

	authController := controller.NewAuthController(authService)
	productController := controller.NewProductController(productService)
	cartController := controller.NewCartController(cartService)
	wishlistController := controller.NewWishlistController(wishlistService)
	orderController := controller.NewOrderController(orderService)
	addressController := controller.NewAddressController(addressService)

	authMiddleware := middleware.NewAuthMiddleware("test-secret")

	router := gin.New()

	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.GET("/me", authMiddleware.Authenticate(), authController.GetProfile)
	}

	products := router.Group("/api/v1/products")
	{
		products.GET("", productController.GetAllProducts)
		products.GET("/:id", productController.GetProductByID)
	}

	cart := router.Group("/api/v1/cart", authMiddleware.Authenticate())
	{
		cart.GET("", cartController.GetCart)
		cart.POST("", cartController.AddToCart)
		cart.PUT("/:id", cartController.UpdateCartItem)
		cart.DELETE("/:id", cartController.RemoveFromCart)
	}

	wishlist := router.Group("/api/v1/wishlist", authMiddleware.Authenticate())
	{
		wishlist.GET("", wishlistController.GetWishlist)
		wishlist.POST("/toggle", wishlistController.ToggleWishlist)
	}

	orders := router.Group("/api/v1/orders", authMiddleware.Authenticate())
	{
		orders.GET("", orderController.GetOrders)
		orders.GET("/:id", orderController.GetOrderByID)
		orders.POST("", orderController.Checkout)
	}

	addresses := router.Group("/api/v1/addresses", authMiddleware.Authenticate())
	{
		addresses.GET("", addressController.ListAddresses)
		addresses.POST("", addressController.CreateAddress)
	}

	return &testServer{router: router, db: testDB}
}

func (s *testServer) do(method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) seedProduct(t *testing.T, name string, price float64, stock int) *model.Product {
	t.Helper()

	product := &model.Product{
		Name:          name,
		Price:         price,
		Category:      "Audio",
		Colors:        []string{"Midnight Black", "Neon Blue"},
		InStock:       true,
		StockQuantity: stock,
	}
	require.NoError(t, s.db.Create(product).Error)
	return product
}

func (s *testServer) registerAndLogin(t *testing.T, email string) string {
	t.Helper()

	w := s.do("POST", "/api/v1/auth/register", "", gin.H{
		"email":    email,
		"password": "password123",
		"name":     "Integration Shopper",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.AccessToken)
	return response.AccessToken
}

// TestShoppingFlow walks the storefront journey end to end: sign up, browse,
// fill the cart, check out, and read back the order history.
func TestShoppingFlow(t *testing.T) {
	s := setupIntegrationTest(t)

	headphones := s.seedProduct(t, "Neon Pulse Headphones", 299, 10)
	earbuds := s.seedProduct(t, "Aura Earbuds X", 179, 20)

	token := s.registerAndLogin(t, "shopper@example.com")

	// Browse the catalog.
	w := s.do("GET", "/api/v1/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var catalog struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &catalog))
	assert.Equal(t, 2, catalog.Count)

	// Fill the cart.
	w = s.do("POST", "/api/v1/cart", token, gin.H{
		"product_id":     headphones.ID,
		"quantity":       1,
		"selected_color": "Neon Blue",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do("POST", "/api/v1/cart", token, gin.H{
		"product_id": earbuds.ID,
		"quantity":   2,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// 299 + 2 x 179 = 657: free shipping, 8% tax.
	w = s.do("GET", "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cart struct {
		CartItems []model.CartItem    `json:"cart_items"`
		Summary   service.CartSummary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	require.Len(t, cart.CartItems, 2)
	assert.Equal(t, 3, cart.Summary.ItemCount)
	assert.InDelta(t, 657.0, cart.Summary.Subtotal, 0.001)
	assert.Zero(t, cart.Summary.ShippingCost)
	assert.InDelta(t, 709.56, cart.Summary.Total, 0.001)

	// Save an address and place the order.
	w = s.do("POST", "/api/v1/addresses", token, gin.H{
		"label":          "Home",
		"full_name":      "Integration Shopper",
		"street_address": "42 Circuit Lane",
		"city":           "Neo City",
		"postal_code":    "90210",
		"country":        "USA",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do("POST", "/api/v1/orders", token, gin.H{
		"full_name":      "Integration Shopper",
		"street_address": "42 Circuit Lane",
		"city":           "Neo City",
		"postal_code":    "90210",
		"country":        "USA",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var placed struct {
		Order model.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))
	assert.InDelta(t, 709.56, placed.Order.Total, 0.001)
	assert.Len(t, placed.Order.OrderItems, 2)

	// The cart is empty and stock dropped.
	w = s.do("GET", "/api/v1/cart", token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Len(t, cart.CartItems, 0)

	var refreshed model.Product
	require.NoError(t, s.db.First(&refreshed, headphones.ID).Error)
	assert.Equal(t, 9, refreshed.StockQuantity)

	// Order history shows the purchase with frozen product details.
	w = s.do("GET", fmt.Sprintf("/api/v1/orders/%d", placed.Order.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var detail struct {
		Order        model.Order `json:"order"`
		ProgressStep int         `json:"progress_step"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, model.OrderStatusPending, detail.Order.Status)
	assert.Equal(t, 0, detail.ProgressStep)
}

// TestWishlistFlow covers the save-for-later journey alongside the cart.
func TestWishlistFlow(t *testing.T) {
	s := setupIntegrationTest(t)

	product := s.seedProduct(t, "Quantum Watch Pro", 549, 80)
	token := s.registerAndLogin(t, "shopper@example.com")

	w := s.do("POST", "/api/v1/wishlist/toggle", token, gin.H{"product_id": product.ID})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do("GET", "/api/v1/wishlist", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var wishlist struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &wishlist))
	assert.Equal(t, 1, wishlist.Count)

	// Toggling again clears it.
	w = s.do("POST", "/api/v1/wishlist/toggle", token, gin.H{"product_id": product.ID})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do("GET", "/api/v1/wishlist", token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &wishlist))
	assert.Equal(t, 0, wishlist.Count)
}

// TestUsersAreIsolated verifies one user can never see another's cart or orders.
func TestUsersAreIsolated(t *testing.T) {
	s := setupIntegrationTest(t)

	product := s.seedProduct(t, "Phantom Mech Keyboard", 199, 200)
	alice := s.registerAndLogin(t, "alice@example.com")
	bob := s.registerAndLogin(t, "bob@example.com")

	w := s.do("POST", "/api/v1/cart", alice, gin.H{"product_id": product.ID, "quantity": 1})
	require.Equal(t, http.StatusCreated, w.Code)

	var cart struct {
		CartItems []model.CartItem `json:"cart_items"`
	}
	w = s.do("GET", "/api/v1/cart", bob, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Len(t, cart.CartItems, 0)

	w = s.do("POST", "/api/v1/orders", alice, gin.H{
		"full_name":      "Alice",
		"street_address": "1 First St",
		"city":           "Neo City",
		"postal_code":    "90210",
		"country":        "USA",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var placed struct {
		Order model.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))

	w = s.do("GET", fmt.Sprintf("/api/v1/orders/%d", placed.Order.ID), bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
