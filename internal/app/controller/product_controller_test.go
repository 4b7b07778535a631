package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/neonstore/neonstore-backend/internal/app/model"
	"github.com/neonstore/neonstore-backend/internal/app/repository"
	"github.com/neonstore/neonstore-backend/internal/app/service"
	"github.com/neonstore/neonstore-backend/internal/db"
	"github.com/neonstore/neonstore-backend/internal/middleware"
)

func setupProductControllerTest(t *testing.T) (*gin.Engine, *gorm.DB, string, string) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	productService := service.NewProductService(productRepo)

	ctrl := NewProductController(productService)
	authMiddleware := middleware.NewAuthMiddleware("test-secret")

	router := gin.New()
	router.GET("/products", ctrl.GetAllProducts)
	router.GET("/products/:id", ctrl.GetProductByID)

	admin := router.Group("/products", authMiddleware.Authenticate(), authMiddleware.RequireRole("admin"))
	{
		admin.POST("", ctrl.CreateProduct)
		admin.PUT("/:id", ctrl.UpdateProduct)
		admin.DELETE("/:id", ctrl.DeleteProduct)
	}

	_, userToken := registerTestUser(t, testDB, "shopper@example.com")

	adminUser := &model.User{
		Email:        "admin@example.com",
		PasswordHash: "hash",
		Name:         "Admin",
		Role:         model.RoleAdmin,
	}
	require.NoError(t, testDB.Create(adminUser).Error)
	adminToken := tokenForUser(t, adminUser)

	return router, testDB, userToken, adminToken
}

func seedCatalog(t *testing.T, testDB *gorm.DB) []model.Product {
	t.Helper()

	products := []model.Product{
		{Name: "Neon Pulse Headphones", Price: 299, Category: "Audio", InStock: true, StockQuantity: 120},
		{Name: "Quantum Watch Pro", Price: 549, Category: "Wearables", InStock: true, StockQuantity: 80},
		{Name: "Aura Earbuds X", Price: 179, Category: "Audio", InStock: true, StockQuantity: 150},
	}
	for i := range products {
		require.NoError(t, testDB.Create(&products[i]).Error)
	}
	return products
}

func TestProductController_GetAllProducts(t *testing.T) {
	router, testDB, _, _ := setupProductControllerTest(t)
	seedCatalog(t, testDB)

	req := httptest.NewRequest("GET", "/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Products []model.Product `json:"products"`
		Count    int             `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 3, response.Count)
	assert.Len(t, response.Products, 3)
}

func TestProductController_GetAllProducts_FilterByCategory(t *testing.T) {
	router, testDB, _, _ := setupProductControllerTest(t)
	seedCatalog(t, testDB)

	req := httptest.NewRequest("GET", "/products?category=Audio", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Products []model.Product `json:"products"`
		Count    int             `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Count)
	for _, p := range response.Products {
		assert.Equal(t, "Audio", p.Category)
	}
}

func TestProductController_GetProductByID(t *testing.T) {
	router, testDB, _, _ := setupProductControllerTest(t)
	products := seedCatalog(t, testDB)

	req := httptest.NewRequest("GET", fmt.Sprintf("/products/%d", products[0].ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Product model.Product `json:"product"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Neon Pulse Headphones", response.Product.Name)
}

func TestProductController_GetProductByID_NotFound(t *testing.T) {
	router, _, _, _ := setupProductControllerTest(t)

	req := httptest.NewRequest("GET", "/products/9999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductController_GetProductByID_InvalidID(t *testing.T) {
	router, _, _, _ := setupProductControllerTest(t)

	req := httptest.NewRequest("GET", "/products/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductController_CreateProduct(t *testing.T) {
	router, _, _, adminToken := setupProductControllerTest(t)

	original := 399.0
	w := authedRequest(router, "POST", "/products", adminToken, CreateProductRequest{
		Name:          "Neon Pulse Headphones",
		Tagline:       "Sound that glows",
		Price:         299,
		OriginalPrice: &original,
		Category:      "Audio",
		Colors:        []string{"Midnight Black", "Neon Blue"},
		StockQuantity: 120,
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Product model.Product `json:"product"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotZero(t, response.Product.ID)
	assert.True(t, response.Product.InStock)
	require.NotNil(t, response.Product.OriginalPrice)
	assert.InDelta(t, 399.0, *response.Product.OriginalPrice, 0.001)
}

func TestProductController_CreateProduct_InvalidPricing(t *testing.T) {
	router, _, _, adminToken := setupProductControllerTest(t)

	original := 299.0
	w := authedRequest(router, "POST", "/products", adminToken, CreateProductRequest{
		Name:          "Neon Pulse Headphones",
		Price:         299,
		OriginalPrice: &original,
		Category:      "Audio",
		StockQuantity: 120,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Original price must exceed the sale price")
}

func TestProductController_CreateProduct_RequiresAdmin(t *testing.T) {
	router, _, userToken, _ := setupProductControllerTest(t)

	w := authedRequest(router, "POST", "/products", userToken, CreateProductRequest{
		Name:          "Neon Pulse Headphones",
		Price:         299,
		Category:      "Audio",
		StockQuantity: 120,
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestProductController_CreateProduct_RequiresAuth(t *testing.T) {
	router, _, _, _ := setupProductControllerTest(t)

	w := authedRequest(router, "POST", "/products", "", CreateProductRequest{
		Name:          "Neon Pulse Headphones",
		Price:         299,
		Category:      "Audio",
		StockQuantity: 120,
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProductController_CreateProduct_MissingFields(t *testing.T) {
	router, _, _, adminToken := setupProductControllerTest(t)

	tests := []struct {
		name    string
		payload CreateProductRequest
	}{
		{name: "missing name", payload: CreateProductRequest{Price: 299, Category: "Audio"}},
		{name: "missing price", payload: CreateProductRequest{Name: "Headphones", Category: "Audio"}},
		{name: "missing category", payload: CreateProductRequest{Name: "Headphones", Price: 299}},
		{name: "negative stock", payload: CreateProductRequest{Name: "Headphones", Price: 299, Category: "Audio", StockQuantity: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := authedRequest(router, "POST", "/products", adminToken, tt.payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestProductController_UpdateProduct(t *testing.T) {
	router, testDB, _, adminToken := setupProductControllerTest(t)
	products := seedCatalog(t, testDB)

	w := authedRequest(router, "PUT", fmt.Sprintf("/products/%d", products[0].ID), adminToken, CreateProductRequest{
		Name:          "Neon Pulse Headphones v2",
		Price:         329,
		Category:      "Audio",
		StockQuantity: 90,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var fetched model.Product
	require.NoError(t, testDB.First(&fetched, products[0].ID).Error)
	assert.Equal(t, "Neon Pulse Headphones v2", fetched.Name)
	assert.InDelta(t, 329.0, fetched.Price, 0.001)
	assert.Equal(t, 90, fetched.StockQuantity)
}

func TestProductController_UpdateProduct_NotFound(t *testing.T) {
	router, _, _, adminToken := setupProductControllerTest(t)

	w := authedRequest(router, "PUT", "/products/9999", adminToken, CreateProductRequest{
		Name:          "Ghost Product",
		Price:         10,
		Category:      "Audio",
		StockQuantity: 1,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductController_DeleteProduct(t *testing.T) {
	router, testDB, _, adminToken := setupProductControllerTest(t)
	products := seedCatalog(t, testDB)

	w := authedRequest(router, "DELETE", fmt.Sprintf("/products/%d", products[0].ID), adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest("GET", fmt.Sprintf("/products/%d", products[0].ID), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductController_DeleteProduct_RequiresAdmin(t *testing.T) {
	router, testDB, userToken, _ := setupProductControllerTest(t)
	products := seedCatalog(t, testDB)

	w := authedRequest(router, "DELETE", fmt.Sprintf("/products/%d", products[0].ID), userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
