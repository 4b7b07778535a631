package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neonstore/neonstore-backend/internal/app/model"
	"github.com/neonstore/neonstore-backend/internal/app/repository"
	"github.com/neonstore/neonstore-backend/internal/db"
)

func setupProductServiceTest(t *testing.T) ProductService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	return NewProductService(productRepo)
}

func floatPointer(v float64) *float64 {
	return &v
}

func TestProductService_CreateProduct(t *testing.T) {
	productService := setupProductServiceTest(t)

	product := &model.Product{
		Name:          "Quantum Watch Pro",
		Tagline:       "Time redefined",
		Price:         549,
		OriginalPrice: floatPointer(699),
		Category:      "Wearables",
		Colors:        []string{"Titanium", "Obsidian", "Aurora"},
		Features:      []string{"ECG monitoring", "7-day battery"},
		InStock:       true,
		StockQuantity: 80,
	}

	err := productService.CreateProduct(product)
	require.NoError(t, err)
	assert.NotZero(t, product.ID)

	fetched, err := productService.GetProductByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Quantum Watch Pro", fetched.Name)
	assert.Equal(t, []string{"Titanium", "Obsidian", "Aurora"}, fetched.Colors)
	require.NotNil(t, fetched.OriginalPrice)
	assert.InDelta(t, 699.0, *fetched.OriginalPrice, 0.001)
}

func TestProductService_CreateProduct_InvalidPricing(t *testing.T) {
	productService := setupProductServiceTest(t)

	tests := []struct {
		name          string
		price         float64
		originalPrice *float64
		wantErr       error
	}{
		{
			name:          "original below price",
			price:         549,
			originalPrice: floatPointer(500),
			wantErr:       ErrInvalidPricing,
		},
		{
			name:          "original equal to price",
			price:         549,
			originalPrice: floatPointer(549),
			wantErr:       ErrInvalidPricing,
		},
		{
			name:          "no original price",
			price:         549,
			originalPrice: nil,
			wantErr:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := &model.Product{
				Name:          "Quantum Watch Pro " + tt.name,
				Price:         tt.price,
				OriginalPrice: tt.originalPrice,
				Category:      "Wearables",
				InStock:       true,
				StockQuantity: 80,
			}
			err := productService.CreateProduct(product)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProductService_GetAllProducts(t *testing.T) {
	productService := setupProductServiceTest(t)

	for _, name := range []string{"Aura Earbuds X", "Phantom Mech Keyboard"} {
		require.NoError(t, productService.CreateProduct(&model.Product{
			Name:          name,
			Price:         199,
			Category:      "Audio",
			InStock:       true,
			StockQuantity: 10,
		}))
	}

	products, err := productService.GetAllProducts()
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestProductService_GetProductByID_NotFound(t *testing.T) {
	productService := setupProductServiceTest(t)

	product, err := productService.GetProductByID(9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, product)
}

func TestProductService_GetProductsByCategory(t *testing.T) {
	productService := setupProductServiceTest(t)

	require.NoError(t, productService.CreateProduct(&model.Product{
		Name: "Aura Earbuds X", Price: 179, Category: "Audio", InStock: true, StockQuantity: 5,
	}))
	require.NoError(t, productService.CreateProduct(&model.Product{
		Name: "Quantum Watch Pro", Price: 549, Category: "Wearables", InStock: true, StockQuantity: 5,
	}))

	audio, err := productService.GetProductsByCategory("Audio")
	require.NoError(t, err)
	require.Len(t, audio, 1)
	assert.Equal(t, "Aura Earbuds X", audio[0].Name)

	empty, err := productService.GetProductsByCategory("Furniture")
	require.NoError(t, err)
	assert.Len(t, empty, 0)
}

func TestProductService_UpdateProduct(t *testing.T) {
	productService := setupProductServiceTest(t)

	product := &model.Product{
		Name:          "Aura Earbuds X",
		Price:         179,
		Category:      "Audio",
		InStock:       true,
		StockQuantity: 150,
	}
	require.NoError(t, productService.CreateProduct(product))

	product.Price = 159
	product.StockQuantity = 120
	require.NoError(t, productService.UpdateProduct(product))

	fetched, err := productService.GetProductByID(product.ID)
	require.NoError(t, err)
	assert.InDelta(t, 159.0, fetched.Price, 0.001)
	assert.Equal(t, 120, fetched.StockQuantity)
}

func TestProductService_UpdateProduct_NotFound(t *testing.T) {
	productService := setupProductServiceTest(t)

	err := productService.UpdateProduct(&model.Product{
		ID:       9999,
		Name:     "Ghost Product",
		Price:    10,
		Category: "Audio",
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_DeleteProduct(t *testing.T) {
	productService := setupProductServiceTest(t)

	product := &model.Product{
		Name:          "Aura Earbuds X",
		Price:         179,
		Category:      "Audio",
		InStock:       true,
		StockQuantity: 150,
	}
	require.NoError(t, productService.CreateProduct(product))

	require.NoError(t, productService.DeleteProduct(product.ID))

	_, err := productService.GetProductByID(product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_DeleteProduct_NotFound(t *testing.T) {
	productService := setupProductServiceTest(t)

	err := productService.DeleteProduct(9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
