package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/neonstore/neonstore-backend/internal/app/model"
	"github.com/neonstore/neonstore-backend/internal/app/repository"
	"github.com/neonstore/neonstore-backend/internal/db"
)

func setupWishlistServiceTest(t *testing.T) (WishlistService, *model.User, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	wishlistRepo := repository.NewWishlistRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	wishlistService := NewWishlistService(wishlistRepo, productRepo)

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hash",
		Name:         "Test User",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	product := &model.Product{
		Name:          "Aura Earbuds X",
		Price:         179,
		Category:      "Audio",
		InStock:       true,
		StockQuantity: 150,
	}
	testDB.Create(product)

	return wishlistService, user, product, testDB
}

func TestWishlistService_Toggle_AddsThenRemoves(t *testing.T) {
	wishlistService, user, product, _ := setupWishlistServiceTest(t)

	// First toggle adds.
	inWishlist, err := wishlistService.Toggle(user.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, inWishlist)

	present, err := wishlistService.IsInWishlist(user.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, present)

	// Second toggle removes.
	inWishlist, err = wishlistService.Toggle(user.ID, product.ID)
	require.NoError(t, err)
	assert.False(t, inWishlist)

	present, err = wishlistService.IsInWishlist(user.ID, product.ID)
	require.NoError(t, err)
	assert.False(t, present)
}

func TestWishlistService_Toggle_ProductNotFound(t *testing.T) {
	wishlistService, user, _, _ := setupWishlistServiceTest(t)

	inWishlist, err := wishlistService.Toggle(user.ID, 9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.False(t, inWishlist)
}

func TestWishlistService_GetUserWishlist(t *testing.T) {
	wishlistService, user, product, testDB := setupWishlistServiceTest(t)

	second := &model.Product{
		Name:          "Quantum Watch Pro",
		Price:         549,
		Category:      "Wearables",
		InStock:       true,
		StockQuantity: 80,
	}
	testDB.Create(second)

	_, err := wishlistService.Toggle(user.ID, product.ID)
	require.NoError(t, err)
	_, err = wishlistService.Toggle(user.ID, second.ID)
	require.NoError(t, err)

	items, err := wishlistService.GetUserWishlist(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.NotEmpty(t, items[0].Product.Name)
}

func TestWishlistService_WishlistIsPerUser(t *testing.T) {
	wishlistService, user, product, testDB := setupWishlistServiceTest(t)

	other := &model.User{
		Email:        "other@example.com",
		PasswordHash: "hash",
		Name:         "Other User",
		Role:         model.RoleUser,
	}
	testDB.Create(other)

	_, err := wishlistService.Toggle(user.ID, product.ID)
	require.NoError(t, err)

	present, err := wishlistService.IsInWishlist(other.ID, product.ID)
	require.NoError(t, err)
	assert.False(t, present)

	items, err := wishlistService.GetUserWishlist(other.ID)
	require.NoError(t, err)
	assert.Len(t, items, 0)
}

func TestWishlistService_Remove(t *testing.T) {
	wishlistService, user, product, _ := setupWishlistServiceTest(t)

	_, err := wishlistService.Toggle(user.ID, product.ID)
	require.NoError(t, err)

	err = wishlistService.Remove(user.ID, product.ID)
	assert.NoError(t, err)

	present, err := wishlistService.IsInWishlist(user.ID, product.ID)
	require.NoError(t, err)
	assert.False(t, present)
}

func TestWishlistService_Remove_NotFound(t *testing.T) {
	wishlistService, user, product, _ := setupWishlistServiceTest(t)

	err := wishlistService.Remove(user.ID, product.ID)
	assert.ErrorIs(t, err, ErrWishlistItemNotFound)
}
