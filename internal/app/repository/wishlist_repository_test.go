package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/neonstore/neonstore-backend/internal/app/model"
	"github.com/neonstore/neonstore-backend/internal/db"
)

func setupWishlistTest(t *testing.T) (*gorm.DB, WishlistRepository, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewWishlistRepository(testDB)

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hash",
		Name:         "Test User",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	product := &model.Product{
		Name:          "Quantum Watch Pro",
		Price:         549,
		Category:      "Wearables",
		InStock:       true,
		StockQuantity: 5,
	}
	testDB.Create(product)

	return testDB, repo, user, product
}

func TestWishlistRepository_Create(t *testing.T) {
	testDB, repo, user, product := setupWishlistTest(t)
	defer db.CleanupTestDB(testDB)

	item := &model.WishlistItem{UserID: user.ID, ProductID: product.ID}

	err := repo.Create(item)
	assert.NoError(t, err)
	assert.NotZero(t, item.ID)

	// One row per (user, product).
	dup := &model.WishlistItem{UserID: user.ID, ProductID: product.ID}
	assert.Error(t, repo.Create(dup))
}

func TestWishlistRepository_Exists(t *testing.T) {
	testDB, repo, user, product := setupWishlistTest(t)
	defer db.CleanupTestDB(testDB)

	exists, err := repo.Exists(user.ID, product.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Create(&model.WishlistItem{UserID: user.ID, ProductID: product.ID}))

	exists, err = repo.Exists(user.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// Another user's wishlist is unaffected.
	exists, err = repo.Exists(user.ID+1, product.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestWishlistRepository_FindByUserID(t *testing.T) {
	testDB, repo, user, product := setupWishlistTest(t)
	defer db.CleanupTestDB(testDB)

	second := &model.Product{Name: "Aura Earbuds X", Price: 179, Category: "Audio", StockQuantity: 3}
	testDB.Create(second)

	require.NoError(t, repo.Create(&model.WishlistItem{UserID: user.ID, ProductID: product.ID}))
	require.NoError(t, repo.Create(&model.WishlistItem{UserID: user.ID, ProductID: second.ID}))

	items, err := repo.FindByUserID(user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.NotEmpty(t, items[0].Product.Name)
}

func TestWishlistRepository_Delete(t *testing.T) {
	testDB, repo, user, product := setupWishlistTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(&model.WishlistItem{UserID: user.ID, ProductID: product.ID}))

	rows, err := repo.Delete(user.ID, product.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	// Deleting again reports nothing removed.
	rows, err = repo.Delete(user.ID, product.ID)
	assert.NoError(t, err)
	assert.Zero(t, rows)

	// Hard delete frees the unique slot for a re-add.
	assert.NoError(t, repo.Create(&model.WishlistItem{UserID: user.ID, ProductID: product.ID}))
}

func TestWishlistRepository_DeleteByUserID(t *testing.T) {
	testDB, repo, user, product := setupWishlistTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(&model.WishlistItem{UserID: user.ID, ProductID: product.ID}))

	err := repo.DeleteByUserID(user.ID)
	assert.NoError(t, err)

	items, _ := repo.FindByUserID(user.ID)
	assert.Len(t, items, 0)
}
