package repository

import (
	"errors"

	"github.com/neonstore/neonstore-backend/internal/app/model"
	"github.com/neonstore/neonstore-backend/pkg/logger"
	"gorm.io/gorm"
)

type WishlistRepository interface {
	Create(item *model.WishlistItem) error
	FindByUserID(userID uint) ([]model.WishlistItem, error)
	Exists(userID, productID uint) (bool, error)
	Delete(userID, productID uint) (int64, error)
	DeleteByUserID(userID uint) error
}

type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) Create(item *model.WishlistItem) error {
	logger.Debug("Creating wishlist item in database", map[string]interface{}{
		"user_id":    item.UserID,
		"product_id": item.ProductID,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create wishlist item in database", err, map[string]interface{}{
			"user_id":    item.UserID,
			"product_id": item.ProductID,
		})
		return err
	}

	logger.Debug("Wishlist item created in database", map[string]interface{}{
		"wishlist_item_id": item.ID,
		"user_id":          item.UserID,
		"product_id":       item.ProductID,
	})
	return nil
}

func (r *wishlistRepository) FindByUserID(userID uint) ([]model.WishlistItem, error) {
	logger.Debug("Finding wishlist items by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var items []model.WishlistItem
	err := r.db.Where("user_id = ?", userID).
		Preload("Product").
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find wishlist items by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Wishlist items found by user ID in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(items),
	})
	return items, nil
}

// Exists reports presence of the (user, product) row without loading it.
func (r *wishlistRepository) Exists(userID, productID uint) (bool, error) {
	var item model.WishlistItem
	err := r.db.Select("id").
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		logger.Error("Failed to check wishlist item existence", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return false, err
	}
	return true, nil
}

func (r *wishlistRepository) Delete(userID, productID uint) (int64, error) {
	logger.Debug("Deleting wishlist item from database", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	res := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.WishlistItem{})
	if res.Error != nil {
		logger.Error("Failed to delete wishlist item from database", res.Error, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *wishlistRepository) DeleteByUserID(userID uint) error {
	if err := r.db.Where("user_id = ?", userID).Delete(&model.WishlistItem{}).Error; err != nil {
		logger.Error("Failed to delete wishlist items by user ID from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}
