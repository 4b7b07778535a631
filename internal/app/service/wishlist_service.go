package service

import (
	"errors"

	"github.com/neonstore/neonstore-backend/internal/app/model"
	"github.com/neonstore/neonstore-backend/internal/app/repository"
	"github.com/neonstore/neonstore-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrWishlistItemNotFound = errors.New("wishlist item not found")

type WishlistService interface {
	GetUserWishlist(userID uint) ([]model.WishlistItem, error)
	IsInWishlist(userID, productID uint) (bool, error)
	Toggle(userID, productID uint) (bool, error)
	Remove(userID, productID uint) error
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

func NewWishlistService(
	wishlistRepo repository.WishlistRepository,
	productRepo repository.ProductRepository,
) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

func (s *wishlistService) GetUserWishlist(userID uint) ([]model.WishlistItem, error) {
	items, err := s.wishlistRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user wishlist", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User wishlist fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(items),
	})
	return items, nil
}

func (s *wishlistService) IsInWishlist(userID, productID uint) (bool, error) {
	return s.wishlistRepo.Exists(userID, productID)
}

// Toggle flips the product's wishlist membership and returns the resulting
// state: true when the call added the product, false when it removed it.
// On a backend failure the stored state is untouched, so the caller must not
// flip its own view until the call succeeds.
func (s *wishlistService) Toggle(userID, productID uint) (bool, error) {
	logger.Info("Toggling wishlist item", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot toggle wishlist: product not found", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return false, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return false, err
	}

	present, err := s.wishlistRepo.Exists(userID, productID)
	if err != nil {
		logger.Error("Failed to check existing wishlist item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return false, err
	}

	if present {
		if _, err := s.wishlistRepo.Delete(userID, productID); err != nil {
			logger.Error("Failed to delete wishlist item", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return true, err
		}
		logger.Info("Item removed from wishlist", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return false, nil
	}

	item := &model.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.wishlistRepo.Create(item); err != nil {
		logger.Error("Failed to create wishlist item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return false, err
	}

	logger.Info("Item added to wishlist", map[string]interface{}{
		"wishlist_item_id": item.ID,
		"user_id":          userID,
		"product_id":       productID,
	})
	return true, nil
}

// Remove deletes the product from the wishlist regardless of current state
// and reports ErrWishlistItemNotFound when no row was there to delete.
func (s *wishlistService) Remove(userID, productID uint) error {
	logger.Info("Removing wishlist item", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	rows, err := s.wishlistRepo.Delete(userID, productID)
	if err != nil {
		logger.Error("Failed to delete wishlist item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return err
	}
	if rows == 0 {
		logger.Warn("Wishlist item not found for removal", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return ErrWishlistItemNotFound
	}

	logger.Info("Wishlist item removed", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})
	return nil
}
