package repository

import (
	"github.com/neonstore/neonstore-backend/internal/app/model"
	"github.com/neonstore/neonstore-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	Create(cartItem *model.CartItem) error
	FindByUserID(userID uint) ([]model.CartItem, error)
	FindByID(id uint) (*model.CartItem, error)
	FindByUserProductColor(userID, productID uint, selectedColor string) (*model.CartItem, error)
	UpdateQuantity(userID, cartItemID uint, quantity int) (int64, error)
	Delete(userID, cartItemID uint) (int64, error)
	DeleteByUserID(userID uint) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(cartItem *model.CartItem) error {
	logger.Debug("Creating cart item in database", map[string]interface{}{
		"user_id":        cartItem.UserID,
		"product_id":     cartItem.ProductID,
		"quantity":       cartItem.Quantity,
		"selected_color": cartItem.SelectedColor,
	})

	if err := r.db.Create(cartItem).Error; err != nil {
		logger.Error("Failed to create cart item in database", err, map[string]interface{}{
			"user_id":        cartItem.UserID,
			"product_id":     cartItem.ProductID,
			"selected_color": cartItem.SelectedColor,
		})
		return err
	}

	logger.Debug("Cart item created in database", map[string]interface{}{
		"cart_item_id": cartItem.ID,
		"user_id":      cartItem.UserID,
		"product_id":   cartItem.ProductID,
	})
	return nil
}

func (r *cartRepository) FindByUserID(userID uint) ([]model.CartItem, error) {
	logger.Debug("Finding cart items by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var cartItems []model.CartItem
	err := r.db.Where("user_id = ?", userID).
		Preload("Product").
		Order("created_at ASC").
		Find(&cartItems).Error
	if err != nil {
		logger.Error("Failed to find cart items by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Cart items found by user ID in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(cartItems),
	})
	return cartItems, nil
}

func (r *cartRepository) FindByID(id uint) (*model.CartItem, error) {
	var cartItem model.CartItem
	err := r.db.Preload("Product").First(&cartItem, id).Error
	if err != nil {
		logger.Error("Failed to find cart item by ID in database", err, map[string]interface{}{
			"cart_item_id": id,
		})
		return nil, err
	}
	return &cartItem, nil
}

func (r *cartRepository) FindByUserProductColor(userID, productID uint, selectedColor string) (*model.CartItem, error) {
	var cartItem model.CartItem
	err := r.db.Where("user_id = ? AND product_id = ? AND selected_color = ?", userID, productID, selectedColor).
		First(&cartItem).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find cart item by user, product and color", err, map[string]interface{}{
				"user_id":        userID,
				"product_id":     productID,
				"selected_color": selectedColor,
			})
		}
		return nil, err
	}
	return &cartItem, nil
}

// UpdateQuantity writes the new quantity with the owner in the predicate, so
// the update can never touch another user's row. Returns the affected count;
// zero means no row owned by userID has that ID.
func (r *cartRepository) UpdateQuantity(userID, cartItemID uint, quantity int) (int64, error) {
	logger.Debug("Updating cart item quantity in database", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItemID,
		"quantity":     quantity,
	})

	res := r.db.Model(&model.CartItem{}).
		Where("id = ? AND user_id = ?", cartItemID, userID).
		Update("quantity", quantity)
	if res.Error != nil {
		logger.Error("Failed to update cart item quantity in database", res.Error, map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": cartItemID,
		})
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// Delete removes the row, scoped to the owning user.
func (r *cartRepository) Delete(userID, cartItemID uint) (int64, error) {
	logger.Debug("Deleting cart item from database", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItemID,
	})

	res := r.db.Where("id = ? AND user_id = ?", cartItemID, userID).
		Delete(&model.CartItem{})
	if res.Error != nil {
		logger.Error("Failed to delete cart item from database", res.Error, map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": cartItemID,
		})
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *cartRepository) DeleteByUserID(userID uint) error {
	logger.Debug("Deleting cart items by user ID from database", map[string]interface{}{
		"user_id": userID,
	})

	if err := r.db.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to delete cart items by user ID from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	logger.Debug("Cart items deleted by user ID from database", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}
