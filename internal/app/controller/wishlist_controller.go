package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/neonstore/neonstore-backend/internal/app/service"
	"github.com/neonstore/neonstore-backend/internal/middleware"
)

type WishlistController struct {
	wishlistService service.WishlistService
}

func NewWishlistController(wishlistService service.WishlistService) *WishlistController {
	return &WishlistController{
		wishlistService: wishlistService,
	}
}

type ToggleWishlistRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetWishlist returns user's wishlist
// GET /api/v1/wishlist
func (ctrl *WishlistController) GetWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized access to wishlist", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	items, err := ctrl.wishlistService.GetUserWishlist(userID)
	if err != nil {
		log.Error("Failed to fetch wishlist", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch wishlist",
		})
		return
	}

	log.Info("Wishlist fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(items),
	})

	c.JSON(http.StatusOK, gin.H{
		"wishlist_items": items,
		"count":          len(items),
	})
}

// CheckWishlist reports whether a product is in the user's wishlist
// GET /api/v1/wishlist/:product_id
func (ctrl *WishlistController) CheckWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized wishlist check", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	productIDStr := c.Param("product_id")
	productID, err := strconv.ParseUint(productIDStr, 10, 32)
	if err != nil {
		log.Warn("Invalid product ID format", map[string]interface{}{
			"user_id":    userID,
			"product_id": productIDStr,
			"error":      err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	inWishlist, err := ctrl.wishlistService.IsInWishlist(userID, uint(productID))
	if err != nil {
		log.Error("Failed to check wishlist", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to check wishlist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product_id":  productID,
		"in_wishlist": inWishlist,
	})
}

// ToggleWishlist flips a product's wishlist membership and reports the
// resulting state
// POST /api/v1/wishlist/toggle
func (ctrl *WishlistController) ToggleWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to toggle wishlist", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req ToggleWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid toggle wishlist request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	log.Debug("Toggling wishlist item", map[string]interface{}{
		"user_id":    userID,
		"product_id": req.ProductID,
	})

	added, err := ctrl.wishlistService.Toggle(userID, req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found for wishlist toggle", map[string]interface{}{
				"user_id":    userID,
				"product_id": req.ProductID,
			})
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		log.Error("Failed to toggle wishlist item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": req.ProductID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to toggle wishlist item",
		})
		return
	}

	message := "Item removed from wishlist"
	if added {
		message = "Item added to wishlist"
	}

	log.Info("Wishlist item toggled successfully", map[string]interface{}{
		"user_id":     userID,
		"product_id":  req.ProductID,
		"in_wishlist": added,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":     message,
		"product_id":  req.ProductID,
		"in_wishlist": added,
	})
}

// RemoveFromWishlist removes a product from the wishlist
// DELETE /api/v1/wishlist/:product_id
func (ctrl *WishlistController) RemoveFromWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to remove from wishlist", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	productIDStr := c.Param("product_id")
	productID, err := strconv.ParseUint(productIDStr, 10, 32)
	if err != nil {
		log.Warn("Invalid product ID format", map[string]interface{}{
			"user_id":    userID,
			"product_id": productIDStr,
			"error":      err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	log.Debug("Removing item from wishlist", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	err = ctrl.wishlistService.Remove(userID, uint(productID))
	if err != nil {
		if errors.Is(err, service.ErrWishlistItemNotFound) {
			log.Warn("Wishlist item not found", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Wishlist item not found",
			})
			return
		}
		log.Error("Failed to remove item from wishlist", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove item from wishlist",
		})
		return
	}

	log.Info("Item removed from wishlist successfully", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from wishlist successfully",
	})
}
