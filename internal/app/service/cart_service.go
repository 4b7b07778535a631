package service

import (
	"errors"
	"sync"

	"github.com/neonstore/neonstore-backend/config"
	"github.com/neonstore/neonstore-backend/internal/app/model"
	"github.com/neonstore/neonstore-backend/internal/app/repository"
	"github.com/neonstore/neonstore-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidColor     = errors.New("selected color not offered for this product")
)

// CartSummary carries the derived figures for the current cart contents.
// Subtotal is always recomputed from the joined product rows, never cached,
// so a price change on a product immediately changes the displayed totals.
type CartSummary struct {
	ItemCount    int     `json:"item_count"`
	Subtotal     float64 `json:"subtotal"`
	ShippingCost float64 `json:"shipping_cost"`
	Tax          float64 `json:"tax"`
	Total        float64 `json:"total"`
}

type CartService interface {
	GetUserCart(userID uint) ([]model.CartItem, error)
	Summarize(items []model.CartItem) CartSummary
	AddToCart(userID, productID uint, quantity int, selectedColor string) error
	UpdateCartItem(userID, cartItemID uint, quantity int) error
	RemoveFromCart(userID, cartItemID uint) error
	ClearCart(userID uint) error
}

// userCartLocks serializes cart mutations per user, shared with checkout.
// Without it two concurrent adds for the same (product, color) can both
// miss the existing row and race on the insert; the unique index would
// fail the loser, but serializing turns that into the intended quantity
// increment. Checkout takes the same lock so a row added mid-checkout is
// never swept away by the cart clear without being ordered.
var userCartLocks sync.Map // map[uint]*sync.Mutex

func lockUserCart(userID uint) func() {
	v, _ := userCartLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	checkout    config.CheckoutConfig
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	checkout config.CheckoutConfig,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		checkout:    checkout,
	}
}

func (s *cartService) GetUserCart(userID uint) ([]model.CartItem, error) {
	logger.Debug("Fetching user cart", map[string]interface{}{
		"user_id": userID,
	})

	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User cart fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(cartItems),
	})
	return cartItems, nil
}

// Summarize derives item count and money figures from the given cart rows.
// An empty cart yields all zeros; the flat shipping fee only applies once
// there is something to ship and the subtotal is under the free threshold.
func (s *cartService) Summarize(items []model.CartItem) CartSummary {
	var summary CartSummary
	for _, item := range items {
		summary.ItemCount += item.Quantity
		summary.Subtotal += item.Product.Price * float64(item.Quantity)
	}

	if summary.ItemCount > 0 && summary.Subtotal <= s.checkout.FreeShippingThreshold {
		summary.ShippingCost = s.checkout.ShippingFee
	}
	summary.Tax = summary.Subtotal * s.checkout.TaxRate
	summary.Total = summary.Subtotal + summary.ShippingCost + summary.Tax
	return summary
}

func (s *cartService) AddToCart(userID, productID uint, quantity int, selectedColor string) error {
	unlock := lockUserCart(userID)
	defer unlock()

	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":        userID,
		"product_id":     productID,
		"quantity":       quantity,
		"selected_color": selectedColor,
	})

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return err
	}

	if !product.InStock {
		logger.Warn("Cannot add to cart: product out of stock", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return ErrInsufficientStock
	}

	if !product.HasColor(selectedColor) {
		logger.Warn("Cannot add to cart: invalid color selection", map[string]interface{}{
			"user_id":        userID,
			"product_id":     productID,
			"selected_color": selectedColor,
		})
		return ErrInvalidColor
	}

	existingItem, err := s.cartRepo.FindByUserProductColor(userID, productID, selectedColor)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing cart item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return err
	}

	requestedQuantity := quantity
	if existingItem != nil {
		requestedQuantity = existingItem.Quantity + quantity
	}

	if product.StockQuantity < requestedQuantity {
		logger.Warn("Cannot add to cart: insufficient stock", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
			"requested":  requestedQuantity,
			"available":  product.StockQuantity,
		})
		return ErrInsufficientStock
	}

	if existingItem != nil {
		logger.Debug("Incrementing existing cart item", map[string]interface{}{
			"cart_item_id": existingItem.ID,
			"old_qty":      existingItem.Quantity,
			"new_qty":      requestedQuantity,
		})
		if _, err := s.cartRepo.UpdateQuantity(userID, existingItem.ID, requestedQuantity); err != nil {
			logger.Error("Failed to update cart item", err, map[string]interface{}{
				"cart_item_id": existingItem.ID,
			})
			return err
		}
		return nil
	}

	cartItem := &model.CartItem{
		UserID:        userID,
		ProductID:     productID,
		Quantity:      quantity,
		SelectedColor: selectedColor,
	}

	if err := s.cartRepo.Create(cartItem); err != nil {
		logger.Error("Failed to create cart item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return err
	}

	logger.Info("Cart item added successfully", map[string]interface{}{
		"cart_item_id": cartItem.ID,
	})
	return nil
}

func (s *cartService) UpdateCartItem(userID, cartItemID uint, quantity int) error {
	unlock := lockUserCart(userID)
	defer unlock()

	// A quantity at or below zero means the row should not exist at all;
	// there is no zero-quantity cart row.
	if quantity <= 0 {
		return s.removeLocked(userID, cartItemID)
	}

	logger.Info("Updating cart item", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItemID,
		"quantity":     quantity,
	})

	cartItem, err := s.cartRepo.FindByID(cartItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cart item not found", map[string]interface{}{
				"cart_item_id": cartItemID,
			})
			return ErrCartItemNotFound
		}
		logger.Error("Failed to fetch cart item", err, map[string]interface{}{
			"cart_item_id": cartItemID,
		})
		return err
	}

	// Ownership mismatch is reported as not-found so the response leaks
	// nothing about other users' rows.
	if cartItem.UserID != userID {
		logger.Warn("Cart item access denied: ownership mismatch", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": cartItemID,
			"owner_id":     cartItem.UserID,
		})
		return ErrCartItemNotFound
	}

	product, err := s.productRepo.FindByID(cartItem.ProductID)
	if err != nil {
		logger.Error("Failed to fetch product for stock check", err, map[string]interface{}{
			"cart_item_id": cartItemID,
			"product_id":   cartItem.ProductID,
		})
		return err
	}

	if product.StockQuantity < quantity {
		logger.Warn("Cannot update cart item: insufficient stock", map[string]interface{}{
			"cart_item_id": cartItemID,
			"requested":    quantity,
			"available":    product.StockQuantity,
		})
		return ErrInsufficientStock
	}

	rows, err := s.cartRepo.UpdateQuantity(userID, cartItemID, quantity)
	if err != nil {
		logger.Error("Failed to update cart item", err, map[string]interface{}{
			"cart_item_id": cartItemID,
		})
		return err
	}
	if rows == 0 {
		return ErrCartItemNotFound
	}

	logger.Info("Cart item updated successfully", map[string]interface{}{
		"cart_item_id": cartItemID,
	})
	return nil
}

func (s *cartService) RemoveFromCart(userID, cartItemID uint) error {
	unlock := lockUserCart(userID)
	defer unlock()
	return s.removeLocked(userID, cartItemID)
}

func (s *cartService) removeLocked(userID, cartItemID uint) error {
	logger.Info("Removing cart item", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItemID,
	})

	rows, err := s.cartRepo.Delete(userID, cartItemID)
	if err != nil {
		logger.Error("Failed to delete cart item", err, map[string]interface{}{
			"cart_item_id": cartItemID,
		})
		return err
	}
	if rows == 0 {
		logger.Warn("Cart item not found for removal", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": cartItemID,
		})
		return ErrCartItemNotFound
	}

	logger.Info("Cart item removed", map[string]interface{}{
		"cart_item_id": cartItemID,
	})
	return nil
}

func (s *cartService) ClearCart(userID uint) error {
	unlock := lockUserCart(userID)
	defer unlock()

	logger.Info("Clearing user cart", map[string]interface{}{
		"user_id": userID,
	})

	if err := s.cartRepo.DeleteByUserID(userID); err != nil {
		logger.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	logger.Info("User cart cleared", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}
