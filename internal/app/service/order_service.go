package service

import (
	"errors"
	"fmt"

	"github.com/neonstore/neonstore-backend/config"
	"github.com/neonstore/neonstore-backend/internal/app/model"
	"github.com/neonstore/neonstore-backend/internal/app/repository"
	"github.com/neonstore/neonstore-backend/pkg/logger"
	"github.com/neonstore/neonstore-backend/pkg/util"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

type OrderService interface {
	Checkout(userID uint, address model.ShippingAddress) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	GetOrderByID(userID, orderID uint) (*model.Order, error)
	UpdateOrderStatus(orderID uint, status model.OrderStatus) error
}

type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	checkout  config.CheckoutConfig
	db        *gorm.DB
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	checkout config.CheckoutConfig,
	db *gorm.DB,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		checkout:  checkout,
		db:        db,
	}
}

// Checkout turns the user's cart into an immutable order. Product display
// fields and unit prices are frozen into the order items inside one
// transaction that also decrements stock and clears the cart, so a failure
// anywhere leaves both cart and catalog untouched. It holds the user's
// cart lock for the duration and only deletes the rows it ordered, so a
// concurrent add can never lose an item to the final sweep.
func (s *orderService) Checkout(userID uint, address model.ShippingAddress) (*model.Order, error) {
	logger.Info("Creating order from cart", map[string]interface{}{
		"user_id": userID,
	})

	unlock := lockUserCart(userID)
	defer unlock()

	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch cart items", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if len(cartItems) == 0 {
		logger.Warn("Cannot create order: cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrEmptyCart
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during checkout, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"user_id": userID,
			})
		}
	}()

	var (
		subtotal    float64
		orderItems  []model.OrderItem
		cartItemIDs []uint
	)

	for _, cartItem := range cartItems {
		var product model.Product
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, cartItem.ProductID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Product not found during checkout", map[string]interface{}{
					"user_id":    userID,
					"product_id": cartItem.ProductID,
				})
				return nil, ErrProductNotFound
			}
			logger.Error("Failed to fetch product during checkout", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": cartItem.ProductID,
			})
			return nil, err
		}

		if product.StockQuantity < cartItem.Quantity {
			tx.Rollback()
			logger.Warn("Checkout failed: insufficient stock", map[string]interface{}{
				"user_id":    userID,
				"product_id": cartItem.ProductID,
				"requested":  cartItem.Quantity,
				"available":  product.StockQuantity,
			})
			return nil, ErrInsufficientStock
		}

		if err := tx.Model(&model.Product{}).Where("id = ?", product.ID).
			Update("stock_quantity", product.StockQuantity-cartItem.Quantity).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to decrement stock during checkout", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": product.ID,
			})
			return nil, err
		}

		subtotal += product.Price * float64(cartItem.Quantity)
		cartItemIDs = append(cartItemIDs, cartItem.ID)
		orderItems = append(orderItems, model.OrderItem{
			ProductID:     product.ID,
			ProductName:   product.Name,
			ProductImage:  product.ImageURL,
			UnitPrice:     product.Price,
			Quantity:      cartItem.Quantity,
			SelectedColor: cartItem.SelectedColor,
		})
	}

	var shippingCost float64
	if subtotal <= s.checkout.FreeShippingThreshold {
		shippingCost = s.checkout.ShippingFee
	}
	tax := subtotal * s.checkout.TaxRate

	order := &model.Order{
		UserID:          userID,
		OrderNumber:     util.GenerateOrderNumber(),
		Status:          model.OrderStatusPending,
		Subtotal:        subtotal,
		ShippingCost:    shippingCost,
		Tax:             tax,
		Total:           subtotal + shippingCost + tax,
		ShippingAddress: address,
		OrderItems:      orderItems,
	}

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create order", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if err := tx.Where("id IN ?", cartItemIDs).Delete(&model.CartItem{}).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to clear cart during checkout", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit checkout transaction", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Order created successfully", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"user_id":      userID,
		"total":        order.Total,
	})
	return order, nil
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	orders, err := s.orderRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user orders", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User orders fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(orders),
	})
	return orders, nil
}

// GetOrderByID returns the order only when it belongs to userID; a missing
// ID and another user's order are both ErrOrderNotFound.
func (s *orderService) GetOrderByID(userID, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByIDForUser(orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order not found", map[string]interface{}{
				"user_id":  userID,
				"order_id": orderID,
			})
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
		return nil, err
	}
	return order, nil
}

func (s *orderService) UpdateOrderStatus(orderID uint, status model.OrderStatus) error {
	if !status.Valid() {
		logger.Warn("Rejecting unrecognized order status", map[string]interface{}{
			"order_id": orderID,
			"status":   status,
		})
		return ErrInvalidOrderStatus
	}

	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		logger.Error("Failed to update order status", err, map[string]interface{}{
			"order_id": orderID,
			"status":   status,
		})
		return err
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})
	return nil
}
