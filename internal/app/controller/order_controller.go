package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/neonstore/neonstore-backend/internal/app/model"
	"github.com/neonstore/neonstore-backend/internal/app/service"
	"github.com/neonstore/neonstore-backend/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type CheckoutRequest struct {
	FullName      string `json:"full_name" binding:"required"`
	StreetAddress string `json:"street_address" binding:"required"`
	City          string `json:"city" binding:"required"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code" binding:"required"`
	Country       string `json:"country" binding:"required"`
	Phone         string `json:"phone"`
}

type UpdateOrderStatusRequest struct {
	Status model.OrderStatus `json:"status" binding:"required"`
}

// GetOrders returns the user's orders, newest first
// GET /api/v1/orders
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized access to orders", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	orders, err := ctrl.orderService.GetUserOrders(userID)
	if err != nil {
		log.Error("Failed to fetch orders", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch orders",
		})
		return
	}

	log.Info("Orders fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(orders),
	})

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrderByID returns one of the user's orders with its items
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized access to order", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid order ID format", map[string]interface{}{
			"user_id":  userID,
			"order_id": idStr,
			"error":    err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	order, err := ctrl.orderService.GetOrderByID(userID, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			log.Warn("Order not found", map[string]interface{}{
				"user_id":  userID,
				"order_id": id,
			})
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		log.Error("Failed to fetch order", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch order",
		})
		return
	}

	log.Info("Order fetched successfully", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
	})

	c.JSON(http.StatusOK, gin.H{
		"order":         order,
		"progress_step": order.Status.ProgressStep(),
		"is_cancelled":  order.Status.IsCancelled(),
	})
}

// Checkout converts the user's cart into an order
// POST /api/v1/orders
func (ctrl *OrderController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized checkout attempt", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid checkout request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	log.Debug("Processing checkout", map[string]interface{}{
		"user_id": userID,
		"city":    req.City,
		"country": req.Country,
	})

	address := model.ShippingAddress{
		FullName:      req.FullName,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		State:         req.State,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
		Phone:         req.Phone,
	}

	order, err := ctrl.orderService.Checkout(userID, address)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			log.Warn("Checkout with empty cart", map[string]interface{}{
				"user_id": userID,
			})
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cart is empty",
			})
			return
		}
		if errors.Is(err, service.ErrInsufficientStock) {
			log.Warn("Insufficient stock at checkout", map[string]interface{}{
				"user_id": userID,
			})
			c.JSON(http.StatusConflict, gin.H{
				"error": "Insufficient stock for one or more items",
			})
			return
		}
		log.Error("Checkout failed", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to place order",
		})
		return
	}

	log.Info("Order placed successfully", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total":        order.Total,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// UpdateOrderStatus moves an order along its fulfillment lifecycle (Admin only)
// PUT /api/v1/orders/:id/status
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid order ID format", map[string]interface{}{
			"order_id": idStr,
			"error":    err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid order status request", map[string]interface{}{
			"order_id": id,
			"error":    err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	log.Debug("Updating order status", map[string]interface{}{
		"order_id": id,
		"status":   req.Status,
	})

	err = ctrl.orderService.UpdateOrderStatus(uint(id), req.Status)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			log.Warn("Order not found for status update", map[string]interface{}{
				"order_id": id,
			})
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		if errors.Is(err, service.ErrInvalidOrderStatus) {
			log.Warn("Invalid order status", map[string]interface{}{
				"order_id": id,
				"status":   req.Status,
			})
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid order status",
			})
			return
		}
		log.Error("Failed to update order status", err, map[string]interface{}{
			"order_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update order status",
		})
		return
	}

	log.Info("Order status updated successfully", map[string]interface{}{
		"order_id": id,
		"status":   req.Status,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
	})
}
