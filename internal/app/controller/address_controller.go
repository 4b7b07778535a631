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

type AddressController struct {
	addressService service.AddressService
}

func NewAddressController(addressService service.AddressService) *AddressController {
	return &AddressController{
		addressService: addressService,
	}
}

type AddressRequest struct {
	Label         string `json:"label"`
	FullName      string `json:"full_name" binding:"required"`
	StreetAddress string `json:"street_address" binding:"required"`
	City          string `json:"city" binding:"required"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code" binding:"required"`
	Country       string `json:"country" binding:"required"`
	Phone         string `json:"phone"`
	IsDefault     bool   `json:"is_default"`
}

// ListAddresses returns the user's saved addresses
// GET /api/v1/addresses
func (ctrl *AddressController) ListAddresses(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized access to addresses", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	addresses, err := ctrl.addressService.ListAddresses(userID)
	if err != nil {
		log.Error("Failed to fetch addresses", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch addresses",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"addresses": addresses,
		"count":     len(addresses),
	})
}

// CreateAddress saves a new shipping address
// POST /api/v1/addresses
func (ctrl *AddressController) CreateAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to create address", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create address request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	address := req.toModel()
	address.UserID = userID

	if err := ctrl.addressService.CreateAddress(address); err != nil {
		log.Error("Failed to create address", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create address",
		})
		return
	}

	log.Info("Address created successfully", map[string]interface{}{
		"user_id":    userID,
		"address_id": address.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Address created successfully",
		"address": address,
	})
}

// UpdateAddress updates a saved shipping address
// PUT /api/v1/addresses/:id
func (ctrl *AddressController) UpdateAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to update address", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid address ID format", map[string]interface{}{
			"user_id":    userID,
			"address_id": idStr,
			"error":      err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid address ID",
		})
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update address request", map[string]interface{}{
			"user_id":    userID,
			"address_id": id,
			"error":      err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	address := req.toModel()
	address.ID = uint(id)

	err = ctrl.addressService.UpdateAddress(userID, address)
	if err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			log.Warn("Address not found for update", map[string]interface{}{
				"user_id":    userID,
				"address_id": id,
			})
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Address not found",
			})
			return
		}
		log.Error("Failed to update address", err, map[string]interface{}{
			"user_id":    userID,
			"address_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update address",
		})
		return
	}

	log.Info("Address updated successfully", map[string]interface{}{
		"user_id":    userID,
		"address_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Address updated successfully",
		"address": address,
	})
}

// DeleteAddress removes a saved shipping address
// DELETE /api/v1/addresses/:id
func (ctrl *AddressController) DeleteAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to delete address", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid address ID format", map[string]interface{}{
			"user_id":    userID,
			"address_id": idStr,
			"error":      err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid address ID",
		})
		return
	}

	err = ctrl.addressService.DeleteAddress(userID, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			log.Warn("Address not found for deletion", map[string]interface{}{
				"user_id":    userID,
				"address_id": id,
			})
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Address not found",
			})
			return
		}
		log.Error("Failed to delete address", err, map[string]interface{}{
			"user_id":    userID,
			"address_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete address",
		})
		return
	}

	log.Info("Address deleted successfully", map[string]interface{}{
		"user_id":    userID,
		"address_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Address deleted successfully",
	})
}

// SetDefaultAddress marks one address as the checkout default
// PUT /api/v1/addresses/:id/default
func (ctrl *AddressController) SetDefaultAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to set default address", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid address ID format", map[string]interface{}{
			"user_id":    userID,
			"address_id": idStr,
			"error":      err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid address ID",
		})
		return
	}

	err = ctrl.addressService.SetDefaultAddress(userID, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			log.Warn("Address not found for default", map[string]interface{}{
				"user_id":    userID,
				"address_id": id,
			})
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Address not found",
			})
			return
		}
		log.Error("Failed to set default address", err, map[string]interface{}{
			"user_id":    userID,
			"address_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to set default address",
		})
		return
	}

	log.Info("Default address set successfully", map[string]interface{}{
		"user_id":    userID,
		"address_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Default address set successfully",
	})
}

func (req *AddressRequest) toModel() *model.Address {
	return &model.Address{
		Label:         req.Label,
		FullName:      req.FullName,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		State:         req.State,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
		Phone:         req.Phone,
		IsDefault:     req.IsDefault,
	}
}
