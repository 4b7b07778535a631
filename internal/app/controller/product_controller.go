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

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type CreateProductRequest struct {
	Name          string   `json:"name" binding:"required"`
	Tagline       string   `json:"tagline"`
	Description   string   `json:"description"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	OriginalPrice *float64 `json:"original_price"`
	ImageURL      string   `json:"image_url"`
	Category      string   `json:"category" binding:"required"`
	Features      []string `json:"features"`
	Colors        []string `json:"colors"`
	InStock       *bool    `json:"in_stock"`
	StockQuantity int      `json:"stock_quantity" binding:"gte=0"`
}

// GetAllProducts returns the catalog, optionally filtered by category
// GET /api/v1/products?category=audio
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var (
		products []model.Product
		err      error
	)

	category := c.Query("category")
	if category != "" {
		products, err = ctrl.productService.GetProductsByCategory(category)
	} else {
		products, err = ctrl.productService.GetAllProducts()
	}
	if err != nil {
		log.Error("Failed to fetch products", err, map[string]interface{}{
			"category": category,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch products",
		})
		return
	}

	log.Info("Products fetched successfully", map[string]interface{}{
		"count":    len(products),
		"category": category,
	})

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProductByID returns a product by ID
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid product ID format", map[string]interface{}{
			"product_id": idStr,
			"error":      err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	product, err := ctrl.productService.GetProductByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch product",
		})
		return
	}

	log.Info("Product fetched successfully", map[string]interface{}{
		"product_id": product.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// CreateProduct creates a new product (Admin only)
// POST /api/v1/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product creation request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	log.Debug("Creating product", map[string]interface{}{
		"name":     req.Name,
		"category": req.Category,
		"price":    req.Price,
	})

	product := req.toModel()
	if err := ctrl.productService.CreateProduct(product); err != nil {
		if errors.Is(err, service.ErrInvalidPricing) {
			log.Warn("Invalid pricing for product", map[string]interface{}{
				"name":           req.Name,
				"price":          req.Price,
				"original_price": req.OriginalPrice,
			})
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Original price must exceed the sale price",
			})
			return
		}
		log.Error("Failed to create product", err, map[string]interface{}{
			"name":     req.Name,
			"category": req.Category,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create product",
		})
		return
	}

	log.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

// UpdateProduct updates an existing product (Admin only)
// PUT /api/v1/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid product ID format", map[string]interface{}{
			"product_id": idStr,
			"error":      err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product update request", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	log.Debug("Updating product", map[string]interface{}{
		"product_id": id,
		"name":       req.Name,
	})

	product := req.toModel()
	product.ID = uint(id)
	if err := ctrl.productService.UpdateProduct(product); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found for update", map[string]interface{}{
				"product_id": id,
			})
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		if errors.Is(err, service.ErrInvalidPricing) {
			log.Warn("Invalid pricing for product update", map[string]interface{}{
				"product_id":     id,
				"price":          req.Price,
				"original_price": req.OriginalPrice,
			})
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Original price must exceed the sale price",
			})
			return
		}
		log.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update product",
		})
		return
	}

	log.Info("Product updated successfully", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct deletes a product (Admin only)
// DELETE /api/v1/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid product ID format", map[string]interface{}{
			"product_id": idStr,
			"error":      err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	log.Debug("Deleting product", map[string]interface{}{
		"product_id": id,
	})

	if err := ctrl.productService.DeleteProduct(uint(id)); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found for deletion", map[string]interface{}{
				"product_id": id,
			})
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete product",
		})
		return
	}

	log.Info("Product deleted successfully", map[string]interface{}{
		"product_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}

// toModel maps the request onto a product row. In-stock defaults to
// whether any stock quantity was given unless the client states it.
func (req *CreateProductRequest) toModel() *model.Product {
	inStock := req.StockQuantity > 0
	if req.InStock != nil {
		inStock = *req.InStock
	}
	return &model.Product{
		Name:          req.Name,
		Tagline:       req.Tagline,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		ImageURL:      req.ImageURL,
		Category:      req.Category,
		Features:      req.Features,
		Colors:        req.Colors,
		InStock:       inStock,
		StockQuantity: req.StockQuantity,
	}
}
