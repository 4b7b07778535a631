package service

import (
	"errors"

	"github.com/neonstore/neonstore-backend/internal/app/model"
	"github.com/neonstore/neonstore-backend/internal/app/repository"
	"github.com/neonstore/neonstore-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidPricing    = errors.New("original price must exceed price")
)

type ProductService interface {
	GetAllProducts() ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	GetProductsByCategory(category string) ([]model.Product, error)
	CreateProduct(product *model.Product) error
	UpdateProduct(product *model.Product) error
	DeleteProduct(id uint) error
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{
		productRepo: productRepo,
	}
}

func (s *productService) GetAllProducts() ([]model.Product, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		logger.Error("Failed to fetch products", err, nil)
		return nil, err
	}

	logger.Info("Products fetched successfully", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

func (s *productService) GetProductsByCategory(category string) ([]model.Product, error) {
	products, err := s.productRepo.FindByCategory(category)
	if err != nil {
		logger.Error("Failed to fetch products by category", err, map[string]interface{}{
			"category": category,
		})
		return nil, err
	}
	return products, nil
}

func (s *productService) CreateProduct(product *model.Product) error {
	if err := validatePricing(product); err != nil {
		return err
	}

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}

	logger.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

func (s *productService) UpdateProduct(product *model.Product) error {
	if err := validatePricing(product); err != nil {
		return err
	}

	existing, err := s.productRepo.FindByID(product.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	product.CreatedAt = existing.CreatedAt
	if err := s.productRepo.Update(product); err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}

	logger.Info("Product updated successfully", map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

func (s *productService) DeleteProduct(id uint) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if err := s.productRepo.Delete(id); err != nil {
		logger.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Info("Product deleted successfully", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

// validatePricing enforces the discount display invariant: when a product
// carries an original price it must be strictly above the selling price.
func validatePricing(product *model.Product) error {
	if product.OriginalPrice != nil && *product.OriginalPrice <= product.Price {
		logger.Warn("Invalid product pricing", map[string]interface{}{
			"price":          product.Price,
			"original_price": *product.OriginalPrice,
		})
		return ErrInvalidPricing
	}
	return nil
}
