package services

import (
	"errors"

	"alshop/internal/apperr"
	"alshop/internal/models"
	"alshop/internal/repositories"
)

// ProductService handles catalog business logic. Products are never
// removed; visibility is flipped through the IsActive flag so historical
// orders keep valid references.
type ProductService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository) *ProductService {
	return &ProductService{productRepo: productRepo, categoryRepo: categoryRepo}
}

// GetProducts lists the catalog. Shoppers only see active products.
func (s *ProductService) GetProducts(includeInactive bool) ([]models.Product, error) {
	return s.productRepo.GetAll(includeInactive)
}

// GetProduct retrieves one product.
func (s *ProductService) GetProduct(id string) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

// GetProductsByIDs retrieves a batch of products, e.g. for a cart view.
func (s *ProductService) GetProductsByIDs(ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, apperr.Validationf("no product ids provided")
	}
	return s.productRepo.GetByIDs(ids)
}

// CreateProduct inserts a new catalog item. The category must exist.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if product.Price < 0 {
		return apperr.Validationf("price must not be negative")
	}
	if product.Stock < 0 {
		return apperr.Validationf("stock must not be negative")
	}
	if _, err := s.categoryRepo.GetByID(product.CategoryID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.Validationf("category %s does not exist", product.CategoryID)
		}
		return err
	}
	product.IsActive = true
	return s.productRepo.Create(product)
}

// UpdateProduct saves catalog edits.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if product.Price < 0 {
		return apperr.Validationf("price must not be negative")
	}
	if product.Stock < 0 {
		return apperr.Validationf("stock must not be negative")
	}
	if product.CategoryID != "" {
		if _, err := s.categoryRepo.GetByID(product.CategoryID); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return apperr.Validationf("category %s does not exist", product.CategoryID)
			}
			return err
		}
	}
	return s.productRepo.Update(product)
}

// ToggleActive flips product visibility. This is the only "delete" the
// catalog supports.
func (s *ProductService) ToggleActive(id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	product.IsActive = !product.IsActive
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}
