package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alshop/internal/apperr"
	"alshop/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{db: db}
}

// GetAll retrieves products, newest first. Inactive products are hidden
// unless includeInactive is set.
func (r *GORMProductRepository) GetAll(includeInactive bool) ([]models.Product, error) {
	var products []models.Product
	q := r.db.Order("created_at DESC")
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&products).Error; err != nil {
		return nil, apperr.Dependencyf("failed to get products: %v", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID, active or not.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("product %s", id)
		}
		return nil, apperr.Dependencyf("failed to get product %s: %v", id, err)
	}
	return &product, nil
}

// GetByIDs retrieves the products matching any of the given IDs.
func (r *GORMProductRepository) GetByIDs(ids []string) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, apperr.Dependencyf("failed to get products by ids: %v", err)
	}
	return products, nil
}

// Create inserts a new product.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return apperr.Dependencyf("failed to create product: %v", err)
	}
	return nil
}

// Update saves the full product record, including zero values such as
// IsActive=false.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product)
	if res.Error != nil {
		return apperr.Dependencyf("failed to update product: %v", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("product %s", product.ID)
	}
	return nil
}

// Count returns the total number of products, active or not.
func (r *GORMProductRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&models.Product{}).Count(&n).Error; err != nil {
		return 0, apperr.Dependencyf("failed to count products: %v", err)
	}
	return n, nil
}
