package repositories

import "alshop/internal/models"

// ProductRepository defines the interface for product data access.
// Products are soft-deleted: rows stay forever, IsActive controls
// visibility.
type ProductRepository interface {
	GetAll(includeInactive bool) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetByIDs(ids []string) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Count() (int64, error)
}
