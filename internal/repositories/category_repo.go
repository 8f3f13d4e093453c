package repositories

import "alshop/internal/models"

// CategoryRepository defines the interface for category data access.
// Categories are renamed or hidden, never hard-deleted.
type CategoryRepository interface {
	GetAll(includeInactive bool) ([]models.Category, error)
	GetByID(id string) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
}
