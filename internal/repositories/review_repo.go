package repositories

import "alshop/internal/models"

// ReviewRepository defines the interface for review data access. One
// review per user and product pair, enforced by a composite unique index.
type ReviewRepository interface {
	Create(review *models.Review) error
	GetByID(id string) (*models.Review, error)
	ListByProduct(productID string, includeInactive bool) ([]models.Review, error)
	ExistsForUserProduct(userID, productID string) (bool, error)
	Update(review *models.Review) error
}
