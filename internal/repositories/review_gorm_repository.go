package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alshop/internal/apperr"
	"alshop/internal/models"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{db: db}
}

// Create inserts a review. A second review for the same user and product
// surfaces as a conflict.
func (r *GORMReviewRepository) Create(review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if err := r.db.Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflictf("product %s already reviewed", review.ProductID)
		}
		return apperr.Dependencyf("failed to create review: %v", err)
	}
	return nil
}

// GetByID retrieves a single review.
func (r *GORMReviewRepository) GetByID(id string) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("review %s", id)
		}
		return nil, apperr.Dependencyf("failed to get review %s: %v", id, err)
	}
	return &review, nil
}

// ListByProduct returns a product's reviews, newest first. Moderated-out
// reviews are hidden unless includeInactive is set.
func (r *GORMReviewRepository) ListByProduct(productID string, includeInactive bool) ([]models.Review, error) {
	var reviews []models.Review
	q := r.db.Where("product_id = ?", productID).Order("created_at DESC")
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&reviews).Error; err != nil {
		return nil, apperr.Dependencyf("failed to list reviews: %v", err)
	}
	return reviews, nil
}

// ExistsForUserProduct reports whether the user already reviewed the
// product.
func (r *GORMReviewRepository) ExistsForUserProduct(userID, productID string) (bool, error) {
	var n int64
	err := r.db.Model(&models.Review{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&n).Error
	if err != nil {
		return false, apperr.Dependencyf("failed to check review: %v", err)
	}
	return n > 0, nil
}

// Update saves the full review record.
func (r *GORMReviewRepository) Update(review *models.Review) error {
	res := r.db.Save(review)
	if res.Error != nil {
		return apperr.Dependencyf("failed to update review: %v", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("review %s", review.ID)
	}
	return nil
}
