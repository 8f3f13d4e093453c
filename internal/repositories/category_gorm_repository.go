package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alshop/internal/apperr"
	"alshop/internal/models"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

// GetAll retrieves categories, newest first. Inactive categories are hidden
// unless includeInactive is set.
func (r *GORMCategoryRepository) GetAll(includeInactive bool) ([]models.Category, error) {
	var categories []models.Category
	q := r.db.Order("created_at DESC")
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&categories).Error; err != nil {
		return nil, apperr.Dependencyf("failed to get categories: %v", err)
	}
	return categories, nil
}

// GetByID retrieves a single category by its ID.
func (r *GORMCategoryRepository) GetByID(id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("category %s", id)
		}
		return nil, apperr.Dependencyf("failed to get category %s: %v", id, err)
	}
	return &category, nil
}

// Create inserts a new category. The name is unique.
func (r *GORMCategoryRepository) Create(category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if err := r.db.Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflictf("category %s already exists", category.Name)
		}
		return apperr.Dependencyf("failed to create category: %v", err)
	}
	return nil
}

// Update saves the full category record.
func (r *GORMCategoryRepository) Update(category *models.Category) error {
	res := r.db.Save(category)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return apperr.Conflictf("category %s already exists", category.Name)
		}
		return apperr.Dependencyf("failed to update category: %v", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("category %s", category.ID)
	}
	return nil
}
