package services

import (
	"alshop/internal/apperr"
	"alshop/internal/models"
	"alshop/internal/repositories"
)

// CategoryService handles category management. Categories are created,
// renamed and hidden; there is no hard delete.
type CategoryService struct {
	repo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// GetCategories lists categories. Shoppers only see active ones.
func (s *CategoryService) GetCategories(includeInactive bool) ([]models.Category, error) {
	return s.repo.GetAll(includeInactive)
}

// GetCategory retrieves one category.
func (s *CategoryService) GetCategory(id string) (*models.Category, error) {
	return s.repo.GetByID(id)
}

// CreateCategory inserts a new visible category.
func (s *CategoryService) CreateCategory(name string) (*models.Category, error) {
	if name == "" {
		return nil, apperr.Validationf("category name is required")
	}
	category := &models.Category{Name: name, IsActive: true}
	if err := s.repo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// RenameCategory changes the display name.
func (s *CategoryService) RenameCategory(id, name string) (*models.Category, error) {
	if name == "" {
		return nil, apperr.Validationf("category name is required")
	}
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	category.Name = name
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// ToggleActive flips category visibility.
func (s *CategoryService) ToggleActive(id string) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	category.IsActive = !category.IsActive
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}
