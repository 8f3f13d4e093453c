package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alshop/internal/apperr"
	"alshop/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{db: db}
}

// Create inserts a new user. A duplicate email surfaces as a conflict.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Avatar == "" {
		user.Avatar = models.DefaultAvatarURL
	}
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflictf("email %s already registered", user.Email)
		}
		return apperr.Dependencyf("failed to create user: %v", err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("user %s", id)
		}
		return nil, apperr.Dependencyf("failed to get user %s: %v", id, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("user with email %s", email)
		}
		return nil, apperr.Dependencyf("failed to get user by email: %v", err)
	}
	return &user, nil
}

// GetAll retrieves every user, newest first.
func (r *GORMUserRepository) GetAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, apperr.Dependencyf("failed to get users: %v", err)
	}
	return users, nil
}

// Update saves the full user record.
func (r *GORMUserRepository) Update(user *models.User) error {
	res := r.db.Save(user)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return apperr.Conflictf("email %s already registered", user.Email)
		}
		return apperr.Dependencyf("failed to update user: %v", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("user %s", user.ID)
	}
	return nil
}

// Delete hard-deletes a user. Orders referencing the user keep their
// snapshot data.
func (r *GORMUserRepository) Delete(id string) error {
	res := r.db.Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return apperr.Dependencyf("failed to delete user: %v", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("user %s", id)
	}
	return nil
}

// Count returns the total number of users.
func (r *GORMUserRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&models.User{}).Count(&n).Error; err != nil {
		return 0, apperr.Dependencyf("failed to count users: %v", err)
	}
	return n, nil
}

// ListAdminIDs returns the IDs of all admin accounts.
func (r *GORMUserRepository) ListAdminIDs() ([]string, error) {
	var ids []string
	err := r.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Pluck("id", &ids).Error
	if err != nil {
		return nil, apperr.Dependencyf("failed to list admins: %v", err)
	}
	return ids, nil
}

// AddFavorite adds a product to the user's favorites set. Adding an
// existing favorite is a no-op.
func (r *GORMUserRepository) AddFavorite(userID, productID string) error {
	user := models.User{ID: userID}
	err := r.db.Model(&user).Association("Favorites").Append(&models.Product{ID: productID})
	if err != nil {
		return apperr.Dependencyf("failed to add favorite: %v", err)
	}
	return nil
}

// RemoveFavorite removes a product from the user's favorites set.
func (r *GORMUserRepository) RemoveFavorite(userID, productID string) error {
	user := models.User{ID: userID}
	err := r.db.Model(&user).Association("Favorites").Delete(&models.Product{ID: productID})
	if err != nil {
		return apperr.Dependencyf("failed to remove favorite: %v", err)
	}
	return nil
}

// GetFavorites returns the user's favorite products.
func (r *GORMUserRepository) GetFavorites(userID string) ([]models.Product, error) {
	user := models.User{ID: userID}
	var products []models.Product
	err := r.db.Model(&user).Association("Favorites").Find(&products)
	if err != nil {
		return nil, apperr.Dependencyf("failed to get favorites: %v", err)
	}
	return products, nil
}

// HasFavorite reports whether the product is in the user's favorites set.
func (r *GORMUserRepository) HasFavorite(userID, productID string) (bool, error) {
	var n int64
	err := r.db.Table("user_favorites").
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&n).Error
	if err != nil {
		return false, apperr.Dependencyf("failed to check favorite: %v", err)
	}
	return n > 0, nil
}
