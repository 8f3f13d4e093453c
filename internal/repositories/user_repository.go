package repositories

import "alshop/internal/models"

// UserRepository defines the interface for user data access, including the
// favorites set attached to each account.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetAll() ([]models.User, error)
	Update(user *models.User) error
	Delete(id string) error
	Count() (int64, error)
	// ListAdminIDs returns the IDs of every account with the admin role,
	// used for notification fan-out.
	ListAdminIDs() ([]string, error)
	AddFavorite(userID, productID string) error
	RemoveFavorite(userID, productID string) error
	GetFavorites(userID string) ([]models.Product, error)
	HasFavorite(userID, productID string) (bool, error)
}
