package repositories

import "alshop/internal/models"

// AddressRepository defines the interface for the saved-address book.
// Implementations own the single-default invariant: after any call below,
// at most one address per user has IsDefault set, and a user with at least
// one address always has exactly one default.
type AddressRepository interface {
	ListByUser(userID string) ([]models.Address, error)
	// GetForUser is owner-scoped: an address belonging to another user is
	// reported as not found, hiding its existence.
	GetForUser(userID, id string) (*models.Address, error)
	// Create inserts a new address. The user's first address is forced to
	// be the default; an explicit default clears all siblings in the same
	// transaction.
	Create(address *models.Address) error
	// Update saves the record; when IsDefault is set, siblings are cleared
	// in the same transaction.
	Update(address *models.Address) error
	// DeleteForUser removes an address. When the default is deleted and
	// other addresses remain, one of them is promoted to default.
	DeleteForUser(userID, id string) error
}
