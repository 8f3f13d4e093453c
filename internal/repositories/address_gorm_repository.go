package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alshop/internal/apperr"
	"alshop/internal/models"
)

// GORMAddressRepository is a GORM implementation of AddressRepository. The
// default-flag mutations run inside transactions because they are
// read-then-write invariants shared across concurrent callers.
type GORMAddressRepository struct {
	db *gorm.DB
}

// NewGORMAddressRepository creates a new instance of GORMAddressRepository.
func NewGORMAddressRepository(db *gorm.DB) *GORMAddressRepository {
	return &GORMAddressRepository{db: db}
}

// ListByUser returns the user's addresses, default first, then oldest.
func (r *GORMAddressRepository) ListByUser(userID string) ([]models.Address, error) {
	var addresses []models.Address
	err := r.db.Where("user_id = ?", userID).
		Order("is_default DESC, created_at ASC").
		Find(&addresses).Error
	if err != nil {
		return nil, apperr.Dependencyf("failed to list addresses: %v", err)
	}
	return addresses, nil
}

// GetForUser retrieves one address scoped by owner.
func (r *GORMAddressRepository) GetForUser(userID, id string) (*models.Address, error) {
	var address models.Address
	err := r.db.First(&address, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("address %s", id)
		}
		return nil, apperr.Dependencyf("failed to get address %s: %v", id, err)
	}
	return &address, nil
}

// Create inserts a new address and restores the single-default invariant.
func (r *GORMAddressRepository) Create(address *models.Address) error {
	if address.ID == "" {
		address.ID = uuid.New().String()
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Address{}).Where("user_id = ?", address.UserID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			// The first address is always the default.
			address.IsDefault = true
		}
		if address.IsDefault {
			if err := clearSiblingDefaults(tx, address.UserID, address.ID); err != nil {
				return err
			}
		}
		return tx.Create(address).Error
	})
	if err != nil {
		return apperr.Dependencyf("failed to create address: %v", err)
	}
	return nil
}

// Update saves the record and restores the single-default invariant.
func (r *GORMAddressRepository) Update(address *models.Address) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Save(address)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFoundf("address %s", address.ID)
		}
		if address.IsDefault {
			return clearSiblingDefaults(tx, address.UserID, address.ID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		return apperr.Dependencyf("failed to update address: %v", err)
	}
	return nil
}

// DeleteForUser removes an address, promoting another to default when the
// default was deleted.
func (r *GORMAddressRepository) DeleteForUser(userID, id string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var address models.Address
		err := tx.First(&address, "id = ? AND user_id = ?", id, userID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("address %s", id)
			}
			return err
		}
		if err := tx.Delete(&address).Error; err != nil {
			return err
		}
		if !address.IsDefault {
			return nil
		}
		// Promote the oldest remaining address, if any.
		var next models.Address
		err = tx.Where("user_id = ?", userID).Order("created_at ASC").First(&next).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return tx.Model(&next).Update("is_default", true).Error
	})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		return apperr.Dependencyf("failed to delete address: %v", err)
	}
	return nil
}

func clearSiblingDefaults(tx *gorm.DB, userID, keepID string) error {
	return tx.Model(&models.Address{}).
		Where("user_id = ? AND id <> ?", userID, keepID).
		Update("is_default", false).Error
}
