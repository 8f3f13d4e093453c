package services

import (
	"alshop/internal/models"
	"alshop/internal/repositories"
)

// UpdateAddressInput patches an address. Nil fields are left unchanged.
type UpdateAddressInput struct {
	RecipientName *string
	FullAddress   *string
	PhoneNumber   *string
	IsDefault     *bool
}

// AddressService manages a user's saved shipping profiles. The repository
// owns the single-default invariant; this layer owns ownership scoping.
type AddressService struct {
	repo repositories.AddressRepository
}

// NewAddressService creates a new AddressService.
func NewAddressService(repo repositories.AddressRepository) *AddressService {
	return &AddressService{repo: repo}
}

// List returns the user's addresses, default first.
func (s *AddressService) List(userID string) ([]models.Address, error) {
	return s.repo.ListByUser(userID)
}

// Create saves a new address for the user. The first address a user saves
// becomes their default regardless of the flag sent.
func (s *AddressService) Create(userID string, address models.Address) (*models.Address, error) {
	address.ID = ""
	address.UserID = userID
	if err := s.repo.Create(&address); err != nil {
		return nil, err
	}
	return &address, nil
}

// Update patches an owned address. Setting the default clears it from all
// siblings atomically.
func (s *AddressService) Update(userID, addressID string, in UpdateAddressInput) (*models.Address, error) {
	address, err := s.repo.GetForUser(userID, addressID)
	if err != nil {
		return nil, err
	}
	if in.RecipientName != nil {
		address.RecipientName = *in.RecipientName
	}
	if in.FullAddress != nil {
		address.FullAddress = *in.FullAddress
	}
	if in.PhoneNumber != nil {
		address.PhoneNumber = *in.PhoneNumber
	}
	if in.IsDefault != nil {
		address.IsDefault = *in.IsDefault
	}
	if err := s.repo.Update(address); err != nil {
		return nil, err
	}
	return address, nil
}

// Delete removes an owned address. When the default is removed and other
// addresses remain, exactly one of them becomes the new default.
func (s *AddressService) Delete(userID, addressID string) error {
	return s.repo.DeleteForUser(userID, addressID)
}
