package services

import (
	"errors"

	"alshop/internal/apperr"
	"alshop/internal/models"
	"alshop/internal/repositories"
)

// UpdateProfileInput patches the self-service profile fields. Role,
// password and favorites are deliberately not settable through it.
type UpdateProfileInput struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	Avatar  *string
}

// AdminUpdateUserInput is the admin-side user edit, which may also change
// the role.
type AdminUpdateUserInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Avatar  string
	Role    models.Role
}

// UserService handles account management and the favorites set.
type UserService struct {
	userRepo    repositories.UserRepository
	productRepo repositories.ProductRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, productRepo repositories.ProductRepository) *UserService {
	return &UserService{userRepo: userRepo, productRepo: productRepo}
}

// GetUsers returns every account, newest first.
func (s *UserService) GetUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// GetUser returns one account.
func (s *UserService) GetUser(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// UpdateProfile patches an account. Only the owner or an admin may call
// it; a changed email must stay unique.
func (s *UserService) UpdateProfile(actorID string, actorRole models.Role, targetID string, in UpdateProfileInput) (*models.User, error) {
	if actorRole != models.RoleAdmin && actorID != targetID {
		return nil, apperr.Forbiddenf("cannot update another user's profile")
	}

	user, err := s.userRepo.GetByID(targetID)
	if err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != user.Email {
		if existing, err := s.userRepo.GetByEmail(*in.Email); err == nil && existing.ID != targetID {
			return nil, apperr.Conflictf("email %s already registered", *in.Email)
		} else if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		user.Email = *in.Email
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Address != nil {
		user.Address = *in.Address
	}
	if in.Avatar != nil {
		user.Avatar = *in.Avatar
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// AdminUpdateUser edits any account including the role. An admin cannot
// downgrade their own account.
func (s *UserService) AdminUpdateUser(actorID, targetID string, in AdminUpdateUserInput) (*models.User, error) {
	if in.Name == "" || in.Email == "" {
		return nil, apperr.Validationf("name and email cannot be empty")
	}
	if actorID == targetID && in.Role == models.RoleUser {
		return nil, apperr.Forbiddenf("cannot downgrade the active admin account")
	}

	user, err := s.userRepo.GetByID(targetID)
	if err != nil {
		return nil, err
	}

	user.Name = in.Name
	user.Email = in.Email
	user.Phone = in.Phone
	user.Address = in.Address
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}
	if in.Role != "" {
		user.Role = in.Role
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser hard-deletes an account. Admins cannot delete themselves.
// Historical orders keep their snapshot data and survive the deletion.
func (s *UserService) DeleteUser(actorID, targetID string) error {
	if actorID == targetID {
		return apperr.Forbiddenf("cannot delete the active admin account")
	}
	return s.userRepo.Delete(targetID)
}

// ToggleFavorite flips set membership for a product and reports the new
// state.
func (s *UserService) ToggleFavorite(userID, productID string) (bool, error) {
	if productID == "" {
		return false, apperr.Validationf("product id is required")
	}
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return false, err
	}
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return false, err
	}

	has, err := s.userRepo.HasFavorite(userID, productID)
	if err != nil {
		return false, err
	}
	if has {
		return false, s.userRepo.RemoveFavorite(userID, productID)
	}
	return true, s.userRepo.AddFavorite(userID, productID)
}

// GetFavorites returns the user's favorite products.
func (s *UserService) GetFavorites(userID string) ([]models.Product, error) {
	return s.userRepo.GetFavorites(userID)
}
