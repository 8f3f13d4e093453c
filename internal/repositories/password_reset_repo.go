package repositories

import "alshop/internal/models"

// PasswordResetRepository defines the interface for OTP password-reset
// challenges. A new request for an email replaces any pending challenge.
type PasswordResetRepository interface {
	Upsert(reset *models.PasswordReset) error
	GetByEmailAndOTP(email, otp string) (*models.PasswordReset, error)
	GetVerifiedByEmail(email string) (*models.PasswordReset, error)
	Save(reset *models.PasswordReset) error
	DeleteByEmail(email string) error
}
