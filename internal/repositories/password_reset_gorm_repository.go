package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alshop/internal/apperr"
	"alshop/internal/models"
)

// GORMPasswordResetRepository is a GORM implementation of
// PasswordResetRepository.
type GORMPasswordResetRepository struct {
	db *gorm.DB
}

// NewGORMPasswordResetRepository creates a new instance of
// GORMPasswordResetRepository.
func NewGORMPasswordResetRepository(db *gorm.DB) *GORMPasswordResetRepository {
	return &GORMPasswordResetRepository{db: db}
}

// Upsert replaces any pending challenge for the email.
func (r *GORMPasswordResetRepository) Upsert(reset *models.PasswordReset) error {
	if reset.ID == "" {
		reset.ID = uuid.New().String()
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"otp", "expires_at", "verified"}),
	}).Create(reset).Error
	if err != nil {
		return apperr.Dependencyf("failed to upsert password reset: %v", err)
	}
	return nil
}

// GetByEmailAndOTP retrieves the challenge matching both email and code.
func (r *GORMPasswordResetRepository) GetByEmailAndOTP(email, otp string) (*models.PasswordReset, error) {
	var reset models.PasswordReset
	err := r.db.First(&reset, "email = ? AND otp = ?", email, otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("password reset for %s", email)
		}
		return nil, apperr.Dependencyf("failed to get password reset: %v", err)
	}
	return &reset, nil
}

// GetVerifiedByEmail retrieves a challenge that passed OTP verification.
func (r *GORMPasswordResetRepository) GetVerifiedByEmail(email string) (*models.PasswordReset, error) {
	var reset models.PasswordReset
	err := r.db.First(&reset, "email = ? AND verified = ?", email, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("verified password reset for %s", email)
		}
		return nil, apperr.Dependencyf("failed to get password reset: %v", err)
	}
	return &reset, nil
}

// Save persists mutations to an existing challenge.
func (r *GORMPasswordResetRepository) Save(reset *models.PasswordReset) error {
	if err := r.db.Save(reset).Error; err != nil {
		return apperr.Dependencyf("failed to save password reset: %v", err)
	}
	return nil
}

// DeleteByEmail purges all challenges for an email.
func (r *GORMPasswordResetRepository) DeleteByEmail(email string) error {
	err := r.db.Delete(&models.PasswordReset{}, "email = ?", email).Error
	if err != nil {
		return apperr.Dependencyf("failed to delete password resets: %v", err)
	}
	return nil
}
