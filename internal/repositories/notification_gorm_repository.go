package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"alshop/internal/apperr"
	"alshop/internal/models"
)

// GORMNotificationRepository is a GORM implementation of
// NotificationRepository.
type GORMNotificationRepository struct {
	db *gorm.DB
}

// NewGORMNotificationRepository creates a new instance of
// GORMNotificationRepository.
func NewGORMNotificationRepository(db *gorm.DB) *GORMNotificationRepository {
	return &GORMNotificationRepository{db: db}
}

// Create appends a notification record.
func (r *GORMNotificationRepository) Create(notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	if err := r.db.Create(notification).Error; err != nil {
		return apperr.Dependencyf("failed to create notification: %v", err)
	}
	return nil
}

// ListByUser returns the newest notifications for a user.
func (r *GORMNotificationRepository) ListByUser(userID string, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, apperr.Dependencyf("failed to list notifications: %v", err)
	}
	return notifications, nil
}

// CountUnread returns the number of unread notifications for a user.
func (r *GORMNotificationRepository) CountUnread(userID string) (int64, error) {
	var n int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	if err != nil {
		return 0, apperr.Dependencyf("failed to count unread notifications: %v", err)
	}
	return n, nil
}

// MarkRead flips the read flag on a single owned notification. The owner
// scope means a foreign notification looks identical to a missing one.
func (r *GORMNotificationRepository) MarkRead(userID, id string) error {
	res := r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return apperr.Dependencyf("failed to mark notification read: %v", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("notification %s", id)
	}
	return nil
}

// MarkAllRead flips the read flag on every unread notification for a user.
func (r *GORMNotificationRepository) MarkAllRead(userID string) error {
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
	if err != nil {
		return apperr.Dependencyf("failed to mark notifications read: %v", err)
	}
	return nil
}
