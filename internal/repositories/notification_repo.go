package repositories

import "alshop/internal/models"

// NotificationRepository defines the interface for the append-only
// notification log. Rows are created once and only the IsRead flag is ever
// mutated.
type NotificationRepository interface {
	Create(notification *models.Notification) error
	// ListByUser returns the most recent notifications for a user, newest
	// first, capped at limit.
	ListByUser(userID string, limit int) ([]models.Notification, error)
	CountUnread(userID string) (int64, error)
	// MarkRead flips the flag on one notification, scoped by owner: a
	// notification belonging to someone else is reported as not found.
	MarkRead(userID, id string) error
	MarkAllRead(userID string) error
}
