package services

import (
	"log"

	"alshop/internal/models"
	"alshop/internal/repositories"
)

// DefaultNotificationLimit caps how many notifications a list call returns.
const DefaultNotificationLimit = 50

// NotificationInput carries everything needed to build one notification
// besides the recipient.
type NotificationInput struct {
	Title       string
	Description string
	Type        models.NotificationType
	ReferenceID string
	Image       string
}

// Notifier is the dispatch surface other services depend on. Callers treat
// dispatch as best-effort: a failure is logged and never aborts the
// caller's primary operation.
type Notifier interface {
	Dispatch(userID string, in NotificationInput) error
	FanOut(userIDs []string, in NotificationInput)
}

// NotificationService persists and queries the append-only notification
// log.
type NotificationService struct {
	repo repositories.NotificationRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(repo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// Dispatch appends one unread notification for the recipient.
func (s *NotificationService) Dispatch(userID string, in NotificationInput) error {
	n := &models.Notification{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		ReferenceID: in.ReferenceID,
		Image:       in.Image,
		IsRead:      false,
	}
	if err := s.repo.Create(n); err != nil {
		return err
	}
	log.Printf("[notification] created for user %s: %s", userID, in.Title)
	return nil
}

// FanOut dispatches the same notification to every recipient. Failures are
// isolated per recipient: one failed dispatch never blocks the rest.
func (s *NotificationService) FanOut(userIDs []string, in NotificationInput) {
	for _, id := range userIDs {
		if err := s.Dispatch(id, in); err != nil {
			log.Printf("[notification] fan-out to user %s failed: %v", id, err)
		}
	}
}

// ListForUser returns the newest notifications for a user together with
// the unread count.
func (s *NotificationService) ListForUser(userID string) ([]models.Notification, int64, error) {
	notifications, err := s.repo.ListByUser(userID, DefaultNotificationLimit)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.repo.CountUnread(userID)
	if err != nil {
		return nil, 0, err
	}
	return notifications, unread, nil
}

// CountUnread returns the number of unread notifications for a user.
func (s *NotificationService) CountUnread(userID string) (int64, error) {
	return s.repo.CountUnread(userID)
}

// MarkRead flips the read flag on one notification. The repository scopes
// the update by owner, so another user's notification reads as not found.
func (s *NotificationService) MarkRead(userID, notificationID string) error {
	return s.repo.MarkRead(userID, notificationID)
}

// MarkAllRead flips the read flag on all of a user's notifications.
func (s *NotificationService) MarkAllRead(userID string) error {
	return s.repo.MarkAllRead(userID)
}
