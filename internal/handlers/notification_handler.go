package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alshop/internal/services"
)

// NotificationHandler handles HTTP requests for the notification feed.
type NotificationHandler struct {
	service *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// RegisterRoutes registers the authenticated notification routes.
func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	notifications := router.Group("/notifications")
	notifications.Get("/", h.HandleList)
	notifications.Get("/unread-count", h.HandleUnreadCount)
	notifications.Patch("/read-all", h.HandleMarkAllRead)
	notifications.Patch("/:id/read", h.HandleMarkRead)
}

// HandleList returns the newest notifications plus the unread count.
func (h *NotificationHandler) HandleList(c *fiber.Ctx) error {
	notifications, unread, err := h.service.ListForUser(currentUserID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{
		"success":      true,
		"data":         notifications,
		"unread_count": unread,
	})
}

// HandleUnreadCount returns only the unread count, for cheap polling.
func (h *NotificationHandler) HandleUnreadCount(c *fiber.Ctx) error {
	count, err := h.service.CountUnread(currentUserID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "count": count})
}

// HandleMarkRead flips the read flag on one owned notification.
func (h *NotificationHandler) HandleMarkRead(c *fiber.Ctx) error {
	if err := h.service.MarkRead(currentUserID(c), c.Params("id")); err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "Marked as read", nil)
}

// HandleMarkAllRead flips the read flag on every unread notification.
func (h *NotificationHandler) HandleMarkAllRead(c *fiber.Ctx) error {
	if err := h.service.MarkAllRead(currentUserID(c)); err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "All marked as read", nil)
}
