package models

import "time"

// NotificationType classifies who a notification is for and why.
type NotificationType string

const (
	NotificationOrderStatus NotificationType = "ORDER_STATUS" // buyer: their order changed
	NotificationNewOrder    NotificationType = "NEW_ORDER"    // admins: a customer placed an order
	NotificationOrderUpdate NotificationType = "ORDER_UPDATE" // admins: an order completed or was cancelled
	NotificationNewProduct  NotificationType = "NEW_PRODUCT"
	NotificationNewComment  NotificationType = "NEW_COMMENT" // admins: a review was posted
	NotificationPromotion   NotificationType = "PROMOTION"
	NotificationSystem      NotificationType = "SYSTEM"
)

// Notification is an append-only record. After creation only the IsRead
// flag is ever mutated.
type Notification struct {
	ID          string           `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string           `json:"user_id" gorm:"index;type:varchar(36)"`
	Title       string           `json:"title" gorm:"type:varchar(255)"`
	Description string           `json:"description" gorm:"type:text"`
	Type        NotificationType `json:"type" gorm:"type:varchar(30);default:SYSTEM"`
	ReferenceID string           `json:"reference_id,omitempty" gorm:"type:varchar(36)"`
	Image       string           `json:"image,omitempty" gorm:"type:varchar(255)"`
	IsRead      bool             `json:"is_read"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
