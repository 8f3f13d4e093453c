package models

import "time"

// Review is a rating plus comment left by a user on a product. One review
// per user and product pair. AdminReply and IsActive are mutated only by
// admin action.
type Review struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string    `json:"user_id" gorm:"uniqueIndex:idx_review_user_product;type:varchar(36)"`
	ProductID  string    `json:"product_id" gorm:"uniqueIndex:idx_review_user_product;type:varchar(36)" validate:"required"`
	Rating     int       `json:"rating" validate:"required,min=1,max=5"`
	Comment    string    `json:"comment" gorm:"type:text" validate:"required"`
	AdminReply string    `json:"admin_reply,omitempty" gorm:"type:text"`
	IsActive   bool      `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
