package models

import "time"

// Product represents a catalog item. Products are never hard-deleted;
// visibility is controlled by IsActive so historical orders keep a valid
// reference.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Description string    `json:"description" gorm:"type:text" validate:"required,max=2000"`
	Price       float64   `json:"price" validate:"gte=0"`
	CategoryID  string    `json:"category_id" gorm:"index;type:varchar(36)" validate:"required"`
	Stock       int       `json:"stock" validate:"gte=0"`
	Images      []string  `json:"images" gorm:"serializer:json"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FirstImage returns the leading image URI or "" when none is set.
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
