package models

import "time"

// Address is a saved shipping profile, distinct from the snapshot embedded
// in orders. Invariant: at most one address per user has IsDefault set;
// every mutation that touches the flag restores it.
type Address struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID        string    `json:"user_id" gorm:"index;type:varchar(36)"`
	RecipientName string    `json:"recipient_name" gorm:"type:varchar(100)" validate:"required"`
	FullAddress   string    `json:"full_address" gorm:"type:varchar(255)" validate:"required"`
	PhoneNumber   string    `json:"phone_number" gorm:"type:varchar(20)" validate:"required,numeric,min=10,max=11"`
	IsDefault     bool      `json:"is_default"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
