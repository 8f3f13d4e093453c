package models

import "time"

// PasswordReset holds a pending OTP challenge for the forgot-password flow.
// At most one row per email; requesting a new code replaces the old one.
type PasswordReset struct {
	ID        string    `json:"-" gorm:"primaryKey;type:varchar(36)"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	OTP       string    `json:"-" gorm:"type:varchar(6)"`
	ExpiresAt time.Time `json:"expires_at"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Expired reports whether the challenge is past its TTL.
func (p *PasswordReset) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
