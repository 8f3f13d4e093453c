package models

import "time"

// Role enumerates the access levels a user account can hold.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// DefaultAvatarURL is assigned to accounts that never uploaded an avatar.
const DefaultAvatarURL = "https://i.pravatar.cc/150"

// User represents a shop account. Email is globally unique. Users are the
// only entity that is hard-deleted; historical orders keep their own
// denormalized snapshots and survive the deletion.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name      string    `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string    `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	Role      Role      `json:"role" gorm:"type:varchar(20);default:user"`
	Phone     string    `json:"phone" gorm:"type:varchar(20)"`
	Address   string    `json:"address" gorm:"type:varchar(255)"`
	Avatar    string    `json:"avatar" gorm:"type:varchar(255)"`
	Favorites []Product `json:"favorites,omitempty" gorm:"many2many:user_favorites"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the account holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
