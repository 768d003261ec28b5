package user

import "time"

// User is the persistent account record. PasswordHash never leaves the
// server; the json tag on it exists only to make the omission explicit.
type User struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	DisplayName  string     `json:"display_name"`
	Email        string     `json:"email"`
	Role         string     `json:"role" gorm:"not null;default:readonly"`
	Active       bool       `json:"active" gorm:"not null;default:true"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

func (User) TableName() string {
	return "users"
}
